package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/players"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/racing"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	defaultMaxBackoff    = 5 * time.Second
)

// retryingProvider wraps a DataProvider with exponential backoff and jitter.
type retryingProvider struct {
	inner        DataProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	maxDelay     time.Duration
	backoffFn    func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts or
// delays are <= 0, defaults are used. Rate-limited responses wait for
// Retry-After unless it exceeds maxDelay, in which case the error is returned.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, rec *metrics.Recorder, providerName string, maxAttempts int, baseDelay, maxDelay time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if baseDelay <= 0 {
		baseDelay = defaultBackoff
	}
	if maxDelay <= 0 {
		maxDelay = defaultMaxBackoff
	}
	if providerName == "" {
		providerName = "provider"
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      rec,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		maxDelay:     maxDelay,
		backoffFn: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = baseDelay
			b.MaxInterval = maxDelay
			b.MaxElapsedTime = 0
			return b
		},
	}
}

// retryPolicy delegates to an exponential schedule but honors Retry-After
// from the most recent rate limit error.
type retryPolicy struct {
	next     backoff.BackOff
	maxDelay time.Duration
	lastErr  error
}

func (p *retryPolicy) NextBackOff() time.Duration {
	next := p.next.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	return p.computeDelay(next)
}

func (p *retryPolicy) computeDelay(next time.Duration) time.Duration {
	if rl, ok := AsRateLimitError(p.lastErr); ok && rl.RetryAfter > 0 {
		if rl.RetryAfter > p.maxDelay {
			return backoff.Stop
		}
		return rl.RetryAfter
	}
	return next
}

func (p *retryPolicy) Reset() {
	p.lastErr = nil
	p.next.Reset()
}

func withRetry[T any](ctx context.Context, r *retryingProvider, op string, call func(context.Context) (T, error)) (T, error) {
	var zero T
	if r.inner == nil {
		return zero, ErrProviderUnavailable
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	policy := &retryPolicy{next: r.backoffFn(), maxDelay: r.maxDelay}
	schedule := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1)), ctx)

	var (
		result  T
		attempt int
	)
	operation := func() error {
		attempt++
		start := time.Now()
		res, err := call(ctx)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		policy.lastErr = err
		if err == nil {
			result = res
			return nil
		}
		if rl, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rl.RetryAfter)
		}
		if !Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, delay time.Duration) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch retry",
			"op", op, "attempt", attempt, "max_attempts", r.maxAttempts, "delay", delay, logging.FieldError, err)
	}

	if err := backoff.RetryNotify(operation, schedule, notify); err != nil {
		if Retryable(err) {
			logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch failed",
				"op", op, "attempts", attempt, logging.FieldError, err)
		}
		return zero, err
	}
	return result, nil
}

func (r *retryingProvider) FetchScoreboard(ctx context.Context, league leagues.League, rng timeutil.DateRange) ([]games.Game, error) {
	return withRetry(ctx, r, "scoreboard", func(ctx context.Context) ([]games.Game, error) {
		return r.inner.FetchScoreboard(ctx, league, rng)
	})
}

func (r *retryingProvider) FetchStandings(ctx context.Context, league leagues.League, season string) (standings.Table, error) {
	return withRetry(ctx, r, "standings", func(ctx context.Context) (standings.Table, error) {
		return r.inner.FetchStandings(ctx, league, season)
	})
}

func (r *retryingProvider) FetchTeam(ctx context.Context, league leagues.League, teamID string) (teams.Team, error) {
	return withRetry(ctx, r, "team", func(ctx context.Context) (teams.Team, error) {
		return r.inner.FetchTeam(ctx, league, teamID)
	})
}

func (r *retryingProvider) FetchTeamSchedule(ctx context.Context, league leagues.League, teamID string) ([]games.Game, error) {
	return withRetry(ctx, r, "schedule", func(ctx context.Context) ([]games.Game, error) {
		return r.inner.FetchTeamSchedule(ctx, league, teamID)
	})
}

func (r *retryingProvider) FetchRoster(ctx context.Context, league leagues.League, teamID string) ([]players.Player, error) {
	return withRetry(ctx, r, "roster", func(ctx context.Context) ([]players.Player, error) {
		return r.inner.FetchRoster(ctx, league, teamID)
	})
}

func (r *retryingProvider) FetchGame(ctx context.Context, league leagues.League, gameID string) (games.Game, error) {
	return withRetry(ctx, r, "game", func(ctx context.Context) (games.Game, error) {
		return r.inner.FetchGame(ctx, league, gameID)
	})
}

func (r *retryingProvider) FetchRaces(ctx context.Context, rng timeutil.DateRange) ([]racing.Event, error) {
	return withRetry(ctx, r, "races", func(ctx context.Context) ([]racing.Event, error) {
		return r.inner.FetchRaces(ctx, rng)
	})
}
