package providers

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/players"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/racing"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

// rateLimitedProvider wraps a DataProvider with a token bucket so bursts of
// requests stay under the upstream's tolerance.
type rateLimitedProvider struct {
	next         DataProvider
	limiter      *rate.Limiter
	providerName string
	logger       *slog.Logger
}

// NewRateLimitedProvider returns a DataProvider that allows perSecond calls
// with the given burst. Calls block until a token is available or ctx ends.
func NewRateLimitedProvider(next DataProvider, providerName string, perSecond, burst int, logger *slog.Logger) DataProvider {
	if perSecond <= 0 {
		perSecond = 1
	}
	if burst <= 0 {
		burst = perSecond
	}
	return &rateLimitedProvider{
		next:         next,
		limiter:      rate.NewLimiter(rate.Limit(perSecond), burst),
		providerName: providerName,
		logger:       logger,
	}
}

func waitThen[T any](ctx context.Context, p *rateLimitedProvider, call func(context.Context) (T, error)) (T, error) {
	var zero T
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.providerName, "provider unavailable")
		return zero, ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.providerName, "rate-limited fetch canceled", logging.FieldError, err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}
		return zero, err
	}
	return call(ctx)
}

func (p *rateLimitedProvider) FetchScoreboard(ctx context.Context, league leagues.League, rng timeutil.DateRange) ([]games.Game, error) {
	return waitThen(ctx, p, func(ctx context.Context) ([]games.Game, error) {
		return p.next.FetchScoreboard(ctx, league, rng)
	})
}

func (p *rateLimitedProvider) FetchStandings(ctx context.Context, league leagues.League, season string) (standings.Table, error) {
	return waitThen(ctx, p, func(ctx context.Context) (standings.Table, error) {
		return p.next.FetchStandings(ctx, league, season)
	})
}

func (p *rateLimitedProvider) FetchTeam(ctx context.Context, league leagues.League, teamID string) (teams.Team, error) {
	return waitThen(ctx, p, func(ctx context.Context) (teams.Team, error) {
		return p.next.FetchTeam(ctx, league, teamID)
	})
}

func (p *rateLimitedProvider) FetchTeamSchedule(ctx context.Context, league leagues.League, teamID string) ([]games.Game, error) {
	return waitThen(ctx, p, func(ctx context.Context) ([]games.Game, error) {
		return p.next.FetchTeamSchedule(ctx, league, teamID)
	})
}

func (p *rateLimitedProvider) FetchRoster(ctx context.Context, league leagues.League, teamID string) ([]players.Player, error) {
	return waitThen(ctx, p, func(ctx context.Context) ([]players.Player, error) {
		return p.next.FetchRoster(ctx, league, teamID)
	})
}

func (p *rateLimitedProvider) FetchGame(ctx context.Context, league leagues.League, gameID string) (games.Game, error) {
	return waitThen(ctx, p, func(ctx context.Context) (games.Game, error) {
		return p.next.FetchGame(ctx, league, gameID)
	})
}

func (p *rateLimitedProvider) FetchRaces(ctx context.Context, rng timeutil.DateRange) ([]racing.Event, error) {
	return waitThen(ctx, p, func(ctx context.Context) ([]racing.Event, error) {
		return p.next.FetchRaces(ctx, rng)
	})
}
