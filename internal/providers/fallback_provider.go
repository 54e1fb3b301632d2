package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

// fallbackProvider tries a league's alternate competition codes before its
// main code when fetching scoreboards. Other calls pass straight through.
type fallbackProvider struct {
	DataProvider
	metrics *metrics.Recorder
	logger  *slog.Logger
}

// NewFallbackProvider wraps inner with alternate-code scoreboard fallback.
func NewFallbackProvider(inner DataProvider, rec *metrics.Recorder, logger *slog.Logger) DataProvider {
	return &fallbackProvider{DataProvider: inner, metrics: rec, logger: logger}
}

// FetchScoreboard returns the first non-empty result across league.Codes().
// When every code fails the last error is returned. When every code answers
// with no games an empty slice is returned.
func (f *fallbackProvider) FetchScoreboard(ctx context.Context, league leagues.League, rng timeutil.DateRange) ([]games.Game, error) {
	if f.DataProvider == nil {
		return nil, ErrProviderUnavailable
	}
	codes := league.Codes()
	if len(codes) == 1 {
		return f.DataProvider.FetchScoreboard(ctx, league, rng)
	}

	var (
		lastErr  error
		answered bool
	)
	for _, code := range codes {
		variant := league
		variant.Key = code
		variant.Alternates = nil

		gs, err := f.DataProvider.FetchScoreboard(ctx, variant, rng)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			lastErr = err
			logWithProvider(ctx, f.logger, slog.LevelInfo, league.Provider, "competition code failed, trying next",
				logging.FieldLeague, league.Key, "code", code, logging.FieldError, err)
			continue
		}
		answered = true
		if len(gs) == 0 {
			continue
		}
		if code != league.Key {
			f.metrics.RecordFallback(league.Key, code)
		}
		for i := range gs {
			gs[i].League = league.Key
		}
		return gs, nil
	}

	if !answered && lastErr != nil {
		return nil, lastErr
	}
	return []games.Game{}, nil
}
