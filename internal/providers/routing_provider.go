package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/players"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/racing"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

// routingProvider dispatches each call to the provider a league is
// configured for, and retries on the primary provider when that fails.
type routingProvider struct {
	primaryName string
	primary     DataProvider
	byName      map[string]DataProvider
	logger      *slog.Logger
}

// NewRoutingProvider builds a router. Leagues whose provider is missing from
// others are served by primary.
func NewRoutingProvider(primaryName string, primary DataProvider, others map[string]DataProvider, logger *slog.Logger) DataProvider {
	byName := make(map[string]DataProvider, len(others)+1)
	for name, p := range others {
		if p != nil {
			byName[name] = p
		}
	}
	byName[primaryName] = primary
	return &routingProvider{
		primaryName: primaryName,
		primary:     primary,
		byName:      byName,
		logger:      logger,
	}
}

func (r *routingProvider) pick(league leagues.League) (DataProvider, string) {
	if p, ok := r.byName[league.Provider]; ok && p != nil {
		return p, league.Provider
	}
	return r.primary, r.primaryName
}

func route[T any](ctx context.Context, r *routingProvider, league leagues.League, op string, call func(DataProvider) (T, error)) (T, error) {
	var zero T
	p, name := r.pick(league)
	if p == nil {
		return zero, ErrProviderUnavailable
	}
	res, err := call(p)
	if err == nil || name == r.primaryName || r.primary == nil || ctx.Err() != nil {
		return res, err
	}
	logWithProvider(ctx, r.logger, slog.LevelInfo, name, "routing to secondary provider",
		"op", op, logging.FieldLeague, league.Key, "secondary", r.primaryName, logging.FieldError, err)
	return call(r.primary)
}

func (r *routingProvider) FetchScoreboard(ctx context.Context, league leagues.League, rng timeutil.DateRange) ([]games.Game, error) {
	return route(ctx, r, league, "scoreboard", func(p DataProvider) ([]games.Game, error) {
		return p.FetchScoreboard(ctx, league, rng)
	})
}

func (r *routingProvider) FetchStandings(ctx context.Context, league leagues.League, season string) (standings.Table, error) {
	return route(ctx, r, league, "standings", func(p DataProvider) (standings.Table, error) {
		return p.FetchStandings(ctx, league, season)
	})
}

func (r *routingProvider) FetchTeam(ctx context.Context, league leagues.League, teamID string) (teams.Team, error) {
	return route(ctx, r, league, "team", func(p DataProvider) (teams.Team, error) {
		return p.FetchTeam(ctx, league, teamID)
	})
}

func (r *routingProvider) FetchTeamSchedule(ctx context.Context, league leagues.League, teamID string) ([]games.Game, error) {
	return route(ctx, r, league, "schedule", func(p DataProvider) ([]games.Game, error) {
		return p.FetchTeamSchedule(ctx, league, teamID)
	})
}

func (r *routingProvider) FetchRoster(ctx context.Context, league leagues.League, teamID string) ([]players.Player, error) {
	return route(ctx, r, league, "roster", func(p DataProvider) ([]players.Player, error) {
		return p.FetchRoster(ctx, league, teamID)
	})
}

func (r *routingProvider) FetchGame(ctx context.Context, league leagues.League, gameID string) (games.Game, error) {
	return route(ctx, r, league, "game", func(p DataProvider) (games.Game, error) {
		return p.FetchGame(ctx, league, gameID)
	})
}

func (r *routingProvider) FetchRaces(ctx context.Context, rng timeutil.DateRange) ([]racing.Event, error) {
	if r.primary == nil {
		return nil, ErrProviderUnavailable
	}
	return r.primary.FetchRaces(ctx, rng)
}
