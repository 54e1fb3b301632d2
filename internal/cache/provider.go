package cache

import (
	"context"
	"slices"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/config"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/players"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/racing"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

// Provider caches every DataProvider call. Scoreboards that are live or
// about to start expire on the short live TTL.
type Provider struct {
	inner providers.DataProvider
	ttl   config.CacheConfig
	now   func() time.Time

	scoreboards *Cache[[]games.Game]
	standings   *Cache[standings.Table]
	teams       *Cache[teams.Team]
	schedules   *Cache[[]games.Game]
	rosters     *Cache[[]players.Player]
	games       *Cache[games.Game]
	races       *Cache[[]racing.Event]
}

var _ providers.DataProvider = (*Provider)(nil)

// NewProvider wraps inner with TTL caches.
func NewProvider(inner providers.DataProvider, ttl config.CacheConfig, rec *metrics.Recorder, opts ...Option) *Provider {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	all := append([]Option{WithMetrics(rec), WithClock(o.now)}, opts...)
	return &Provider{
		inner:       inner,
		ttl:         ttl,
		now:         o.now,
		scoreboards: New[[]games.Game]("scoreboard", all...),
		standings:   New[standings.Table]("standings", all...),
		teams:       New[teams.Team]("team", all...),
		schedules:   New[[]games.Game]("schedule", all...),
		rosters:     New[[]players.Player]("roster", all...),
		games:       New[games.Game]("game", all...),
		races:       New[[]racing.Event]("races", all...),
	}
}

func (p *Provider) scoreboardTTL(gs []games.Game) time.Duration {
	if games.AnyLive(gs) {
		return p.ttl.ScoreboardLiveTTL
	}
	soon := p.now().Add(p.ttl.ScoreboardTTL)
	for _, g := range gs {
		if g.Status == games.StatusScheduled && !g.StartTime.IsZero() && g.StartTime.Before(soon) {
			return p.ttl.ScoreboardLiveTTL
		}
	}
	return p.ttl.ScoreboardTTL
}

func (p *Provider) FetchScoreboard(ctx context.Context, league leagues.League, r timeutil.DateRange) ([]games.Game, error) {
	gs, err := p.scoreboards.GetOrLoadFunc(ctx, ScoreboardKey(league.Key, r), p.scoreboardTTL, func(ctx context.Context) ([]games.Game, error) {
		return p.inner.FetchScoreboard(ctx, league, r)
	})
	return slices.Clone(gs), err
}

func (p *Provider) FetchStandings(ctx context.Context, league leagues.League, season string) (standings.Table, error) {
	return p.standings.GetOrLoad(ctx, StandingsKey(league.Key, season), p.ttl.StandingsTTL, func(ctx context.Context) (standings.Table, error) {
		return p.inner.FetchStandings(ctx, league, season)
	})
}

func (p *Provider) FetchTeam(ctx context.Context, league leagues.League, teamID string) (teams.Team, error) {
	return p.teams.GetOrLoad(ctx, TeamKey("team", league.Key, teamID), p.ttl.TeamTTL, func(ctx context.Context) (teams.Team, error) {
		return p.inner.FetchTeam(ctx, league, teamID)
	})
}

func (p *Provider) FetchTeamSchedule(ctx context.Context, league leagues.League, teamID string) ([]games.Game, error) {
	gs, err := p.schedules.GetOrLoadFunc(ctx, TeamKey("schedule", league.Key, teamID), p.scoreboardTTL, func(ctx context.Context) ([]games.Game, error) {
		return p.inner.FetchTeamSchedule(ctx, league, teamID)
	})
	return slices.Clone(gs), err
}

func (p *Provider) FetchRoster(ctx context.Context, league leagues.League, teamID string) ([]players.Player, error) {
	roster, err := p.rosters.GetOrLoad(ctx, TeamKey("roster", league.Key, teamID), p.ttl.RosterTTL, func(ctx context.Context) ([]players.Player, error) {
		return p.inner.FetchRoster(ctx, league, teamID)
	})
	return slices.Clone(roster), err
}

func (p *Provider) FetchGame(ctx context.Context, league leagues.League, gameID string) (games.Game, error) {
	return p.games.GetOrLoadFunc(ctx, GameKey(league.Key, gameID), func(g games.Game) time.Duration {
		return p.scoreboardTTL([]games.Game{g})
	}, func(ctx context.Context) (games.Game, error) {
		return p.inner.FetchGame(ctx, league, gameID)
	})
}

func (p *Provider) FetchRaces(ctx context.Context, r timeutil.DateRange) ([]racing.Event, error) {
	events, err := p.races.GetOrLoad(ctx, RacesKey(r), p.ttl.ScoreboardTTL, func(ctx context.Context) ([]racing.Event, error) {
		return p.inner.FetchRaces(ctx, r)
	})
	return slices.Clone(events), err
}

// Invalidate drops cached scoreboards for league over r, so the next read
// goes upstream.
func (p *Provider) Invalidate(league string, r timeutil.DateRange) {
	p.scoreboards.Delete(ScoreboardKey(league, r))
}

// Purge drops expired entries from every cache.
func (p *Provider) Purge() int {
	return p.scoreboards.Purge() + p.standings.Purge() + p.teams.Purge() +
		p.schedules.Purge() + p.rosters.Purge() + p.games.Purge() + p.races.Purge()
}
