package providers

import (
	"context"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/players"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/racing"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

// ScoreboardProvider fetches the games of a league within a date range.
// Games carry league.Key as their League, even when the league was requested
// under an alternate competition code.
type ScoreboardProvider interface {
	FetchScoreboard(ctx context.Context, league leagues.League, r timeutil.DateRange) ([]games.Game, error)
}

// StandingsProvider fetches a league table. An empty season means current.
type StandingsProvider interface {
	FetchStandings(ctx context.Context, league leagues.League, season string) (standings.Table, error)
}

// TeamProvider fetches team details, schedules and rosters.
type TeamProvider interface {
	FetchTeam(ctx context.Context, league leagues.League, teamID string) (teams.Team, error)
	FetchTeamSchedule(ctx context.Context, league leagues.League, teamID string) ([]games.Game, error)
	FetchRoster(ctx context.Context, league leagues.League, teamID string) ([]players.Player, error)
}

// GameDetailProvider fetches a single game.
type GameDetailProvider interface {
	FetchGame(ctx context.Context, league leagues.League, gameID string) (games.Game, error)
}

// RacingProvider fetches race weekends.
type RacingProvider interface {
	FetchRaces(ctx context.Context, r timeutil.DateRange) ([]racing.Event, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	ScoreboardProvider
	StandingsProvider
	TeamProvider
	GameDetailProvider
	RacingProvider
}
