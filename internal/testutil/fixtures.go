package testutil

import (
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/teams"
)

// SampleTeam returns a minimal team fixture with the provided id.
func SampleTeam(id string) teams.Team {
	return teams.Team{
		ID:           id,
		Name:         "Team " + id,
		FullName:     "Sample Team " + id,
		Abbreviation: "T" + id,
		League:       "nfl",
	}
}

// SampleGame returns a minimal scheduled game fixture with the provided id.
func SampleGame(id string) games.Game {
	return games.Game{
		ID:        id,
		League:    "nfl",
		Provider:  "test",
		HomeTeam:  SampleTeam("home"),
		AwayTeam:  SampleTeam("away"),
		StartTime: time.Date(2024, 3, 12, 23, 0, 0, 0, time.UTC),
		Status:    games.StatusScheduled,
		Meta:      games.GameMeta{Season: "2024", UpstreamID: id},
	}
}

// LiveGame returns SampleGame(id) in progress with the given score.
func LiveGame(id string, home, away int) games.Game {
	g := SampleGame(id)
	g.Status = games.StatusInProgress
	g.Score = games.Score{Home: home, Away: away}
	g.Detail = games.Detail{Clock: "10:00", Period: 2}
	return g
}

// SampleScoreboard builds a single-day scoreboard holding one sample game per id.
func SampleScoreboard(league, date string, ids ...string) games.ScoreboardResponse {
	gs := make([]games.Game, 0, len(ids))
	for _, id := range ids {
		g := SampleGame(id)
		g.League = league
		gs = append(gs, g)
	}
	return games.NewScoreboardResponse(league, date, date, gs)
}
