package cache

import (
	"strings"

	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

func key(parts ...string) string {
	return strings.Join(parts, ":")
}

// ScoreboardKey identifies a league scoreboard over a date range.
func ScoreboardKey(league string, r timeutil.DateRange) string {
	return key("scoreboard", league, r.Key())
}

// StandingsKey identifies a league table. An empty season is "current".
func StandingsKey(league, season string) string {
	if season == "" {
		season = "current"
	}
	return key("standings", league, season)
}

// TeamKey identifies a team resource; kind is "team", "schedule" or "roster".
func TeamKey(kind, league, teamID string) string {
	return key(kind, league, teamID)
}

// GameKey identifies a single game.
func GameKey(league, gameID string) string {
	return key("game", league, gameID)
}

// RacesKey identifies the race weekends within a range.
func RacesKey(r timeutil.DateRange) string {
	return key("races", r.Key())
}
