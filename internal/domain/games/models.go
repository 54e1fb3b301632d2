package games

import (
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/teams"
)

// GameStatus mirrors the shared contract for game lifecycle states.
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusFinal      GameStatus = "FINAL"
	StatusPostponed  GameStatus = "POSTPONED"
	StatusCanceled   GameStatus = "CANCELED"
)

// IsLive reports whether the game is being played right now.
func (s GameStatus) IsLive() bool { return s == StatusInProgress }

// IsSettled reports whether the game can no longer change: final, postponed
// or canceled.
func (s GameStatus) IsSettled() bool {
	return s == StatusFinal || s == StatusPostponed || s == StatusCanceled
}

// Score captures home and away points. Shootout scores are only set for
// soccer ties decided on penalties.
type Score struct {
	Home         int `json:"home"`
	Away         int `json:"away"`
	HomeShootout int `json:"homeShootout,omitempty"`
	AwayShootout int `json:"awayShootout,omitempty"`
}

// Total returns the combined score.
func (s Score) Total() int { return s.Home + s.Away }

// Detail holds in-game presentation state.
type Detail struct {
	Clock       string `json:"clock,omitempty"`
	Period      int    `json:"period,omitempty"`
	Description string `json:"description,omitempty"`
}

// GameMeta stores provider metadata for a game.
type GameMeta struct {
	Season     string `json:"season,omitempty"`
	Round      string `json:"round,omitempty"`
	Leg        int    `json:"leg,omitempty"`
	UpstreamID string `json:"upstreamGameId,omitempty"`
	Venue      string `json:"venue,omitempty"`
}

// Game is the canonical game shape exposed by the service.
type Game struct {
	ID        string     `json:"id"`
	League    string     `json:"league"`
	Provider  string     `json:"provider"`
	Name      string     `json:"name,omitempty"`
	HomeTeam  teams.Team `json:"homeTeam"`
	AwayTeam  teams.Team `json:"awayTeam"`
	StartTime time.Time  `json:"startTime"`
	Status    GameStatus `json:"status"`
	Score     Score      `json:"score"`
	Detail    Detail     `json:"detail"`
	Meta      GameMeta   `json:"meta"`
}

// Involves reports whether teamID plays in the game.
func (g Game) Involves(teamID string) bool {
	return teamID != "" && (g.HomeTeam.ID == teamID || g.AwayTeam.ID == teamID)
}

// DateRange is the serialized form of a requested date window.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ScoreboardResponse is the payload returned by /leagues/{league}/scoreboard.
type ScoreboardResponse struct {
	League string    `json:"league"`
	Range  DateRange `json:"range"`
	Games  []Game    `json:"games"`
}

// NewScoreboardResponse builds a ScoreboardResponse payload. Nil games are
// normalized to an empty slice so clients always see an array.
func NewScoreboardResponse(league, start, end string, games []Game) ScoreboardResponse {
	if games == nil {
		games = []Game{}
	}
	return ScoreboardResponse{
		League: league,
		Range:  DateRange{Start: start, End: end},
		Games:  games,
	}
}
