package players

import (
	"github.com/preston-bernstein/sports-scores-service/internal/domain/teams"
)

// Player is one roster entry.
type Player struct {
	ID       string     `json:"id"`
	FullName string     `json:"fullName"`
	Position string     `json:"position,omitempty"`
	Jersey   string     `json:"jersey,omitempty"`
	Age      int        `json:"age,omitempty"`
	Headshot string     `json:"headshot,omitempty"`
	Team     teams.Team `json:"team"`
}

// Roster is the payload for a team's roster.
type Roster struct {
	League  string   `json:"league"`
	TeamID  string   `json:"teamId"`
	Players []Player `json:"players"`
}
