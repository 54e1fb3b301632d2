// Package brackets turns two-legged knockout games into aggregate ties and
// groups them into seeded pairings for rendering.
package brackets

import (
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/teams"
)

// Leg is one match of a tie.
type Leg struct {
	GameID       string           `json:"gameId"`
	StartTime    time.Time        `json:"startTime"`
	Status       games.GameStatus `json:"status"`
	HomeTeamID   string           `json:"homeTeamId"`
	HomeScore    int              `json:"homeScore"`
	AwayScore    int              `json:"awayScore"`
	HomeShootout int              `json:"homeShootout,omitempty"`
	AwayShootout int              `json:"awayShootout,omitempty"`
}

// Tie is an aggregate matchup between two teams in one round.
type Tie struct {
	ID         string     `json:"id"`
	Round      RoundKey   `json:"round"`
	TeamA      teams.Team `json:"teamA"`
	TeamB      teams.Team `json:"teamB"`
	SeedA      int        `json:"seedA,omitempty"`
	SeedB      int        `json:"seedB,omitempty"`
	Legs       []Leg      `json:"legs"`
	AggregateA int        `json:"aggregateA"`
	AggregateB int        `json:"aggregateB"`
	ShootoutA  int        `json:"shootoutA,omitempty"`
	ShootoutB  int        `json:"shootoutB,omitempty"`
	Winner     string     `json:"winner,omitempty"`
	Complete   bool       `json:"complete"`
}

// Seeded reports whether both teams have a seed.
func (t Tie) Seeded() bool { return t.SeedA > 0 && t.SeedB > 0 }

// Pairing is a named pod of ties whose winners meet later.
type Pairing struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
	Ties  []Tie  `json:"ties"`
}

// Round is one knockout stage.
type Round struct {
	Key      RoundKey  `json:"key"`
	Name     string    `json:"name"`
	Order    int       `json:"order"`
	Ties     []Tie     `json:"ties"`
	Pairings []Pairing `json:"pairings"`
}

// Bracket is the full knockout view for a competition season.
type Bracket struct {
	League string  `json:"league"`
	Season string  `json:"season"`
	Rounds []Round `json:"rounds"`
}
