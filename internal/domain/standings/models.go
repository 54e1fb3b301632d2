package standings

import "github.com/preston-bernstein/sports-scores-service/internal/domain/teams"

// Table is a league's standings, split into groups (divisions, conferences
// or a single overall table).
type Table struct {
	League string  `json:"league"`
	Season string  `json:"season"`
	Groups []Group `json:"groups"`
}

// Group is one standings table.
type Group struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// Entry is one team's row.
type Entry struct {
	Rank        int               `json:"rank"`
	Team        teams.Team        `json:"team"`
	Wins        int               `json:"wins"`
	Losses      int               `json:"losses"`
	Ties        int               `json:"ties"`
	Points      int               `json:"points"`
	GamesPlayed int               `json:"gamesPlayed"`
	GoalDiff    int               `json:"goalDiff"`
	Stats       map[string]string `json:"stats,omitempty"`
}

// Seeds maps team ID to rank across all groups. The first rank seen wins.
func (t Table) Seeds() map[string]int {
	seeds := make(map[string]int)
	for _, g := range t.Groups {
		for _, e := range g.Entries {
			if e.Team.ID == "" || e.Rank <= 0 {
				continue
			}
			if _, ok := seeds[e.Team.ID]; !ok {
				seeds[e.Team.ID] = e.Rank
			}
		}
	}
	return seeds
}
