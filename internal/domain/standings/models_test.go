package standings

import (
	"testing"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/teams"
)

func TestSeedsUsesFirstRank(t *testing.T) {
	table := Table{Groups: []Group{
		{Name: "League Phase", Entries: []Entry{
			{Rank: 1, Team: teams.Team{ID: "a"}},
			{Rank: 2, Team: teams.Team{ID: "b"}},
			{Rank: 0, Team: teams.Team{ID: "c"}},
		}},
		{Name: "Other", Entries: []Entry{{Rank: 7, Team: teams.Team{ID: "a"}}}},
	}}

	seeds := table.Seeds()
	if seeds["a"] != 1 || seeds["b"] != 2 {
		t.Fatalf("unexpected seeds %+v", seeds)
	}
	if _, ok := seeds["c"]; ok {
		t.Fatalf("expected unranked team to be skipped")
	}
}
