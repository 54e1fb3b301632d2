package players

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/teams"
)

func TestPlayerOmitsUnknownDetails(t *testing.T) {
	p := Player{ID: "3139477", FullName: "Patrick Mahomes", Team: teams.Team{ID: "12"}}
	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(raw)
	for _, key := range []string{"position", "jersey", "age", "headshot"} {
		if strings.Contains(out, `"`+key+`"`) {
			t.Fatalf("expected %s omitted, got %s", key, out)
		}
	}
	if !strings.Contains(out, `"fullName":"Patrick Mahomes"`) || !strings.Contains(out, `"team":{`) {
		t.Fatalf("unexpected payload %s", out)
	}
}

func TestRosterShape(t *testing.T) {
	r := Roster{League: "nfl", TeamID: "12", Players: []Player{{ID: "1", FullName: "A", Jersey: "15", Position: "QB"}}}
	raw, _ := json.Marshal(r)
	var back map[string]any
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back["teamId"] != "12" || len(back["players"].([]any)) != 1 {
		t.Fatalf("unexpected roster payload %s", raw)
	}
}
