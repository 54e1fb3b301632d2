package snapshots

import (
	"os"
	"testing"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
)

func simpleSnapshot(league, date string) games.ScoreboardResponse {
	return games.NewScoreboardResponse(league, date, date, []games.Game{{ID: date, League: league, Status: games.StatusFinal}})
}

func writeSimpleSnapshot(t *testing.T, w *Writer, league, date string) {
	t.Helper()
	if err := w.WriteScoreboard(league, date, simpleSnapshot(league, date)); err != nil {
		t.Fatalf("failed to write snapshot %s/%s: %v", league, date, err)
	}
}

func requireSnapshotExists(t *testing.T, w *Writer, league, date string) {
	t.Helper()
	if _, err := os.Stat(ScoreboardPath(w.BasePath(), league, date)); err != nil {
		t.Fatalf("expected snapshot %s/%s to exist: %v", league, date, err)
	}
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d dates, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected date %s at %d, got %s", want[i], i, got[i])
		}
	}
}
