package testutil

import (
	"testing"

	"github.com/preston-bernstein/sports-scores-service/internal/snapshots"
)

// NewTempWriter returns a snapshot writer rooted in a temp dir.
func NewTempWriter(t *testing.T, retention int) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(t.TempDir(), retention)
}

// WriteSnapshot writes a one-game scoreboard snapshot for league and date.
func WriteSnapshot(t *testing.T, w *snapshots.Writer, league, date string) {
	t.Helper()
	if err := writeSnapshotPayload(w, league, date); err != nil {
		t.Fatalf("failed to write snapshot %s/%s: %v", league, date, err)
	}
}

func writeSnapshotPayload(w *snapshots.Writer, league, date string) error {
	return w.WriteScoreboard(league, date, SampleScoreboard(league, date, league+"-"+date))
}

// SnapshotPath returns the expected file path for a league snapshot date.
func SnapshotPath(w *snapshots.Writer, league, date string) string {
	return snapshots.ScoreboardPath(w.BasePath(), league, date)
}
