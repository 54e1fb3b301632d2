package snapshots

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

const defaultRetentionDays = 14

// Writer persists scoreboard snapshots and the manifest, pruning old dates.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time
	mu            sync.Mutex
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteScoreboard writes the scoreboard snapshot for league on date
// (YYYY-MM-DD) and prunes that league's expired snapshots. Unchanged
// payloads are not rewritten.
func (w *Writer) WriteScoreboard(league, date string, snapshot games.ScoreboardResponse) error {
	if w == nil {
		return errors.New("snapshot writer not configured")
	}
	if league == "" || strings.ContainsAny(league, `/\`) {
		return errors.New("snapshot league invalid")
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return err
	}

	if snapshot.League == "" {
		snapshot.League = league
	}
	if snapshot.Range.Start == "" {
		snapshot.Range = games.DateRange{Start: date, End: date}
	}
	gs := make([]games.Game, len(snapshot.Games))
	copy(gs, snapshot.Games)
	sort.Slice(gs, func(i, j int) bool { return gs[i].ID < gs[j].ID })
	snapshot.Games = gs

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	target := ScoreboardPath(w.basePath, league, date)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return w.updateManifest(league, date)
	}
	if err := writeAtomic(target, data); err != nil {
		return err
	}
	return w.updateManifest(league, date)
}

func (w *Writer) updateManifest(league, date string) error {
	m, _ := readManifest(ManifestPath(w.basePath), w.retentionDays)

	dates, err := w.listDates(league)
	if err != nil {
		return err
	}
	if !containsDate(dates, date) {
		dates = append(dates, date)
	}
	m.Scoreboards[league] = LeagueMeta{
		Dates:         w.pruneOldSnapshots(league, dates),
		LastRefreshed: w.now().UTC(),
	}
	m.Retention.Days = w.retentionDays

	return writeManifest(w.basePath, m)
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

func (w *Writer) listDates(league string) ([]string, error) {
	entries, err := os.ReadDir(leagueDir(w.basePath, league))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	var dates []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		dates = append(dates, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(dates)
	return dates, nil
}

func (w *Writer) pruneOldSnapshots(league string, dates []string) []string {
	now := w.now().UTC()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -w.retentionDays)
	keep := []string{}
	for _, d := range dates {
		parsed, err := timeutil.ParseDate(d)
		if err == nil && parsed.Before(cutoff) {
			_ = os.Remove(ScoreboardPath(w.basePath, league, d))
			continue
		}
		keep = append(keep, d)
	}
	sort.Strings(keep)
	return keep
}
