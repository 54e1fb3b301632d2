package snapshots

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

type fakeProvider struct {
	mu    sync.Mutex
	calls []string
	err   error
	empty bool
}

func (p *fakeProvider) FetchScoreboard(ctx context.Context, league leagues.League, r timeutil.DateRange) ([]games.Game, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	date := timeutil.FormatDate(r.Start)
	p.calls = append(p.calls, league.Key+"/"+date)
	if p.err != nil {
		return nil, p.err
	}
	if p.empty {
		return nil, nil
	}
	return []games.Game{{ID: date + "-1", League: league.Key}}, nil
}

func TestSyncerBackfillsPastAndFuture(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	writer := NewWriter(t.TempDir(), 10000)
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	provider := &fakeProvider{}
	cfg := SyncConfig{
		Enabled:    true,
		Leagues:    []string{"nfl", "f1", "bogus"},
		Days:       3,
		FutureDays: 2,
		Interval:   time.Nanosecond,
	}

	// Yesterday still refreshes; 2 days back and +2 are skipped.
	writeSimpleSnapshot(t, writer, "nfl", "2024-01-09")
	writeSimpleSnapshot(t, writer, "nfl", "2024-01-08")
	writeSimpleSnapshot(t, writer, "nfl", "2024-01-12")

	syncer := NewSyncer(provider, writer, cfg, nil)
	syncer.now = func() time.Time { return now }
	syncer.backfill(ctx, now)

	assertDatesEqual(t, provider.calls, []string{"nfl/2024-01-10", "nfl/2024-01-09", "nfl/2024-01-11"})
	for _, date := range []string{"2024-01-10", "2024-01-11", "2024-01-08", "2024-01-12"} {
		requireSnapshotExists(t, writer, "nfl", date)
	}
}

func TestSyncerDayBoundaryUsesLocation(t *testing.T) {
	eastern := time.FixedZone("EDT", -4*60*60)
	s := NewSyncer(nil, nil, SyncConfig{Days: 2, Location: eastern}, nil)

	// 03:00 UTC on the 10th is still the evening of the 9th in New York.
	now := time.Date(2024, 4, 10, 3, 0, 0, 0, time.UTC)
	assertDatesEqual(t, s.buildDates("nfl", now), []string{"2024-04-09", "2024-04-08"})

	utc := NewSyncer(nil, nil, SyncConfig{Days: 2}, nil)
	assertDatesEqual(t, utc.buildDates("nfl", now), []string{"2024-04-10", "2024-04-09"})
}

func TestSyncerRefetchesUnsettledPastSnapshot(t *testing.T) {
	writer := NewWriter(t.TempDir(), 10000)
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	pending := games.NewScoreboardResponse("nfl", "2024-01-08", "2024-01-08",
		[]games.Game{{ID: "g1", League: "nfl", Status: games.StatusScheduled}})
	if err := writer.WriteScoreboard("nfl", "2024-01-08", pending); err != nil {
		t.Fatalf("write: %v", err)
	}
	writeSimpleSnapshot(t, writer, "nfl", "2024-01-07")

	s := NewSyncer(nil, writer, SyncConfig{Days: 4}, nil)
	assertDatesEqual(t, s.buildDates("nfl", now), []string{"2024-01-10", "2024-01-09", "2024-01-08"})
}

func TestSyncerRunSchedulesAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	provider := &fakeProvider{}
	s := NewSyncer(provider, NewWriter(t.TempDir(), 10000), SyncConfig{Enabled: true, Leagues: []string{"nhl"}, Days: 2, Interval: time.Nanosecond}, nil)

	s.Run(ctx)
	s.cronMu.Lock()
	scheduled := s.cron != nil && len(s.cron.Entries()) == 1
	s.cronMu.Unlock()
	if !scheduled {
		t.Fatalf("expected daily job scheduled")
	}
	if len(provider.calls) != 2 {
		t.Fatalf("expected today and yesterday fetched, got %v", provider.calls)
	}

	cancel()
	deadline := time.Now().Add(time.Second)
	for {
		s.cronMu.Lock()
		stopped := s.cron == nil
		s.cronMu.Unlock()
		if stopped {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected cron stopped after cancel")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSyncerSkipsWhenDisabledOrNil(t *testing.T) {
	provider := &fakeProvider{}
	s := NewSyncer(provider, NewWriter(t.TempDir(), 1), SyncConfig{Enabled: false, Leagues: []string{"nfl"}}, nil)
	s.Run(context.Background())
	if len(provider.calls) != 0 {
		t.Fatalf("expected no fetches when disabled")
	}

	s = NewSyncer(nil, nil, SyncConfig{Enabled: true}, nil)
	s.Run(context.Background())
	s.Stop()

	var nilSyncer *Syncer
	nilSyncer.Run(context.Background())
	nilSyncer.Stop()
}

func TestSyncerDefaults(t *testing.T) {
	s := NewSyncer(nil, nil, SyncConfig{FutureDays: -1, DailyHourUTC: 30}, nil)
	if s.cfg.Days != 7 || s.cfg.FutureDays != 0 || s.cfg.Interval != time.Minute || s.cfg.DailyHourUTC != 2 {
		t.Fatalf("unexpected defaults %+v", s.cfg)
	}
}

func TestSyncerSkipsEmptyAndFailedFetches(t *testing.T) {
	writer := NewWriter(t.TempDir(), 10000)
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	empty := NewSyncer(&fakeProvider{empty: true}, writer, SyncConfig{Enabled: true, Leagues: []string{"nfl"}, Days: 2, Interval: time.Nanosecond}, nil)
	empty.backfill(context.Background(), now)

	failing := NewSyncer(&fakeProvider{err: errors.New("boom")}, writer, SyncConfig{Enabled: true, Leagues: []string{"nfl"}, Days: 2, Interval: time.Nanosecond}, nil)
	failing.backfill(context.Background(), now)

	if NewFSStore(writer.BasePath()).HasScoreboard("nfl", "2024-01-10") {
		t.Fatalf("expected no snapshot written")
	}
}

func TestSyncerRefreshDate(t *testing.T) {
	writer := NewWriter(t.TempDir(), 10000)
	s := NewSyncer(&fakeProvider{}, writer, SyncConfig{}, nil)

	if err := s.RefreshDate(context.Background(), "NHL", "2024-01-05"); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	requireSnapshotExists(t, writer, "nhl", "2024-01-05")

	if err := s.RefreshDate(context.Background(), "bogus", "2024-01-05"); !errors.Is(err, leagues.ErrUnknownLeague) {
		t.Fatalf("expected unknown league, got %v", err)
	}
	if err := s.RefreshDate(context.Background(), "f1", "2024-01-05"); !errors.Is(err, providers.ErrUnsupported) {
		t.Fatalf("expected unsupported, got %v", err)
	}
	if err := s.RefreshDate(context.Background(), "nhl", "Jan 5"); err == nil {
		t.Fatalf("expected invalid date error")
	}
	var nilSyncer *Syncer
	if err := nilSyncer.RefreshDate(context.Background(), "nhl", "2024-01-05"); err == nil {
		t.Fatalf("expected error for nil syncer")
	}
}

func TestSyncerSleepRespectsContext(t *testing.T) {
	s := NewSyncer(nil, nil, SyncConfig{Enabled: true}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	s.sleep(ctx, time.Second)
	if time.Since(start) > 50*time.Millisecond {
		t.Fatalf("expected sleep to return quickly when context canceled")
	}
}

func TestHasSnapshotNilWriter(t *testing.T) {
	s := NewSyncer(nil, nil, SyncConfig{}, nil)
	if s.hasSnapshot("nfl", "2024-01-01") {
		t.Fatalf("expected hasSnapshot to be false with nil writer")
	}
}
