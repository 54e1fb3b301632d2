package scores

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/racing"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/teststubs"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

var today = time.Date(2024, 4, 10, 15, 0, 0, 0, time.UTC)

func newService(p *teststubs.StubProvider, snaps SnapshotStore) *Service {
	svc := NewService(p, snaps, nil)
	svc.now = func() time.Time { return today }
	return svc
}

func TestScoreboardSortsLiveFirstAndDedupes(t *testing.T) {
	stub := &teststubs.StubProvider{Games: []games.Game{
		{ID: "1", Status: games.StatusFinal},
		{ID: "2", Status: games.StatusScheduled},
		{ID: "3", Status: games.StatusInProgress},
		{ID: "1", Status: games.StatusInProgress},
	}}
	svc := newService(stub, nil)

	resp, err := svc.Scoreboard(context.Background(), "NFL", timeutil.Day(today))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.League != "nfl" || resp.Range.Start != "2024-04-10" || resp.Range.End != "2024-04-10" {
		t.Fatalf("unexpected envelope %+v", resp)
	}
	if len(resp.Games) != 3 {
		t.Fatalf("expected duplicate removed, got %d games", len(resp.Games))
	}
	if resp.Games[0].ID != "3" {
		t.Fatalf("expected live game first, got %s", resp.Games[0].ID)
	}
}

func TestScoreboardUnknownLeague(t *testing.T) {
	svc := newService(&teststubs.StubProvider{}, nil)
	_, err := svc.Scoreboard(context.Background(), "xfl", timeutil.Day(today))
	if !errors.Is(err, leagues.ErrUnknownLeague) {
		t.Fatalf("expected ErrUnknownLeague, got %v", err)
	}
}

func TestScoreboardRacingUnsupported(t *testing.T) {
	svc := newService(&teststubs.StubProvider{}, nil)
	_, err := svc.Scoreboard(context.Background(), "f1", timeutil.Day(today))
	if !errors.Is(err, providers.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestScoreboardEmptyIsNotNull(t *testing.T) {
	svc := newService(&teststubs.StubProvider{}, nil)
	resp, err := svc.Scoreboard(context.Background(), "nhl", timeutil.Day(today))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Games == nil {
		t.Fatalf("expected empty slice, got nil")
	}
}

func TestScoreboardPastRangeServedFromSnapshots(t *testing.T) {
	stub := &teststubs.StubProvider{}
	snaps := &teststubs.StubSnapshotStore{Scoreboards: map[string]games.ScoreboardResponse{
		teststubs.Key("nfl", "2024-04-08"): {Games: []games.Game{{ID: "a", Status: games.StatusFinal}}},
		teststubs.Key("nfl", "2024-04-09"): {Games: []games.Game{{ID: "b", Status: games.StatusFinal}}},
	}}
	svc := newService(stub, snaps)
	r, _ := timeutil.NewDateRange(today.AddDate(0, 0, -2), today.AddDate(0, 0, -1))

	resp, err := svc.Scoreboard(context.Background(), "nfl", r)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(resp.Games) != 2 || stub.Calls.Load() != 0 {
		t.Fatalf("expected snapshot games without upstream call, got %d games and %d calls", len(resp.Games), stub.Calls.Load())
	}
}

func TestScoreboardMissingSnapshotFallsBackToProvider(t *testing.T) {
	stub := &teststubs.StubProvider{Games: []games.Game{{ID: "live"}}}
	snaps := &teststubs.StubSnapshotStore{Scoreboards: map[string]games.ScoreboardResponse{
		teststubs.Key("nfl", "2024-04-08"): {},
	}}
	svc := newService(stub, snaps)
	r, _ := timeutil.NewDateRange(today.AddDate(0, 0, -2), today.AddDate(0, 0, -1))

	resp, err := svc.Scoreboard(context.Background(), "nfl", r)
	if err != nil || len(resp.Games) != 1 || stub.Calls.Load() != 1 {
		t.Fatalf("expected provider fetch, got %+v err %v", resp, err)
	}
}

func TestScoreboardPreFinalSnapshotFallsBackToProvider(t *testing.T) {
	final := games.Game{ID: "g1", Status: games.StatusFinal, Score: games.Score{Home: 24, Away: 17}}
	stub := &teststubs.StubProvider{Games: []games.Game{final}}
	snaps := &teststubs.StubSnapshotStore{Scoreboards: map[string]games.ScoreboardResponse{
		teststubs.Key("nfl", "2024-04-09"): {Games: []games.Game{{ID: "g1", Status: games.StatusScheduled}}},
	}}
	svc := newService(stub, snaps)

	resp, err := svc.Scoreboard(context.Background(), "nfl", timeutil.Day(today.AddDate(0, 0, -1)))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stub.Calls.Load() != 1 {
		t.Fatalf("expected unsettled snapshot to be skipped, got %d provider calls", stub.Calls.Load())
	}
	if len(resp.Games) != 1 || resp.Games[0].Status != games.StatusFinal || resp.Games[0].Score.Home != 24 || resp.Games[0].Score.Away != 17 {
		t.Fatalf("expected provider final 24-17, got %+v", resp.Games)
	}
}

func TestScoreboardSettledSnapshotIncludesPostponed(t *testing.T) {
	stub := &teststubs.StubProvider{}
	snaps := &teststubs.StubSnapshotStore{Scoreboards: map[string]games.ScoreboardResponse{
		teststubs.Key("nfl", "2024-04-09"): {Games: []games.Game{
			{ID: "a", Status: games.StatusFinal},
			{ID: "b", Status: games.StatusPostponed},
			{ID: "c", Status: games.StatusCanceled},
		}},
	}}
	svc := newService(stub, snaps)

	resp, err := svc.Scoreboard(context.Background(), "nfl", timeutil.Day(today.AddDate(0, 0, -1)))
	if err != nil || len(resp.Games) != 3 || stub.Calls.Load() != 0 {
		t.Fatalf("expected settled snapshot served, got %+v err %v calls %d", resp.Games, err, stub.Calls.Load())
	}
}

func TestScoreboardTodayIgnoresSnapshots(t *testing.T) {
	stub := &teststubs.StubProvider{}
	snaps := &teststubs.StubSnapshotStore{Scoreboards: map[string]games.ScoreboardResponse{
		teststubs.Key("nfl", "2024-04-10"): {Games: []games.Game{{ID: "stale"}}},
	}}
	svc := newService(stub, snaps)
	if _, err := svc.Scoreboard(context.Background(), "nfl", timeutil.Day(today)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stub.Calls.Load() != 1 {
		t.Fatalf("expected today's scoreboard to hit the provider")
	}
}

func TestScoreboardPropagatesProviderError(t *testing.T) {
	boom := errors.New("boom")
	svc := newService(&teststubs.StubProvider{Err: boom}, nil)
	if _, err := svc.Scoreboard(context.Background(), "nfl", timeutil.Day(today)); !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestGame(t *testing.T) {
	stub := &teststubs.StubProvider{Game: &games.Game{ID: "401"}}
	svc := newService(stub, nil)
	g, err := svc.Game(context.Background(), "nfl", "401")
	if err != nil || g.ID != "401" {
		t.Fatalf("unexpected game %+v err %v", g, err)
	}
	if _, err := svc.Game(context.Background(), "nope", "401"); !errors.Is(err, leagues.ErrUnknownLeague) {
		t.Fatalf("expected ErrUnknownLeague, got %v", err)
	}
}

func TestRacesSortedByStart(t *testing.T) {
	stub := &teststubs.StubProvider{Races: []racing.Event{
		{ID: "late", StartTime: today.Add(48 * time.Hour)},
		{ID: "early", StartTime: today},
	}}
	svc := newService(stub, nil)
	resp, err := svc.Races(context.Background(), timeutil.Day(today))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Events[0].ID != "early" || resp.Start != "2024-04-10" {
		t.Fatalf("unexpected races %+v", resp)
	}
}
