package teststubs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/players"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/racing"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

// ErrStubNotFound mirrors an upstream 404 for stubs that have no data.
var ErrStubNotFound = errors.New("stub: not found")

// StubProvider is a test double for providers.DataProvider. Per-league maps
// take precedence over the shared Games/Err values.
type StubProvider struct {
	Games         []games.Game
	Err           error
	Scoreboards   map[string][]games.Game
	ScoreboardErr map[string]error
	Table         standings.Table
	TableErr      error
	Team          teams.Team
	Schedule      []games.Game
	Roster        []players.Player
	Game          *games.Game
	Races         []racing.Event
	Calls         atomic.Int32
	Notify        chan struct{}

	mu        sync.Mutex
	requested []string
}

func (s *StubProvider) record(key string) {
	if s.Notify != nil {
		s.mu.Lock()
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
		s.mu.Unlock()
	}
	s.Calls.Add(1)
	s.mu.Lock()
	s.requested = append(s.requested, key)
	s.mu.Unlock()
}

// Requested returns the league keys (or operation names) seen so far.
func (s *StubProvider) Requested() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requested))
	copy(out, s.requested)
	return out
}

// FetchScoreboard returns configured games and error while tracking calls.
func (s *StubProvider) FetchScoreboard(ctx context.Context, league leagues.League, r timeutil.DateRange) ([]games.Game, error) {
	_ = ctx
	_ = r
	s.record(league.Key)
	if err, ok := s.ScoreboardErr[league.Key]; ok && err != nil {
		return nil, err
	}
	if gs, ok := s.Scoreboards[league.Key]; ok {
		return clone(gs), nil
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return clone(s.Games), nil
}

func (s *StubProvider) FetchStandings(ctx context.Context, league leagues.League, season string) (standings.Table, error) {
	_ = ctx
	_ = season
	s.record("standings:" + league.Key)
	if s.TableErr != nil {
		return standings.Table{}, s.TableErr
	}
	return s.Table, s.Err
}

func (s *StubProvider) FetchTeam(ctx context.Context, league leagues.League, teamID string) (teams.Team, error) {
	_ = ctx
	s.record("team:" + league.Key)
	if s.Err != nil {
		return teams.Team{}, s.Err
	}
	if s.Team.ID == "" || s.Team.ID != teamID {
		return teams.Team{}, ErrStubNotFound
	}
	return s.Team, nil
}

func (s *StubProvider) FetchTeamSchedule(ctx context.Context, league leagues.League, teamID string) ([]games.Game, error) {
	_ = ctx
	_ = teamID
	s.record("schedule:" + league.Key)
	return clone(s.Schedule), s.Err
}

func (s *StubProvider) FetchRoster(ctx context.Context, league leagues.League, teamID string) ([]players.Player, error) {
	_ = ctx
	_ = teamID
	s.record("roster:" + league.Key)
	return s.Roster, s.Err
}

func (s *StubProvider) FetchGame(ctx context.Context, league leagues.League, gameID string) (games.Game, error) {
	_ = ctx
	s.record("game:" + league.Key)
	if s.Err != nil {
		return games.Game{}, s.Err
	}
	if s.Game == nil || s.Game.ID != gameID {
		return games.Game{}, ErrStubNotFound
	}
	return *s.Game, nil
}

func (s *StubProvider) FetchRaces(ctx context.Context, r timeutil.DateRange) ([]racing.Event, error) {
	_ = ctx
	_ = r
	s.record("races")
	return s.Races, s.Err
}

func clone(gs []games.Game) []games.Game {
	if gs == nil {
		return nil
	}
	out := make([]games.Game, len(gs))
	copy(out, gs)
	return out
}

// StubSnapshotStore is a test double for snapshots.Store.
type StubSnapshotStore struct {
	Scoreboards map[string]games.ScoreboardResponse // keyed by league/date
	LoadErr     error
}

// Key builds the map key used by StubSnapshotStore.
func Key(league, date string) string { return league + "/" + date }

// LoadScoreboard returns the snapshot for league and date if present.
func (s *StubSnapshotStore) LoadScoreboard(league, date string) (games.ScoreboardResponse, error) {
	if s.LoadErr != nil {
		return games.ScoreboardResponse{}, s.LoadErr
	}
	resp, ok := s.Scoreboards[Key(league, date)]
	if !ok {
		return games.ScoreboardResponse{}, errors.New("snapshot not found")
	}
	return resp, nil
}

