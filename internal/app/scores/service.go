package scores

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/racing"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

// SnapshotStore loads scoreboards persisted for finished days.
type SnapshotStore interface {
	LoadScoreboard(league, date string) (games.ScoreboardResponse, error)
}

// Service serves league scoreboards, single games and race weekends.
type Service struct {
	provider  providers.DataProvider
	snapshots SnapshotStore
	logger    *slog.Logger
	now       func() time.Time
}

// NewService constructs a Service. snapshots may be nil.
func NewService(provider providers.DataProvider, snapshots SnapshotStore, logger *slog.Logger) *Service {
	return &Service{
		provider:  provider,
		snapshots: snapshots,
		logger:    logger,
		now:       time.Now,
	}
}

// Scoreboard returns the games of leagueKey within r, sorted for display.
// Ranges that ended before today are served from snapshots when every day
// has one and every game in them is settled.
func (s *Service) Scoreboard(ctx context.Context, leagueKey string, r timeutil.DateRange) (games.ScoreboardResponse, error) {
	league, err := leagues.Resolve(leagueKey)
	if err != nil {
		return games.ScoreboardResponse{}, err
	}
	if league.IsRacing() {
		return games.ScoreboardResponse{}, fmt.Errorf("scoreboard for %s: %w", league.Key, providers.ErrUnsupported)
	}

	start, end := timeutil.FormatDate(r.Start), timeutil.FormatDate(r.End)
	if gs, ok := s.fromSnapshots(ctx, league.Key, r); ok {
		return games.NewScoreboardResponse(league.Key, start, end, display(gs)), nil
	}

	gs, err := s.provider.FetchScoreboard(ctx, league, r)
	if err != nil {
		return games.ScoreboardResponse{}, err
	}
	return games.NewScoreboardResponse(league.Key, start, end, display(gs)), nil
}

func (s *Service) fromSnapshots(ctx context.Context, league string, r timeutil.DateRange) ([]games.Game, bool) {
	if s.snapshots == nil {
		return nil, false
	}
	today := timeutil.FormatDate(s.now().In(r.End.Location()))
	if timeutil.FormatDate(r.End) >= today {
		return nil, false
	}
	var out []games.Game
	for _, date := range r.EachDay() {
		snap, err := s.snapshots.LoadScoreboard(league, date)
		if err != nil || !games.AllSettled(snap.Games) {
			return nil, false
		}
		out = append(out, snap.Games...)
	}
	if logger := logging.FromContext(ctx, s.logger); logger != nil {
		logger.Debug("scoreboard served from snapshots",
			logging.FieldLeague, league,
			logging.FieldDate, r.Key(),
			logging.FieldCount, len(out),
		)
	}
	return out, true
}

func display(gs []games.Game) []games.Game {
	gs = games.Dedupe(gs)
	games.SortForDisplay(gs)
	return gs
}

// Game returns a single game.
func (s *Service) Game(ctx context.Context, leagueKey, gameID string) (games.Game, error) {
	league, err := leagues.Resolve(leagueKey)
	if err != nil {
		return games.Game{}, err
	}
	return s.provider.FetchGame(ctx, league, gameID)
}

// Races returns the F1 race weekends within r ordered by start.
func (s *Service) Races(ctx context.Context, r timeutil.DateRange) (racing.RacesResponse, error) {
	events, err := s.provider.FetchRaces(ctx, r)
	if err != nil {
		return racing.RacesResponse{}, err
	}
	if events == nil {
		events = []racing.Event{}
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].StartTime.Before(events[j].StartTime) })
	return racing.RacesResponse{
		Start:  timeutil.FormatDate(r.Start),
		End:    timeutil.FormatDate(r.End),
		Events: events,
	}, nil
}
