package snapshots

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

// Syncer backfills and prunes league scoreboard snapshots on a schedule.
type Syncer struct {
	provider providers.ScoreboardProvider
	writer   *Writer
	cfg      SyncConfig
	logger   *slog.Logger
	now      func() time.Time

	cronMu sync.Mutex
	cron   *cron.Cron
}

// SyncConfig controls snapshot sync behavior.
type SyncConfig struct {
	Enabled      bool
	Leagues      []string
	Days         int
	FutureDays   int
	Interval     time.Duration
	DailyHourUTC int
	// Location decides where a day starts and ends. Nil means UTC.
	Location *time.Location
}

// NewSyncer constructs a snapshot syncer.
func NewSyncer(provider providers.ScoreboardProvider, writer *Writer, cfg SyncConfig, logger *slog.Logger) *Syncer {
	if cfg.Days <= 0 {
		cfg.Days = 7
	}
	if cfg.FutureDays < 0 {
		cfg.FutureDays = 0
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.DailyHourUTC < 0 || cfg.DailyHourUTC > 23 {
		cfg.DailyHourUTC = 2
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &Syncer{
		provider: provider,
		writer:   writer,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Run performs a one-time backfill for every configured league, spaced by
// Interval, then schedules the daily re-run. Callers should run this in a
// goroutine.
func (s *Syncer) Run(ctx context.Context) {
	if s == nil || !s.cfg.Enabled || s.writer == nil || s.provider == nil {
		return
	}
	logging.Info(s.logger,
		"snapshot sync starting",
		"leagues", s.cfg.Leagues,
		"past_days", s.cfg.Days,
		"future_days", s.cfg.FutureDays,
		"interval", s.cfg.Interval.String(),
		"daily_hour_utc", s.cfg.DailyHourUTC,
		"timezone", s.cfg.Location.String(),
	)
	s.backfill(ctx, s.now())
	if err := s.schedule(ctx); err != nil {
		logging.Error(s.logger, "snapshot sync schedule failed", err)
	}
}

// Stop halts the daily schedule.
func (s *Syncer) Stop() {
	if s == nil {
		return
	}
	s.cronMu.Lock()
	c := s.cron
	s.cron = nil
	s.cronMu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}

func (s *Syncer) schedule(ctx context.Context) error {
	if ctx.Err() != nil {
		return nil
	}
	c := cron.New(cron.WithLocation(time.UTC))
	expr := fmt.Sprintf("0 %d * * *", s.cfg.DailyHourUTC)
	if _, err := c.AddFunc(expr, func() { s.backfill(ctx, s.now()) }); err != nil {
		return err
	}

	s.cronMu.Lock()
	s.cron = c
	s.cronMu.Unlock()
	c.Start()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

type job struct {
	league leagues.League
	date   string
}

func (s *Syncer) backfill(ctx context.Context, now time.Time) {
	var jobs []job
	for _, key := range s.cfg.Leagues {
		league, err := leagues.Resolve(key)
		if err != nil {
			logging.Warn(s.logger, "snapshot sync skipping league", logging.FieldLeague, key, logging.FieldError, err)
			continue
		}
		if league.IsRacing() {
			continue
		}
		for _, date := range s.buildDates(league.Key, now) {
			jobs = append(jobs, job{league: league, date: date})
		}
	}

	for i, j := range jobs {
		if ctx.Err() != nil {
			return
		}
		if err := s.fetchAndWrite(ctx, j.league, j.date); err != nil {
			logging.Warn(s.logger, "snapshot sync fetch failed",
				logging.FieldLeague, j.league.Key, logging.FieldDate, j.date, logging.FieldError, err)
		}
		if i < len(jobs)-1 {
			s.sleep(ctx, s.cfg.Interval)
		}
	}
}

func (s *Syncer) buildDates(league string, now time.Time) []string {
	var dates []string
	now = now.In(s.cfg.Location)
	today := timeutil.FormatDate(now)
	yesterday := timeutil.FormatDate(now.AddDate(0, 0, -1))

	// Today and yesterday always refresh to capture live and final scores.
	dates = append(dates, today, yesterday)

	// Older days refetch until their snapshot holds only settled games.
	for i := 2; i < s.cfg.Days; i++ {
		date := timeutil.FormatDate(now.AddDate(0, 0, -i))
		if !s.hasSettledSnapshot(league, date) {
			dates = append(dates, date)
		}
	}

	for i := 1; i <= s.cfg.FutureDays; i++ {
		date := timeutil.FormatDate(now.AddDate(0, 0, i))
		if !s.hasSnapshot(league, date) {
			dates = append(dates, date)
		}
	}

	return dates
}

// RefreshDate fetches and writes one league scoreboard snapshot.
func (s *Syncer) RefreshDate(ctx context.Context, leagueKey, date string) error {
	if s == nil || s.writer == nil || s.provider == nil {
		return errors.New("snapshot sync not configured")
	}
	league, err := leagues.Resolve(leagueKey)
	if err != nil {
		return err
	}
	if league.IsRacing() {
		return providers.ErrUnsupported
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return err
	}
	return s.fetchAndWrite(ctx, league, date)
}

func (s *Syncer) fetchAndWrite(ctx context.Context, league leagues.League, date string) error {
	start := time.Now()
	day, err := timeutil.ParseDate(date)
	if err != nil {
		return err
	}
	gs, err := s.provider.FetchScoreboard(ctx, league, timeutil.Day(day))
	if err != nil {
		return err
	}
	if len(gs) == 0 {
		logging.Warn(s.logger, "snapshot sync received no games", logging.FieldLeague, league.Key, logging.FieldDate, date)
		return nil
	}
	gs = games.Dedupe(gs)
	snap := games.NewScoreboardResponse(league.Key, date, date, gs)
	if err := s.writer.WriteScoreboard(league.Key, date, snap); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	logging.Info(s.logger, "snapshot written",
		logging.FieldLeague, league.Key,
		logging.FieldDate, date,
		logging.FieldCount, len(gs),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *Syncer) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (s *Syncer) hasSnapshot(league, date string) bool {
	if s == nil || s.writer == nil || s.writer.basePath == "" || date == "" {
		return false
	}
	return NewFSStore(s.writer.basePath).HasScoreboard(league, date)
}

func (s *Syncer) hasSettledSnapshot(league, date string) bool {
	if !s.hasSnapshot(league, date) {
		return false
	}
	snap, err := NewFSStore(s.writer.basePath).LoadScoreboard(league, date)
	return err == nil && games.AllSettled(snap.Games)
}
