package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/app/favorites"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/live"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/notify"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

const (
	defaultInterval  = 30 * time.Second
	defaultFullEvery = 10
)

// Collector aggregates favorites' games.
type Collector interface {
	Collect(ctx context.Context, day time.Time) (favorites.Result, error)
	RefreshLive(ctx context.Context, prev favorites.Result) (favorites.Result, []games.Game, error)
}

// ResultStore holds the latest favorites aggregation.
type ResultStore interface {
	SetLatest(res favorites.Result)
	Latest() (favorites.Result, bool)
}

// Publisher pushes updates to live subscribers.
type Publisher interface {
	Publish(u live.Update) int
}

// Option customizes a Poller.
type Option func(*Poller)

// WithPublisher sends changed games to live subscribers after each cycle.
func WithPublisher(pub Publisher) Option {
	return func(p *Poller) { p.publisher = pub }
}

// WithNotifier reports score changes after each cycle.
func WithNotifier(n notify.Notifier) Option {
	return func(p *Poller) { p.notifier = n }
}

// WithLocation sets the zone used to decide which day is "today".
func WithLocation(loc *time.Location) Option {
	return func(p *Poller) {
		if loc != nil {
			p.loc = loc
		}
	}
}

// WithFullEvery runs a full collect every n ticks even while games are live.
func WithFullEvery(n int) Option {
	return func(p *Poller) {
		if n > 0 {
			p.fullEvery = n
		}
	}
}

// Poller refreshes the favorites aggregation on an interval. Ticks with live
// games only re-fetch the live leagues; every FullEvery-th tick, and any
// tick with nothing live, runs a full collect.
type Poller struct {
	collector Collector
	store     ResultStore
	publisher Publisher
	notifier  notify.Notifier
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration
	fullEvery int
	loc       *time.Location
	now       func() time.Time
	ticks     int

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
	cycleMu  sync.Mutex

	// Notifications post after the cycle lock is released, one batch at a time.
	notifyMu sync.Mutex
	notifyWG sync.WaitGroup

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(collector Collector, store ResultStore, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration, opts ...Option) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	p := &Poller{
		collector: collector,
		store:     store,
		notifier:  notify.NopNotifier{},
		logger:    logger,
		metrics:   recorder,
		interval:  interval,
		fullEvery: defaultFullEvery,
		loc:       time.UTC,
		now:       time.Now,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		p.logInfo("poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		p.fetchOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.ticker.C:
				p.fetchOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop and waits for pending notifications until ctx
// ends.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return p.waitNotifications(ctx)
}

// Refresh runs one full collect immediately, e.g. after favorites change.
func (p *Poller) Refresh(ctx context.Context) (favorites.Result, error) {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	prev, hadPrev := p.store.Latest()
	next, err := p.collector.Collect(ctx, p.now().In(p.loc))
	if err != nil {
		return favorites.Result{}, err
	}
	p.store.SetLatest(next)
	p.publish(live.Update{Type: live.UpdateSnapshot, Games: next.Games, At: next.UpdatedAt})
	if hadPrev {
		p.notify(ctx, prev.Games, next.Games)
	}
	return next, nil
}

func (p *Poller) fetchOnce(ctx context.Context) {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	start := time.Now()
	p.recordAttempt(start)
	p.ticks++

	today := timeutil.FormatDate(p.now().In(p.loc))
	prev, hadPrev := p.store.Latest()
	full := !hadPrev || prev.Date != today || len(prev.LiveLeagues()) == 0 || p.ticks%p.fullEvery == 0

	var (
		next    favorites.Result
		changed []games.Game
		err     error
	)
	if full {
		next, err = p.collector.Collect(ctx, p.now().In(p.loc))
	} else {
		next, changed, err = p.collector.RefreshLive(ctx, prev)
	}
	if p.metrics != nil {
		p.metrics.RecordPollerCycle(time.Since(start), err)
	}
	if err != nil {
		p.logError("poller cycle failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, start)
		return
	}

	p.store.SetLatest(next)
	switch {
	case full && (!hadPrev || prev.Date != next.Date || !sameGames(prev.Games, next.Games)):
		p.publish(live.Update{Type: live.UpdateSnapshot, Games: next.Games, At: next.UpdatedAt})
	case full:
		changed = changedGames(prev.Games, next.Games)
		fallthrough
	default:
		if len(changed) > 0 {
			p.publish(live.Update{Type: live.UpdateChanges, Games: changed, At: next.UpdatedAt})
		}
	}
	if hadPrev && prev.Date == next.Date {
		p.notify(ctx, prev.Games, next.Games)
	}

	p.recordSuccess(start)
	log := logging.Info
	if !full && len(changed) == 0 {
		log = logging.Debug
	}
	log(p.logger, "poller refreshed favorites",
		"full", full,
		logging.FieldDate, next.Date,
		logging.FieldCount, len(next.Games),
		"changed", len(changed),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (p *Poller) publish(u live.Update) {
	if p.publisher == nil {
		return
	}
	if u.Games == nil {
		u.Games = []games.Game{}
	}
	p.publisher.Publish(u)
}

func (p *Poller) notify(ctx context.Context, prev, next []games.Game) {
	changes := notify.DiffScores(prev, next)
	if len(changes) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	p.notifyWG.Add(1)
	go func() {
		defer p.notifyWG.Done()
		p.notifyMu.Lock()
		defer p.notifyMu.Unlock()
		for _, c := range changes {
			if err := p.notifier.ScoreChanged(ctx, c.Before, c.After); err != nil {
				p.logError("score notification failed", err,
					logging.FieldLeague, c.After.League, logging.FieldGameID, c.After.ID)
			}
		}
	}()
}

// waitNotifications blocks until queued notifications finish or ctx ends.
func (p *Poller) waitNotifications(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		// notify adds to the group under cycleMu; let any running cycle finish first.
		p.cycleMu.Lock()
		p.cycleMu.Unlock()
		p.notifyWG.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// sameGames reports whether both lists hold the same game IDs.
func sameGames(a, b []games.Game) bool {
	if len(a) != len(b) {
		return false
	}
	ids := make(map[string]struct{}, len(a))
	for _, g := range a {
		ids[g.ID] = struct{}{}
	}
	for _, g := range b {
		if _, ok := ids[g.ID]; !ok {
			return false
		}
	}
	return true
}

func changedGames(prev, next []games.Game) []games.Game {
	byID := make(map[string]games.Game, len(prev))
	for _, g := range prev {
		byID[g.ID] = g
	}
	var out []games.Game
	for _, g := range next {
		if old, ok := byID[g.ID]; ok && favorites.Changed(old, g) {
			out = append(out, g)
		}
	}
	return out
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	logging.Info(p.logger, msg, args...)
}

func (p *Poller) logError(msg string, err error, attrs ...any) {
	logging.Error(p.logger, msg, err, attrs...)
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
