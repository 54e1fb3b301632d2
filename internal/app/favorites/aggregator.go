package favorites

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/racing"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

const defaultConcurrency = 8

// Aggregator collects the games of every favorite team across all the
// competitions each team could appear in.
type Aggregator struct {
	provider    providers.DataProvider
	store       Store
	logger      *slog.Logger
	concurrency int
	now         func() time.Time
}

// NewAggregator constructs an Aggregator. concurrency bounds upstream calls
// in flight and defaults to 8.
func NewAggregator(provider providers.DataProvider, store Store, logger *slog.Logger, concurrency int) *Aggregator {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Aggregator{
		provider:    provider,
		store:       store,
		logger:      logger,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// plan is the set of competitions to query and the teams to keep per sport.
type plan struct {
	competitions []leagues.League
	teamsBySport map[string]map[string]struct{}
	races        bool
}

func buildPlan(favs []Favorite) plan {
	p := plan{teamsBySport: make(map[string]map[string]struct{})}
	seen := make(map[string]struct{})
	for _, f := range favs {
		l, ok := leagues.Lookup(f.League)
		if !ok {
			continue
		}
		if l.IsRacing() {
			p.races = true
			continue
		}
		family := leagues.SportFamily(l.Key)
		if p.teamsBySport[family] == nil {
			p.teamsBySport[family] = make(map[string]struct{})
		}
		p.teamsBySport[family][f.TeamID] = struct{}{}
		for _, c := range leagues.Competitions(l.Key) {
			if _, ok := seen[c.Key]; ok {
				continue
			}
			seen[c.Key] = struct{}{}
			p.competitions = append(p.competitions, c)
		}
	}
	return p
}

func (p plan) keep(g games.Game) bool {
	ids := p.teamsBySport[leagues.SportFamily(g.League)]
	if ids == nil {
		return false
	}
	_, home := ids[g.HomeTeam.ID]
	_, away := ids[g.AwayTeam.ID]
	return home || away
}

type collector struct {
	mu     sync.Mutex
	games  []games.Game
	races  []racing.Event
	failed []string
}

func (c *collector) fail(name string) {
	c.mu.Lock()
	c.failed = append(c.failed, name)
	c.mu.Unlock()
}

// Collect aggregates favorites' games on day. Competitions that fail are
// logged and listed in Result.Failed.
func (a *Aggregator) Collect(ctx context.Context, day time.Time) (Result, error) {
	favs, err := a.store.List()
	if err != nil {
		return Result{}, err
	}
	p := buildPlan(favs)
	r := timeutil.Day(day)
	logger := logging.FromContext(ctx, a.logger)

	var c collector
	g := new(errgroup.Group)
	g.SetLimit(a.concurrency)
	for _, comp := range p.competitions {
		comp := comp
		g.Go(func() error {
			gs, err := a.provider.FetchScoreboard(ctx, comp, r)
			if err != nil {
				logging.Warn(logger, "favorites competition failed",
					logging.FieldLeague, comp.Key, logging.FieldDate, r.Key(), logging.FieldError, err)
				c.fail(comp.Key)
				return nil
			}
			var kept []games.Game
			for _, game := range gs {
				if p.keep(game) {
					kept = append(kept, game)
				}
			}
			c.mu.Lock()
			c.games = append(c.games, kept...)
			c.mu.Unlock()
			return nil
		})
	}
	if p.races {
		g.Go(func() error {
			events, err := a.provider.FetchRaces(ctx, r)
			if err != nil {
				logging.Warn(logger, "favorites races failed", logging.FieldDate, r.Key(), logging.FieldError, err)
				c.fail("f1")
				return nil
			}
			var kept []racing.Event
			for _, ev := range events {
				if ev.OnDay(r.Start, r.Start.Location()) {
					kept = append(kept, ev)
				}
			}
			c.mu.Lock()
			c.races = kept
			c.mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return a.result(timeutil.FormatDate(r.Start), c.games, c.races, c.failed), nil
}

func (a *Aggregator) result(date string, gs []games.Game, races []racing.Event, failed []string) Result {
	gs = games.Dedupe(gs)
	if gs == nil {
		gs = []games.Game{}
	}
	games.SortForDisplay(gs)
	if races == nil {
		races = []racing.Event{}
	}
	sort.SliceStable(races, func(i, j int) bool { return races[i].StartTime.Before(races[j].StartTime) })
	sort.Strings(failed)
	return Result{
		Date:      date,
		Games:     gs,
		Races:     races,
		Partial:   len(failed) > 0,
		Failed:    failed,
		UpdatedAt: a.now().UTC(),
	}
}

// RefreshLive re-fetches only the leagues that had live games in prev and
// merges the updates by game ID. It returns the merged result and the games
// whose score, status or detail changed.
func (a *Aggregator) RefreshLive(ctx context.Context, prev Result) (Result, []games.Game, error) {
	day, err := timeutil.ParseDate(prev.Date)
	if err != nil {
		return prev, nil, err
	}
	r := timeutil.Day(day)
	logger := logging.FromContext(ctx, a.logger)

	var (
		mu      sync.Mutex
		updates = make(map[string]games.Game)
		failed  []string
	)
	g := new(errgroup.Group)
	g.SetLimit(a.concurrency)
	for _, key := range prev.LiveLeagues() {
		league, ok := leagues.Lookup(key)
		if !ok {
			continue
		}
		g.Go(func() error {
			gs, err := a.provider.FetchScoreboard(ctx, league, r)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logging.Warn(logger, "live refresh failed", logging.FieldLeague, league.Key, logging.FieldError, err)
				failed = append(failed, league.Key)
				return nil
			}
			for _, game := range gs {
				updates[game.ID] = game
			}
			return nil
		})
	}
	_ = g.Wait()

	merged := make([]games.Game, 0, len(prev.Games))
	var changed []games.Game
	for _, old := range prev.Games {
		next, ok := updates[old.ID]
		if !ok {
			merged = append(merged, old)
			continue
		}
		merged = append(merged, next)
		if Changed(old, next) {
			changed = append(changed, next)
		}
	}
	races := append([]racing.Event(nil), prev.Races...)
	return a.result(prev.Date, merged, races, failed), changed, nil
}

// Changed reports whether a game's score, status or detail moved.
func Changed(before, after games.Game) bool {
	return before.Score != after.Score || before.Status != after.Status || before.Detail != after.Detail
}
