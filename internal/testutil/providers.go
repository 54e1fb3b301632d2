package testutil

import (
	"context"
	"sync"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

// GoodProvider returns the provided games with no error.
type GoodProvider struct {
	Games []games.Game
}

func (p GoodProvider) FetchScoreboard(ctx context.Context, league leagues.League, r timeutil.DateRange) ([]games.Game, error) {
	_ = ctx
	_ = league
	_ = r
	return p.Games, nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchScoreboard(ctx context.Context, league leagues.League, r timeutil.DateRange) ([]games.Game, error) {
	return nil, p.Err
}

// EmptyProvider returns no games, no error.
type EmptyProvider struct{}

func (EmptyProvider) FetchScoreboard(ctx context.Context, league leagues.League, r timeutil.DateRange) ([]games.Game, error) {
	return []games.Game{}, nil
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchScoreboard(ctx context.Context, league leagues.League, r timeutil.DateRange) ([]games.Game, error) {
	return nil, providers.ErrProviderUnavailable
}

// NotifyingProvider returns games and closes Notify on the first fetch.
type NotifyingProvider struct {
	Games  []games.Game
	Notify chan struct{}

	once sync.Once
}

func (p *NotifyingProvider) FetchScoreboard(ctx context.Context, league leagues.League, r timeutil.DateRange) ([]games.Game, error) {
	_ = ctx
	_ = league
	_ = r
	if p.Notify != nil {
		p.once.Do(func() { close(p.Notify) })
	}
	return p.Games, nil
}
