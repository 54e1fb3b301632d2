// Package games serves the favorites games board from the latest poller
// snapshot, collecting on demand when none exists yet.
package games

import (
	"context"

	"github.com/preston-bernstein/sports-scores-service/internal/app/favorites"
	domaingames "github.com/preston-bernstein/sports-scores-service/internal/domain/games"
)

// Store holds the latest favorites aggregation.
type Store interface {
	Latest() (favorites.Result, bool)
	GetGame(id string) (domaingames.Game, bool)
	ClearLatest()
}

// Refresher runs a full favorites collect and stores the result.
type Refresher interface {
	Refresh(ctx context.Context) (favorites.Result, error)
}

// Service coordinates favorites game reads.
type Service struct {
	store     Store
	refresher Refresher
}

// NewService constructs a Service with the provided Store.
func NewService(store Store, refresher Refresher) *Service {
	return &Service{store: store, refresher: refresher}
}

// Favorites returns the latest aggregation, collecting one when the poller
// has not produced any yet.
func (s *Service) Favorites(ctx context.Context) (favorites.Result, error) {
	if res, ok := s.store.Latest(); ok {
		return res, nil
	}
	if s.refresher == nil {
		return emptyResult(), nil
	}
	return s.refresher.Refresh(ctx)
}

// Refresh forces a new collect, e.g. after favorites change.
func (s *Service) Refresh(ctx context.Context) (favorites.Result, error) {
	if s.refresher == nil {
		return s.Favorites(ctx)
	}
	return s.refresher.Refresh(ctx)
}

// Invalidate drops the stored aggregation so the next read collects again.
func (s *Service) Invalidate() {
	s.store.ClearLatest()
}

// GameByID returns a single game from the latest aggregation if present.
func (s *Service) GameByID(id string) (domaingames.Game, bool) {
	return s.store.GetGame(id)
}

func emptyResult() favorites.Result {
	return favorites.Result{Games: []domaingames.Game{}}
}
