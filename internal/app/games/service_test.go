package games

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/sports-scores-service/internal/app/favorites"
	domaingames "github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/store"
)

type stubRefresher struct {
	store *store.MemoryStore
	res   favorites.Result
	err   error
	calls int
}

func (r *stubRefresher) Refresh(ctx context.Context) (favorites.Result, error) {
	_ = ctx
	r.calls++
	if r.err != nil {
		return favorites.Result{}, r.err
	}
	r.store.SetLatest(r.res)
	return r.res, nil
}

func TestFavoritesServesLatestSnapshot(t *testing.T) {
	s := store.NewMemoryStore()
	s.SetLatest(favorites.Result{Date: "2024-03-12", Games: []domaingames.Game{{ID: "g1"}}})
	ref := &stubRefresher{store: s}
	svc := NewService(s, ref)

	res, err := svc.Favorites(context.Background())
	if err != nil {
		t.Fatalf("favorites: %v", err)
	}
	if res.Date != "2024-03-12" || ref.calls != 0 {
		t.Fatalf("expected stored snapshot without refresh, got %+v calls=%d", res, ref.calls)
	}
	if g, ok := svc.GameByID("g1"); !ok || g.ID != "g1" {
		t.Fatalf("expected game lookup to succeed")
	}
}

func TestFavoritesCollectsOnDemand(t *testing.T) {
	s := store.NewMemoryStore()
	ref := &stubRefresher{store: s, res: favorites.Result{Date: "2024-03-12", Games: []domaingames.Game{{ID: "g2"}}}}
	svc := NewService(s, ref)

	res, err := svc.Favorites(context.Background())
	if err != nil {
		t.Fatalf("favorites: %v", err)
	}
	if len(res.Games) != 1 || ref.calls != 1 {
		t.Fatalf("expected on-demand collect, got %+v calls=%d", res, ref.calls)
	}

	if _, err := svc.Favorites(context.Background()); err != nil || ref.calls != 1 {
		t.Fatalf("expected second call served from store, calls=%d", ref.calls)
	}
	if _, err := svc.Refresh(context.Background()); err != nil || ref.calls != 2 {
		t.Fatalf("expected forced refresh, calls=%d", ref.calls)
	}

	svc.Invalidate()
	if _, err := svc.Favorites(context.Background()); err != nil || ref.calls != 3 {
		t.Fatalf("expected collect after invalidate, calls=%d", ref.calls)
	}
}

func TestFavoritesRefreshError(t *testing.T) {
	svc := NewService(store.NewMemoryStore(), &stubRefresher{err: errors.New("boom")})
	if _, err := svc.Favorites(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestFavoritesWithoutRefresher(t *testing.T) {
	svc := NewService(store.NewMemoryStore(), nil)
	res, err := svc.Favorites(context.Background())
	if err != nil {
		t.Fatalf("favorites: %v", err)
	}
	if res.Games == nil || len(res.Games) != 0 {
		t.Fatalf("expected empty non-nil games, got %+v", res.Games)
	}
	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
}
