package store

import (
	"errors"
	"testing"

	"github.com/preston-bernstein/sports-scores-service/internal/app/favorites"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
)

func TestMemoryStoreFavorites(t *testing.T) {
	s := NewMemoryStore()

	if err := s.Add(favorites.Favorite{League: "nfl", TeamID: "12"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add(favorites.Favorite{League: "nfl", TeamID: "12", Name: "Chiefs"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	favs, _ := s.List()
	if len(favs) != 1 || favs[0].Name != "Chiefs" {
		t.Fatalf("expected upsert, got %+v", favs)
	}

	favs[0].Name = "mutated"
	again, _ := s.List()
	if again[0].Name != "Chiefs" {
		t.Fatalf("expected List to return a copy")
	}

	if err := s.Remove("nfl", "12"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove("nfl", "12"); !errors.Is(err, favorites.ErrFavoriteNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryStoreReplace(t *testing.T) {
	s := NewMemoryStore()
	in := []favorites.Favorite{{League: "nhl", TeamID: "1"}, {League: "eng.1", TeamID: "359"}}
	if err := s.Replace(in); err != nil {
		t.Fatalf("replace: %v", err)
	}
	in[0].TeamID = "mutated"
	favs, _ := s.List()
	if len(favs) != 2 || favs[0].TeamID != "1" {
		t.Fatalf("unexpected favorites %+v", favs)
	}
}

func TestMemoryStoreLatestAndGames(t *testing.T) {
	s := NewMemoryStore()
	if _, ok := s.Latest(); ok {
		t.Fatalf("expected no latest result")
	}

	s.SetLatest(favorites.Result{Date: "2024-01-01", Games: []games.Game{{ID: "1", Provider: "test"}, {ID: "2"}}})
	res, ok := s.Latest()
	if !ok || res.Date != "2024-01-01" {
		t.Fatalf("unexpected latest %+v", res)
	}
	if got := len(s.ListGames()); got != 2 {
		t.Fatalf("expected 2 games, got %d", got)
	}
	g, ok := s.GetGame("1")
	if !ok || g.Provider != "test" {
		t.Fatalf("unexpected game %+v", g)
	}
	if _, ok := s.GetGame("missing"); ok {
		t.Fatalf("expected missing id to return false")
	}

	s.SetLatest(favorites.Result{Games: []games.Game{{ID: "3"}}})
	if _, ok := s.GetGame("1"); ok {
		t.Fatalf("expected previous snapshot to be replaced")
	}

	s.ClearLatest()
	if _, ok := s.Latest(); ok || len(s.ListGames()) != 0 {
		t.Fatalf("expected cleared store")
	}
}
