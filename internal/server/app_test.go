package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/app/favorites"
	"github.com/preston-bernstein/sports-scores-service/internal/config"
	"github.com/preston-bernstein/sports-scores-service/internal/store"
)

func TestResolveLocation(t *testing.T) {
	if loc := resolveLocation("", nil); loc != time.UTC {
		t.Fatalf("expected UTC for empty zone, got %v", loc)
	}
	if loc := resolveLocation("Not/AZone", nil); loc != time.UTC {
		t.Fatalf("expected UTC fallback, got %v", loc)
	}
	if loc := resolveLocation("America/New_York", nil); loc.String() != "America/New_York" {
		t.Fatalf("expected New York, got %v", loc)
	}
}

func TestOriginChecker(t *testing.T) {
	if originChecker(nil) != nil || originChecker([]string{"*"}) != nil {
		t.Fatalf("expected wildcard to accept every origin")
	}

	check := originChecker([]string{"https://scores.example.com"})
	req := httptest.NewRequest(http.MethodGet, "/live/ws", nil)
	if !check(req) {
		t.Fatalf("expected same-origin request without Origin header allowed")
	}
	req.Header.Set("Origin", "https://scores.example.com")
	if !check(req) {
		t.Fatalf("expected listed origin allowed")
	}
	req.Header.Set("Origin", "https://evil.example.com")
	if check(req) {
		t.Fatalf("expected foreign origin rejected")
	}
}

func TestBuildFavoritesStore(t *testing.T) {
	ms := store.NewMemoryStore()

	if got := buildFavoritesStore(config.Config{}, ms, nil); got != favorites.Store(ms) {
		t.Fatalf("expected memory store without a file")
	}

	path := filepath.Join(t.TempDir(), "favorites.json")
	got := buildFavoritesStore(config.Config{Favorites: config.FavoritesConfig{File: path}}, ms, nil)
	if _, ok := got.(*favorites.FileStore); !ok {
		t.Fatalf("expected file store, got %T", got)
	}

	corrupt := filepath.Join(t.TempDir(), "favorites.json")
	if err := os.WriteFile(corrupt, []byte("{"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	got = buildFavoritesStore(config.Config{Favorites: config.FavoritesConfig{File: corrupt}}, ms, nil)
	if got != favorites.Store(ms) {
		t.Fatalf("expected memory fallback for unreadable file, got %T", got)
	}
}
