package store

import (
	"sync"

	"github.com/preston-bernstein/sports-scores-service/internal/app/favorites"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
)

// MemoryStore keeps favorites and the latest favorites aggregation in
// memory. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	favs   []favorites.Favorite
	latest favorites.Result
	ok     bool
	games  map[string]games.Game
}

var _ favorites.Store = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string]games.Game),
	}
}

// List returns a copy of the stored favorites.
func (s *MemoryStore) List() ([]favorites.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]favorites.Favorite, len(s.favs))
	copy(out, s.favs)
	return out, nil
}

// Add stores f, replacing an existing entry for the same team.
func (s *MemoryStore) Add(f favorites.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favs = favorites.Upsert(s.favs, f)
	return nil
}

// Remove deletes the favorite for league and teamID.
func (s *MemoryStore) Remove(league, teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := favorites.Without(s.favs, league, teamID)
	if !ok {
		return favorites.ErrFavoriteNotFound
	}
	s.favs = next
	return nil
}

// Replace swaps the favorites list.
func (s *MemoryStore) Replace(favs []favorites.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favs = make([]favorites.Favorite, len(favs))
	copy(s.favs, favs)
	return nil
}

// SetLatest replaces the latest aggregation and re-indexes its games.
func (s *MemoryStore) SetLatest(res favorites.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = res
	s.ok = true
	s.games = make(map[string]games.Game, len(res.Games))
	for _, g := range res.Games {
		s.games[g.ID] = g
	}
}

// Latest returns the latest aggregation and whether one has been stored.
func (s *MemoryStore) Latest() (favorites.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.ok
}

// ClearLatest forgets the latest aggregation, e.g. after favorites change.
func (s *MemoryStore) ClearLatest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = favorites.Result{}
	s.ok = false
	s.games = make(map[string]games.Game)
}

// ListGames returns the games of the latest aggregation.
func (s *MemoryStore) ListGames() []games.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]games.Game, 0, len(s.games))
	for _, g := range s.games {
		result = append(result, g)
	}
	return result
}

// GetGame retrieves a game of the latest aggregation by ID.
func (s *MemoryStore) GetGame(id string) (games.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	return g, ok
}
