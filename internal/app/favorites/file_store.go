package favorites

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store persists favorites.
type Store interface {
	List() ([]Favorite, error)
	Add(f Favorite) error
	Remove(league, teamID string) error
	Replace(fs []Favorite) error
}

// FileStore keeps favorites in a JSON file, rewritten atomically on change.
type FileStore struct {
	path string
	mu   sync.RWMutex
	favs []Favorite
}

var _ Store = (*FileStore)(nil)

// NewFileStore loads path. A missing file starts empty.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read favorites: %w", err)
	}
	var favs []Favorite
	if err := json.Unmarshal(data, &favs); err != nil {
		return nil, fmt.Errorf("decode favorites %s: %w", path, err)
	}
	s.favs = favs
	return s, nil
}

// List returns a copy of the stored favorites.
func (s *FileStore) List() ([]Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Favorite, len(s.favs))
	copy(out, s.favs)
	return out, nil
}

// Add stores f, replacing an existing entry for the same team.
func (s *FileStore) Add(f Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := Upsert(s.favs, f)
	if err := s.persist(next); err != nil {
		return err
	}
	s.favs = next
	return nil
}

// Remove deletes the favorite for league and teamID.
func (s *FileStore) Remove(league, teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := Without(s.favs, league, teamID)
	if !ok {
		return ErrFavoriteNotFound
	}
	if err := s.persist(next); err != nil {
		return err
	}
	s.favs = next
	return nil
}

// Replace swaps the whole list.
func (s *FileStore) Replace(favs []Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]Favorite, len(favs))
	copy(next, favs)
	if err := s.persist(next); err != nil {
		return err
	}
	s.favs = next
	return nil
}

func (s *FileStore) persist(favs []Favorite) error {
	if favs == nil {
		favs = []Favorite{}
	}
	data, err := json.MarshalIndent(favs, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".favorites-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}

// Upsert returns favs with f added or replacing the entry with the same key.
func Upsert(favs []Favorite, f Favorite) []Favorite {
	out := make([]Favorite, 0, len(favs)+1)
	replaced := false
	for _, existing := range favs {
		if existing.Key() == f.Key() {
			out = append(out, f)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, f)
	}
	return out
}

// Without returns favs minus the entry for league and teamID, and whether
// one was removed.
func Without(favs []Favorite, league, teamID string) ([]Favorite, bool) {
	key := Favorite{League: league, TeamID: teamID}.Normalize().Key()
	out := make([]Favorite, 0, len(favs))
	removed := false
	for _, f := range favs {
		if f.Key() == key {
			removed = true
			continue
		}
		out = append(out, f)
	}
	return out, removed
}
