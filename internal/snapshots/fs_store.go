package snapshots

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
)

// ErrSnapshotNotFound is returned when no snapshot exists for a league and date.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Store defines how snapshots are loaded.
type Store interface {
	LoadScoreboard(league, date string) (games.ScoreboardResponse, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadScoreboard reads {basePath}/scoreboards/{league}/{date}.json.
func (s *FSStore) LoadScoreboard(league, date string) (games.ScoreboardResponse, error) {
	if s == nil {
		return games.ScoreboardResponse{}, errors.New("snapshot store not configured")
	}
	if league == "" || date == "" {
		return games.ScoreboardResponse{}, errors.New("snapshot league and date required")
	}

	f, err := os.Open(ScoreboardPath(s.basePath, league, date))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return games.ScoreboardResponse{}, fmt.Errorf("%w: %s %s", ErrSnapshotNotFound, league, date)
		}
		return games.ScoreboardResponse{}, err
	}
	defer f.Close()

	var payload games.ScoreboardResponse
	if err := json.NewDecoder(f).Decode(&payload); err != nil {
		return games.ScoreboardResponse{}, fmt.Errorf("decode snapshot %s %s: %w", league, date, err)
	}
	if payload.League == "" {
		payload.League = league
	}
	if payload.Games == nil {
		payload.Games = []games.Game{}
	}
	return payload, nil
}

// HasScoreboard reports whether a snapshot exists for league on date.
func (s *FSStore) HasScoreboard(league, date string) bool {
	if s == nil || s.basePath == "" {
		return false
	}
	_, err := os.Stat(ScoreboardPath(s.basePath, league, date))
	return err == nil
}
