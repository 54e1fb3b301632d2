package snapshots

import (
	"fmt"
	"path/filepath"
)

const (
	scoreboardsDir = "scoreboards"
	manifestFile   = "manifest.json"
)

// ScoreboardPath builds the path to a league scoreboard snapshot for a date.
func ScoreboardPath(basePath, league, date string) string {
	return filepath.Join(leagueDir(basePath, league), fmt.Sprintf("%s.json", date))
}

// ManifestPath is where the snapshot manifest lives under basePath.
func ManifestPath(basePath string) string {
	return filepath.Join(basePath, manifestFile)
}

func leagueDir(basePath, league string) string {
	return filepath.Join(basePath, scoreboardsDir, league)
}
