package server

import (
	"log/slog"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/config"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/snapshots"
)

type snapshotComponents struct {
	store  snapshots.Store
	writer *snapshots.Writer
	syncer *snapshots.Syncer
}

// buildSnapshots wires the on-disk scoreboard archive. With no folder
// configured the service runs without snapshots. loc decides which day is
// today for the syncer.
func buildSnapshots(cfg config.Config, provider providers.ScoreboardProvider, loc *time.Location, logger *slog.Logger) snapshotComponents {
	basePath := cfg.Snapshots.SnapshotFolder
	if basePath == "" {
		return snapshotComponents{}
	}
	writer := snapshots.NewWriter(basePath, cfg.Snapshots.RetentionDays)
	syncer := snapshots.NewSyncer(provider, writer, snapshots.SyncConfig{
		Enabled:      cfg.Snapshots.Enabled,
		Leagues:      cfg.Snapshots.Leagues,
		Days:         cfg.Snapshots.Days,
		FutureDays:   cfg.Snapshots.FutureDays,
		Interval:     cfg.Snapshots.Interval,
		DailyHourUTC: cfg.Snapshots.DailyHourUTC,
		Location:     loc,
	}, logger)

	return snapshotComponents{
		store:  snapshots.NewFSStore(basePath),
		writer: writer,
		syncer: syncer,
	}
}
