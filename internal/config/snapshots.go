package config

import "time"

// SnapshotSyncConfig controls automatic snapshot backfill/prune behavior.
type SnapshotSyncConfig struct {
	Enabled        bool
	Leagues        []string      // league keys to snapshot
	Days           int           // how many past days to maintain
	FutureDays     int           // how many future days to prefetch
	Interval       time.Duration // delay between snapshot fetches
	DailyHourUTC   int           // hour of day (0-23) for daily prune/backfill
	RetentionDays  int
	AdminToken     string // reused for refresh endpoint auth
	SnapshotFolder string
}

func loadSnapshotSync() SnapshotSyncConfig {
	pastDays := intEnvOrDefault(envSnapshotDays, defaultSnapshotDays)
	hour := intEnvOrDefault(envSnapshotHour, defaultSnapshotDailyHour)
	if hour > 23 {
		hour = defaultSnapshotDailyHour
	}

	return SnapshotSyncConfig{
		Enabled:    boolEnvOrDefault(envSnapshotSync, defaultSnapshotSync),
		Leagues:    listEnvOrDefault(envSnapshotLeagues, splitList(defaultSnapshotLeagues)),
		Days:       pastDays,
		FutureDays: intEnvOrDefault(envSnapshotFutureDays, defaultSnapshotFutureDays),
		Interval:   durationEnvOrDefault(envSnapshotRate, defaultSnapshotInterval),
		// Retain the rolling past window (+1 for the crossover day).
		RetentionDays:  pastDays + 1,
		DailyHourUTC:   hour,
		AdminToken:     envOrDefault(envAdminToken, ""),
		SnapshotFolder: envOrDefault(envSnapshotFolder, defaultSnapshotFolder),
	}
}
