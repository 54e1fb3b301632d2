package config

// CacheConfig holds TTLs for the caching provider.
type CacheConfig struct {
	ScoreboardLiveTTL Duration // used while any game in the response is live
	ScoreboardTTL     Duration
	StandingsTTL      Duration
	TeamTTL           Duration
	RosterTTL         Duration
}

func loadCache() CacheConfig {
	return CacheConfig{
		ScoreboardLiveTTL: durationEnvOrDefault(envCacheLiveTTL, defaultCacheLiveTTL),
		ScoreboardTTL:     durationEnvOrDefault(envCacheScoreTTL, defaultCacheScoreTTL),
		StandingsTTL:      durationEnvOrDefault(envCacheStandingsTTL, defaultCacheStandingsTTL),
		TeamTTL:           durationEnvOrDefault(envCacheTeamTTL, defaultCacheTeamTTL),
		RosterTTL:         durationEnvOrDefault(envCacheRosterTTL, defaultCacheRosterTTL),
	}
}
