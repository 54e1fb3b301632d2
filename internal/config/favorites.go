package config

// FavoritesConfig controls favorites persistence and fan-out.
type FavoritesConfig struct {
	File        string
	Concurrency int
}

// PollerConfig controls the live favorites poller.
type PollerConfig struct {
	Enabled   bool
	Interval  Duration
	FullEvery int // run a full collect every N ticks
}

func loadFavorites() FavoritesConfig {
	return FavoritesConfig{
		File:        envOrDefault(envFavoritesFile, defaultFavoritesFile),
		Concurrency: intEnvOrDefault(envFavoritesLimit, defaultFavoritesLimit),
	}
}

func loadPoller() PollerConfig {
	return PollerConfig{
		Enabled:   boolEnvOrDefault(envPollEnabled, true),
		Interval:  durationEnvOrDefault(envPollInterval, defaultPollInterval),
		FullEvery: intEnvOrDefault(envPollFullEvery, defaultPollFullEvery),
	}
}
