package config

// ESPNConfig controls how we talk to ESPN's public JSON endpoints.
type ESPNConfig struct {
	SiteBaseURL      string
	StandingsBaseURL string
	RatePerSecond    int
	Burst            int
}

// MLBStatsConfig controls the MLB Stats API client.
type MLBStatsConfig struct {
	Enabled       bool
	BaseURL       string
	RatePerSecond int
}

// RetryConfig tunes the provider retry wrapper.
type RetryConfig struct {
	Attempts  int
	BaseDelay Duration
	MaxDelay  Duration
}

// ProvidersConfig groups upstream client settings.
type ProvidersConfig struct {
	ESPN     ESPNConfig
	MLBStats MLBStatsConfig
	Retry    RetryConfig
}

func loadProviders() ProvidersConfig {
	return ProvidersConfig{
		ESPN: ESPNConfig{
			SiteBaseURL:      envOrDefault(envESPNSiteURL, defaultESPNSiteURL),
			StandingsBaseURL: envOrDefault(envESPNStandingsURL, defaultESPNStandingsURL),
			RatePerSecond:    intEnvOrDefault(envESPNRate, defaultESPNRate),
			Burst:            intEnvOrDefault(envESPNBurst, defaultESPNBurst),
		},
		MLBStats: MLBStatsConfig{
			Enabled:       boolEnvOrDefault(envMLBStatsEnabled, true),
			BaseURL:       envOrDefault(envMLBStatsURL, defaultMLBStatsURL),
			RatePerSecond: intEnvOrDefault(envMLBStatsRate, defaultMLBStatsRate),
		},
		Retry: RetryConfig{
			Attempts:  intEnvOrDefault(envRetryAttempts, defaultRetryAttempts),
			BaseDelay: durationEnvOrDefault(envRetryBaseDelay, defaultRetryBaseDelay),
			MaxDelay:  durationEnvOrDefault(envRetryMaxDelay, defaultRetryMaxDelay),
		},
	}
}
