package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port      string
	Provider  string
	Timezone  string
	Log       LogConfig
	Providers ProvidersConfig
	Cache     CacheConfig
	Favorites FavoritesConfig
	Poller    PollerConfig
	Metrics   MetricsConfig
	Snapshots SnapshotSyncConfig
	CORS      CORSConfig
	Slack     SlackConfig
}

// LogConfig selects logger level and format.
type LogConfig struct {
	Level   string
	Format  string
	Version string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file (or ENV_FILE) is applied first without overriding real env vars.
func Load() Config {
	_ = loadDotEnv(envOrDefault(envEnvFile, defaultEnvFile))

	return Config{
		Port:     envOrDefault(envPort, defaultPort),
		Provider: envOrDefault(envProvider, defaultProvider),
		Timezone: envOrDefault(envTimezone, defaultTimezone),
		Log: LogConfig{
			Level:   envOrDefault(envLogLevel, defaultLogLevel),
			Format:  envOrDefault(envLogFormat, defaultLogFormat),
			Version: envOrDefault(envVersion, defaultVersion),
		},
		Providers: loadProviders(),
		Cache:     loadCache(),
		Favorites: loadFavorites(),
		Poller:    loadPoller(),
		Metrics:   loadMetrics(),
		Snapshots: loadSnapshotSync(),
		CORS:      loadCORS(),
		Slack:     loadSlack(),
	}
}

func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
