package config

import "time"

const (
	envEnvFile            = "ENV_FILE"
	envPort               = "PORT"
	envProvider           = "PROVIDER"
	envLogLevel           = "LOG_LEVEL"
	envLogFormat          = "LOG_FORMAT"
	envVersion            = "SERVICE_VERSION"
	envMetricsPort        = "METRICS_PORT"
	envMetricsOn          = "METRICS_ENABLED"
	envOtelEndpoint       = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService        = "OTEL_SERVICE_NAME"
	envOtelInsecure       = "OTEL_EXPORTER_OTLP_INSECURE"
	envOtelInterval       = "OTEL_METRIC_EXPORT_INTERVAL"
	envMetricsPath        = "METRICS_PATH"
	envAdminToken         = "ADMIN_TOKEN"
	envSnapshotSync       = "SNAPSHOT_SYNC_ENABLED"
	envSnapshotDays       = "SNAPSHOT_SYNC_DAYS"
	envSnapshotFutureDays = "SNAPSHOT_FUTURE_DAYS"
	envSnapshotRate       = "SNAPSHOT_SYNC_INTERVAL"
	envSnapshotHour       = "SNAPSHOT_DAILY_HOUR"
	envSnapshotLeagues    = "SNAPSHOT_LEAGUES"
	envSnapshotFolder     = "SNAPSHOT_FOLDER"

	envESPNSiteURL      = "ESPN_SITE_BASE_URL"
	envESPNStandingsURL = "ESPN_STANDINGS_BASE_URL"
	envESPNRate         = "ESPN_RATE_PER_SECOND"
	envESPNBurst        = "ESPN_RATE_BURST"
	envMLBStatsEnabled  = "MLBSTATS_ENABLED"
	envMLBStatsURL      = "MLBSTATS_BASE_URL"
	envMLBStatsRate     = "MLBSTATS_RATE_PER_SECOND"
	envRetryAttempts    = "PROVIDER_RETRY_ATTEMPTS"
	envRetryBaseDelay   = "PROVIDER_RETRY_BASE_DELAY"
	envRetryMaxDelay    = "PROVIDER_RETRY_MAX_DELAY"

	envCacheLiveTTL      = "CACHE_SCOREBOARD_LIVE_TTL"
	envCacheScoreTTL     = "CACHE_SCOREBOARD_TTL"
	envCacheStandingsTTL = "CACHE_STANDINGS_TTL"
	envCacheTeamTTL      = "CACHE_TEAM_TTL"
	envCacheRosterTTL    = "CACHE_ROSTER_TTL"

	envFavoritesFile  = "FAVORITES_FILE"
	envFavoritesLimit = "FAVORITES_CONCURRENCY"
	envPollInterval   = "POLL_INTERVAL"
	envPollFullEvery  = "POLL_FULL_EVERY"
	envPollEnabled    = "POLL_ENABLED"
	envTimezone       = "DEFAULT_TIMEZONE"

	envCORSOrigins  = "CORS_ALLOWED_ORIGINS"
	envSlackWebhook = "SLACK_WEBHOOK_URL"
	envSlackChannel = "SLACK_CHANNEL"

	defaultEnvFile   = ".env"
	defaultPort      = "4000"
	defaultProvider  = "espn"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultVersion   = "dev"
	// ESPN's public endpoints are unmetered but we stay polite.
	defaultPollInterval       = 30 * Duration(time.Second)
	defaultPollFullEvery      = 10
	defaultMetricsPort        = "9090"
	defaultMetricsPath        = "/metrics"
	defaultOtelService        = "sports-scores-service"
	defaultOtelInterval       = 15 * Duration(time.Second)
	defaultSnapshotSync       = true
	defaultSnapshotDays       = 7
	defaultSnapshotFutureDays = 3
	defaultSnapshotInterval   = 2 * Duration(time.Second)
	// UTC hour to run daily snapshot prune/backfill (9 AM UTC, after US late games finish).
	defaultSnapshotDailyHour = 9
	defaultSnapshotFolder    = "data/snapshots"
	defaultSnapshotLeagues   = "nfl,mlb,nhl,eng.1,esp.1,uefa.champions"

	defaultESPNSiteURL      = "https://site.api.espn.com/apis/site/v2/sports"
	defaultESPNStandingsURL = "https://site.api.espn.com/apis/v2/sports"
	defaultESPNRate         = 5
	defaultESPNBurst        = 10
	defaultMLBStatsURL      = "https://statsapi.mlb.com"
	defaultMLBStatsRate     = 5
	defaultRetryAttempts    = 3
	defaultRetryBaseDelay   = 200 * Duration(time.Millisecond)
	defaultRetryMaxDelay    = 5 * Duration(time.Second)

	defaultCacheLiveTTL      = 15 * Duration(time.Second)
	defaultCacheScoreTTL     = 5 * Duration(time.Minute)
	defaultCacheStandingsTTL = 30 * Duration(time.Minute)
	defaultCacheTeamTTL      = 6 * Duration(time.Hour)
	defaultCacheRosterTTL    = 6 * Duration(time.Hour)

	defaultFavoritesFile  = "data/favorites.json"
	defaultFavoritesLimit = 8
	defaultTimezone       = "America/New_York"
)
