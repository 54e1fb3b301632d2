package mlbstats

import "time"

const (
	providerName       = "mlbstats"
	defaultBaseURL     = "https://statsapi.mlb.com"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512
	sportIDMLB         = "1"
	leagueKey          = "mlb"
	scheduleHydrate    = "team,linescore"
	standingsLeagueIDs = "103,104"
)
