package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/sports-scores-service/internal/config"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/espn"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/fixture"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/mlbstats"
)

const providerFixture = "fixture"

// upstream is one raw data source plus the quota it must stay under.
type upstream struct {
	name      string
	provider  providers.DataProvider
	perSecond int
	burst     int
}

// selectUpstreams returns the primary source and any per-league secondaries.
// PROVIDER=fixture serves canned data for every league.
func selectUpstreams(cfg config.Config, client *http.Client, logger *slog.Logger) (upstream, []upstream) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case providerFixture:
		return upstream{name: providerFixture, provider: fixture.New()}, nil
	case leagues.ProviderESPN, "":
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to espn", slog.String("provider", cfg.Provider))
		}
	}

	espnCfg := cfg.Providers.ESPN
	primary := upstream{
		name: leagues.ProviderESPN,
		provider: espn.NewClient(espn.Config{
			SiteBaseURL:      espnCfg.SiteBaseURL,
			StandingsBaseURL: espnCfg.StandingsBaseURL,
			HTTPClient:       client,
		}),
		perSecond: espnCfg.RatePerSecond,
		burst:     espnCfg.Burst,
	}

	var others []upstream
	if mlb := cfg.Providers.MLBStats; mlb.Enabled {
		others = append(others, upstream{
			name: leagues.ProviderMLBStats,
			provider: mlbstats.NewClient(mlbstats.Config{
				BaseURL:    mlb.BaseURL,
				HTTPClient: client,
			}),
			perSecond: mlb.RatePerSecond,
		})
	}
	return primary, others
}
