package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/cache"
	"github.com/preston-bernstein/sports-scores-service/internal/config"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
)

const upstreamTimeout = 10 * time.Second

// providerFactory assembles the provider chain: each upstream gets its own
// rate limit and retry, then league routing, competition fallback and the
// response cache are layered on top.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
	client  *http.Client
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{
		logger:  logger,
		metrics: metrics,
		client:  &http.Client{Timeout: upstreamTimeout},
	}
}

func (f providerFactory) build(cfg config.Config) providers.DataProvider {
	primary, secondaries := selectUpstreams(cfg, f.client, f.logger)
	if primary.name == providerFixture {
		return f.decorate(primary.provider, cfg)
	}

	others := make(map[string]providers.DataProvider, len(secondaries))
	for _, u := range secondaries {
		others[u.name] = f.guard(u, cfg.Providers.Retry)
	}
	routed := providers.NewRoutingProvider(primary.name, f.guard(primary, cfg.Providers.Retry), others, f.logger)
	return f.decorate(routed, cfg)
}

// guard wraps a raw upstream with its token bucket and the retry policy.
func (f providerFactory) guard(u upstream, retry config.RetryConfig) providers.DataProvider {
	limited := providers.NewRateLimitedProvider(u.provider, u.name, u.perSecond, u.burst, f.logger)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, u.name, retry.Attempts, retry.BaseDelay, retry.MaxDelay)
}

func (f providerFactory) decorate(p providers.DataProvider, cfg config.Config) providers.DataProvider {
	return cache.NewProvider(providers.NewFallbackProvider(p, f.metrics, f.logger), cfg.Cache, f.metrics)
}
