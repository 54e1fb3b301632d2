package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled        bool
	Port           string
	Path           string
	ServiceName    string
	OtlpEndpoint   string
	OtlpInsecure   bool
	ExportInterval time.Duration
}

const (
	defaultServiceName    = "sports-scores-service"
	defaultScrapePath     = "/metrics"
	defaultExportInterval = 15 * time.Second
)

func (c TelemetryConfig) withDefaults() TelemetryConfig {
	if c.ServiceName == "" {
		c.ServiceName = defaultServiceName
	}
	if c.Path == "" {
		c.Path = defaultScrapePath
	}
	if c.ExportInterval <= 0 {
		c.ExportInterval = defaultExportInterval
	}
	return c
}

// Setup wires a meter provider that serves Prometheus scrapes on cfg.Path and,
// when an endpoint is set, also pushes over OTLP/HTTP. Disabled telemetry
// still returns a working in-memory Recorder.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}
	cfg = cfg.withDefaults()

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("prometheus exporter: %w", err)
	}
	readers := []sdkmetric.Reader{promReader}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("otlp exporter: %w", err)
		}
		readers = append(readers, otlpReader)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("metrics resource: %w", err)
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, r := range readers {
		opts = append(opts, sdkmetric.WithReader(r))
	}
	provider := sdkmetric.NewMeterProvider(opts...)

	inst, err := instrumentFactory(provider)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, nil, nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promHandler)
	return newRecorder(inst), mux, provider.Shutdown, nil
}

func buildOTLPReader(ctx context.Context, cfg TelemetryConfig) (sdkmetric.Reader, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.OtlpEndpoint)}
	if cfg.OtlpInsecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exp, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(cfg.ExportInterval)), nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	exp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return exp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

type otelInstruments struct {
	ctx context.Context

	requests          metric.Int64Counter
	requestLatencyMs  metric.Float64Histogram
	providerAttempts  metric.Int64Counter
	providerErrors    metric.Int64Counter
	providerLatencyMs metric.Float64Histogram
	rateLimitHits     metric.Int64Counter
	retryAfterMs      metric.Float64Histogram
	pollerCycles      metric.Int64Counter
	pollerErrors      metric.Int64Counter
	pollerLatencyMs   metric.Float64Histogram
	cacheHits         metric.Int64Counter
	cacheMisses       metric.Int64Counter
	fallbacks         metric.Int64Counter
	liveSubscribers   metric.Int64UpDownCounter
	broadcasts        metric.Int64Counter
	broadcastDropped  metric.Int64Counter
}

// instrumentSet creates instruments on one meter and keeps the first error,
// so construction reads as a flat list.
type instrumentSet struct {
	meter metric.Meter
	err   error
}

func (s *instrumentSet) counter(name, desc string) metric.Int64Counter {
	c, err := s.meter.Int64Counter(name, metric.WithDescription(desc))
	s.keep(name, err)
	return c
}

func (s *instrumentSet) upDown(name, desc string) metric.Int64UpDownCounter {
	c, err := s.meter.Int64UpDownCounter(name, metric.WithDescription(desc))
	s.keep(name, err)
	return c
}

func (s *instrumentSet) millis(name, desc string) metric.Float64Histogram {
	h, err := s.meter.Float64Histogram(name, metric.WithDescription(desc))
	s.keep(name, err)
	return h
}

func (s *instrumentSet) keep(name string, err error) {
	if err != nil && s.err == nil {
		s.err = fmt.Errorf("instrument %s: %w", name, err)
	}
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	set := &instrumentSet{meter: provider.Meter(defaultServiceName)}
	inst := &otelInstruments{
		ctx: context.Background(),

		requests:          set.counter("http_requests_total", "HTTP requests served"),
		requestLatencyMs:  set.millis("http_request_duration_ms", "HTTP request latency"),
		providerAttempts:  set.counter("provider_attempts_total", "Upstream provider calls"),
		providerErrors:    set.counter("provider_errors_total", "Failed upstream provider calls"),
		providerLatencyMs: set.millis("provider_duration_ms", "Upstream provider latency"),
		rateLimitHits:     set.counter("provider_rate_limit_hits_total", "Upstream 429 responses"),
		retryAfterMs:      set.millis("provider_retry_after_ms", "Retry-After advertised by upstreams"),
		pollerCycles:      set.counter("poller_cycles_total", "Favorites refresh cycles"),
		pollerErrors:      set.counter("poller_errors_total", "Failed favorites refresh cycles"),
		pollerLatencyMs:   set.millis("poller_cycle_duration_ms", "Favorites refresh duration"),
		cacheHits:         set.counter("cache_hits_total", "Lookups served from cache"),
		cacheMisses:       set.counter("cache_misses_total", "Lookups loaded upstream"),
		fallbacks:         set.counter("provider_fallbacks_total", "Leagues served by an alternate code"),
		liveSubscribers:   set.upDown("live_subscribers", "Connected live websocket clients"),
		broadcasts:        set.counter("live_messages_delivered_total", "Live updates delivered"),
		broadcastDropped:  set.counter("live_messages_dropped_total", "Live updates dropped for slow clients"),
	}
	if set.err != nil {
		return nil, set.err
	}
	return inst, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	}
	o.recordCounter(o.requests, 1, attrs...)
	o.recordHistogram(o.requestLatencyMs, float64(duration.Milliseconds()), attrs...)
}

func (o *otelInstruments) recordProviderAttempt(provider string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrProvider, provider)}
	o.recordCounter(o.providerAttempts, 1, attrs...)
	o.recordHistogram(o.providerLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.providerErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordRateLimit(provider string, retryAfter time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrProvider, provider)}
	o.recordCounter(o.rateLimitHits, 1, attrs...)
	if retryAfter > 0 {
		o.recordHistogram(o.retryAfterMs, float64(retryAfter.Milliseconds()), attrs...)
	}
}

func (o *otelInstruments) recordPoller(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.recordCounter(o.pollerCycles, 1)
	o.recordHistogram(o.pollerLatencyMs, float64(duration.Milliseconds()))
	if err != nil {
		o.recordCounter(o.pollerErrors, 1)
	}
}

func (o *otelInstruments) recordCache(cache string, hit bool) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrCache, cache)}
	if hit {
		o.recordCounter(o.cacheHits, 1, attrs...)
		return
	}
	o.recordCounter(o.cacheMisses, 1, attrs...)
}

func (o *otelInstruments) recordFallback(league, code string) {
	if o == nil {
		return
	}
	o.recordCounter(o.fallbacks, 1,
		attribute.String(AttrLeague, league),
		attribute.String(AttrCode, code),
	)
}

func (o *otelInstruments) recordSubscribers(delta int) {
	if o == nil {
		return
	}
	o.liveSubscribers.Add(o.ctx, int64(delta))
}

func (o *otelInstruments) recordBroadcast(delivered, dropped int) {
	if o == nil {
		return
	}
	o.recordCounter(o.broadcasts, int64(delivered))
	if dropped > 0 {
		o.recordCounter(o.broadcastDropped, int64(dropped))
	}
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
