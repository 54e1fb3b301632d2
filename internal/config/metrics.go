package config

import "time"

// MetricsConfig controls the Prometheus scrape listener and optional OTLP push.
type MetricsConfig struct {
	Enabled        bool
	Port           string
	Path           string
	ServiceName    string
	OtlpEndpoint   string
	OtlpInsecure   bool
	ExportInterval time.Duration
}

func loadMetrics() MetricsConfig {
	m := MetricsConfig{
		Enabled:        boolEnvOrDefault(envMetricsOn, true),
		Port:           envOrDefault(envMetricsPort, defaultMetricsPort),
		Path:           envOrDefault(envMetricsPath, defaultMetricsPath),
		ServiceName:    envOrDefault(envOtelService, defaultOtelService),
		OtlpEndpoint:   envOrDefault(envOtelEndpoint, ""),
		OtlpInsecure:   boolEnvOrDefault(envOtelInsecure, true),
		ExportInterval: durationEnvOrDefault(envOtelInterval, defaultOtelInterval),
	}
	if m.Path[0] != '/' {
		m.Path = "/" + m.Path
	}
	return m
}
