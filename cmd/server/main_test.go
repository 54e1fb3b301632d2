package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/preston-bernstein/sports-scores-service/internal/config"
)

func TestMainReturnsWhenSkipped(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	main()
}

func TestSkipRun(t *testing.T) {
	env := map[string]string{}
	getenv := func(k string) string { return env[k] }
	if skipRun(getenv) {
		t.Fatalf("expected run when unset")
	}
	env["SKIP_SERVER_RUN"] = "true"
	if skipRun(getenv) {
		t.Fatalf("only \"1\" should skip")
	}
	env["SKIP_SERVER_RUN"] = "1"
	if !skipRun(getenv) {
		t.Fatalf("expected skip")
	}
}

func TestNewLoggerHonorsLevel(t *testing.T) {
	logger := newLogger(config.Config{Log: config.LogConfig{Level: "warn", Format: "json"}})
	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("info should be disabled at warn level")
	}
	if !logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Fatalf("warn should be enabled")
	}
}
