package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/sports-scores-service/internal/config"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/server"
)

const serviceName = "sports-scores-service"

func main() {
	if skipRun(os.Getenv) {
		return
	}

	cfg := config.Load()
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info(logger, "starting", slog.String("port", cfg.Port), slog.String(logging.FieldProvider, cfg.Provider))
	server.New(cfg, logger).Run(ctx, stop)
}

// skipRun lets tests and build checks exec the binary without serving.
func skipRun(getenv func(string) string) bool {
	return getenv("SKIP_SERVER_RUN") == "1"
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: serviceName,
		Version: cfg.Log.Version,
	})
}
