package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/dashboard"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
)

func main() {
	apiURL := flag.String("api", envOr("SCORES_API_URL", "http://localhost:8080"), "scores service base URL")
	interval := flag.Duration("interval", 30*time.Second, "favorites refresh interval")
	logPath := flag.String("log", os.Getenv("SCOREBOARD_LOG"), "optional log file; the terminal is owned by the UI")
	flag.Parse()

	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	logger := logging.NewLogger(logging.Config{Service: "scoreboard", Output: out})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := dashboard.New(dashboard.NewClient(*apiURL, nil), *interval, time.Local, logger)
	if err := d.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "scoreboard: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
