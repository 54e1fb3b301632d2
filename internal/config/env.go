package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration is time.Duration; the alias keeps default tables readable.
type Duration = time.Duration

// envValue reads key and parses it; blank or rejected values yield def.
func envValue[T any](key string, def T, parse func(string) (T, bool)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if v, ok := parse(raw); ok {
		return v
	}
	return def
}

func envOrDefault(key, def string) string {
	return envValue(key, def, func(s string) (string, bool) { return s, true })
}

// durationEnvOrDefault accepts positive Go durations only.
func durationEnvOrDefault(key string, def time.Duration) time.Duration {
	return envValue(key, def, func(s string) (time.Duration, bool) {
		d, err := time.ParseDuration(s)
		return d, err == nil && d > 0
	})
}

// intEnvOrDefault accepts positive integers only.
func intEnvOrDefault(key string, def int) int {
	return envValue(key, def, func(s string) (int, bool) {
		n, err := strconv.Atoi(s)
		return n, err == nil && n > 0
	})
}

func boolEnvOrDefault(key string, def bool) bool {
	return envValue(key, def, parseBool)
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}

func listEnvOrDefault(key string, def []string) []string {
	return envValue(key, def, func(s string) ([]string, bool) {
		items := splitList(s)
		return items, len(items) > 0
	})
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
