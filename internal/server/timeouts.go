package server

import "time"

// Server limits. Live websocket connections are hijacked, so writeTimeout
// only bounds ordinary JSON responses.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 20 * time.Second
	idleTimeout       = 90 * time.Second
	maxHeaderBytes    = 1 << 16
)

// shutdownTimeout is a var so tests can shrink it.
var shutdownTimeout = 10 * time.Second
