package testutil

import (
	"context"
	"net/http"
	"sync"

	"github.com/preston-bernstein/sports-scores-service/internal/poller"
)

// StubPoller counts lifecycle calls and returns a fixed status.
type StubPoller struct {
	mu     sync.Mutex
	starts int
	stops  int

	StopErr error
	State   poller.Status
}

func (p *StubPoller) Start(context.Context) {
	p.mu.Lock()
	p.starts++
	p.mu.Unlock()
}

func (p *StubPoller) Stop(context.Context) error {
	p.mu.Lock()
	p.stops++
	p.mu.Unlock()
	return p.StopErr
}

func (p *StubPoller) Status() poller.Status {
	return p.State
}

// Calls returns how many times Start and Stop ran.
func (p *StubPoller) Calls() (starts, stops int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.starts, p.stops
}

// StubHTTPServer stands in for the listening server. ListenErr is returned
// from ListenAndServe (use http.ErrServerClosed for a clean exit). When Block
// is set, Shutdown waits for it to close or for the context to expire.
type StubHTTPServer struct {
	mu        sync.Mutex
	listens   int
	shutdowns int

	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Block       chan struct{}
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.mu.Lock()
	s.listens++
	s.mu.Unlock()
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.shutdowns++
	s.mu.Unlock()
	if s.Block != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.Block:
		}
	}
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NotFoundHandler()
	}
	return s.HandlerVal
}

// Calls returns how many times ListenAndServe and Shutdown ran.
func (s *StubHTTPServer) Calls() (listens, shutdowns int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listens, s.shutdowns
}
