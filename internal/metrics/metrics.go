package metrics

import (
	"sync"
	"time"
)

// Snapshot is a point-in-time copy of one provider's counters.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

type cacheCounts struct{ hits, misses int }

// Recorder keeps in-memory counters that tests and /ready can read back, and
// mirrors every event to OTel instruments when Setup configured them. A nil
// Recorder accepts every call and reports zeros.
type Recorder struct {
	mu          sync.Mutex
	providers   map[string]*Snapshot
	caches      map[string]*cacheCounts
	fallbacks   map[string]int
	subscribers int
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		providers: make(map[string]*Snapshot),
		caches:    make(map[string]*cacheCounts),
		fallbacks: make(map[string]int),
		otel:      otel,
	}
}

// locked runs fn under the recorder mutex; it is a no-op on a nil Recorder.
func (r *Recorder) locked(fn func()) bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fn()
	return true
}

func (r *Recorder) provider(name string) *Snapshot {
	s, ok := r.providers[name]
	if !ok {
		s = &Snapshot{}
		r.providers[name] = s
	}
	return s
}

func (r *Recorder) cache(name string) *cacheCounts {
	c, ok := r.caches[name]
	if !ok {
		c = &cacheCounts{}
		r.caches[name] = c
	}
	return c
}

// RecordProviderAttempt counts one upstream call and keeps its latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	ok := r.locked(func() {
		s := r.provider(provider)
		s.Calls++
		s.LastCallLatency = duration
		if err != nil {
			s.Errors++
		}
	})
	if ok {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit counts an upstream 429 and keeps the last positive Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	ok := r.locked(func() {
		s := r.provider(provider)
		s.RateLimitHits++
		if retryAfter > 0 {
			s.LastRetryAfter = retryAfter
		}
	})
	if ok {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// Snapshot returns a copy of the provider's counters.
func (r *Recorder) Snapshot(provider string) Snapshot {
	var out Snapshot
	r.locked(func() {
		if s, ok := r.providers[provider]; ok {
			out = *s
		}
	})
	return out
}

func (r *Recorder) ProviderCalls(provider string) int  { return r.Snapshot(provider).Calls }
func (r *Recorder) ProviderErrors(provider string) int { return r.Snapshot(provider).Errors }
func (r *Recorder) RateLimitHits(provider string) int  { return r.Snapshot(provider).RateLimitHits }

func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// RecordHTTPRequest only feeds OTel; request counts are not kept in memory.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r != nil {
		r.otel.recordHTTPRequest(method, path, status, duration)
	}
}

// RecordPollerCycle only feeds OTel; the poller keeps its own status.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r != nil {
		r.otel.recordPoller(duration, err)
	}
}

func (r *Recorder) RecordCacheHit(cache string)  { r.recordCache(cache, true) }
func (r *Recorder) RecordCacheMiss(cache string) { r.recordCache(cache, false) }

func (r *Recorder) recordCache(cache string, hit bool) {
	ok := r.locked(func() {
		c := r.cache(cache)
		if hit {
			c.hits++
		} else {
			c.misses++
		}
	})
	if ok {
		r.otel.recordCache(cache, hit)
	}
}

func (r *Recorder) CacheHits(cache string) int {
	var n int
	r.locked(func() {
		if c, ok := r.caches[cache]; ok {
			n = c.hits
		}
	})
	return n
}

func (r *Recorder) CacheMisses(cache string) int {
	var n int
	r.locked(func() {
		if c, ok := r.caches[cache]; ok {
			n = c.misses
		}
	})
	return n
}

// RecordFallback counts a league request answered by an alternate competition code.
func (r *Recorder) RecordFallback(league, code string) {
	if r.locked(func() { r.fallbacks[league]++ }) {
		r.otel.recordFallback(league, code)
	}
}

func (r *Recorder) Fallbacks(league string) int {
	var n int
	r.locked(func() { n = r.fallbacks[league] })
	return n
}

// RecordLiveSubscribers moves the connected-client gauge by delta.
func (r *Recorder) RecordLiveSubscribers(delta int) {
	if r.locked(func() { r.subscribers += delta }) {
		r.otel.recordSubscribers(delta)
	}
}

func (r *Recorder) LiveSubscribers() int {
	var n int
	r.locked(func() { n = r.subscribers })
	return n
}

// RecordBroadcast tracks one live fan-out: how many clients got it and how many were skipped.
func (r *Recorder) RecordBroadcast(delivered, dropped int) {
	if r != nil {
		r.otel.recordBroadcast(delivered, dropped)
	}
}
