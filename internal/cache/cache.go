package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
)

type entry[V any] struct {
	value   V
	expires time.Time
}

// Cache is a TTL cache safe for concurrent use. Concurrent loads of the same
// key share one upstream call.
type Cache[V any] struct {
	name    string
	mu      sync.RWMutex
	items   map[string]entry[V]
	group   singleflight.Group
	now     func() time.Time
	metrics *metrics.Recorder
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	now     func() time.Time
	metrics *metrics.Recorder
}

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithMetrics records hits and misses under the cache's name.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(o *options) {
		o.metrics = rec
	}
}

// New constructs an empty cache. name labels its metrics.
func New[V any](name string, opts ...Option) *Cache[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[V]{
		name:    name,
		items:   make(map[string]entry[V]),
		now:     o.now,
		metrics: o.metrics,
	}
}

// Get returns the unexpired value stored under key.
func (c *Cache[V]) Get(key string) (V, bool) {
	v, ok := c.lookup(key)
	c.record(ok)
	return v, ok
}

func (c *Cache[V]) lookup(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || !c.now().Before(e.expires) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores v for ttl. A non-positive ttl removes the key instead.
func (c *Cache[V]) Set(key string, v V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ttl <= 0 {
		delete(c.items, key)
		return
	}
	c.items[key] = entry[V]{value: v, expires: c.now().Add(ttl)}
}

// Delete removes key.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Len reports stored entries, expired ones included until Purge runs.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Purge drops expired entries and returns how many were removed.
func (c *Cache[V]) Purge() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k, e := range c.items {
		if !now.Before(e.expires) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

// GetOrLoad returns the cached value for key, or calls loader and stores the
// result for ttl. Errors are returned and never cached.
func (c *Cache[V]) GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader func(context.Context) (V, error)) (V, error) {
	return c.GetOrLoadFunc(ctx, key, func(V) time.Duration { return ttl }, loader)
}

// GetOrLoadFunc is GetOrLoad with a TTL chosen from the loaded value.
func (c *Cache[V]) GetOrLoadFunc(ctx context.Context, key string, ttlFor func(V) time.Duration, loader func(context.Context) (V, error)) (V, error) {
	if v, ok := c.lookup(key); ok {
		c.record(true)
		return v, nil
	}
	c.record(false)

	res, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		v, err := loader(ctx)
		if err != nil {
			return v, err
		}
		c.Set(key, v, ttlFor(v))
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

func (c *Cache[V]) record(hit bool) {
	if c.metrics == nil {
		return
	}
	if hit {
		c.metrics.RecordCacheHit(c.name)
	} else {
		c.metrics.RecordCacheMiss(c.name)
	}
}
