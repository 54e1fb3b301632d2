package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func TestSetGetExpires(t *testing.T) {
	clock := newClock()
	c := New[string]("test", WithClock(clock.Now))

	c.Set("a", "alpha", time.Minute)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "alpha", v)

	clock.Advance(time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok, "entry should expire exactly at its ttl")
	assert.Equal(t, 1, c.Len(), "expired entries stay until purged")
	assert.Equal(t, 1, c.Purge())
	assert.Equal(t, 0, c.Len())
}

func TestSetNonPositiveTTLDeletes(t *testing.T) {
	c := New[int]("test")
	c.Set("a", 1, time.Minute)
	c.Set("a", 2, 0)
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	c := New[int]("test")
	c.Set("a", 1, time.Minute)
	c.Delete("a")
	assert.Equal(t, 0, c.Len())
}

func TestGetOrLoadCachesAndRecordsMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	c := New[int]("scores", WithMetrics(rec))
	calls := 0
	load := func(context.Context) (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrLoad(context.Background(), "k", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, rec.CacheHits("scores"))
	assert.Equal(t, 1, rec.CacheMisses("scores"))
}

func TestGetOrLoadDoesNotCacheErrors(t *testing.T) {
	c := New[int]("test")
	boom := errors.New("boom")
	_, err := c.GetOrLoad(context.Background(), "k", time.Minute, func(context.Context) (int, error) {
		return 0, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())

	v, err := c.GetOrLoad(context.Background(), "k", time.Minute, func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestGetOrLoadDeduplicatesConcurrentLoads(t *testing.T) {
	c := New[int]("test")
	var calls atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once

	load := func(context.Context) (int, error) {
		calls.Add(1)
		once.Do(func() { close(started) })
		<-release
		return 1, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.GetOrLoad(context.Background(), "k", time.Minute, load)
			assert.NoError(t, err)
			assert.Equal(t, 1, v)
		}()
	}
	<-started
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestGetOrLoadFuncUsesValueTTL(t *testing.T) {
	clock := newClock()
	c := New[int]("test", WithClock(clock.Now))
	ttlFor := func(v int) time.Duration { return time.Duration(v) * time.Second }

	_, err := c.GetOrLoadFunc(context.Background(), "short", ttlFor, func(context.Context) (int, error) { return 5, nil })
	require.NoError(t, err)
	clock.Advance(6 * time.Second)
	_, ok := c.Get("short")
	assert.False(t, ok)
}
