package live

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
)

const defaultBuffer = 8

// UpdateType tells clients whether a message replaces or patches their view.
type UpdateType string

const (
	UpdateSnapshot UpdateType = "snapshot"
	UpdateChanges  UpdateType = "update"
)

// Update is one message pushed to live subscribers.
type Update struct {
	Type  UpdateType   `json:"type"`
	Games []games.Game `json:"games"`
	At    time.Time    `json:"at"`
}

// Broadcaster fans updates out to subscribers. Slow subscribers miss
// messages instead of blocking the publisher.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]chan Update
	buffer  int
	metrics *metrics.Recorder
}

// NewBroadcaster builds a Broadcaster whose subscriber channels hold buffer
// pending updates.
func NewBroadcaster(buffer int, recorder *metrics.Recorder) *Broadcaster {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Broadcaster{
		clients: make(map[uuid.UUID]chan Update),
		buffer:  buffer,
		metrics: recorder,
	}
}

// Subscribe registers a new subscriber.
func (b *Broadcaster) Subscribe() (uuid.UUID, <-chan Update) {
	ch := make(chan Update, b.buffer)

	b.mu.Lock()
	id := uuid.New()
	for _, exists := b.clients[id]; exists; _, exists = b.clients[id] {
		id = uuid.New()
	}
	b.clients[id] = ch
	b.mu.Unlock()

	b.metrics.RecordLiveSubscribers(1)
	return id, ch
}

// Unsubscribe removes the subscriber and closes its channel. It reports
// whether the id was registered.
func (b *Broadcaster) Unsubscribe(id uuid.UUID) bool {
	b.mu.Lock()
	ch, ok := b.clients[id]
	if ok {
		delete(b.clients, id)
		close(ch)
	}
	b.mu.Unlock()

	if ok {
		b.metrics.RecordLiveSubscribers(-1)
	}
	return ok
}

// Publish sends u to every subscriber without blocking and returns how many
// received it.
func (b *Broadcaster) Publish(u Update) int {
	if u.At.IsZero() {
		u.At = time.Now().UTC()
	}

	b.mu.RLock()
	delivered, dropped := 0, 0
	for _, ch := range b.clients {
		select {
		case ch <- u:
			delivered++
		default:
			dropped++
		}
	}
	b.mu.RUnlock()

	b.metrics.RecordBroadcast(delivered, dropped)
	return delivered
}

// Len returns the number of connected subscribers.
func (b *Broadcaster) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Close unsubscribes everyone.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	n := len(b.clients)
	for id, ch := range b.clients {
		close(ch)
		delete(b.clients, id)
	}
	b.mu.Unlock()

	if n > 0 {
		b.metrics.RecordLiveSubscribers(-n)
	}
}
