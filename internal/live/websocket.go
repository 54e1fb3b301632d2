package live

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/sports-scores-service/internal/app/favorites"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = (pongWait * 9) / 10
)

// SnapshotSource exposes the most recent favorites aggregation.
type SnapshotSource interface {
	Latest() (favorites.Result, bool)
}

// Handler upgrades requests to websockets and streams favorites updates.
type Handler struct {
	broadcaster *Broadcaster
	source      SnapshotSource
	logger      *slog.Logger
	upgrader    websocket.Upgrader
	ping        time.Duration
}

// NewHandler builds a websocket handler. checkOrigin may be nil to accept
// any origin.
func NewHandler(b *Broadcaster, source SnapshotSource, logger *slog.Logger, checkOrigin func(*http.Request) bool) *Handler {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Handler{
		broadcaster: b,
		source:      source,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		ping: pingInterval,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		logging.Warn(logger, "websocket upgrade failed", logging.FieldError, err)
		return
	}
	defer conn.Close()

	id, updates := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(id)
	logging.Info(logger, "live subscriber connected", logging.FieldSubscriber, id.String())

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(h.snapshot()); err != nil {
		logging.Warn(logger, "live snapshot write failed", logging.FieldError, err)
		return
	}

	closed := make(chan struct{})
	go readPump(conn, closed)

	ticker := time.NewTicker(h.ping)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			logging.Info(logger, "live subscriber disconnected", logging.FieldSubscriber, id.String())
			return
		case <-r.Context().Done():
			return
		case u, ok := <-updates:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(u); err != nil {
				logging.Warn(logger, "live update write failed", logging.FieldError, err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (h *Handler) snapshot() Update {
	u := Update{Type: UpdateSnapshot, At: time.Now().UTC()}
	if h.source != nil {
		if res, ok := h.source.Latest(); ok {
			u.Games = res.Games
			u.At = res.UpdatedAt
		}
	}
	if u.Games == nil {
		u.Games = []games.Game{}
	}
	return u
}

// readPump drains client frames so pong and close control messages are
// processed. It closes done when the connection fails.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
