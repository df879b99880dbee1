package api

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/cutline/cutline/internal/timeline"
)

var upgrader = websocket.Upgrader{
	// The server binds to loopback only; any local page may subscribe.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans timeline events out to websocket subscribers (inspector panels,
// preview windows). A subscriber that cannot be written to is dropped.
type Hub struct {
	logger *slog.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{logger: logger, conns: make(map[*websocket.Conn]bool)}
}

// Sink returns the event sink to subscribe on the timeline.
func (h *Hub) Sink() timeline.Sink {
	return func(ev timeline.Event) {
		h.Broadcast(ev)
	}
}

func (h *Hub) Broadcast(ev timeline.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(ev); err != nil {
			conn.Close()
			delete(h.conns, conn)
			if h.logger != nil {
				h.logger.Debug("event subscriber dropped", "error", err)
			}
		}
	}
}

// ServeHTTP upgrades the connection and keeps it registered until the peer
// goes away. The read loop exists only to observe the close.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("websocket upgrade failed", "error", err)
		}
		return
	}

	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()

	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.conns, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// SubscriberCount reports the number of connected event subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
