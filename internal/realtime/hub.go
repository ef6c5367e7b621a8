package realtime

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Conn is the slice of a websocket connection the hub needs
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Hub tracks which users currently hold a live websocket connection. One
// connection per user: a reconnect replaces and closes the previous one.
type Hub struct {
	mu    sync.RWMutex
	conns map[uint]Conn
	log   *logrus.Logger
}

// NewHub creates an empty connection hub
func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		conns: make(map[uint]Conn),
		log:   log,
	}
}

// Register attaches a user's connection, replacing any previous one
func (h *Hub) Register(userID uint, conn Conn) {
	h.mu.Lock()
	prev, ok := h.conns[userID]
	h.conns[userID] = conn
	h.mu.Unlock()

	if ok {
		prev.Close()
	}
	h.log.WithField("user_id", userID).Info("websocket connected")
}

// Unregister removes the user's connection if it is still the one given.
// A stale close from a replaced connection must not evict the new one.
func (h *Hub) Unregister(userID uint, conn Conn) {
	h.mu.Lock()
	if current, ok := h.conns[userID]; ok && current == conn {
		delete(h.conns, userID)
	}
	h.mu.Unlock()

	h.log.WithField("user_id", userID).Info("websocket disconnected")
}

// IsOnline reports whether the user currently holds a connection
func (h *Hub) IsOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.conns[userID]
	return ok
}

// Notify pushes a payload to the user if connected. Delivery is best effort:
// an offline user or a write failure never fails the caller.
func (h *Hub) Notify(userID uint, payload interface{}) {
	h.mu.RLock()
	conn, ok := h.conns[userID]
	h.mu.RUnlock()

	if !ok {
		return
	}
	if err := conn.WriteJSON(payload); err != nil {
		h.log.WithField("user_id", userID).WithError(err).Warn("websocket write failed, dropping connection")
		h.mu.Lock()
		if current, exists := h.conns[userID]; exists && current == conn {
			delete(h.conns, userID)
		}
		h.mu.Unlock()
		conn.Close()
	}
}
