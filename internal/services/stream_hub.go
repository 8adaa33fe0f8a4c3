package services

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/syncapp/sync-backend/pkg/logger"
)

// StreamEvent is one pair-scoped change notification. Clients treat every
// event as an invalidation and refetch the named collection, so events are
// snapshots-by-reference rather than deltas.
type StreamEvent struct {
	Type       string      `json:"type"` // e.g. "dateNights.changed"
	PairID     string      `json:"pair_id,omitempty"`
	TargetID   string      `json:"target_id,omitempty"`
	Payload    interface{} `json:"payload,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// streamConn pairs a connection with its write lock. gorilla/websocket
// permits only one concurrent writer per connection, and events arrive from
// request handlers, service goroutines and cron sweeps at once.
type streamConn struct {
	writeMu sync.Mutex
	conn    *websocket.Conn
}

// StreamHub tracks one WebSocket connection per user and fans pair-scoped
// change events out to both partners. Delivery is best-effort: an offline
// partner simply misses the invalidation and refetches on next load.
type StreamHub struct {
	mu          sync.RWMutex
	connections map[string]*streamConn
}

func NewStreamHub() *StreamHub {
	return &StreamHub{
		connections: make(map[string]*streamConn),
	}
}

// Register stores a user's connection, replacing any previous one.
func (h *StreamHub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.connections[userID]; ok {
		existing.conn.Close()
	}
	h.connections[userID] = &streamConn{conn: conn}

	logger.Log.WithField("user_id", userID).Info("Stream connection registered")
}

// Unregister drops a user's connection. Safe to call for an unknown user.
func (h *StreamHub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sc, ok := h.connections[userID]; ok {
		sc.conn.Close()
		delete(h.connections, userID)
		logger.Log.WithField("user_id", userID).Info("Stream connection unregistered")
	}
}

// NotifyPair sends an event to both partners.
func (h *StreamHub) NotifyPair(userID, partnerID string, event StreamEvent) {
	event.OccurredAt = time.Now()
	h.sendToUser(userID, event)
	if partnerID != "" {
		h.sendToUser(partnerID, event)
	}
}

// NotifyUser sends an event to a single user.
func (h *StreamHub) NotifyUser(userID string, event StreamEvent) {
	event.OccurredAt = time.Now()
	h.sendToUser(userID, event)
}

func (h *StreamHub) sendToUser(userID string, event StreamEvent) {
	h.mu.RLock()
	sc, ok := h.connections[userID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	sc.writeMu.Lock()
	err := sc.conn.WriteJSON(event)
	sc.writeMu.Unlock()

	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("Failed to write stream event, dropping connection")
		h.Unregister(userID)
	}
}
