// Package live pushes session updates to the screens following a session.
package live

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Message is the envelope sent to subscribers.
type Message struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data"`
	Source string      `json:"source,omitempty"`
}

// Hub tracks the open WebSocket connections of each session.
type Hub struct {
	connections map[string][]*websocket.Conn
	mu          sync.Mutex
	logger      *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		connections: make(map[string][]*websocket.Conn),
		logger:      logger,
	}
}

// Add registers a connection for a session.
func (h *Hub) Add(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[sessionID] = append(h.connections[sessionID], conn)
	h.logger.Debug("live connection added",
		zap.String("session", sessionID),
		zap.Int("connections", len(h.connections[sessionID])))
}

// Remove forgets a connection. It does not close it.
func (h *Hub) Remove(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(sessionID, conn)
}

// Count returns the number of open connections for a session.
func (h *Hub) Count(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections[sessionID])
}

// Broadcast sends message to every connection of a session. Connections that
// fail to receive it are closed and dropped.
func (h *Hub) Broadcast(sessionID string, message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.connections[sessionID]
	if len(conns) == 0 {
		return
	}

	jsonData, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal live message", zap.String("session", sessionID), zap.Error(err))
		return
	}

	for _, conn := range append([]*websocket.Conn(nil), conns...) {
		if err := conn.WriteMessage(websocket.TextMessage, jsonData); err != nil {
			h.logger.Warn("dropping live connection", zap.String("session", sessionID), zap.Error(err))
			conn.Close()
			h.removeLocked(sessionID, conn)
		}
	}
}

func (h *Hub) removeLocked(sessionID string, conn *websocket.Conn) {
	conns := h.connections[sessionID]
	for i, c := range conns {
		if c == conn {
			conns = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(conns) == 0 {
		delete(h.connections, sessionID)
		return
	}
	h.connections[sessionID] = conns
}
