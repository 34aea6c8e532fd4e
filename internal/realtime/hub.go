package realtime

import (
	"sync"
)

// Client represents a single push connection.
// The network connection itself is managed by the ws handler.
type Client interface {
	// Send queues message for delivery; it reports false when the client cannot keep up.
	Send(message []byte) bool
	Close()
}

// Hub maintains the push connections of each session and fans view events out to them.
type Hub struct {
	mu                 sync.RWMutex
	sessionIDToClients map[string]map[Client]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		sessionIDToClients: make(map[string]map[Client]struct{}),
	}
}

// Register adds a client under a session ID.
func (h *Hub) Register(sessionID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessionIDToClients[sessionID]; !ok {
		h.sessionIDToClients[sessionID] = make(map[Client]struct{})
	}
	h.sessionIDToClients[sessionID][client] = struct{}{}
}

// Unregister removes a client; if the session has no more clients, cleans up map.
func (h *Hub) Unregister(sessionID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.sessionIDToClients[sessionID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.sessionIDToClients, sessionID)
		}
	}
}

// Broadcast sends a message to all clients of a session and reports how many accepted it.
func (h *Hub) Broadcast(sessionID string, message []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sent := 0
	for c := range h.sessionIDToClients[sessionID] {
		// a client that cannot keep up is closed by its own writer
		if c.Send(message) {
			sent++
		}
	}
	return sent
}

// Count is the number of clients registered for a session.
func (h *Hub) Count(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessionIDToClients[sessionID])
}

// CloseSession closes and forgets every client of a session.
func (h *Hub) CloseSession(sessionID string) {
	h.mu.Lock()
	clients := h.sessionIDToClients[sessionID]
	delete(h.sessionIDToClients, sessionID)
	h.mu.Unlock()

	for c := range clients {
		c.Close()
	}
}
