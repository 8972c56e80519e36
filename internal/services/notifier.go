package services

import (
	"sync"
)

// Notifier delivers an event to a user's active connections. Delivery is
// at-most-once and best-effort: implementations must never block or fail
// the write operation that raised the event.
type Notifier interface {
	Notify(userID uint, event Event)
}

// Hub fans events out to per-user client connections. A user may hold
// several connections (multiple tabs); each gets its own buffered channel.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]map[string]chan Event
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uint]map[string]chan Event),
	}
}

// Subscribe registers a connection for a user and returns its event channel.
func (h *Hub) Subscribe(userID uint, clientID string) <-chan Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Buffered so a slow consumer never blocks publishers
	ch := make(chan Event, 64)
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[string]chan Event)
	}
	h.clients[userID][clientID] = ch
	return ch
}

// Unsubscribe removes a connection and closes its channel.
func (h *Hub) Unsubscribe(userID uint, clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.clients[userID]
	if conns == nil {
		return
	}
	if ch, ok := conns[clientID]; ok {
		close(ch)
		delete(conns, clientID)
	}
	if len(conns) == 0 {
		delete(h.clients, userID)
	}
}

// Notify pushes an event to every connection of the user. Events for users
// without active connections are dropped; a full client buffer drops the
// event for that connection only.
func (h *Hub) Notify(userID uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.clients[userID] {
		select {
		case ch <- event:
		default:
			// Client is slow, skip this event
		}
	}
}

// ClientCount returns the number of active connections across all users.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, conns := range h.clients {
		n += len(conns)
	}
	return n
}

// Global hub instance
var (
	globalHub *Hub
	hubOnce   sync.Once
)

// GetHub returns the global notification hub singleton.
func GetHub() *Hub {
	hubOnce.Do(func() {
		globalHub = NewHub()
	})
	return globalHub
}
