// Package realtime pushes direct-message events to connected websocket clients.
package realtime

import "sync"

// Hub tracks live connections per username.
type Hub struct {
	mu    sync.Mutex
	users map[string]map[*Client]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		users: map[string]map[*Client]bool{},
	}
}

// Join registers client for messages addressed to its user.
func (h *Hub) Join(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.users[client.Username] == nil {
		h.users[client.Username] = map[*Client]bool{}
	}
	h.users[client.Username][client] = true
}

// Leave removes the client and closes its send queue. It is safe to call twice.
func (h *Hub) Leave(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.users[client.Username]
	if clients == nil || !clients[client] {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.users, client.Username)
	}
	close(client.Send)
}

// Deliver queues message for every connection of username and returns how
// many accepted it. A client whose queue is full misses the message.
func (h *Hub) Deliver(username string, message []byte) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for client := range h.users[username] {
		select {
		case client.Send <- message:
			delivered++
		default:
		}
	}
	return delivered
}

// Online reports how many connections username has.
func (h *Hub) Online(username string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.users[username])
}
