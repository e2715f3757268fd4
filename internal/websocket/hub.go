package websocket

import (
	"encoding/json"
	"sync"
)

// TransactionUpdate is pushed to a user's connected clients whenever one of
// their transactions changes.
type TransactionUpdate struct {
	TransactionID string `json:"transaction_id"`
	CategoryID    string `json:"category_id"`
	Action        string `json:"action"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(userID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*Client]struct{})
	}
	h.clients[userID][client] = struct{}{}
}

func (h *Hub) Unregister(userID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		return
	}
	delete(h.clients[userID], client)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

// BroadcastTransaction delivers an update to every connected client of the
// user. Slow clients are skipped rather than blocking the broadcast.
func (h *Hub) BroadcastTransaction(userID string, update TransactionUpdate) {
	payload, _ := json.Marshal(update)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[userID] {
		select {
		case client.send <- payload:
		default:
		}
	}
}
