package websocket

import (
	"sync"

	"slidecraft/internal/generation"
	"slidecraft/internal/logger"

	"github.com/gorilla/websocket"
)

// Client is one live connection subscribed to a user's generation progress.
type Client struct {
	Conn    *websocket.Conn
	UserID  string
	writeMu sync.Mutex
}

// SafeWriteJSON serialises writes; gorilla connections allow one writer at a time.
func (c *Client) SafeWriteJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(v)
}

// ProgressMessage is what subscribers receive for every pipeline event.
type ProgressMessage struct {
	Type   string `json:"type"`
	DeckID string `json:"deckId"`
	generation.Progress
}

// Hub fans generation progress out to the owning user's connections.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	log     *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.NewNop()
	}
	return &Hub{clients: make(map[string]map[*Client]struct{}), log: log}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[client.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[client.UserID] = set
	}
	set[client] = struct{}{}
	h.log.Debug("progress client registered", "user", client.UserID, "connections", len(set))
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	set, ok := h.clients[client.UserID]
	if ok {
		if _, present := set[client]; !present {
			ok = false
		}
		delete(set, client)
		if len(set) == 0 {
			delete(h.clients, client.UserID)
		}
	}
	h.mu.Unlock()
	if ok {
		client.Conn.Close()
		h.log.Debug("progress client unregistered", "user", client.UserID)
	}
}

// Connections reports how many connections a user currently has.
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// PublishProgress sends p to every connection of owner. Failed connections
// are dropped.
func (h *Hub) PublishProgress(owner, deckID string, p generation.Progress) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[owner]))
	for c := range h.clients[owner] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	msg := ProgressMessage{Type: "generation_progress", DeckID: deckID, Progress: p}
	for _, c := range targets {
		if err := c.SafeWriteJSON(msg); err != nil {
			h.log.Warn("failed to push progress", "user", owner, "error", err)
			h.Unregister(c)
		}
	}
}
