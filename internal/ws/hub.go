// Package ws pushes live mining status to connected clients. Each
// client gets its own user's status on every tick, so the frontend
// progress bar moves without polling.
package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"mining_webapp/internal/logger"
	"mining_webapp/internal/mining"
)

// StatusFunc resolves the current mining status for one user.
type StatusFunc func(ctx context.Context, userID int64) (mining.Status, error)

type statusEvent struct {
	Type string        `json:"type"`
	Data mining.Status `json:"data"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	status   StatusFunc
	interval time.Duration
}

func NewHub(status StatusFunc, interval time.Duration) *Hub {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Hub{
		clients:  make(map[*Client]struct{}),
		status:   status,
		interval: interval,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	logger.Debug("ws client connected", "user_id", c.UserID)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	logger.Debug("ws client disconnected", "user_id", c.UserID)
}

// Run ticks until the context is cancelled, pushing each connected
// user's status. Slow clients are dropped rather than blocking the
// broadcast.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			h.broadcast(ctx)
		}
	}
}

func (h *Hub) broadcast(ctx context.Context) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		status, err := h.status(ctx, c.UserID)
		if err != nil {
			logger.Warn("ws status lookup failed", "user_id", c.UserID, "error", err)
			continue
		}
		msg, err := json.Marshal(statusEvent{Type: "mining_status", Data: status})
		if err != nil {
			continue
		}
		select {
		case c.send <- msg:
		default:
			h.unregister(c)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}
