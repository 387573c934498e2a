package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"founder-match/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Envelope is the frame written to clients.
type Envelope struct {
	Type      string `json:"type"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

// Hub tracks live connections per user. Registration changes go through the
// Run loop; pushes never block on a slow client. Once Run returns the hub
// refuses new connections.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *zap.Logger

	done    chan struct{}
	stopMu  sync.RWMutex
	stopped bool
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.stop()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
			total := h.countLocked()
			h.mutex.Unlock()
			metrics.WSConnections.Inc()
			h.logger.Debug("ws connected", zap.String("user_id", client.userID.String()), zap.Int("total_clients", total))

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			removed := false
			if set, ok := h.clients[client.userID]; ok {
				if _, ok := set[client]; ok {
					delete(set, client)
					close(client.send)
					removed = true
				}
				if len(set) == 0 {
					delete(h.clients, client.userID)
				}
			}
			total := h.countLocked()
			h.mutex.Unlock()
			if removed {
				metrics.WSConnections.Dec()
			}
			h.logger.Debug("ws disconnected", zap.String("user_id", client.userID.String()), zap.Int("total_clients", total))
		}
	}
}

// Register queues the client for tracking. It reports false once the hub has
// stopped; the caller then owns closing the connection.
func (h *Hub) Register(client *Client) bool {
	if h == nil || client == nil {
		return false
	}
	h.stopMu.RLock()
	defer h.stopMu.RUnlock()
	if h.stopped {
		return false
	}
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister is a no-op after the hub stopped, since stopping already closed
// every tracked client.
func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	h.stopMu.RLock()
	defer h.stopMu.RUnlock()
	if h.stopped {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// stop wakes blocked Register and Unregister calls, waits for them to leave,
// and closes every client the hub still knows of, queued ones included.
func (h *Hub) stop() {
	close(h.done)
	h.stopMu.Lock()
	h.stopped = true
	h.stopMu.Unlock()

	h.closeAll()
	for {
		select {
		case c := <-h.register:
			if c != nil {
				close(c.send)
			}
		default:
			return
		}
	}
}

// PushToUser sends a notification frame to every connection of the user and
// reports whether at least one connection accepted it.
func (h *Hub) PushToUser(userID uuid.UUID, payload any) bool {
	if h == nil {
		return false
	}
	b, err := json.Marshal(Envelope{
		Type:      "notification",
		Data:      payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.logger.Warn("ws payload marshal failed", zap.Error(err))
		return false
	}

	// Sends happen under the read lock so Run cannot close a channel mid-send.
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	delivered := false
	for c := range h.clients[userID] {
		select {
		case c.send <- b:
			delivered = true
		default:
			h.logger.Warn("ws client too slow, dropping", zap.String("user_id", userID.String()))
			select {
			case h.unregister <- c:
			default:
			}
		}
	}
	return delivered
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.countLocked()
}

func (h *Hub) countLocked() int {
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for uid, set := range h.clients {
		for c := range set {
			close(c.send)
			metrics.WSConnections.Dec()
		}
		delete(h.clients, uid)
	}
}
