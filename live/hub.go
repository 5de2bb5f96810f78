// Package live fans leaderboard snapshots out to websocket subscribers.
package live

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"fishing-game/models"
)

// Hub keeps one buffered channel per subscriber. Each channel holds at most
// the latest snapshot; a subscriber that falls behind skips straight to it.
type Hub struct {
	mu      sync.RWMutex
	clients map[chan []byte]struct{}
	closed  bool
	log     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[chan []byte]struct{}),
		log:     logger,
	}
}

// Subscribe registers a new subscriber. The channel is closed when the hub
// shuts down or the returned cancel func is called.
func (h *Hub) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, 1)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.clients[ch] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	h.log.Debug("live subscriber added", "subscribers", n)

	var once sync.Once
	return ch, func() {
		once.Do(func() { h.remove(ch) })
	}
}

func (h *Hub) remove(ch chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[ch]; !ok {
		return
	}
	delete(h.clients, ch)
	close(ch)
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish pushes scores to every subscriber without blocking. Publishes are
// serialised so the snapshot left in a buffer is always the last one published.
func (h *Hub) Publish(scores []models.Score) error {
	msg, err := Encode(scores)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- msg:
		default:
			// Replace the stale snapshot still waiting in the buffer.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- msg:
			default:
			}
		}
	}
	return nil
}

// Close disconnects every subscriber. Later subscriptions are closed at once.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.clients {
		delete(h.clients, ch)
		close(ch)
	}
}

// Encode renders a snapshot in the same shape GET /leaderboard returns.
func Encode(scores []models.Score) ([]byte, error) {
	if scores == nil {
		scores = []models.Score{}
	}
	msg, err := json.Marshal(scores)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return msg, nil
}
