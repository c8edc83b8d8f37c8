package telemetry

import (
	"sync"

	"PriceCast/internal/domain/models"
)

// Event is the wire shape pushed to stream subscribers.
type Event struct {
	Type        string                    `json:"type"`
	Performance *models.PerformanceRecord `json:"performance,omitempty"`
	Accuracy    *models.AccuracyRecord    `json:"accuracy,omitempty"`
}

// Hub fans telemetry records out to live observers (the websocket handler
// subscribes one channel per connection). Subscribers that fall behind lose
// events rather than slowing the request path.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a new observer channel.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes an observer channel and closes it.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

func (h *Hub) broadcast(ev Event) {
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			// subscriber is behind, drop the event
		}
	}
	h.mu.Unlock()
}

// OnPerformance implements Sink.
func (h *Hub) OnPerformance(rec models.PerformanceRecord) {
	h.broadcast(Event{Type: "performance", Performance: &rec})
}

// OnAccuracy implements Sink.
func (h *Hub) OnAccuracy(rec models.AccuracyRecord) {
	h.broadcast(Event{Type: "accuracy", Accuracy: &rec})
}

var _ Sink = (*Hub)(nil)
