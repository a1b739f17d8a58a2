package hub

import (
	"context"
	"log/slog"
	"sync"

	"github.com/atikulmunna/gdkit/internal/model"
)

const subscriberBuffer = 256

// Hub fans clean events out to every subscriber, such as the report and
// websocket clients.
type Hub struct {
	input       <-chan model.CleanEvent
	mu          sync.RWMutex
	subscribers []chan model.CleanEvent
	dropped     int64
	log         *slog.Logger
}

// New creates a Hub that reads from the input channel.
func New(input <-chan model.CleanEvent, log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		input: input,
		log:   log,
	}
}

// Subscribe returns a buffered channel that will receive clean events.
// Each subscriber gets a copy of every event.
func (h *Hub) Subscribe() <-chan model.CleanEvent {
	ch := make(chan model.CleanEvent, subscriberBuffer)
	h.mu.Lock()
	h.subscribers = append(h.subscribers, ch)
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a channel returned by Subscribe.
func (h *Hub) Unsubscribe(sub <-chan model.CleanEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, ch := range h.subscribers {
		if ch == sub {
			close(ch)
			h.subscribers = append(h.subscribers[:i], h.subscribers[i+1:]...)
			return
		}
	}
}

// Dropped returns the total number of events dropped due to slow consumers.
func (h *Hub) Dropped() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped
}

// Subscribers returns the number of active subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Start reads from the input channel and broadcasts. Blocks until the
// context is cancelled or the input channel is closed.
func (h *Hub) Start(ctx context.Context) {
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-h.input:
			if !ok {
				return
			}
			h.broadcast(ev)
		}
	}
}

// broadcast sends an event to all subscribers. A full subscriber channel
// drops the event for that subscriber only.
func (h *Hub) broadcast(ev model.CleanEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- ev:
		default:
			h.dropped++
			h.log.Warn("hub.dropped", "path", ev.Path, "total_dropped", h.dropped)
		}
	}
}

// closeAll closes all subscriber channels.
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subscribers {
		close(ch)
	}
	h.subscribers = nil
}
