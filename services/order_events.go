package services

import (
	"context"
	"sync"

	"quickbite/models"
)

// OrderEventPublisher forwards order status changes to an external channel.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event models.OrderEvent) error
	Close() error
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, models.OrderEvent) error { return nil }
func (NoopPublisher) Close() error                                    { return nil }

const hubBuffer = 8

// OrderHub fans status changes out to in-process subscribers of one order.
type OrderHub struct {
	mu   sync.Mutex
	subs map[string]map[chan models.OrderEvent]struct{}
}

func NewOrderHub() *OrderHub {
	return &OrderHub{subs: make(map[string]map[chan models.OrderEvent]struct{})}
}

// Subscribe returns a channel of events for orderID and a func that
// unsubscribes and closes it.
func (h *OrderHub) Subscribe(orderID string) (<-chan models.OrderEvent, func()) {
	ch := make(chan models.OrderEvent, hubBuffer)

	h.mu.Lock()
	if h.subs[orderID] == nil {
		h.subs[orderID] = make(map[chan models.OrderEvent]struct{})
	}
	h.subs[orderID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[orderID], ch)
			if len(h.subs[orderID]) == 0 {
				delete(h.subs, orderID)
			}
			close(ch)
		})
	}
}

// Broadcast never blocks; a subscriber with a full buffer misses the event.
func (h *OrderHub) Broadcast(event models.OrderEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs[event.OrderID] {
		select {
		case ch <- event:
		default:
		}
	}
}

func (h *OrderHub) Subscribers(orderID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[orderID])
}
