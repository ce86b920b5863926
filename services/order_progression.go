package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"quickbite/models"
	"quickbite/repositories"

	"github.com/rs/zerolog/log"
)

const stepTimeout = 5 * time.Second

// OrderProgressor advances orders along models.StatusSequence on in-process
// timers. delays[i] is the wait before leaving StatusSequence[i]. Timers are
// neither persisted nor resumed after a restart.
type OrderProgressor struct {
	orders       OrderRepository
	delays       []time.Duration
	onTransition func(models.OrderEvent)
	now          func() time.Time

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

func NewOrderProgressor(orders OrderRepository, delays []time.Duration, onTransition func(models.OrderEvent)) *OrderProgressor {
	return &OrderProgressor{
		orders:       orders,
		delays:       delays,
		onTransition: onTransition,
		now:          time.Now,
		timers:       make(map[string]*time.Timer),
	}
}

// Start schedules the next step for the order from its current status.
func (p *OrderProgressor) Start(order models.Order) {
	p.schedule(order.ID, order.CustomerID, order.Status)
}

func (p *OrderProgressor) schedule(orderID, customerID string, from models.OrderStatus) {
	to, ok := from.Next()
	if !ok {
		p.Forget(orderID)
		return
	}
	delay, ok := p.delayFor(from)
	if !ok {
		p.Forget(orderID)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	if t, ok := p.timers[orderID]; ok {
		t.Stop()
	}
	p.timers[orderID] = time.AfterFunc(delay, func() {
		p.step(orderID, customerID, from, to)
	})
}

func (p *OrderProgressor) step(orderID, customerID string, from, to models.OrderStatus) {
	ctx, cancel := context.WithTimeout(context.Background(), stepTimeout)
	defer cancel()

	at := p.now()
	moved, err := p.orders.UpdateStatusGuard(ctx, orderID, from, to, at)
	if errors.Is(err, repositories.ErrNotFound) {
		p.Forget(orderID)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID).Str("from", string(from)).Msg("status progression failed")
		p.Forget(orderID)
		return
	}

	if moved {
		log.Debug().Str("order_id", orderID).Str("status", string(to)).Msg("order advanced")
		if p.onTransition != nil {
			p.onTransition(models.OrderEvent{OrderID: orderID, CustomerID: customerID, Status: to, UpdatedAt: at})
		}
		p.schedule(orderID, customerID, to)
		return
	}

	// The order changed underneath us: continue from wherever it is now,
	// which ends the chain for terminal orders.
	current, err := p.orders.FindByID(ctx, orderID)
	if err != nil {
		p.Forget(orderID)
		return
	}
	p.schedule(orderID, customerID, current.Status)
}

func (p *OrderProgressor) delayFor(from models.OrderStatus) (time.Duration, bool) {
	for i, st := range models.StatusSequence {
		if st == from && i < len(p.delays) {
			return p.delays[i], true
		}
	}
	return 0, false
}

// Forget drops any pending timer for the order.
func (p *OrderProgressor) Forget(orderID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if t, ok := p.timers[orderID]; ok {
		t.Stop()
		delete(p.timers, orderID)
	}
}

func (p *OrderProgressor) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.timers)
}

// Stop cancels every pending timer; later schedules are ignored.
func (p *OrderProgressor) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	for id, t := range p.timers {
		t.Stop()
		delete(p.timers, id)
	}
}
