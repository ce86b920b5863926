package repositories

import (
	"context"
	"sync"
	"time"

	"quickbite/models"
)

// MemoryOrderRepository keeps orders in process. Orders of one customer are
// kept newest first.
type MemoryOrderRepository struct {
	mu         sync.RWMutex
	orders     map[string]*models.Order
	byCustomer map[string][]string
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders:     make(map[string]*models.Order),
		byCustomer: make(map[string][]string),
	}
}

func (r *MemoryOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneOrder(*order)
	r.orders[order.ID] = &stored
	ids := r.byCustomer[order.CustomerID]
	r.byCustomer[order.CustomerID] = append([]string{order.ID}, ids...)
	return nil
}

func (r *MemoryOrderRepository) FindByID(_ context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneOrder(*o)
	return &out, nil
}

func (r *MemoryOrderRepository) FindByCustomer(_ context.Context, customerID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byCustomer[customerID]
	out := make([]models.Order, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneOrder(*r.orders[id]))
	}
	return out, nil
}

func (r *MemoryOrderRepository) UpdateStatusGuard(_ context.Context, id string, from, to models.OrderStatus, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return false, ErrNotFound
	}
	if o.Status != from {
		return false, nil
	}
	o.Status = to
	o.UpdatedAt = at
	return true, nil
}

func (r *MemoryOrderRepository) DeleteByCustomer(_ context.Context, customerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.byCustomer[customerID] {
		delete(r.orders, id)
	}
	delete(r.byCustomer, customerID)
	return nil
}

func cloneOrder(o models.Order) models.Order {
	items := make([]models.OrderItem, len(o.Items))
	for i, it := range o.Items {
		it.Customizations = append([]models.Customization(nil), it.Customizations...)
		items[i] = it
	}
	o.Items = items
	return o
}
