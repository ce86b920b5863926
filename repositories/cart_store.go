package repositories

import (
	"context"
	"sync"

	"quickbite/models"
)

// MemoryCartStore keeps one cart per owner in process.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string]models.Cart
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string]models.Cart)}
}

// Get returns the owner's cart, or an empty one if none is stored.
func (s *MemoryCartStore) Get(_ context.Context, owner string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[owner]
	if !ok {
		return &models.Cart{Owner: owner, Lines: []models.CartLine{}}, nil
	}
	out := cloneCart(cart)
	return &out, nil
}

func (s *MemoryCartStore) Save(_ context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[cart.Owner] = cloneCart(*cart)
	return nil
}

func (s *MemoryCartStore) Delete(_ context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, owner)
	return nil
}

func cloneCart(c models.Cart) models.Cart {
	lines := make([]models.CartLine, len(c.Lines))
	for i, l := range c.Lines {
		l.Customizations = append([]models.Customization(nil), l.Customizations...)
		lines[i] = l
	}
	c.Lines = lines
	return c
}
