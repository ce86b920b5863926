package repositories

import (
	"context"
	"sync"
)

// MemoryFavoriteRepository keeps favorite restaurant ids per owner in the
// order they were added.
type MemoryFavoriteRepository struct {
	mu     sync.RWMutex
	byUser map[string][]string
}

func NewMemoryFavoriteRepository() *MemoryFavoriteRepository {
	return &MemoryFavoriteRepository{byUser: make(map[string][]string)}
}

// Add stores the favorite and reports whether it was newly added.
func (r *MemoryFavoriteRepository) Add(_ context.Context, owner, restaurantID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.byUser[owner] {
		if id == restaurantID {
			return false, nil
		}
	}
	r.byUser[owner] = append(r.byUser[owner], restaurantID)
	return true, nil
}

// Remove reports whether the favorite existed.
func (r *MemoryFavoriteRepository) Remove(_ context.Context, owner, restaurantID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.byUser[owner]
	for i, id := range ids {
		if id == restaurantID {
			r.byUser[owner] = append(ids[:i:i], ids[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryFavoriteRepository) List(_ context.Context, owner string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string{}, r.byUser[owner]...), nil
}

func (r *MemoryFavoriteRepository) Clear(_ context.Context, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byUser, owner)
	return nil
}
