package repositories

import (
	"context"
	"sort"
	"sync"

	"quickbite/models"
)

type MemoryReviewRepository struct {
	mu      sync.RWMutex
	reviews []models.Review
}

func NewMemoryReviewRepository() *MemoryReviewRepository {
	return &MemoryReviewRepository{}
}

func (r *MemoryReviewRepository) Create(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *review
	stored.Photos = append([]string{}, review.Photos...)
	r.reviews = append(r.reviews, stored)
	return nil
}

func (r *MemoryReviewRepository) FindAll(_ context.Context) ([]models.Review, error) {
	return r.collect(func(models.Review) bool { return true }), nil
}

func (r *MemoryReviewRepository) FindByRestaurant(_ context.Context, restaurantID string) ([]models.Review, error) {
	return r.collect(func(rv models.Review) bool { return rv.RestaurantID == restaurantID }), nil
}

func (r *MemoryReviewRepository) FindByID(_ context.Context, id string) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rv := range r.reviews {
		if rv.ID == id {
			out := rv
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryReviewRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rv := range r.reviews {
		if rv.ID == id {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryReviewRepository) IncrementHelpful(_ context.Context, id string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.reviews {
		if r.reviews[i].ID == id {
			r.reviews[i].Helpful++
			out := r.reviews[i]
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryReviewRepository) CountByOwner(_ context.Context, owner string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, rv := range r.reviews {
		if rv.OwnerID == owner {
			n++
		}
	}
	return n, nil
}

// collect returns matching reviews newest first.
func (r *MemoryReviewRepository) collect(match func(models.Review) bool) []models.Review {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Review{}
	for _, rv := range r.reviews {
		if match(rv) {
			rv.Photos = append([]string{}, rv.Photos...)
			out = append(out, rv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
