package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"quickbite/models"
	"quickbite/repositories"
)

type RestaurantService struct {
	catalog Catalog
	latency time.Duration
}

func NewRestaurantService(catalog Catalog, latency time.Duration) *RestaurantService {
	return &RestaurantService{catalog: catalog, latency: latency}
}

func (s *RestaurantService) GetAllRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	if err := wait(ctx, s.latency); err != nil {
		return nil, err
	}
	return s.catalog.Restaurants(), nil
}

func (s *RestaurantService) GetRestaurantByID(ctx context.Context, id string) (*models.Restaurant, error) {
	if err := wait(ctx, s.latency); err != nil {
		return nil, err
	}
	r, err := s.catalog.Restaurant(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// SearchRestaurants matches q case-insensitively against the name and each
// cuisine. A blank query returns everything.
func (s *RestaurantService) SearchRestaurants(ctx context.Context, q string) ([]models.Restaurant, error) {
	all, err := s.GetAllRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return all, nil
	}
	out := []models.Restaurant{}
	for _, r := range all {
		if matchesRestaurant(r, q) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *RestaurantService) FilterRestaurants(ctx context.Context, f models.RestaurantFilter) ([]models.Restaurant, error) {
	all, err := s.GetAllRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	return ApplyRestaurantFilter(all, f), nil
}

// ApplyRestaurantFilter keeps the restaurants matching every set criterion.
func ApplyRestaurantFilter(restaurants []models.Restaurant, f models.RestaurantFilter) []models.Restaurant {
	out := []models.Restaurant{}
	for _, r := range restaurants {
		if len(f.Cuisine) > 0 && !sharesCuisine(r.Cuisine, f.Cuisine) {
			continue
		}
		if f.Rating > 0 && r.Rating < f.Rating {
			continue
		}
		if f.MaxDeliveryTime > 0 && r.DeliveryTime > f.MaxDeliveryTime {
			continue
		}
		if f.IsOpen != nil && r.IsOpen != *f.IsOpen {
			continue
		}
		out = append(out, r)
	}
	return out
}

// matchesRestaurant expects q already lower-cased.
func matchesRestaurant(r models.Restaurant, q string) bool {
	if strings.Contains(strings.ToLower(r.Name), q) {
		return true
	}
	for _, c := range r.Cuisine {
		if strings.Contains(strings.ToLower(c), q) {
			return true
		}
	}
	return false
}

func sharesCuisine(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

// wait sleeps for d unless ctx ends first.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
