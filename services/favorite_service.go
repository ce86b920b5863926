package services

import (
	"context"
	"errors"
	"strings"

	"quickbite/models"
	"quickbite/repositories"
)

type FavoriteRepository interface {
	Add(ctx context.Context, owner, restaurantID string) (bool, error)
	Remove(ctx context.Context, owner, restaurantID string) (bool, error)
	List(ctx context.Context, owner string) ([]string, error)
	Clear(ctx context.Context, owner string) error
}

type FavoriteService struct {
	favorites FavoriteRepository
	catalog   Catalog
}

func NewFavoriteService(favorites FavoriteRepository, catalog Catalog) *FavoriteService {
	return &FavoriteService{favorites: favorites, catalog: catalog}
}

func (s *FavoriteService) AddToFavorites(ctx context.Context, owner, restaurantID string) (*models.Restaurant, error) {
	r, err := s.restaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	added, err := s.favorites.Add(ctx, owner, restaurantID)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, ErrAlreadyFavorite
	}
	return r, nil
}

// RemoveFromFavorites is a no-op when the restaurant is not a favorite.
func (s *FavoriteService) RemoveFromFavorites(ctx context.Context, owner, restaurantID string) error {
	_, err := s.favorites.Remove(ctx, owner, restaurantID)
	return err
}

// ToggleFavorite flips the favorite state and returns the new one.
func (s *FavoriteService) ToggleFavorite(ctx context.Context, owner, restaurantID string) (bool, error) {
	removed, err := s.favorites.Remove(ctx, owner, restaurantID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}
	if _, err := s.AddToFavorites(ctx, owner, restaurantID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FavoriteService) IsFavorite(ctx context.Context, owner, restaurantID string) (bool, error) {
	ids, err := s.favorites.List(ctx, owner)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == restaurantID {
			return true, nil
		}
	}
	return false, nil
}

// GetFavorites resolves favorite ids against the catalog, skipping ones
// that no longer exist.
func (s *FavoriteService) GetFavorites(ctx context.Context, owner string) ([]models.Restaurant, error) {
	ids, err := s.favorites.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]models.Restaurant, 0, len(ids))
	for _, id := range ids {
		if r, err := s.catalog.Restaurant(id); err == nil {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *FavoriteService) SearchFavorites(ctx context.Context, owner, q string) ([]models.Restaurant, error) {
	favorites, err := s.GetFavorites(ctx, owner)
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return favorites, nil
	}
	out := []models.Restaurant{}
	for _, r := range favorites {
		if matchesRestaurant(r, q) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *FavoriteService) ClearFavorites(ctx context.Context, owner string) error {
	return s.favorites.Clear(ctx, owner)
}

func (s *FavoriteService) restaurant(id string) (*models.Restaurant, error) {
	r, err := s.catalog.Restaurant(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
