package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"quickbite/models"
	"quickbite/repositories"
)

type MenuService struct {
	catalog Catalog
	latency time.Duration
}

func NewMenuService(catalog Catalog, latency time.Duration) *MenuService {
	return &MenuService{catalog: catalog, latency: latency}
}

// GetMenuByRestaurantID groups the restaurant's menu by category.
func (s *MenuService) GetMenuByRestaurantID(ctx context.Context, restaurantID string) (models.CategorizedMenu, error) {
	items, err := s.restaurantItems(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	menu := models.CategorizedMenu{}
	for _, it := range items {
		menu[it.Category] = append(menu[it.Category], it)
	}
	return menu, nil
}

func (s *MenuService) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	if err := wait(ctx, s.latency); err != nil {
		return nil, err
	}
	it, err := s.catalog.MenuItem(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrMenuItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// SearchMenuItems matches q case-insensitively against name, description
// and category. A blank query returns the whole menu.
func (s *MenuService) SearchMenuItems(ctx context.Context, restaurantID, q string) ([]models.MenuItem, error) {
	items, err := s.restaurantItems(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return items, nil
	}
	out := []models.MenuItem{}
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), q) ||
			strings.Contains(strings.ToLower(it.Description), q) ||
			strings.Contains(strings.ToLower(it.Category), q) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *MenuService) restaurantItems(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	if err := wait(ctx, s.latency); err != nil {
		return nil, err
	}
	if _, err := s.catalog.Restaurant(restaurantID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return s.catalog.MenuItems(restaurantID), nil
}
