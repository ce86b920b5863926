package services

import (
	"context"
	"testing"
	"time"

	"quickbite/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedTime() time.Time {
	return time.UnixMilli(1700000000000)
}

func restaurantIDs(rs []models.Restaurant) []string {
	ids := make([]string, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestSearchRestaurants(t *testing.T) {
	svc := NewRestaurantService(testCatalog(), 0)
	ctx := context.Background()

	tests := []struct {
		q    string
		want []string
	}{
		{"", []string{"r1", "r2", "r3"}},
		{"   ", []string{"r1", "r2", "r3"}},
		{"PIZZA", []string{"r2"}},
		{"burg", []string{"r1"}},
		{"japanese", []string{"r3"}},
		{"an", []string{"r1", "r2", "r3"}},
		{"thai", []string{}},
	}
	for _, tt := range tests {
		got, err := svc.SearchRestaurants(ctx, tt.q)
		require.NoError(t, err)
		assert.Equal(t, tt.want, restaurantIDs(got), "query %q", tt.q)
	}
}

func TestFilterRestaurants(t *testing.T) {
	svc := NewRestaurantService(testCatalog(), 0)
	ctx := context.Background()
	open := true

	tests := []struct {
		name   string
		filter models.RestaurantFilter
		want   []string
	}{
		{"no criteria", models.RestaurantFilter{}, []string{"r1", "r2", "r3"}},
		{"cuisine any-of", models.RestaurantFilter{Cuisine: []string{"pizza", "japanese"}}, []string{"r2", "r3"}},
		{"minimum rating", models.RestaurantFilter{Rating: 4.5}, []string{"r1", "r3"}},
		{"max delivery time", models.RestaurantFilter{MaxDeliveryTime: 35}, []string{"r1", "r2"}},
		{"open only", models.RestaurantFilter{IsOpen: &open}, []string{"r1", "r2"}},
		{"combined", models.RestaurantFilter{Rating: 4.5, IsOpen: &open}, []string{"r1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.FilterRestaurants(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, restaurantIDs(got))
		})
	}
}

func TestGetRestaurantByID(t *testing.T) {
	svc := NewRestaurantService(testCatalog(), 0)

	r, err := svc.GetRestaurantByID(context.Background(), "r2")
	require.NoError(t, err)
	assert.Equal(t, "Pizza Corner", r.Name)

	_, err = svc.GetRestaurantByID(context.Background(), "zzz")
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestSimulatedLatencyHonoursCancellation(t *testing.T) {
	svc := NewRestaurantService(testCatalog(), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GetAllRestaurants(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMenuGroupedByCategory(t *testing.T) {
	svc := NewMenuService(testCatalog(), 0)

	menu, err := svc.GetMenuByRestaurantID(context.Background(), "r1")
	require.NoError(t, err)
	assert.Len(t, menu, 3)
	assert.Equal(t, "burger", menu["Burgers"][0].ID)
	assert.Equal(t, "fries", menu["Sides"][0].ID)

	_, err = svc.GetMenuByRestaurantID(context.Background(), "zzz")
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestSearchMenuItems(t *testing.T) {
	svc := NewMenuService(testCatalog(), 0)
	ctx := context.Background()

	byName, err := svc.SearchMenuItems(ctx, "r1", "FRIES")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "fries", byName[0].ID)

	byDescription, err := svc.SearchMenuItems(ctx, "r1", "pickles")
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	assert.Equal(t, "burger", byDescription[0].ID)

	byCategory, err := svc.SearchMenuItems(ctx, "r1", "drinks")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "shake", byCategory[0].ID)

	all, err := svc.SearchMenuItems(ctx, "r1", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := svc.SearchMenuItems(ctx, "r2", "burger")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetMenuItem(t *testing.T) {
	svc := NewMenuService(testCatalog(), 0)

	item, err := svc.GetMenuItem(context.Background(), "margherita")
	require.NoError(t, err)
	assert.Equal(t, "r2", item.RestaurantID)

	_, err = svc.GetMenuItem(context.Background(), "zzz")
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}
