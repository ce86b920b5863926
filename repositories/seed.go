package repositories

import (
	"embed"
	"encoding/json"
	"fmt"

	"quickbite/models"
)

//go:embed seed/*.json
var seedFS embed.FS

func readSeed(name string, v any) error {
	raw, err := seedFS.ReadFile("seed/" + name)
	if err != nil {
		return fmt.Errorf("read seed %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode seed %s: %w", name, err)
	}
	return nil
}

func SeedRestaurants() ([]models.Restaurant, error) {
	var out []models.Restaurant
	if err := readSeed("restaurants.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func SeedMenuItems() ([]models.MenuItem, error) {
	var out []models.MenuItem
	if err := readSeed("menu_items.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func SeedPromotions() ([]models.Promotion, error) {
	var out []models.Promotion
	if err := readSeed("promotions.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SeedCatalog builds the bundled demo catalog.
func SeedCatalog() (*Catalog, error) {
	restaurants, err := SeedRestaurants()
	if err != nil {
		return nil, err
	}
	items, err := SeedMenuItems()
	if err != nil {
		return nil, err
	}
	return NewCatalog(restaurants, items), nil
}
