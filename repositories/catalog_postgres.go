package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"quickbite/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// LoadCatalog reads every restaurant and menu item into memory. When the
// tables are empty they are first filled from the bundled seed.
func LoadCatalog(ctx context.Context, db *pgxpool.Pool) (*Catalog, error) {
	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&count); err != nil {
		return nil, fmt.Errorf("count restaurants: %w", err)
	}
	if count == 0 {
		seed, err := SeedCatalog()
		if err != nil {
			return nil, err
		}
		if err := StoreCatalog(ctx, db, seed); err != nil {
			return nil, err
		}
		log.Info().Int("restaurants", len(seed.restaurants)).Int("menu_items", len(seed.items)).Msg("catalog seeded")
	}

	rows, err := db.Query(ctx, `
		SELECT id, name, cuisine, rating, delivery_time, delivery_fee, minimum_order,
		       is_open, image, tags, description
		FROM restaurants ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query restaurants: %w", err)
	}
	restaurants, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Restaurant, error) {
		var r models.Restaurant
		err := row.Scan(&r.ID, &r.Name, &r.Cuisine, &r.Rating, &r.DeliveryTime, &r.DeliveryFee,
			&r.MinimumOrder, &r.IsOpen, &r.Image, &r.Tags, &r.Description)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan restaurants: %w", err)
	}

	rows, err = db.Query(ctx, `
		SELECT id, restaurant_id, name, description, category, price, image,
		       is_available, is_popular, customizations
		FROM menu_items ORDER BY restaurant_id, id`)
	if err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.MenuItem, error) {
		var it models.MenuItem
		var customizations []byte
		if err := row.Scan(&it.ID, &it.RestaurantID, &it.Name, &it.Description, &it.Category,
			&it.Price, &it.Image, &it.IsAvailable, &it.IsPopular, &customizations); err != nil {
			return it, err
		}
		return it, json.Unmarshal(customizations, &it.Customizations)
	})
	if err != nil {
		return nil, fmt.Errorf("scan menu items: %w", err)
	}

	return NewCatalog(restaurants, items), nil
}

// StoreCatalog writes a catalog in one batch.
func StoreCatalog(ctx context.Context, db *pgxpool.Pool, c *Catalog) error {
	batch := &pgx.Batch{}
	for _, r := range c.restaurants {
		batch.Queue(`
			INSERT INTO restaurants (id, name, cuisine, rating, delivery_time, delivery_fee,
			                         minimum_order, is_open, image, tags, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (id) DO NOTHING`,
			r.ID, r.Name, r.Cuisine, r.Rating, r.DeliveryTime, r.DeliveryFee,
			r.MinimumOrder, r.IsOpen, r.Image, r.Tags, r.Description)
	}
	for _, it := range c.items {
		customizations, err := json.Marshal(it.Customizations)
		if err != nil {
			return fmt.Errorf("encode customizations of %s: %w", it.ID, err)
		}
		batch.Queue(`
			INSERT INTO menu_items (id, restaurant_id, name, description, category, price,
			                        image, is_available, is_popular, customizations)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO NOTHING`,
			it.ID, it.RestaurantID, it.Name, it.Description, it.Category, it.Price,
			it.Image, it.IsAvailable, it.IsPopular, customizations)
	}
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("store catalog: %w", err)
	}
	return nil
}
