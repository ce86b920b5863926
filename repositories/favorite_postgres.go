package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresFavoriteRepository struct {
	db *pgxpool.Pool
}

func NewPostgresFavoriteRepository(db *pgxpool.Pool) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{db: db}
}

func (r *PostgresFavoriteRepository) Add(ctx context.Context, owner, restaurantID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO favorites (owner, restaurant_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (owner, restaurant_id) DO NOTHING`, owner, restaurantID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresFavoriteRepository) Remove(ctx context.Context, owner, restaurantID string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM favorites WHERE owner = $1 AND restaurant_id = $2`, owner, restaurantID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresFavoriteRepository) List(ctx context.Context, owner string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT restaurant_id FROM favorites WHERE owner = $1 ORDER BY created_at, restaurant_id`, owner)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (r *PostgresFavoriteRepository) Clear(ctx context.Context, owner string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE owner = $1`, owner)
	return err
}
