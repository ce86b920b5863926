package repositories

import (
	"context"
	"errors"

	"quickbite/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresReviewRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReviewRepository(db *pgxpool.Pool) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

const reviewColumns = `id, owner, restaurant_id, user_name, rating, comment, photos, created_at, helpful`

func (r *PostgresReviewRepository) Create(ctx context.Context, rv *models.Review) error {
	photos := rv.Photos
	if photos == nil {
		photos = []string{}
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO reviews (`+reviewColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rv.ID, rv.OwnerID, rv.RestaurantID, rv.UserName, rv.Rating, rv.Comment, photos, rv.Date, rv.Helpful)
	return err
}

func (r *PostgresReviewRepository) FindAll(ctx context.Context) ([]models.Review, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanReview)
}

func (r *PostgresReviewRepository) FindByRestaurant(ctx context.Context, restaurantID string) ([]models.Review, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE restaurant_id = $1 ORDER BY created_at DESC`,
		restaurantID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanReview)
}

func (r *PostgresReviewRepository) FindByID(ctx context.Context, id string) (*models.Review, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	rv, err := pgx.CollectOneRow(rows, scanReview)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *PostgresReviewRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresReviewRepository) IncrementHelpful(ctx context.Context, id string) (*models.Review, error) {
	rows, err := r.db.Query(ctx,
		`UPDATE reviews SET helpful = helpful + 1 WHERE id = $1 RETURNING `+reviewColumns, id)
	if err != nil {
		return nil, err
	}
	rv, err := pgx.CollectOneRow(rows, scanReview)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *PostgresReviewRepository) CountByOwner(ctx context.Context, owner string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE owner = $1`, owner).Scan(&n)
	return n, err
}

func scanReview(row pgx.CollectableRow) (models.Review, error) {
	var rv models.Review
	err := row.Scan(&rv.ID, &rv.OwnerID, &rv.RestaurantID, &rv.UserName, &rv.Rating,
		&rv.Comment, &rv.Photos, &rv.Date, &rv.Helpful)
	return rv, err
}
