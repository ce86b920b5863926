package repositories

import (
	"context"
	"errors"
	"time"

	"quickbite/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	err := r.db.QueryRow(ctx, query, user.Email, user.Password, user.Role, now, now).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, password, role, created_at, updated_at FROM users WHERE LOWER(email) = LOWER($1)`
	return r.findUser(ctx, query, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT id, email, password, role, created_at, updated_at FROM users WHERE id = $1`
	return r.findUser(ctx, query, id)
}

func (r *UserRepository) findUser(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = $2 WHERE id = $3`
	tag, err := r.db.Exec(ctx, query, hashedPassword, time.Now(), userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the user; profile and settings rows cascade.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM user_profiles WHERE user_id = $1", id); err != nil {
		return err
	}
	result, err := tx.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *UserRepository) CreateProfile(ctx context.Context, profile *models.UserProfile) error {
	query := `
		INSERT INTO user_profiles (user_id, full_name, phone, address, date_of_birth, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return r.db.QueryRow(ctx, query,
		profile.UserID,
		profile.FullName,
		profile.Phone,
		profile.Address,
		profile.DateOfBirth,
		profile.PhotoURL,
		now,
		now,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *UserRepository) GetProfile(ctx context.Context, userID int) (*models.UserProfile, error) {
	query := `
		SELECT id, user_id, full_name, phone, address, date_of_birth, photo_url, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`
	profile := &models.UserProfile{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.Phone,
		&profile.Address,
		&profile.DateOfBirth,
		&profile.PhotoURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, profile *models.UserProfile) error {
	query := `
		UPDATE user_profiles
		SET full_name = $1, phone = $2, address = $3, date_of_birth = $4, photo_url = $5, updated_at = $6
		WHERE user_id = $7
	`
	result, err := r.db.Exec(ctx, query,
		profile.FullName,
		profile.Phone,
		profile.Address,
		profile.DateOfBirth,
		profile.PhotoURL,
		time.Now(),
		profile.UserID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) GetUserWithProfile(ctx context.Context, userID int) (*models.UserWithProfile, error) {
	query := `
		SELECT
			u.id, u.email, u.role, u.created_at,
			COALESCE(up.full_name, '') as full_name,
			COALESCE(up.phone, '') as phone,
			COALESCE(up.address, '') as address,
			COALESCE(up.date_of_birth, '') as date_of_birth,
			COALESCE(up.photo_url, '') as photo_url
		FROM users u
		LEFT JOIN user_profiles up ON u.id = up.user_id
		WHERE u.id = $1
	`
	user := &models.UserWithProfile{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.Role,
		&user.CreatedAt,
		&user.FullName,
		&user.Phone,
		&user.Address,
		&user.DateOfBirth,
		&user.PhotoURL,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetSettings falls back to the defaults when the user never saved any.
func (r *UserRepository) GetSettings(ctx context.Context, userID int) (models.UserSettings, error) {
	query := `
		SELECT email_notifications, push_notifications, order_updates, promotions, dark_mode, language
		FROM user_settings WHERE user_id = $1
	`
	var s models.UserSettings
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.EmailNotifications,
		&s.PushNotifications,
		&s.OrderUpdates,
		&s.Promotions,
		&s.DarkMode,
		&s.Language,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.DefaultUserSettings(), nil
	}
	return s, err
}

func (r *UserRepository) SaveSettings(ctx context.Context, userID int, s models.UserSettings) error {
	query := `
		INSERT INTO user_settings (user_id, email_notifications, push_notifications, order_updates, promotions, dark_mode, language)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			email_notifications = EXCLUDED.email_notifications,
			push_notifications = EXCLUDED.push_notifications,
			order_updates = EXCLUDED.order_updates,
			promotions = EXCLUDED.promotions,
			dark_mode = EXCLUDED.dark_mode,
			language = EXCLUDED.language
	`
	_, err := r.db.Exec(ctx, query, userID,
		s.EmailNotifications, s.PushNotifications, s.OrderUpdates, s.Promotions, s.DarkMode, s.Language)
	return err
}
