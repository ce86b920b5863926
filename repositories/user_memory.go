package repositories

import (
	"context"
	"strings"
	"sync"
	"time"

	"quickbite/models"
)

// MemoryUserRepository mirrors UserRepository for runs without Postgres.
type MemoryUserRepository struct {
	mu       sync.RWMutex
	nextID   int
	users    map[int]models.User
	profiles map[int]models.UserProfile
	settings map[int]models.UserSettings
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:    make(map[int]models.User),
		profiles: make(map[int]models.UserProfile),
		settings: make(map[int]models.UserSettings),
	}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrDuplicate
		}
	}

	r.nextID++
	now := time.Now()
	user.ID = r.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id int) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) UpdatePassword(_ context.Context, userID int, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Password = hashedPassword
	u.UpdatedAt = time.Now()
	r.users[userID] = u
	return nil
}

func (r *MemoryUserRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	delete(r.profiles, id)
	delete(r.settings, id)
	return nil
}

func (r *MemoryUserRepository) CreateProfile(_ context.Context, profile *models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	profile.ID = profile.UserID
	profile.CreatedAt = now
	profile.UpdatedAt = now
	r.profiles[profile.UserID] = *profile
	return nil
}

func (r *MemoryUserRepository) GetProfile(_ context.Context, userID int) (*models.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *MemoryUserRepository) UpdateProfile(_ context.Context, profile *models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[profile.UserID]; !ok {
		return ErrNotFound
	}
	profile.UpdatedAt = time.Now()
	r.profiles[profile.UserID] = *profile
	return nil
}

func (r *MemoryUserRepository) GetUserWithProfile(_ context.Context, userID int) (*models.UserWithProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	p := r.profiles[userID]
	return &models.UserWithProfile{
		ID:          u.ID,
		Email:       u.Email,
		Role:        u.Role,
		FullName:    p.FullName,
		Phone:       p.Phone,
		Address:     p.Address,
		DateOfBirth: p.DateOfBirth,
		PhotoURL:    p.PhotoURL,
		CreatedAt:   u.CreatedAt,
	}, nil
}

func (r *MemoryUserRepository) GetSettings(_ context.Context, userID int) (models.UserSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if s, ok := r.settings[userID]; ok {
		return s, nil
	}
	return models.DefaultUserSettings(), nil
}

func (r *MemoryUserRepository) SaveSettings(_ context.Context, userID int, s models.UserSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings[userID] = s
	return nil
}
