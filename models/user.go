package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserProfile struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	FullName    string    `json:"full_name"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	DateOfBirth string    `json:"date_of_birth"`
	PhotoURL    string    `json:"photo_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UserWithProfile struct {
	ID          int       `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	FullName    string    `json:"full_name"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	DateOfBirth string    `json:"date_of_birth"`
	PhotoURL    string    `json:"photo_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserSettings struct {
	EmailNotifications bool   `json:"emailNotifications"`
	PushNotifications  bool   `json:"pushNotifications"`
	OrderUpdates       bool   `json:"orderUpdates"`
	Promotions         bool   `json:"promotions"`
	DarkMode           bool   `json:"darkMode"`
	Language           string `json:"language"`
}

// DefaultUserSettings are applied to accounts that never saved settings.
func DefaultUserSettings() UserSettings {
	return UserSettings{
		EmailNotifications: true,
		PushNotifications:  true,
		OrderUpdates:       true,
		Language:           "en",
	}
}

type UserStats struct {
	TotalOrders         int             `json:"totalOrders"`
	TotalSpent          decimal.Decimal `json:"totalSpent"`
	FavoriteRestaurants int             `json:"favoriteRestaurants"`
	ReviewsCount        int             `json:"reviewsCount"`
	MemberSince         time.Time       `json:"memberSince"`
}
