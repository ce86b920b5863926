package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one add-to-cart event. Lines are never merged.
type CartLine struct {
	ID             string          `json:"id"`
	MenuItem       MenuItem        `json:"menuItem"`
	Customizations []Customization `json:"customizations"`
	Quantity       int             `json:"quantity"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	AddedAt        time.Time       `json:"addedAt"`
}

// Cart is the in-progress, unsubmitted selection of one session.
type Cart struct {
	Owner     string     `json:"-"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartView is the cart with its derived values.
type CartView struct {
	Lines       []CartLine      `json:"lines"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	ItemCount   int             `json:"itemCount"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	ServiceFee  decimal.Decimal `json:"serviceFee"`
	Total       decimal.Decimal `json:"total"`
}
