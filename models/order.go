package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out-for-delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// StatusSequence is the only forward path an order can take.
var StatusSequence = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusOutForDelivery,
	StatusDelivered,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Active reports whether the order is still moving through the sequence.
func (s OrderStatus) Active() bool {
	return s.Valid() && !s.Terminal()
}

func (s OrderStatus) Cancellable() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Next returns the status that follows s in the sequence.
func (s OrderStatus) Next() (OrderStatus, bool) {
	for i, st := range StatusSequence {
		if st == s && i+1 < len(StatusSequence) {
			return StatusSequence[i+1], true
		}
	}
	return "", false
}

func (s OrderStatus) rank() int {
	for i, st := range StatusSequence {
		if st == s {
			return i
		}
	}
	return -1
}

// CanTransitionTo reports whether moving from s to to is allowed: strictly
// forward along StatusSequence, or to cancelled while still cancellable.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	if to == StatusCancelled {
		return s.Cancellable()
	}
	if s.Terminal() {
		return false
	}
	from, target := s.rank(), to.rank()
	return from >= 0 && target > from
}

type Order struct {
	ID                    string          `json:"id"`
	CustomerID            string          `json:"customerId"`
	RestaurantID          string          `json:"restaurantId"`
	RestaurantName        string          `json:"restaurantName"`
	Items                 []OrderItem     `json:"items"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	DeliveryFee           decimal.Decimal `json:"deliveryFee"`
	ServiceFee            decimal.Decimal `json:"serviceFee"`
	Discount              decimal.Decimal `json:"discount"`
	PromoCode             string          `json:"promoCode,omitempty"`
	Total                 decimal.Decimal `json:"total"`
	DeliveryAddress       string          `json:"deliveryAddress,omitempty"`
	Notes                 string          `json:"notes,omitempty"`
	Status                OrderStatus     `json:"status"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
	EstimatedDeliveryTime time.Time       `json:"estimatedDeliveryTime"`
}

// OrderItem is a snapshot of a cart line, decoupled from the live catalog.
type OrderItem struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Quantity       int             `json:"quantity"`
	Customizations []Customization `json:"customizations,omitempty"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
}

// OrderFilter narrows an order list. Nil and empty fields disable a criterion.
type OrderFilter struct {
	Status       string
	RestaurantID string
	StartDate    *time.Time
	EndDate      *time.Time
	MinTotal     *decimal.Decimal
	MaxTotal     *decimal.Decimal
	SortBy       string
}

type OrderStats struct {
	TotalOrders        int             `json:"totalOrders"`
	CompletedOrders    int             `json:"completedOrders"`
	ActiveOrders       int             `json:"activeOrders"`
	CancelledOrders    int             `json:"cancelledOrders"`
	TotalSpent         decimal.Decimal `json:"totalSpent"`
	AverageOrderValue  decimal.Decimal `json:"averageOrderValue"`
	FavoriteRestaurant *string         `json:"favoriteRestaurant"`
}

// ReorderItem is an order item re-expressed so it can go back into a cart.
type ReorderItem struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Quantity       int             `json:"quantity"`
	Customizations []Customization `json:"customizations,omitempty"`
	RestaurantID   string          `json:"restaurantId"`
	RestaurantName string          `json:"restaurantName"`
}

// OrderEvent describes a status change, published to subscribers and brokers.
type OrderEvent struct {
	OrderID    string      `json:"orderId"`
	CustomerID string      `json:"customerId"`
	Status     OrderStatus `json:"status"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
