package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PromotionType string

const (
	PromoPercentage   PromotionType = "percentage"
	PromoFixedAmount  PromotionType = "fixed_amount"
	PromoFreeDelivery PromotionType = "free_delivery"
	PromoBuyOneGetOne PromotionType = "buy_one_get_one"
)

type Promotion struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Code            string          `json:"code"`
	Type            PromotionType   `json:"type"`
	DiscountValue   decimal.Decimal `json:"discountValue"`
	RestaurantID    string          `json:"restaurantId"`
	RestaurantName  string          `json:"restaurantName"`
	MinimumOrder    decimal.Decimal `json:"minimumOrder"`
	MaximumDiscount decimal.Decimal `json:"maximumDiscount"`
	UsageLimit      int             `json:"usageLimit"`
	ExpiryDate      Date            `json:"expiryDate"`
	IsActive        bool            `json:"isActive"`
}

// Expired reports whether the promotion's expiry day has fully passed at now.
func (p Promotion) Expired(now time.Time) bool {
	return p.ExpiryDate.EndOfDay().Before(now)
}

type AppliedPromotion struct {
	Promotion  Promotion       `json:"promotion"`
	Discount   decimal.Decimal `json:"discount"`
	FinalTotal decimal.Decimal `json:"finalTotal"`
}
