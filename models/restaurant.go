package models

import "github.com/shopspring/decimal"

type Restaurant struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Cuisine      []string        `json:"cuisine"`
	Rating       float64         `json:"rating"`
	DeliveryTime int             `json:"deliveryTime"`
	DeliveryFee  decimal.Decimal `json:"deliveryFee"`
	MinimumOrder decimal.Decimal `json:"minimumOrder"`
	IsOpen       bool            `json:"isOpen"`
	Image        string          `json:"image"`
	Tags         []string        `json:"tags"`
	Description  string          `json:"description"`
}

// RestaurantFilter narrows the restaurant list. Zero values disable a criterion.
type RestaurantFilter struct {
	Cuisine         []string
	Rating          float64
	MaxDeliveryTime int
	IsOpen          *bool
}
