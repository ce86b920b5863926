package models

import "github.com/shopspring/decimal"

type MenuItem struct {
	ID             string          `json:"id"`
	RestaurantID   string          `json:"restaurantId"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	Price          decimal.Decimal `json:"price"`
	Image          string          `json:"image"`
	IsAvailable    bool            `json:"isAvailable"`
	IsPopular      bool            `json:"isPopular"`
	Customizations []Customization `json:"customizations,omitempty"`
}

// Customization is a selectable option on a menu item. Price is an optional
// delta added to the item's unit price.
type Customization struct {
	Name  string           `json:"name" binding:"required"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// Delta returns the price delta, treating a missing price as zero.
func (c Customization) Delta() decimal.Decimal {
	if c.Price == nil {
		return decimal.Zero
	}
	return *c.Price
}

// CategorizedMenu groups a restaurant's menu items by category.
type CategorizedMenu map[string][]MenuItem
