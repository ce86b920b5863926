package services

import "quickbite/models"

// Catalog is the read-only restaurant and menu data the services price
// and search against.
type Catalog interface {
	Restaurants() []models.Restaurant
	Restaurant(id string) (models.Restaurant, error)
	MenuItems(restaurantID string) []models.MenuItem
	MenuItem(id string) (models.MenuItem, error)
}
