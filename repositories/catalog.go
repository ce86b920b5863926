package repositories

import "quickbite/models"

// Catalog is the fully loaded, read-only set of restaurants and menu items.
type Catalog struct {
	restaurants []models.Restaurant
	items       []models.MenuItem
	byID        map[string]int
	itemByID    map[string]int
}

func NewCatalog(restaurants []models.Restaurant, items []models.MenuItem) *Catalog {
	c := &Catalog{
		restaurants: restaurants,
		items:       items,
		byID:        make(map[string]int, len(restaurants)),
		itemByID:    make(map[string]int, len(items)),
	}
	for i, r := range restaurants {
		c.byID[r.ID] = i
	}
	for i, it := range items {
		c.itemByID[it.ID] = i
	}
	return c
}

func (c *Catalog) Restaurants() []models.Restaurant {
	out := make([]models.Restaurant, len(c.restaurants))
	copy(out, c.restaurants)
	return out
}

func (c *Catalog) Restaurant(id string) (models.Restaurant, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Restaurant{}, ErrNotFound
	}
	return c.restaurants[i], nil
}

// MenuItems returns the menu of one restaurant in catalog order.
func (c *Catalog) MenuItems(restaurantID string) []models.MenuItem {
	out := []models.MenuItem{}
	for _, it := range c.items {
		if it.RestaurantID == restaurantID {
			out = append(out, it)
		}
	}
	return out
}

func (c *Catalog) MenuItem(id string) (models.MenuItem, error) {
	i, ok := c.itemByID[id]
	if !ok {
		return models.MenuItem{}, ErrNotFound
	}
	return c.items[i], nil
}

func (c *Catalog) AllMenuItems() []models.MenuItem {
	out := make([]models.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}
