package services

import (
	"time"

	"quickbite/models"
	"quickbite/repositories"
)

var (
	testFees       = dec("2.99")
	testServiceFee = dec("1.50")
)

func testCatalog() *repositories.Catalog {
	restaurants := []models.Restaurant{
		{ID: "r1", Name: "Burger Palace", Cuisine: []string{"American", "Burgers"}, Rating: 4.5, DeliveryTime: 25, DeliveryFee: dec("2.99"), MinimumOrder: dec("15"), IsOpen: true},
		{ID: "r2", Name: "Pizza Corner", Cuisine: []string{"Italian", "Pizza"}, Rating: 4.2, DeliveryTime: 35, DeliveryFee: dec("1.99"), MinimumOrder: dec("0"), IsOpen: true},
		{ID: "r3", Name: "Sushi Express", Cuisine: []string{"Japanese"}, Rating: 4.8, DeliveryTime: 40, DeliveryFee: dec("3.49"), MinimumOrder: dec("20"), IsOpen: false},
	}
	items := []models.MenuItem{
		{ID: "burger", RestaurantID: "r1", Name: "Classic Burger", Description: "Beef patty with pickles", Category: "Burgers", Price: dec("10.00"), IsAvailable: true,
			Customizations: []models.Customization{priced("Extra Cheese", "1.50"), priced("Bacon", "2.00"), {Name: "No Pickles"}}},
		{ID: "fries", RestaurantID: "r1", Name: "Loaded Fries", Description: "Fries with cheese sauce", Category: "Sides", Price: dec("5.25"), IsAvailable: true},
		{ID: "shake", RestaurantID: "r1", Name: "Vanilla Shake", Description: "Thick and cold", Category: "Drinks", Price: dec("4.75"), IsAvailable: false},
		{ID: "margherita", RestaurantID: "r2", Name: "Margherita", Description: "Tomato and basil", Category: "Pizza", Price: dec("11.00"), IsAvailable: true},
	}
	return repositories.NewCatalog(restaurants, items)
}

func newTestCartService() *CartService {
	return NewCartService(repositories.NewMemoryCartStore(), testCatalog(), testFees, testServiceFee)
}

func day(year int, month time.Month, d int) models.Date {
	return models.Date{Time: time.Date(year, month, d, 0, 0, 0, 0, time.UTC)}
}

func testPromotions() []models.Promotion {
	future := day(time.Now().Year()+1, time.December, 31)
	past := day(2020, time.January, 1)
	return []models.Promotion{
		{ID: "1", Code: "BURGER20", Type: models.PromoPercentage, DiscountValue: dec("20"), RestaurantID: "r1", RestaurantName: "Burger Palace",
			MinimumOrder: dec("15"), MaximumDiscount: dec("5"), UsageLimit: 1, ExpiryDate: future, IsActive: true},
		{ID: "2", Code: "FREEDEL", Type: models.PromoFreeDelivery, RestaurantID: "r2", RestaurantName: "Pizza Corner",
			ExpiryDate: day(time.Now().Year()+1, time.June, 1), IsActive: true},
		{ID: "3", Code: "SAVE10", Type: models.PromoFixedAmount, DiscountValue: dec("10"), ExpiryDate: future, IsActive: true, UsageLimit: 3},
		{ID: "4", Code: "OLD", Type: models.PromoPercentage, DiscountValue: dec("50"), ExpiryDate: past, IsActive: true},
		{ID: "5", Code: "PAUSED", Type: models.PromoPercentage, DiscountValue: dec("30"), ExpiryDate: future, IsActive: false},
		{ID: "6", Code: "BOGO", Type: models.PromoBuyOneGetOne, DiscountValue: dec("50"), MaximumDiscount: dec("8"), ExpiryDate: future, IsActive: true},
	}
}
