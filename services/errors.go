package services

import "errors"

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrItemUnavailable    = errors.New("menu item is not available")
	ErrCartLineNotFound   = errors.New("cart line not found")

	ErrUnknownCustomization = errors.New("customization is not offered for this item")

	ErrEmptyCart           = errors.New("cart is empty")
	ErrMixedRestaurants    = errors.New("cart contains items from more than one restaurant")
	ErrBelowMinimumOrder   = errors.New("order is below the restaurant minimum")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNotCancellable = errors.New("order cannot be cancelled")
	ErrInvalidTransition   = errors.New("invalid status transition")

	ErrPromotionNotFound       = errors.New("invalid promo code")
	ErrPromotionInactive       = errors.New("promo code is no longer active")
	ErrPromotionExpired        = errors.New("promo code has expired")
	ErrPromotionRestaurant     = errors.New("promo code is not valid for this restaurant")
	ErrPromotionMinimumOrder   = errors.New("order total is below the promo minimum")
	ErrPromotionUsageExhausted = errors.New("promo code usage limit reached")

	ErrReviewNotFound  = errors.New("review not found")
	ErrNotReviewAuthor = errors.New("only the author can delete a review")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrForeignPhoto    = errors.New("photo was not uploaded by this session")
	ErrAlreadyFavorite = errors.New("restaurant is already in favorites")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidPassword    = errors.New("invalid old password")
)
