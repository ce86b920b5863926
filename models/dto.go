package models

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	FullName string `json:"full_name" form:"full_name" binding:"required,min=3"`
	Phone    string `json:"phone" form:"phone" binding:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName    string `json:"full_name" form:"full_name"`
	Phone       string `json:"phone" form:"phone"`
	Address     string `json:"address" form:"address"`
	DateOfBirth string `json:"date_of_birth" form:"date_of_birth"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" form:"old_password" binding:"required"`
	NewPassword string `json:"new_password" form:"new_password" binding:"required,min=6"`
}

type AddToCartRequest struct {
	MenuItemID     string          `json:"menuItemId" binding:"required"`
	Customizations []Customization `json:"customizations" binding:"dive"`
	Quantity       int             `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type CheckoutRequest struct {
	DeliveryAddress string `json:"deliveryAddress"`
	Notes           string `json:"notes"`
	PromoCode       string `json:"promoCode"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}

type ValidatePromotionRequest struct {
	Code         string          `json:"code" binding:"required"`
	OrderTotal   decimal.Decimal `json:"orderTotal"`
	RestaurantID string          `json:"restaurantId"`
	DeliveryFee  decimal.Decimal `json:"deliveryFee"`
}

type AddReviewRequest struct {
	RestaurantID string   `json:"restaurantId" binding:"required"`
	Rating       int      `json:"rating" binding:"required,min=1,max=5"`
	Comment      string   `json:"comment" binding:"required"`
	Photos       []string `json:"photos"`
	UserName     string   `json:"userName"`
}

type FavoriteRequest struct {
	RestaurantID string `json:"restaurantId" binding:"required"`
}

type CreateOrderItem struct {
	ID             string          `json:"id" binding:"required"`
	Quantity       int             `json:"quantity" binding:"required,min=1"`
	Customizations []Customization `json:"customizations" binding:"dive"`
}

// CreateOrderRequest places an order from an explicit item list rather than
// the session cart.
type CreateOrderRequest struct {
	Items           []CreateOrderItem `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress string            `json:"deliveryAddress"`
	Notes           string            `json:"notes"`
	PromoCode       string            `json:"promoCode"`
}
