package controllers

import (
	"errors"
	"net/http"

	"quickbite/services"
	"quickbite/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrRestaurantNotFound),
		errors.Is(err, services.ErrMenuItemNotFound),
		errors.Is(err, services.ErrCartLineNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrReviewNotFound),
		errors.Is(err, services.ErrPromotionNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrItemUnavailable),
		errors.Is(err, services.ErrOrderNotCancellable),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrAlreadyFavorite),
		errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrMixedRestaurants),
		errors.Is(err, services.ErrBelowMinimumOrder),
		errors.Is(err, services.ErrUnknownCustomization),
		errors.Is(err, services.ErrPromotionInactive),
		errors.Is(err, services.ErrPromotionExpired),
		errors.Is(err, services.ErrPromotionRestaurant),
		errors.Is(err, services.ErrPromotionMinimumOrder),
		errors.Is(err, services.ErrPromotionUsageExhausted),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrForeignPhoto),
		errors.Is(err, utils.ErrFileTooLarge),
		errors.Is(err, utils.ErrInvalidImageType),
		errors.Is(err, utils.ErrEmptyPassword):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidPassword):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotReviewAuthor):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// respondError answers with the error envelope. Unexpected errors are
// logged and their details hidden from the client.
func respondError(c *gin.Context, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg(message)
		c.JSON(status, gin.H{"success": false, "message": message})
		return
	}
	c.JSON(status, gin.H{"success": false, "message": message, "error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
}
