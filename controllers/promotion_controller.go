package controllers

import (
	"net/http"
	"strconv"

	"quickbite/middleware"
	"quickbite/models"
	"quickbite/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PromotionController struct {
	promotions  *services.PromotionService
	deliveryFee decimal.Decimal
}

func NewPromotionController(promotions *services.PromotionService, deliveryFee decimal.Decimal) *PromotionController {
	return &PromotionController{promotions: promotions, deliveryFee: deliveryFee}
}

// GetPromotions godoc
// @Summary List promotions
// @Description Active, unexpired promotions, soonest expiry first
// @Tags Promotions
// @Produce json
// @Param restaurantId query string false "Only promotions of this restaurant"
// @Success 200 {object} models.Response
// @Router /promotions [get]
func (ctrl *PromotionController) GetPromotions(c *gin.Context) {
	var promos []models.Promotion
	if id := c.Query("restaurantId"); id != "" {
		promos = ctrl.promotions.GetPromotionsByRestaurant(id)
	} else {
		promos = ctrl.promotions.GetPromotions()
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Promotions retrieved", "data": promos})
}

// GetFeatured godoc
// @Summary Featured promotions
// @Tags Promotions
// @Produce json
// @Param limit query int false "How many, default 3"
// @Success 200 {object} models.Response
// @Router /promotions/featured [get]
func (ctrl *PromotionController) GetFeatured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultFeaturedLimit)))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Featured promotions retrieved",
		"data":    ctrl.promotions.GetFeaturedPromotions(limit),
	})
}

// GetByCode godoc
// @Summary Get promotion by code
// @Description Codes are matched case-insensitively
// @Tags Promotions
// @Produce json
// @Param code path string true "Promotion code"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /promotions/{code} [get]
func (ctrl *PromotionController) GetByCode(c *gin.Context) {
	promo, err := ctrl.promotions.GetPromotionByCode(c.Param("code"))
	if err != nil {
		respondError(c, "Promotion not found", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Promotion retrieved", "data": promo})
}

// Validate godoc
// @Summary Validate promotion
// @Description Checks a code against an order total and prices the discount without using it up
// @Tags Promotions
// @Accept json
// @Produce json
// @Param request body models.ValidatePromotionRequest true "Code and order"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /promotions/validate [post]
func (ctrl *PromotionController) Validate(c *gin.Context) {
	req, ok := ctrl.bind(c)
	if !ok {
		return
	}
	applied, err := ctrl.promotions.Quote(c.Request.Context(), middleware.Owner(c), req.Code, req.OrderTotal, req.RestaurantID, req.DeliveryFee)
	if err != nil {
		respondError(c, "Promotion is not valid", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Promotion is valid", "data": applied})
}

// Apply godoc
// @Summary Apply promotion
// @Description Validates, prices and records one use of the code
// @Tags Promotions
// @Accept json
// @Produce json
// @Param request body models.ValidatePromotionRequest true "Code and order"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /promotions/apply [post]
func (ctrl *PromotionController) Apply(c *gin.Context) {
	req, ok := ctrl.bind(c)
	if !ok {
		return
	}
	applied, err := ctrl.promotions.ApplyPromotion(c.Request.Context(), middleware.Owner(c), req.Code, req.OrderTotal, req.RestaurantID, req.DeliveryFee)
	if err != nil {
		respondError(c, "Failed to apply promotion", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Promotion applied", "data": applied})
}

func (ctrl *PromotionController) bind(c *gin.Context) (models.ValidatePromotionRequest, bool) {
	var req models.ValidatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return req, false
	}
	if req.DeliveryFee.IsZero() {
		req.DeliveryFee = ctrl.deliveryFee
	}
	return req, true
}
