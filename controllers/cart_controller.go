package controllers

import (
	"net/http"

	"quickbite/middleware"
	"quickbite/models"
	"quickbite/services"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// GetCart godoc
// @Summary Get cart
// @Description Cart lines with subtotal, item count, fees and total
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart, err := ctrl.carts.GetCart(c.Request.Context(), middleware.Owner(c))
	if err != nil {
		respondError(c, "Failed to load cart", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart retrieved successfully", "data": cart})
}

// AddToCart godoc
// @Summary Add item to cart
// @Description Always adds a new line, identical items are not merged
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.AddToCartRequest true "Item"
// @Success 201 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /cart [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cart, err := ctrl.carts.AddToCart(c.Request.Context(), middleware.Owner(c), req.MenuItemID, req.Customizations, req.Quantity)
	if err != nil {
		respondError(c, "Failed to add item to cart", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Item added to cart", "data": cart})
}

// UpdateQuantity godoc
// @Summary Change line quantity
// @Description A quantity of zero or less removes the line
// @Tags Cart
// @Accept json
// @Produce json
// @Param lineId path string true "Cart line ID"
// @Param request body models.UpdateQuantityRequest true "Quantity"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/lines/{lineId} [patch]
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cart, err := ctrl.carts.UpdateQuantity(c.Request.Context(), middleware.Owner(c), c.Param("lineId"), *req.Quantity)
	if err != nil {
		respondError(c, "Failed to update cart", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart updated", "data": cart})
}

// RemoveLine godoc
// @Summary Remove cart line
// @Tags Cart
// @Produce json
// @Param lineId path string true "Cart line ID"
// @Success 200 {object} models.Response
// @Router /cart/lines/{lineId} [delete]
func (ctrl *CartController) RemoveLine(c *gin.Context) {
	cart, err := ctrl.carts.RemoveFromCart(c.Request.Context(), middleware.Owner(c), c.Param("lineId"))
	if err != nil {
		respondError(c, "Failed to update cart", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item removed from cart", "data": cart})
}

// ClearCart godoc
// @Summary Clear cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	cart, err := ctrl.carts.ClearCart(c.Request.Context(), middleware.Owner(c))
	if err != nil {
		respondError(c, "Failed to clear cart", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared", "data": cart})
}
