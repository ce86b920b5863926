package controllers

import (
	"fmt"
	"net/http"
	"time"

	"quickbite/middleware"
	"quickbite/models"
	"quickbite/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Checkout godoc
// @Summary Checkout cart
// @Description Places a pending order from the session cart and empties it
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body models.CheckoutRequest false "Delivery details and promo code"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /orders/checkout [post]
func (ctrl *OrderController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	order, err := ctrl.orders.Checkout(c.Request.Context(), middleware.Owner(c), middleware.UserEmail(c), req)
	if err != nil {
		respondError(c, "Checkout failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Order placed successfully", "data": order})
}

// CreateOrder godoc
// @Summary Create order
// @Description Places a pending order from an explicit item list
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body models.CreateOrderRequest true "Order"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /orders [post]
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := ctrl.orders.CreateOrder(c.Request.Context(), middleware.Owner(c), middleware.UserEmail(c), req)
	if err != nil {
		respondError(c, "Failed to create order", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Order placed successfully", "data": order})
}

// GetOrders godoc
// @Summary List orders
// @Description Orders of the session, newest first
// @Tags Orders
// @Produce json
// @Success 200 {object} models.Response
// @Router /orders [get]
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	orders, err := ctrl.orders.GetOrders(c.Request.Context(), middleware.Owner(c))
	if err != nil {
		respondError(c, "Failed to load orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Orders retrieved successfully", "data": orders})
}

// FilterOrders godoc
// @Summary Filter orders
// @Tags Orders
// @Produce json
// @Param status query string false "Status or all"
// @Param restaurantId query string false "Restaurant ID"
// @Param startDate query string false "YYYY-MM-DD or RFC3339"
// @Param endDate query string false "YYYY-MM-DD (inclusive) or RFC3339"
// @Param minTotal query number false "Minimum total"
// @Param maxTotal query number false "Maximum total"
// @Param sortBy query string false "newest, oldest, total-high or total-low"
// @Success 200 {object} models.Response
// @Router /orders/filter [get]
func (ctrl *OrderController) FilterOrders(c *gin.Context) {
	filter, err := parseOrderFilter(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	orders, err := ctrl.orders.FilterOrders(c.Request.Context(), middleware.Owner(c), filter)
	if err != nil {
		respondError(c, "Failed to filter orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Orders retrieved successfully", "data": orders})
}

func parseOrderFilter(c *gin.Context) (models.OrderFilter, error) {
	f := models.OrderFilter{
		Status:       c.Query("status"),
		RestaurantID: c.Query("restaurantId"),
		SortBy:       c.Query("sortBy"),
	}
	switch f.SortBy {
	case "", "newest", "oldest", "total-high", "total-low":
	default:
		return f, fmt.Errorf("unknown sortBy %q", f.SortBy)
	}

	if raw := c.Query("startDate"); raw != "" {
		t, err := parseTimeParam(raw, false)
		if err != nil {
			return f, err
		}
		f.StartDate = &t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, err := parseTimeParam(raw, true)
		if err != nil {
			return f, err
		}
		f.EndDate = &t
	}
	if raw := c.Query("minTotal"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return f, err
		}
		f.MinTotal = &d
	}
	if raw := c.Query("maxTotal"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return f, err
		}
		f.MaxTotal = &d
	}
	return f, nil
}

// parseTimeParam accepts RFC3339 or a plain date. A plain end date covers
// the whole day.
func parseTimeParam(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	if endOfDay {
		return d.EndOfDay(), nil
	}
	return d.Time, nil
}

// GetStats godoc
// @Summary Order statistics
// @Tags Orders
// @Produce json
// @Success 200 {object} models.Response
// @Router /orders/stats [get]
func (ctrl *OrderController) GetStats(c *gin.Context) {
	stats, err := ctrl.orders.GetOrderStats(c.Request.Context(), middleware.Owner(c))
	if err != nil {
		respondError(c, "Failed to load order statistics", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order statistics retrieved successfully", "data": stats})
}

// GetOrder godoc
// @Summary Get order
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id} [get]
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	order, err := ctrl.orders.GetOrderByID(c.Request.Context(), middleware.Owner(c), c.Param("id"))
	if err != nil {
		respondError(c, "Order not found", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order retrieved successfully", "data": order})
}

// UpdateOrderStatus godoc
// @Summary Update order status
// @Description Only forward moves along the status sequence, or cancellation while pending or confirmed
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body models.UpdateOrderStatusRequest true "Status"
// @Success 200 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /orders/{id}/status [patch]
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := ctrl.orders.UpdateOrderStatus(c.Request.Context(), middleware.Owner(c), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, "Failed to update order status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated", "data": order})
}

// CancelOrder godoc
// @Summary Cancel order
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /orders/{id}/cancel [post]
func (ctrl *OrderController) CancelOrder(c *gin.Context) {
	order, err := ctrl.orders.CancelOrder(c.Request.Context(), middleware.Owner(c), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to cancel order", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order cancelled successfully", "data": order})
}

// Reorder godoc
// @Summary Reorder
// @Description Puts the items of a past order back into the cart
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Response
// @Router /orders/{id}/reorder [post]
func (ctrl *OrderController) Reorder(c *gin.Context) {
	ctx := c.Request.Context()
	owner := middleware.Owner(c)

	items, err := ctrl.orders.ReorderItems(ctx, owner, c.Param("id"))
	if err != nil {
		respondError(c, "Failed to reorder", err)
		return
	}
	cart, err := ctrl.orders.AddReorderToCart(ctx, owner, c.Param("id"))
	if err != nil {
		respondError(c, "Failed to reorder", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("%d items added to cart", len(items)),
		"data":    gin.H{"items": items, "cart": cart},
	})
}

// ClearOrders godoc
// @Summary Delete all orders
// @Description Development helper that drops the session's order history
// @Tags Orders
// @Produce json
// @Success 200 {object} models.Response
// @Router /orders [delete]
func (ctrl *OrderController) ClearOrders(c *gin.Context) {
	if err := ctrl.orders.ClearAllOrders(c.Request.Context(), middleware.Owner(c)); err != nil {
		respondError(c, "Failed to clear orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Orders cleared"})
}
