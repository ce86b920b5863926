package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"quickbite/models"
	"quickbite/repositories"
	"quickbite/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type RestaurantController struct {
	restaurants *services.RestaurantService
	menu        *services.MenuService
	reviews     *services.ReviewService
	promotions  *services.PromotionService
	cache       *repositories.ResponseCache
}

func NewRestaurantController(restaurants *services.RestaurantService, menu *services.MenuService, reviews *services.ReviewService, promotions *services.PromotionService, cache *repositories.ResponseCache) *RestaurantController {
	return &RestaurantController{
		restaurants: restaurants,
		menu:        menu,
		reviews:     reviews,
		promotions:  promotions,
		cache:       cache,
	}
}

// ListRestaurants godoc
// @Summary List restaurants
// @Description Search by name or cuisine and narrow by cuisine, rating, delivery time and open state
// @Tags Restaurants
// @Produce json
// @Param q query string false "Search text"
// @Param cuisine query string false "Comma separated cuisines"
// @Param rating query number false "Minimum rating"
// @Param maxDeliveryTime query int false "Maximum delivery time in minutes"
// @Param isOpen query bool false "Only open or closed restaurants"
// @Success 200 {object} models.Response
// @Router /restaurants [get]
func (ctrl *RestaurantController) ListRestaurants(c *gin.Context) {
	ctx := c.Request.Context()
	cacheKey := c.Request.URL.RawQuery

	if cached, ok := ctrl.cache.Get(ctx, cacheKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
		return
	}

	filter, err := parseRestaurantFilter(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	list, err := ctrl.restaurants.SearchRestaurants(ctx, c.Query("q"))
	if err != nil {
		respondError(c, "Failed to load restaurants", err)
		return
	}
	list = services.ApplyRestaurantFilter(list, filter)

	body, err := json.Marshal(gin.H{
		"success": true,
		"message": "Restaurants retrieved successfully",
		"data":    list,
	})
	if err != nil {
		respondError(c, "Failed to load restaurants", err)
		return
	}
	if err := ctrl.cache.Set(ctx, cacheKey, body); err != nil {
		log.Warn().Err(err).Msg("failed to cache restaurant list")
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func parseRestaurantFilter(c *gin.Context) (models.RestaurantFilter, error) {
	var f models.RestaurantFilter
	if raw := c.Query("cuisine"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				f.Cuisine = append(f.Cuisine, part)
			}
		}
	}
	if raw := c.Query("rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, err
		}
		f.Rating = v
	}
	if raw := c.Query("maxDeliveryTime"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return f, err
		}
		f.MaxDeliveryTime = v
	}
	if raw := c.Query("isOpen"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, err
		}
		f.IsOpen = &v
	}
	return f, nil
}

// GetRestaurant godoc
// @Summary Get restaurant
// @Tags Restaurants
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /restaurants/{id} [get]
func (ctrl *RestaurantController) GetRestaurant(c *gin.Context) {
	restaurant, err := ctrl.restaurants.GetRestaurantByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Restaurant not found", err)
		return
	}

	rating, count, err := ctrl.reviews.RestaurantRating(c.Request.Context(), restaurant.ID)
	if err != nil {
		respondError(c, "Failed to load reviews", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Restaurant retrieved successfully",
		"data": gin.H{
			"restaurant":   restaurant,
			"reviewRating": rating,
			"reviewCount":  count,
			"promotions":   ctrl.promotions.GetPromotionsByRestaurant(restaurant.ID),
		},
	})
}

// GetMenu godoc
// @Summary Get restaurant menu
// @Description Menu grouped by category, or a flat list of matches when q is given
// @Tags Menu
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param q query string false "Search text"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /restaurants/{id}/menu [get]
func (ctrl *RestaurantController) GetMenu(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if q, ok := c.GetQuery("q"); ok {
		items, err := ctrl.menu.SearchMenuItems(ctx, id, q)
		if err != nil {
			respondError(c, "Failed to search menu", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Menu items retrieved successfully", "data": items})
		return
	}

	menu, err := ctrl.menu.GetMenuByRestaurantID(ctx, id)
	if err != nil {
		respondError(c, "Failed to load menu", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Menu retrieved successfully", "data": menu})
}

// GetMenuItem godoc
// @Summary Get menu item
// @Tags Menu
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /menu-items/{id} [get]
func (ctrl *RestaurantController) GetMenuItem(c *gin.Context) {
	item, err := ctrl.menu.GetMenuItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Menu item not found", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Menu item retrieved successfully", "data": item})
}

// GetRestaurantReviews godoc
// @Summary List restaurant reviews
// @Tags Reviews
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} models.Response
// @Router /restaurants/{id}/reviews [get]
func (ctrl *RestaurantController) GetRestaurantReviews(c *gin.Context) {
	reviews, err := ctrl.reviews.GetRestaurantReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to load reviews", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Reviews retrieved successfully", "data": reviews})
}
