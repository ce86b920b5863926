package controllers

import (
	"net/http"

	"quickbite/middleware"
	"quickbite/models"
	"quickbite/services"

	"github.com/gin-gonic/gin"
)

type FavoriteController struct {
	favorites *services.FavoriteService
}

func NewFavoriteController(favorites *services.FavoriteService) *FavoriteController {
	return &FavoriteController{favorites: favorites}
}

// GetFavorites godoc
// @Summary List favorite restaurants
// @Tags Favorites
// @Produce json
// @Param q query string false "Search by name or cuisine"
// @Success 200 {object} models.Response
// @Router /favorites [get]
func (ctrl *FavoriteController) GetFavorites(c *gin.Context) {
	favorites, err := ctrl.favorites.SearchFavorites(c.Request.Context(), middleware.Owner(c), c.Query("q"))
	if err != nil {
		respondError(c, "Failed to load favorites", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Favorites retrieved successfully", "data": favorites})
}

// AddFavorite godoc
// @Summary Add favorite
// @Tags Favorites
// @Accept json
// @Produce json
// @Param request body models.FavoriteRequest true "Restaurant"
// @Success 201 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /favorites [post]
func (ctrl *FavoriteController) AddFavorite(c *gin.Context) {
	var req models.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	restaurant, err := ctrl.favorites.AddToFavorites(c.Request.Context(), middleware.Owner(c), req.RestaurantID)
	if err != nil {
		respondError(c, "Failed to add favorite", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": restaurant.Name + " added to favorites", "data": restaurant})
}

// RemoveFavorite godoc
// @Summary Remove favorite
// @Tags Favorites
// @Produce json
// @Param restaurantId path string true "Restaurant ID"
// @Success 200 {object} models.Response
// @Router /favorites/{restaurantId} [delete]
func (ctrl *FavoriteController) RemoveFavorite(c *gin.Context) {
	if err := ctrl.favorites.RemoveFromFavorites(c.Request.Context(), middleware.Owner(c), c.Param("restaurantId")); err != nil {
		respondError(c, "Failed to remove favorite", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Removed from favorites"})
}

// ToggleFavorite godoc
// @Summary Toggle favorite
// @Tags Favorites
// @Produce json
// @Param restaurantId path string true "Restaurant ID"
// @Success 200 {object} models.Response
// @Router /favorites/{restaurantId}/toggle [post]
func (ctrl *FavoriteController) ToggleFavorite(c *gin.Context) {
	id := c.Param("restaurantId")
	favorite, err := ctrl.favorites.ToggleFavorite(c.Request.Context(), middleware.Owner(c), id)
	if err != nil {
		respondError(c, "Failed to update favorite", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Favorite updated", "data": gin.H{"restaurantId": id, "isFavorite": favorite}})
}

// IsFavorite godoc
// @Summary Favorite state of a restaurant
// @Tags Favorites
// @Produce json
// @Param restaurantId path string true "Restaurant ID"
// @Success 200 {object} models.Response
// @Router /favorites/{restaurantId} [get]
func (ctrl *FavoriteController) IsFavorite(c *gin.Context) {
	id := c.Param("restaurantId")
	favorite, err := ctrl.favorites.IsFavorite(c.Request.Context(), middleware.Owner(c), id)
	if err != nil {
		respondError(c, "Failed to load favorite", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Favorite state retrieved", "data": gin.H{"restaurantId": id, "isFavorite": favorite}})
}
