package controllers

import (
	"net/http"

	"quickbite/middleware"
	"quickbite/models"
	"quickbite/services"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// GetReviews godoc
// @Summary List reviews
// @Description All reviews, newest first
// @Tags Reviews
// @Produce json
// @Success 200 {object} models.Response
// @Router /reviews [get]
func (ctrl *ReviewController) GetReviews(c *gin.Context) {
	reviews, err := ctrl.reviews.GetAllReviews(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load reviews", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Reviews retrieved successfully", "data": reviews})
}

// AddReview godoc
// @Summary Add review
// @Tags Reviews
// @Accept json
// @Produce json
// @Param request body models.AddReviewRequest true "Review"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /reviews [post]
func (ctrl *ReviewController) AddReview(c *gin.Context) {
	var req models.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	review, err := ctrl.reviews.AddReview(c.Request.Context(), middleware.Owner(c), req)
	if err != nil {
		respondError(c, "Failed to add review", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Review added successfully", "data": review})
}

// UploadPhoto godoc
// @Summary Upload review photo
// @Description Stores the image on Cloudinary when configured, otherwise on local disk
// @Tags Reviews
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Image"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /reviews/photos [post]
func (ctrl *ReviewController) UploadPhoto(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		badRequest(c, err)
		return
	}

	url, err := ctrl.reviews.UploadReviewPhoto(c.Request.Context(), middleware.Owner(c), file)
	if err != nil {
		respondError(c, "Failed to upload photo", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Photo uploaded", "data": gin.H{"url": url}})
}

// DeleteReview godoc
// @Summary Delete review
// @Description Only the author may delete a review
// @Tags Reviews
// @Produce json
// @Param id path string true "Review ID"
// @Param restaurantId query string false "Restaurant the review belongs to"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews/{id} [delete]
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	err := ctrl.reviews.DeleteReview(c.Request.Context(), middleware.Owner(c), c.Param("id"), c.Query("restaurantId"))
	if err != nil {
		respondError(c, "Failed to delete review", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review deleted successfully"})
}

// MarkHelpful godoc
// @Summary Mark review helpful
// @Tags Reviews
// @Produce json
// @Param id path string true "Review ID"
// @Param restaurantId query string false "Restaurant the review belongs to"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews/{id}/helpful [post]
func (ctrl *ReviewController) MarkHelpful(c *gin.Context) {
	review, err := ctrl.reviews.MarkHelpful(c.Request.Context(), c.Param("id"), c.Query("restaurantId"))
	if err != nil {
		respondError(c, "Failed to update review", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Thanks for your feedback", "data": review})
}
