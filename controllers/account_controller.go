package controllers

import (
	"net/http"

	"quickbite/middleware"
	"quickbite/models"
	"quickbite/services"

	"github.com/gin-gonic/gin"
)

type AccountController struct {
	users *services.UserService
	auth  *services.AuthService
}

func NewAccountController(users *services.UserService, auth *services.AuthService) *AccountController {
	return &AccountController{users: users, auth: auth}
}

func currentUser(c *gin.Context) (int, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
	}
	return id, ok
}

// GetProfile godoc
// @Summary Get user profile
// @Description Get current user profile
// @Tags Account
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /account/profile [get]
func (ctrl *AccountController) GetProfile(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	profile, err := ctrl.users.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to load profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile retrieved successfully", "data": profile})
}

// UpdateProfile godoc
// @Summary Update user profile
// @Description Empty fields keep their current value
// @Tags Account
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /account/profile [patch]
func (ctrl *AccountController) UpdateProfile(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	profile, err := ctrl.users.UpdateProfile(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "Failed to update profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully", "data": profile})
}

// UploadPhoto godoc
// @Summary Upload profile photo
// @Tags Account
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Image"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /account/profile/photo [post]
func (ctrl *AccountController) UploadPhoto(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	file, err := c.FormFile("photo")
	if err != nil {
		badRequest(c, err)
		return
	}

	profile, err := ctrl.users.UpdateProfilePhoto(c.Request.Context(), id, file)
	if err != nil {
		respondError(c, "Failed to upload photo", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Photo updated successfully", "data": profile})
}

// ChangePassword godoc
// @Summary Change password
// @Tags Account
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ChangePasswordRequest true "Passwords"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /account/change-password [post]
func (ctrl *AccountController) ChangePassword(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := ctrl.auth.ChangePassword(c.Request.Context(), id, req); err != nil {
		respondError(c, "Failed to change password", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
}

// GetSettings godoc
// @Summary Get account settings
// @Tags Account
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /account/settings [get]
func (ctrl *AccountController) GetSettings(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	settings, err := ctrl.users.GetSettings(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to load settings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Settings retrieved successfully", "data": settings})
}

// UpdateSettings godoc
// @Summary Update account settings
// @Description Fields missing from the body keep their saved value
// @Tags Account
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UserSettings true "Settings"
// @Success 200 {object} models.Response
// @Router /account/settings [patch]
func (ctrl *AccountController) UpdateSettings(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	settings, err := ctrl.users.GetSettings(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to load settings", err)
		return
	}
	if err := c.ShouldBindJSON(&settings); err != nil {
		badRequest(c, err)
		return
	}

	settings, err = ctrl.users.UpdateSettings(c.Request.Context(), id, settings)
	if err != nil {
		respondError(c, "Failed to save settings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Settings saved successfully", "data": settings})
}

// GetStats godoc
// @Summary Account statistics
// @Description Order, review and favorite counts for the profile page
// @Tags Account
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /account/stats [get]
func (ctrl *AccountController) GetStats(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	stats, err := ctrl.users.GetStats(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to load stats", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Stats retrieved successfully", "data": stats})
}

// DeleteAccount godoc
// @Summary Delete account
// @Description Removes the user together with their cart, orders, favorites and promotion usage
// @Tags Account
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /account [delete]
func (ctrl *AccountController) DeleteAccount(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	if err := ctrl.users.DeleteAccount(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to delete account", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account deleted successfully"})
}
