package routes

import (
	"net/http"

	"quickbite/controllers"
	"quickbite/handler"
	"quickbite/middleware"
	"quickbite/utils"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Controllers struct {
	Tokens        *utils.TokenManager
	SecureCookies bool
	UploadDir     string

	Auth        *controllers.AuthController
	Account     *controllers.AccountController
	Restaurants *controllers.RestaurantController
	Cart        *controllers.CartController
	Orders      *controllers.OrderController
	Tracking    *controllers.TrackingController
	Promotions  *controllers.PromotionController
	Reviews     *controllers.ReviewController
	Favorites   *controllers.FavoriteController
}

func SetupRoutes(router *gin.Engine, ctrl Controllers) {
	session := []gin.HandlerFunc{
		middleware.OptionalAuth(ctrl.Tokens),
		middleware.SessionMiddleware(ctrl.SecureCookies),
	}

	router.GET("/", gin.WrapF(handler.Handler))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	router.POST("/auth/register", ctrl.Auth.Register)
	router.POST("/auth/login", ctrl.Auth.Login)

	router.GET("/restaurants", ctrl.Restaurants.ListRestaurants)
	router.GET("/restaurants/:id", ctrl.Restaurants.GetRestaurant)
	router.GET("/restaurants/:id/menu", ctrl.Restaurants.GetMenu)
	router.GET("/restaurants/:id/reviews", ctrl.Restaurants.GetRestaurantReviews)
	router.GET("/menu-items/:id", ctrl.Restaurants.GetMenuItem)

	router.GET("/promotions", ctrl.Promotions.GetPromotions)
	router.GET("/promotions/featured", ctrl.Promotions.GetFeatured)
	router.GET("/promotions/:code", ctrl.Promotions.GetByCode)
	router.POST("/promotions/validate", append(session, ctrl.Promotions.Validate)...)

	router.GET("/reviews", ctrl.Reviews.GetReviews)

	scoped := router.Group("/")
	scoped.Use(session...)
	{
		scoped.GET("/cart", ctrl.Cart.GetCart)
		scoped.POST("/cart", ctrl.Cart.AddToCart)
		scoped.DELETE("/cart", ctrl.Cart.ClearCart)
		scoped.PATCH("/cart/lines/:lineId", ctrl.Cart.UpdateQuantity)
		scoped.DELETE("/cart/lines/:lineId", ctrl.Cart.RemoveLine)

		scoped.POST("/orders/checkout", ctrl.Orders.Checkout)
		scoped.POST("/orders", ctrl.Orders.CreateOrder)
		scoped.GET("/orders", ctrl.Orders.GetOrders)
		scoped.DELETE("/orders", ctrl.Orders.ClearOrders)
		scoped.GET("/orders/filter", ctrl.Orders.FilterOrders)
		scoped.GET("/orders/stats", ctrl.Orders.GetStats)
		scoped.GET("/orders/:id", ctrl.Orders.GetOrder)
		scoped.PATCH("/orders/:id/status", ctrl.Orders.UpdateOrderStatus)
		scoped.POST("/orders/:id/cancel", ctrl.Orders.CancelOrder)
		scoped.POST("/orders/:id/reorder", ctrl.Orders.Reorder)
		scoped.GET("/orders/:id/track", ctrl.Tracking.TrackOrder)

		scoped.GET("/favorites", ctrl.Favorites.GetFavorites)
		scoped.POST("/favorites", ctrl.Favorites.AddFavorite)
		scoped.GET("/favorites/:restaurantId", ctrl.Favorites.IsFavorite)
		scoped.DELETE("/favorites/:restaurantId", ctrl.Favorites.RemoveFavorite)
		scoped.POST("/favorites/:restaurantId/toggle", ctrl.Favorites.ToggleFavorite)

		scoped.POST("/reviews", ctrl.Reviews.AddReview)
		scoped.POST("/reviews/photos", ctrl.Reviews.UploadPhoto)
		scoped.DELETE("/reviews/:id", ctrl.Reviews.DeleteReview)
		scoped.POST("/reviews/:id/helpful", ctrl.Reviews.MarkHelpful)

		scoped.POST("/promotions/apply", ctrl.Promotions.Apply)
	}

	account := router.Group("/account")
	account.Use(middleware.AuthMiddleware(ctrl.Tokens))
	{
		account.GET("/profile", ctrl.Account.GetProfile)
		account.PATCH("/profile", ctrl.Account.UpdateProfile)
		account.POST("/profile/photo", ctrl.Account.UploadPhoto)
		account.POST("/change-password", ctrl.Account.ChangePassword)
		account.GET("/settings", ctrl.Account.GetSettings)
		account.PATCH("/settings", ctrl.Account.UpdateSettings)
		account.GET("/stats", ctrl.Account.GetStats)
		account.DELETE("", ctrl.Account.DeleteAccount)
	}

	if ctrl.UploadDir != "" {
		router.Static("/uploads", ctrl.UploadDir)
	}
}
