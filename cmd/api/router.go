package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"foodgram-backend/internal/shared/middleware"
	"foodgram-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	// Local media backend serves uploaded images itself.
	if root := c.LocalMediaRoot(); root != "" {
		router.Static(c.Config.Media.BaseURL, root)
	}

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(api, c)
		setupUserRoutes(api, c)
		setupTagRoutes(api, c)
		setupIngredientRoutes(api, c)
		setupRecipeRoutes(api, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(api *gin.RouterGroup, c *container.Container) {
	auth := api.Group("/auth/token")
	{
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/logout", middleware.AuthMiddleware(c.UserService), c.UserHandler.Logout)
	}
}

// ========================================
// USER + SUBSCRIPTION ROUTES
// ========================================
func setupUserRoutes(api *gin.RouterGroup, c *container.Container) {
	users := api.Group("/users")
	{
		users.GET("", middleware.OptionalAuth(c.UserService), c.UserHandler.List)
		users.POST("", c.UserHandler.Register)

		authed := users.Group("", middleware.AuthMiddleware(c.UserService))
		{
			authed.GET("/me", c.UserHandler.Me)
			authed.POST("/set_password", c.UserHandler.SetPassword)
			authed.GET("/subscriptions", c.SubscriptionHandler.List)
			authed.GET("/:id", c.UserHandler.Get)
			authed.POST("/:id/subscribe", c.SubscriptionHandler.Subscribe)
			authed.DELETE("/:id/subscribe", c.SubscriptionHandler.Unsubscribe)
		}
	}
}

// ========================================
// REFERENCE DATA ROUTES
// ========================================
func setupTagRoutes(api *gin.RouterGroup, c *container.Container) {
	tags := api.Group("/tags")
	{
		tags.GET("", c.TagHandler.List)
		tags.GET("/:id", c.TagHandler.Get)
	}
}

func setupIngredientRoutes(api *gin.RouterGroup, c *container.Container) {
	ingredients := api.Group("/ingredients")
	{
		ingredients.GET("", c.IngredientHandler.List)
		ingredients.GET("/:id", c.IngredientHandler.Get)
	}
}

// ========================================
// RECIPE ROUTES
// ========================================
func setupRecipeRoutes(api *gin.RouterGroup, c *container.Container) {
	recipes := api.Group("/recipes")
	{
		// Public (viewer optional)
		public := recipes.Group("", middleware.OptionalAuth(c.UserService))
		{
			public.GET("", c.RecipeHandler.List)
			public.GET("/:id", c.RecipeHandler.Get)
		}

		// Protected
		authed := recipes.Group("", middleware.AuthMiddleware(c.UserService))
		{
			authed.POST("", c.RecipeHandler.Create)
			authed.GET("/download_shopping_cart", c.RecipeHandler.DownloadShoppingCart)
			authed.PATCH("/:id", c.RecipeHandler.Update)
			authed.DELETE("/:id", c.RecipeHandler.Delete)

			authed.POST("/:id/favorite", c.RecipeHandler.AddFavorite)
			authed.DELETE("/:id/favorite", c.RecipeHandler.RemoveFavorite)

			authed.POST("/:id/shopping_cart", c.RecipeHandler.AddToCart)
			authed.DELETE("/:id/shopping_cart", c.RecipeHandler.RemoveFromCart)
		}
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		dbStatus := "ok"
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = "error: " + err.Error()
			status = http.StatusServiceUnavailable
		}

		cacheStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			cacheStatus = "error: " + err.Error()
		}

		c.JSON(status, gin.H{
			"status":    http.StatusText(status),
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services": gin.H{
				"database": dbStatus,
				"cache":    cacheStatus,
			},
		})
	}
}
