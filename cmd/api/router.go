package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/shared/middleware"
	"marketplace-backend/pkg/container"
)

func setupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupProductRoutes(v1, c)
		setupPostRoutes(v1, c)
		setupCategoryRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authRequired := middleware.AuthMiddleware(c.JWTManager)

	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.PUT("/update-user", authRequired, c.UserHandler.UpdateUser)
		auth.PATCH("/patch-user", authRequired, c.UserHandler.PatchUser)
		auth.PUT("/password-update", c.UserHandler.UpdatePassword)
		auth.PUT("/profile-picture-update/:id", authRequired, c.UserHandler.UpdateProfilePicture)
	}
}

func setupProductRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authRequired := middleware.AuthMiddleware(c.JWTManager)

	product := v1.Group("/product")
	{
		product.GET("/get-all", c.ProductHandler.GetAll)
		product.GET("/list/top-products", c.ProductHandler.Top)
		product.GET("/:id", c.ProductHandler.Get)

		product.POST("/create", authRequired, c.ProductHandler.Create)
		product.PUT("/:id", authRequired, c.ProductHandler.Update)
		product.DELETE("/:id", authRequired, c.ProductHandler.Delete)

		product.PUT("/:id/image", authRequired, c.ProductHandler.AddImages)
		product.DELETE("/:id/image", authRequired, c.ProductHandler.RemoveImage)
		product.DELETE("/:id/image/spec", authRequired, c.ProductHandler.RemoveImageByIndex)

		product.POST("/:id/review", authRequired, c.ProductHandler.AddReview)
		product.PUT("/approve/:productId", authRequired, c.ProductHandler.Approve)
		product.PATCH("/boost", authRequired, c.ProductHandler.Boost)
	}
}

func setupPostRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authRequired := middleware.AuthMiddleware(c.JWTManager)

	post := v1.Group("/post")
	{
		post.GET("/get-all-post", c.PostHandler.GetAll)
		post.GET("/get-user-post", authRequired, c.PostHandler.GetUserPosts)

		post.POST("/create-post", authRequired, c.PostHandler.Create)
		post.PUT("/update-post/:id", authRequired, c.PostHandler.Update)
		post.DELETE("/delete-post/:id", authRequired, c.PostHandler.Delete)

		post.PATCH("/add-post-images/:id", authRequired, c.PostHandler.AddImages)
		// Image ids are storage keys with slashes, hence the wildcard
		post.DELETE("/delete-post-image/:id/*imageId", authRequired, c.PostHandler.RemoveImage)
	}
}

func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authRequired := middleware.AuthMiddleware(c.JWTManager)

	category := v1.Group("/category")
	{
		category.GET("/get-all", c.CategoryHandler.GetAll)
		category.GET("/:id", c.CategoryHandler.Get)

		category.POST("/create", authRequired, c.CategoryHandler.Create)
		category.DELETE("/:id", authRequired, c.CategoryHandler.Delete)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		dbStatus := "up"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "down"
		}

		cacheStatus := "up"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "down" // non-critical
		}

		ctx.JSON(status, gin.H{
			"status":   "ok",
			"version":  c.Config.App.Version,
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	}
}
