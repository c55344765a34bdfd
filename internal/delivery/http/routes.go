package http

import (
	"github.com/gin-gonic/gin"
	"github.com/stylelens/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		recommend := v1.Group("/recommend")
		{
			recommend.POST("", handler.Recommend)
			recommend.POST("/style", handler.RecommendByStyle)
			recommend.GET("/status", handler.Status)
			recommend.GET("/catalog", handler.CatalogStats)
		}

		v1.GET("/search", handler.Search)

		catalog := v1.Group("/catalog")
		{
			catalog.POST("/reload", handler.ReloadCatalog)
			catalog.POST("/products", handler.AddProduct)
			catalog.PUT("/products/:id", handler.UpdateProduct)
			catalog.DELETE("/products/:id", handler.DeleteProduct)
		}
	}

	return router
}
