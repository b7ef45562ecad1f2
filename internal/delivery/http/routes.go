package http

import (
	"github.com/gin-gonic/gin"
	"github.com/pricelens/backend/config"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestLogger(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		receipts := v1.Group("/receipts")
		{
			receipts.POST("/confirm", handler.ConfirmReceipt)
		}

		stores := v1.Group("/stores")
		{
			stores.GET("", handler.ListStores)
			stores.GET("/resolve", handler.ResolveStore)
			stores.GET("/:id", handler.GetStore)
		}

		prices := v1.Group("/prices")
		{
			prices.GET("/estimate", handler.GetPriceEstimate)
			prices.POST("/estimates/batch", handler.BatchGetEstimates)
			prices.POST("/compare", handler.CompareStores)
			prices.POST("/ai-estimate", handler.RecordAIEstimate)
		}

		users := v1.Group("/users")
		{
			users.GET("/:userID/deals", handler.GetDeals)
			users.GET("/:userID/recommendation", handler.GetRecommendation)
			users.PUT("/:userID/preferences/variant", handler.SetVariantPreference)
		}
	}

	return router
}
