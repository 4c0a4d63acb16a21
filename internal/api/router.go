package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhinavshyju/ShopifyApp/internal/api/handlers"
	"github.com/abhinavshyju/ShopifyApp/internal/api/middleware"
	"github.com/abhinavshyju/ShopifyApp/internal/config"
	"github.com/abhinavshyju/ShopifyApp/internal/repository"
	"github.com/abhinavshyju/ShopifyApp/internal/service"
	"github.com/abhinavshyju/ShopifyApp/internal/shopify"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	tokens := service.NewTokenService(repos.Session, cfg.Shopify, logger)
	client := shopify.NewClient(cfg.Shopify.APIVersion, logger)
	orders := service.NewOrderService(tokens, client, logger)
	products := service.NewProductService(tokens, client, logger)
	connections := service.NewConnectionService(tokens, repos.Session, repos.Connection, cfg.Partner, logger)

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Shopify Order Bridge",
			"endpoints": []string{
				"GET /health",
				"POST /api/track-order",
				"POST /api/cancel-order",
				"POST /api/refund-order",
				"POST /api/return-order",
				"POST /api/change-shipment-address",
				"POST /api/product-search",
				"POST /api/refresh-token",
				"GET /api/connection",
				"POST /api/connect",
				"POST /api/disconnect",
				"DELETE /api/disconnect",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiRoutes := router.Group("/api")
	apiRoutes.Use(middleware.APIKeyAuth(cfg.BridgeAPIKey, logger))
	{
		apiRoutes.POST("/track-order", handlers.HandleTrackOrder(orders, logger))
		apiRoutes.POST("/product-search", handlers.HandleProductSearch(products, logger))
		apiRoutes.POST("/refresh-token", handlers.HandleRefreshToken(tokens, logger))
		apiRoutes.GET("/connection", handlers.HandleGetConnection(connections, logger))
		apiRoutes.POST("/connect", handlers.HandleConnect(connections, logger))
		apiRoutes.POST("/disconnect", handlers.HandleDisconnectByWorkspace(connections, logger))
		apiRoutes.DELETE("/disconnect", handlers.HandleDisconnect(connections, logger))

		// Order mutations replay their stored response when retried with
		// the same Idempotency-Key.
		writes := apiRoutes.Group("")
		writes.Use(middleware.Idempotency(repos.IdempotencyKey, logger))
		{
			writes.POST("/cancel-order", handlers.HandleCancelOrder(orders, logger))
			writes.POST("/refund-order", handlers.HandleRefundOrder(orders, logger))
			writes.POST("/return-order", handlers.HandleReturnOrder(orders, logger))
			writes.POST("/change-shipment-address", handlers.HandleChangeShipmentAddress(orders, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"message":    fmt.Sprintf("internal server error: %v", recovered),
				"statusCode": http.StatusInternalServerError,
			},
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
