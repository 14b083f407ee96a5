package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/blayzex/storefront-api/internal/api/handlers"
	"github.com/blayzex/storefront-api/internal/api/middleware"
	"github.com/blayzex/storefront-api/internal/cart"
	"github.com/blayzex/storefront-api/internal/config"
	"github.com/blayzex/storefront-api/internal/metrics"
	"github.com/blayzex/storefront-api/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(
	cfg *config.Config,
	carts *cart.Service,
	checkout *service.CheckoutService,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Storefront routes (session-scoped via cart cookie)
	apiRoutes := router.Group("/api")
	{
		apiRoutes.GET("/cart", handlers.HandleGetCart(carts, logger))
		apiRoutes.POST("/cart/items", handlers.HandleAddItem(carts, logger))
		apiRoutes.DELETE("/cart/items", handlers.HandleRemoveItem(carts, logger))
		apiRoutes.POST("/cart/clear", handlers.HandleClearCart(carts, logger))
		apiRoutes.POST("/cart/open", handlers.HandleCartPanel(carts, logger, "open"))
		apiRoutes.POST("/cart/close", handlers.HandleCartPanel(carts, logger, "close"))
		apiRoutes.POST("/cart/toggle", handlers.HandleCartPanel(carts, logger, "toggle"))
		apiRoutes.POST("/cart/checkout", handlers.HandleCheckout(carts, logger))

		apiRoutes.POST("/create-order", handlers.HandleCreateOrder(checkout, logger))
		apiRoutes.POST("/verify-payment", handlers.HandleVerifyPayment(checkout, carts, logger))
	}

	// Admin routes (bearer key)
	adminRoutes := router.Group("/v1/admin")
	adminRoutes.Use(middleware.AdminAuth(cfg, logger))
	{
		adminRoutes.GET("/orders", handlers.HandleListOrders(checkout, logger))
		adminRoutes.GET("/orders/:id", handlers.HandleGetOrder(checkout, logger))
		adminRoutes.POST("/orders/:id/status", handlers.HandleAdvanceStatus(checkout, logger))
	}

	return router
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
