package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/blayzex/storefront-api/internal/api"
	"github.com/blayzex/storefront-api/internal/cart"
	"github.com/blayzex/storefront-api/internal/config"
	"github.com/blayzex/storefront-api/internal/metrics"
	"github.com/blayzex/storefront-api/internal/razorpay"
	"github.com/blayzex/storefront-api/internal/repository/postgres"
	redisrepo "github.com/blayzex/storefront-api/internal/repository/redis"
	"github.com/blayzex/storefront-api/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting storefront API server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	if cfg.Razorpay.KeyID == "" || cfg.Razorpay.KeySecret == "" {
		logger.Warn("Razorpay credentials are not configured; checkout endpoints will refuse requests")
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := postgres.RunMigrations(db, cfg.Database); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize Redis (persisted cart store)
	redisClient, err := redisrepo.NewClient(context.Background(), cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	repos := postgres.NewRepositories(db, logger)
	repos.Cart = redisrepo.NewCartRepository(redisClient, logger)

	// Initialize services
	gateway := razorpay.NewClient(cfg.Razorpay, logger)
	checkoutMetrics := metrics.NewCheckoutMetrics()
	carts := cart.NewService(repos.Cart, logger)
	checkout := service.NewCheckoutService(gateway, repos, cfg.Razorpay.KeySecret, checkoutMetrics, logger)

	// Initialize router
	router := api.NewRouter(cfg, carts, checkout, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
