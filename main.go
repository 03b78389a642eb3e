package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/clients"
	"storefront/common/logger"
	"storefront/common/middleware"
	"storefront/config"
	"storefront/controllers"
	"storefront/database"
	"storefront/kafka"
	"storefront/routes"
	"storefront/services"
)

func main() {
	// Load environment configuration
	cfg := config.Load()

	logger.Initialize(cfg.Environment)
	defer logger.Log.Sync() //nolint:errcheck

	// Initialize Redis client for session state
	redisClient := database.NewRedisClient(cfg.RedisURL, logger.Log)
	sessions := database.NewSessionRepository(redisClient, cfg.SessionTTL)

	// Upstream service clients
	cartClient := clients.NewCartClient(cfg.CartServiceURL, cfg.HTTPTimeout)
	catalogClient := clients.NewCatalogClient(cfg.ProductServiceURL, cfg.HTTPTimeout)
	shippingClient := clients.NewShippingClient(cfg.ShippingServiceURL, cfg.HTTPTimeout)
	currencyClient := clients.NewCurrencyClient(cfg.CurrencyServiceURL, cfg.HTTPTimeout)
	recommendationClient := clients.NewRecommendationClient(cfg.RecommendationServiceURL, cfg.HTTPTimeout)
	checkoutClient := clients.NewCheckoutClient(cfg.CheckoutServiceURL, cfg.HTTPTimeout)
	adClient := clients.NewAdClient(cfg.AdServiceURL, cfg.HTTPTimeout)

	// Order events are optional; without brokers the publisher stays nil
	var events services.OrderEventPublisher
	if producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic); producer != nil {
		events = producer
		defer producer.Close() //nolint:errcheck
	}

	// DI chain
	resolver := services.NewCatalogResolver(catalogClient, logger.Log)
	estimator := services.NewShippingEstimator(shippingClient, logger.Log)
	rates := services.NewRateCache(currencyClient, logger.Log)
	aggregator := services.NewAggregator(cartClient, resolver, estimator,
		recommendationClient, catalogClient, sessions, logger.Log)
	checkout := services.NewCheckoutService(checkoutClient, cartClient, sessions, events, logger.Log)

	controller := controllers.NewStorefrontController(sessions, aggregator, checkout,
		rates, catalogClient, currencyClient, adClient, logger.Log)

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger.Log))

	routes.Register(router, controller)

	// Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("Storefront is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
	logger.Log.Info("Server shutdown complete.")
}
