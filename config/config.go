package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the loaded configuration
type Config struct {
	Port        string
	Environment string

	CartServiceURL           string
	ProductServiceURL        string
	ShippingServiceURL       string
	CurrencyServiceURL       string
	RecommendationServiceURL string
	CheckoutServiceURL       string
	AdServiceURL             string

	RedisURL   string
	SessionTTL time.Duration

	KafkaBrokers string
	KafkaTopic   string

	HTTPTimeout time.Duration
}

// Load loads configuration from the .env file and the environment
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		CartServiceURL:           getEnv("CART_SERVICE_URL", "http://localhost:9556/api/v1"),
		ProductServiceURL:        getEnv("PRODUCT_SERVICE_URL", "http://localhost:9561/api/v1"),
		ShippingServiceURL:       getEnv("SHIPPING_SERVICE_URL", "http://localhost:9563/api/v1"),
		CurrencyServiceURL:       getEnv("CURRENCY_SERVICE_URL", "http://localhost:9558/api/v1"),
		RecommendationServiceURL: getEnv("RECOMMENDATION_SERVICE_URL", "http://localhost:9562/api/v1"),
		CheckoutServiceURL:       getEnv("CHECKOUT_SERVICE_URL", "http://localhost:9557/api/v1"),
		AdServiceURL:             getEnv("AD_SERVICE_URL", "http://localhost:9555/api/v1"),

		RedisURL:   getEnv("REDIS_URL", "redis://localhost:6379"),
		SessionTTL: durEnv("SESSION_TTL_HOURS", 24*30) * time.Hour,

		KafkaBrokers: getEnv("KAFKA_BROKERS", ""),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "order.placed"),

		HTTPTimeout: durEnv("HTTP_TIMEOUT_SECONDS", 10) * time.Second,
	}
}

// Helper to get an environment variable or return a default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// durEnv reads a positive integer duration count; malformed or non-positive
// values fall back so a bad override can never yield an instant timeout or a
// non-expiring key.
func durEnv(key string, fallback int) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(fallback)
}
