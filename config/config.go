package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all environment configuration for the storefront gateway.
type Config struct {
	Port        string
	Environment string

	RedisURL    string
	PostgresDSN string

	// Remote WordPress/WooCommerce store.
	StoreBaseURL   string
	ConsumerKey    string
	ConsumerSecret string
	StoreTimeout   time.Duration

	JWTSecret       string
	SessionTTL      time.Duration
	CartTTL         time.Duration
	CheckoutTTL     time.Duration
	MetricsCacheTTL time.Duration

	StripeSecretKey  string
	StripeWebhookKey string

	KafkaBrokers string
	KafkaTopic   string

	CORSOrigins []string
}

// Load reads configuration from the environment, with sane defaults for
// local development.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=storefront password=storefront dbname=storefront port=5432 sslmode=disable"),

		StoreBaseURL:   getEnv("STORE_BASE_URL", "https://shop.example.com/wp-json"),
		ConsumerKey:    getEnv("WC_CONSUMER_KEY", ""),
		ConsumerSecret: getEnv("WC_CONSUMER_SECRET", ""),
		StoreTimeout:   getDuration("STORE_TIMEOUT_SECONDS", 15) * time.Second,

		JWTSecret:       getEnv("JWT_SECRET", ""),
		SessionTTL:      getDuration("SESSION_TTL_HOURS", 24) * time.Hour,
		CartTTL:         getDuration("CART_TTL_HOURS", 24*7) * time.Hour,
		CheckoutTTL:     getDuration("CHECKOUT_TTL_HOURS", 2) * time.Hour,
		MetricsCacheTTL: getDuration("METRICS_CACHE_TTL_SECONDS", 60) * time.Second,

		StripeSecretKey:  getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookKey: getEnv("STRIPE_WEBHOOK_SECRET", ""),

		KafkaBrokers: getEnv("KAFKA_BROKERS", ""),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "storefront.orders"),

		CORSOrigins: []string{getEnv("CORS_ORIGIN", "http://localhost:3000")},
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal int) time.Duration {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return time.Duration(n)
		}
	}
	return time.Duration(defaultVal)
}
