package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/toyfront/storefront-gateway/auth"
	"github.com/toyfront/storefront-gateway/config"
	"github.com/toyfront/storefront-gateway/controllers"
	"github.com/toyfront/storefront-gateway/database"
	"github.com/toyfront/storefront-gateway/kafka"
	"github.com/toyfront/storefront-gateway/logger"
	"github.com/toyfront/storefront-gateway/middleware"
	"github.com/toyfront/storefront-gateway/payments"
	"github.com/toyfront/storefront-gateway/repository"
	"github.com/toyfront/storefront-gateway/routes"
	"github.com/toyfront/storefront-gateway/services"
	"github.com/toyfront/storefront-gateway/woocommerce"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Environment)
	defer logger.Sync()
	log := logger.Log

	log.Info("Starting storefront gateway", zap.String("environment", cfg.Environment))

	redisClient := database.NewRedisClient(cfg.RedisURL)
	db := database.NewPostgres(cfg.PostgresDSN)

	store := woocommerce.New(cfg.StoreBaseURL, cfg.ConsumerKey, cfg.ConsumerSecret, cfg.StoreTimeout)
	stripeSvc := payments.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookKey)

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		log.Fatal("Token service init failed", zap.Error(err))
	}

	var producer *kafka.Producer
	if cfg.KafkaBrokers != "" {
		producer = kafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
		defer producer.Close()
	} else {
		log.Warn("Kafka brokers not configured, order events disabled")
	}

	cartRepo := database.NewCartRepository(redisClient, cfg.CartTTL)
	checkoutRepo := database.NewCheckoutRepository(redisClient, cfg.CheckoutTTL)
	sessionRepo := database.NewSessionRepository(redisClient, cfg.SessionTTL)
	metricsCache := database.NewMetricsCache(redisClient, cfg.MetricsCacheTTL)
	addressRepo := repository.NewGormAddressRepository(db)
	staffRepo := repository.NewGormStaffRepository(db)
	posRepo := repository.NewGormPOSOrderRepository(db)

	cartSvc := services.NewCartService(cartRepo, log)
	authSvc := services.NewAuthService(store, tokens, sessionRepo, log)
	checkoutSvc := services.NewCheckoutService(checkoutRepo, cartSvc, addressRepo, store, stripeSvc, producer, log)
	posSvc := services.NewPOSService(staffRepo, posRepo, store, producer, log)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-WP-Total", "X-WP-TotalPages"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Register(router, tokens, routes.Controllers{
		Auth:      controllers.NewAuthController(authSvc),
		Cart:      controllers.NewCartController(cartSvc),
		Checkout:  controllers.NewCheckoutController(checkoutSvc, store),
		Catalog:   controllers.NewCatalogController(store),
		Dashboard: controllers.NewDashboardController(store, authSvc, metricsCache, log),
		POS:       controllers.NewPOSController(posSvc, authSvc, staffRepo, store),
		Webhook:   controllers.NewPaymentWebhookController(stripeSvc, checkoutSvc, log),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("Storefront gateway listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Shutdown error", zap.Error(err))
	}
	log.Info("Server shutdown complete")
}
