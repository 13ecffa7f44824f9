package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nextshop-labs/storefront-backend/api/routes"
	"github.com/nextshop-labs/storefront-backend/internal/cart"
	"github.com/nextshop-labs/storefront-backend/internal/catalog"
	"github.com/nextshop-labs/storefront-backend/internal/checkout"
	"github.com/nextshop-labs/storefront-backend/internal/fulfillment"
	"github.com/nextshop-labs/storefront-backend/internal/orders"
	"github.com/nextshop-labs/storefront-backend/internal/reviews"
	"github.com/nextshop-labs/storefront-backend/internal/users"
	"github.com/nextshop-labs/storefront-backend/internal/wishlist"
	"github.com/nextshop-labs/storefront-backend/pkg/config"
	"github.com/nextshop-labs/storefront-backend/pkg/db"
	"github.com/nextshop-labs/storefront-backend/pkg/logger"
	"github.com/nextshop-labs/storefront-backend/pkg/metrics"
	"github.com/nextshop-labs/storefront-backend/pkg/migrate"
	"github.com/nextshop-labs/storefront-backend/pkg/redis"
	"github.com/nextshop-labs/storefront-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap stripe", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)
	catalogRepo := catalog.NewRepository(gormDB)
	cartRepo := cart.NewRepository(gormDB)
	reviewRepo := reviews.NewRepository(gormDB)
	wishlistRepo := wishlist.NewRepository(gormDB)
	orderRepo := orders.NewRepository(gormDB)

	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartRepo, catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	reviewService, err := reviews.NewService(reviewRepo, dbClient, userRepo, catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create review service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlist.NewService(wishlistRepo, userRepo, catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(stripeClient, cartService, cfg.Checkout, cfg.Stripe)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	fulfillmentService, err := fulfillment.NewService(fulfillment.ServiceParams{
		CartRepo:          cartRepo,
		OrderRepo:         orderRepo,
		TransactionRunner: dbClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create fulfillment service", err)
		os.Exit(1)
	}

	webhookGuard, err := fulfillment.NewIdempotencyGuard(redisClient, cfg.Stripe.EventGuardTTL, "stripe-webhook")
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook guard", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:          cfg,
			Logger:          logg,
			DBPinger:        dbClient,
			RedisPinger:     redisClient,
			CatalogService:  catalogService,
			CartService:     cartService,
			ReviewService:   reviewService,
			WishlistService: wishlistService,
			CheckoutService: checkoutService,
			StripeClient:    stripeClient,
			WebhookService:  fulfillmentService,
			WebhookGuard:    webhookGuard,
			MetricsRegistry: registry,
			HTTPMetrics:     httpMetrics,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
