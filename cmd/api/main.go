package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ecocraftid/ecocraft-backend/api/routes"
	cartsvc "github.com/ecocraftid/ecocraft-backend/internal/cart"
	checkoutsvc "github.com/ecocraftid/ecocraft-backend/internal/checkout"
	factsvc "github.com/ecocraftid/ecocraft-backend/internal/facts"
	favoritesvc "github.com/ecocraftid/ecocraft-backend/internal/favorites"
	ordersvc "github.com/ecocraftid/ecocraft-backend/internal/orders"
	productsvc "github.com/ecocraftid/ecocraft-backend/internal/products"
	profilesvc "github.com/ecocraftid/ecocraft-backend/internal/profile"
	"github.com/ecocraftid/ecocraft-backend/pkg/config"
	"github.com/ecocraftid/ecocraft-backend/pkg/db"
	"github.com/ecocraftid/ecocraft-backend/pkg/keyvalue"
	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
	"github.com/ecocraftid/ecocraft-backend/pkg/metrics"
	"github.com/ecocraftid/ecocraft-backend/pkg/migrate"
	"github.com/ecocraftid/ecocraft-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	met := metrics.NewStorefrontMetrics(prometheus.DefaultRegisterer)

	store, err := keyvalue.NewRedisStore(redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create client store", err)
		os.Exit(1)
	}

	productService, err := productsvc.NewService(productsvc.DefaultCatalog(), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(store, met, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	sessionService, err := checkoutsvc.NewSessionService(store, cfg.Checkout.SessionTTL, met, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout sessions", err)
		os.Exit(1)
	}

	ordersService, err := ordersvc.NewService(ordersvc.NewRepository(dbClient.DB()), dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(cartService, sessionService, ordersService, cfg.Checkout.ProcessingDelay, met, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	factsClient, err := factsvc.NewClient(cfg.Facts, met, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create facts client", err)
		os.Exit(1)
	}

	favoritesService, err := favoritesvc.NewService(store, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create favorites service", err)
		os.Exit(1)
	}

	profileService, err := profilesvc.NewService(store, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, routes.Services{
			Products:  productService,
			Cart:      cartService,
			Checkout:  checkoutService,
			Sessions:  sessionService,
			Facts:     factsClient,
			Favorites: favoritesService,
			Profile:   profileService,
			Orders:    ordersService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
