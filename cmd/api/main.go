package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pharmaseek/pharmaseek-backend/api/routes"
	"github.com/pharmaseek/pharmaseek-backend/internal/analytics"
	authsvc "github.com/pharmaseek/pharmaseek-backend/internal/auth"
	"github.com/pharmaseek/pharmaseek-backend/internal/catalog"
	historysvc "github.com/pharmaseek/pharmaseek-backend/internal/history"
	medicinesvc "github.com/pharmaseek/pharmaseek-backend/internal/medicines"
	pharmacysvc "github.com/pharmaseek/pharmaseek-backend/internal/pharmacies"
	searchsvc "github.com/pharmaseek/pharmaseek-backend/internal/search"
	"github.com/pharmaseek/pharmaseek-backend/internal/viewstate"
	"github.com/pharmaseek/pharmaseek-backend/pkg/auth/session"
	"github.com/pharmaseek/pharmaseek-backend/pkg/config"
	"github.com/pharmaseek/pharmaseek-backend/pkg/db"
	"github.com/pharmaseek/pharmaseek-backend/pkg/logger"
	"github.com/pharmaseek/pharmaseek-backend/pkg/metrics"
	"github.com/pharmaseek/pharmaseek-backend/pkg/migrate"
	"github.com/pharmaseek/pharmaseek-backend/pkg/pubsub"
	"github.com/pharmaseek/pharmaseek-backend/pkg/redis"
	"github.com/pharmaseek/pharmaseek-backend/pkg/upstream"
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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	upstreamClient := upstream.NewClient(cfg.Upstream, upstream.WithObserver(httpMetrics))

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		Upstream:  upstreamClient,
		Session:   sessionManager,
		JWTConfig: cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	pharmacyService, err := pharmacysvc.NewService(upstreamClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create pharmacy service", err)
		os.Exit(1)
	}

	medicineService, err := medicinesvc.NewService(upstreamClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create medicine service", err)
		os.Exit(1)
	}

	// Search analytics are optional: without a GCP project the events
	// are simply not published.
	var searchEvents historysvc.Publisher
	if cfg.GCP.ProjectID != "" {
		pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
		searchEvents, err = analytics.NewSearchEventPublisher(pubsubClient.SearchEventsPublisher())
		if err != nil {
			logg.Error(context.Background(), "failed to create search event publisher", err)
			os.Exit(1)
		}
	}

	historyService, err := historysvc.NewService(historysvc.ServiceParams{
		Store:     redisClient,
		Logger:    logg,
		Config:    cfg.History,
		Publisher: searchEvents,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create history service", err)
		os.Exit(1)
	}

	searchService, err := searchsvc.NewService(searchsvc.ServiceParams{
		Catalog:    catalogService,
		Pharmacies: pharmacyService,
		History:    historyService,
		Logger:     logg,
		Config:     cfg.Search,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create search service", err)
		os.Exit(1)
	}

	viewStore, err := viewstate.NewStore(redisClient, cfg.View.TTL())
	if err != nil {
		logg.Error(context.Background(), "failed to create view store", err)
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
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			registry,
			httpMetrics,
			dbClient,
			redisClient,
			upstreamClient,
			sessionManager,
			authService,
			searchService,
			historyService,
			viewStore,
			pharmacyService,
			medicineService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
