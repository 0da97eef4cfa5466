package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/campventure/backend/internal/adapters/cache"
	"github.com/campventure/backend/internal/adapters/database"
	"github.com/campventure/backend/internal/adapters/events"
	"github.com/campventure/backend/internal/adapters/search"
	"github.com/campventure/backend/internal/api/handlers"
	"github.com/campventure/backend/internal/api/middleware"
	"github.com/campventure/backend/internal/api/routes"
	"github.com/campventure/backend/internal/application/services"
	"github.com/campventure/backend/internal/domain/providers"
	"github.com/campventure/backend/internal/domain/repositories"
	"github.com/campventure/backend/internal/infrastructure/clients/postgres"
	"github.com/campventure/backend/internal/infrastructure/clients/redis"
	"github.com/campventure/backend/internal/infrastructure/clients/typesense"
	"github.com/campventure/backend/internal/infrastructure/observability"
	"github.com/campventure/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Redis is optional; the API degrades to uncached operation without it
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized")
	}

	// Typesense is optional; search falls back to database listing
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Typesense client, continuing without search index")
		typesenseClient = nil
	} else {
		log.Info().Msg("Typesense client initialized")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	baseCampAdapter := database.NewCampAdapter(pgClient)

	var campRepo repositories.CampRepository
	if cacheProvider != nil {
		campRepo = database.NewCachedCampAdapter(baseCampAdapter, cacheProvider)
		log.Info().Msg("camp repository wrapped with caching layer")
	} else {
		campRepo = baseCampAdapter
		log.Warn().Msg("camp repository running without cache")
	}

	var searchRepo repositories.CampSearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		searchRepo = adapter
	}

	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("event bus initialized")
	} else {
		log.Warn().Msg("event bus disabled, Redis not available")
	}

	campService := services.NewCampService(campRepo, searchRepo, eventBus)
	discoveryService := services.NewDiscoveryService()
	recommendationService := services.NewRecommendationService(campRepo)

	if cacheProvider != nil {
		warmingService := services.NewCacheWarmingService(campRepo, cacheProvider)
		warmingService.StartPeriodicWarming(ctx, 5*time.Minute)
	}

	campHandler := handlers.NewCampHandler(campService, discoveryService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService, metrics)

	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		sseHandler = handlers.NewSSEHandler(eventBus)
	}

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider).WithMetrics(metrics)
	}

	router := routes.NewRouter(
		campHandler,
		recommendationHandler,
		sseHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// SSE connections stay open; rely on IdleTimeout instead of a
		// write deadline.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("server stopped")
}
