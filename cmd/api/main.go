package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/careroute/backend/internal/adapters/cache"
	"github.com/careroute/backend/internal/adapters/database"
	"github.com/careroute/backend/internal/adapters/events"
	"github.com/careroute/backend/internal/api/handlers"
	"github.com/careroute/backend/internal/api/routes"
	"github.com/careroute/backend/internal/application/services"
	"github.com/careroute/backend/internal/domain/providers"
	"github.com/careroute/backend/internal/domain/repositories"
	"github.com/careroute/backend/internal/infrastructure/clients/postgres"
	"github.com/careroute/backend/internal/infrastructure/clients/redis"
	"github.com/careroute/backend/internal/infrastructure/observability"
	"github.com/careroute/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)
	log := observability.GetLogger()

	// Set up context for graceful shutdown
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

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Initialize Redis client. The application works without it, losing only
	// the facility cache and the audit event bus.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
	}

	// Initialize adapters
	baseFacilityAdapter := database.NewFacilityAdapter(pgClient)
	var facilityAdapter repositories.FacilityRepository
	if cacheProvider != nil {
		facilityAdapter = database.NewCachedFacilityAdapter(baseFacilityAdapter, cacheProvider)
	} else {
		facilityAdapter = baseFacilityAdapter
	}

	serviceAdapter := database.NewServiceAdapter(pgClient)
	scheduleAdapter := database.NewScheduleAdapter(pgClient)
	decisionLogAdapter := database.NewDecisionLogAdapter(pgClient)

	// Initialize services
	resolver := services.NewScheduleResolver(serviceAdapter, scheduleAdapter, eventBus, metrics)
	ranker := services.NewRankingService()
	routingService := services.NewRoutingService(
		serviceAdapter,
		facilityAdapter,
		decisionLogAdapter,
		resolver,
		ranker,
		cfg.Routing,
		metrics,
	)
	analyticsService := services.NewAnalyticsService(decisionLogAdapter)

	// Initialize handlers and router
	routingHandler := handlers.NewRoutingHandler(routingService, resolver, analyticsService)
	facilityHandler := handlers.NewFacilityHandler(facilityAdapter)

	router := routes.NewRouter(routingHandler, facilityHandler, metrics)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
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
