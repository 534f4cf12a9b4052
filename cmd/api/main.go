package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lynxshop/backend/internal/adapters/cache"
	"github.com/lynxshop/backend/internal/adapters/database"
	"github.com/lynxshop/backend/internal/api/handlers"
	"github.com/lynxshop/backend/internal/api/routes"
	"github.com/lynxshop/backend/internal/application/services"
	"github.com/lynxshop/backend/internal/domain/providers"
	"github.com/lynxshop/backend/internal/infrastructure/clients/postgres"
	"github.com/lynxshop/backend/internal/infrastructure/clients/redis"
	"github.com/lynxshop/backend/internal/infrastructure/observability"
	"github.com/lynxshop/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

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
	log.Info().Msg("PostgreSQL client initialized")

	// Initialize Redis client. The application works without it: query
	// interpretations are simply recomputed.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without interpretation cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis client initialized")
	}

	// Initialize adapters
	catalogAdapter := database.NewCatalogAdapter(pgClient)
	synonymAdapter := database.NewSynonymAdapter(pgClient)
	metricsAdapter := database.NewSearchMetricsAdapter(pgClient)

	// Load the semantic dictionaries
	classifier, err := services.NewCategoryClassifier(filepath.Join(cfg.Search.ConfigDir, "semantic_categories.json"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load semantic categories")
	}
	priceExtractor, err := services.NewPriceIntentExtractor(filepath.Join(cfg.Search.ConfigDir, "price_bands.json"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load price bands")
	}
	contradictionDetector, err := services.NewContradictionDetector(filepath.Join(cfg.Search.ConfigDir, "contradiction_rules.json"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load contradiction rules")
	}

	// Warn about admin categories the dictionary cannot map
	if names, err := catalogAdapter.ListCategoryNames(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to list admin categories for validation")
	} else {
		classifier.ValidateAdminCategories(names)
	}

	// Initialize services
	catalogCache := services.NewCatalogCacheService(
		catalogAdapter,
		classifier,
		nil,
		time.Duration(cfg.Search.CatalogTTLSeconds)*time.Second,
		metrics,
	)

	searchService := services.NewSearchService(
		catalogCache,
		classifier,
		priceExtractor,
		contradictionDetector,
		metricsAdapter,
		cacheProvider,
		metrics,
		cfg.Search.MaxResults,
	)
	synonymService := services.NewSynonymService(synonymAdapter, catalogCache)
	suggestionService := services.NewSuggestionService(metricsAdapter)

	// Warm the catalog snapshot so the first search does not pay the
	// refresh cost.
	if err := catalogCache.ForceRefresh(ctx); err != nil {
		log.Warn().Err(err).Msg("initial catalog warm-up failed, first search will retry")
	}

	// Initialize handlers
	searchHandler := handlers.NewSearchHandler(searchService, suggestionService)
	synonymHandler := handlers.NewSynonymHandler(synonymService)

	// Set up router
	router := routes.NewRouter(searchHandler, synonymHandler, metrics)
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

	log.Info().Msg("server stopped")
}
