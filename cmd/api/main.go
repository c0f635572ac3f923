package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/homestay-platform/backend/internal/adapters/cache"
	"github.com/homestay-platform/backend/internal/adapters/database"
	"github.com/homestay-platform/backend/internal/adapters/memory"
	"github.com/homestay-platform/backend/internal/api/handlers"
	"github.com/homestay-platform/backend/internal/api/routes"
	"github.com/homestay-platform/backend/internal/application/services"
	"github.com/homestay-platform/backend/internal/auth"
	"github.com/homestay-platform/backend/internal/domain/providers"
	"github.com/homestay-platform/backend/internal/domain/repositories"
	"github.com/homestay-platform/backend/internal/infrastructure/clients/postgres"
	redisclient "github.com/homestay-platform/backend/internal/infrastructure/clients/redis"
	"github.com/homestay-platform/backend/internal/infrastructure/observability"
	"github.com/homestay-platform/backend/pkg/config"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		observability.GetLogger().Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)
	logger := observability.GetLogger()

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
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Wire repositories for the configured storage backend
	var (
		userRepo    repositories.UserRepository
		placeRepo   repositories.PlaceRepository
		reviewRepo  repositories.ReviewRepository
		amenityRepo repositories.AmenityRepository
	)

	switch cfg.Storage.Backend {
	case config.StorageBackendPostgres:
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
		}
		defer pgClient.Close()

		if err := pgClient.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to ensure database schema")
		}
		logger.Info().Msg("PostgreSQL client initialized")

		// Redis is optional; places fall back to uncached reads without it
		var cacheProvider providers.CacheProvider
		if redisConn, err := redisclient.NewClient(&cfg.Redis); err != nil {
			logger.Warn().Err(err).Msg("continuing without Redis cache")
		} else {
			defer redisConn.Close()
			cacheProvider = cache.NewRedisAdapter(redisConn)
			logger.Info().Msg("Redis client initialized")
		}

		userRepo = database.NewUserAdapter(pgClient)
		reviewRepo = database.NewReviewAdapter(pgClient)
		amenityRepo = database.NewAmenityAdapter(pgClient)

		basePlaceRepo := database.NewPlaceAdapter(pgClient)
		if cacheProvider != nil {
			placeRepo = database.NewCachedPlaceAdapter(basePlaceRepo, cacheProvider, metrics)
		} else {
			placeRepo = basePlaceRepo
		}

	case config.StorageBackendMemory:
		logger.Warn().Msg("using in-memory storage; all data is lost on shutdown")
		amenityStore := memory.NewAmenityStore()
		userRepo = memory.NewUserStore()
		placeRepo = memory.NewPlaceStore(amenityStore)
		reviewRepo = memory.NewReviewStore()
		amenityRepo = amenityStore
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	facade := services.NewFacade(userRepo, placeRepo, reviewRepo, amenityRepo, tokens)

	router := routes.NewRouter(
		handlers.NewAuthHandler(facade),
		handlers.NewUserHandler(facade),
		handlers.NewPlaceHandler(facade),
		handlers.NewReviewHandler(facade),
		handlers.NewAmenityHandler(facade),
		tokens,
		metrics,
	)

	server := &http.Server{
		Addr:         cfg.Server.ServerAddr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
	logger.Info().Msg("server stopped")
}
