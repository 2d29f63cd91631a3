package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/healthcoach/backend/config"
	"github.com/pageza/healthcoach/backend/internal/database"
	"github.com/pageza/healthcoach/backend/internal/logger"
	"github.com/pageza/healthcoach/backend/internal/middleware"
	"github.com/pageza/healthcoach/backend/internal/nutrition"
	"github.com/pageza/healthcoach/backend/internal/pipeline"
	"github.com/pageza/healthcoach/backend/internal/server"
	"github.com/pageza/healthcoach/backend/internal/telemetry"
)

const version = "v1.0.0"

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.Setup(os.Stdout, cfg.LogLevel, cfg.IsProduction())

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTelEndpoint, cfg.OTelServiceName, version)
	if err != nil {
		fatal("failed to set up tracing", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			// Redis only backs the optional cache and rate limiter.
			slog.Warn("continuing without redis", "error", err)
			redisClient = nil
		}
	}

	provider, err := newProvider(cfg)
	if err != nil {
		fatal("failed to create nutrition provider", err)
	}
	if redisClient != nil && cfg.CacheEnabled() {
		provider = nutrition.NewCachedProvider(provider, redisClient, cfg.NutritionCacheTTL)
		slog.Info("nutrition lookup cache enabled", "ttl", cfg.NutritionCacheTTL)
	}

	var opts []server.Option
	if redisClient != nil && cfg.RateLimitEnabled() {
		opts = append(opts, server.WithRateLimiter(middleware.NewMealLogRateLimiter(redisClient, cfg.RateLimitPerMinute)))
	}

	// Create and start server
	srv := server.New(cfg, pipeline.NewExecutor(provider), opts...)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			fatal("server error", err)
		}
	case sig := <-quit:
		slog.Info("received signal", "signal", sig.String())
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("tracer shutdown error", "error", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	slog.Info("server stopped")
}

// newProvider builds the configured nutrition provider. Missing Nutritionix
// credentials surface here as a ConfigurationError so the service never
// starts half-configured.
func newProvider(cfg *config.Config) (nutrition.Provider, error) {
	switch cfg.NutritionProvider {
	case config.ProviderCatalog:
		db, err := database.OpenCatalog(cfg.CatalogDSN)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(db); err != nil {
			return nil, err
		}
		return nutrition.NewCatalogProvider(db), nil
	case config.ProviderNutritionix:
		return nutrition.NewClient(nutrition.Config{
			AppID:   cfg.NutritionixAppID,
			AppKey:  cfg.NutritionixAppKey,
			URL:     cfg.NutritionixURL,
			Timeout: cfg.NutritionTimeout,
		})
	default:
		return nil, errors.New("unknown nutrition provider: " + cfg.NutritionProvider)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
