// Package main is the entry point for the Finance Tracker forecasting API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/forecasting/config"
	"github.com/finance-tracker/forecasting/internal/infra/cache"
	"github.com/finance-tracker/forecasting/internal/infra/db"
	"github.com/finance-tracker/forecasting/internal/infra/dependency"
	"github.com/finance-tracker/forecasting/internal/infra/server/router"
	"github.com/finance-tracker/forecasting/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/forecasting/internal/integration/persistence/model"
)

// rateLimiterCleanupInterval controls how often expired rate limit entries are dropped.
const rateLimiterCleanupInterval = 5 * time.Minute

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Finance Tracker forecasting API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var r *router.Router

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Warn("Database connection failed, running without database",
			"error", err,
		)
		r = router.NewRouter(controller.NewHealthController(func() bool { return false }, nil), nil, nil, nil, nil)
	} else {
		// Run database migrations
		if err := database.AutoMigrate(
			&model.AccountModel{},
			&model.CategoryModel{},
			&model.GoalModel{},
			&model.TransactionModel{},
			&model.BillModel{},
		); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")

		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()

		redisClient := connectRedis(&cfg.Redis)
		if redisClient != nil {
			defer func() {
				if err := redisClient.Close(); err != nil {
					slog.Error("Failed to close redis connection", "error", err)
				}
			}()
		}

		injector := dependency.NewInjector(cfg, database.DB(), redisClient)
		go runRateLimiterCleanup(ctx, injector)
		r = injector.Router

		slog.Info("Forecast and bill systems initialized successfully",
			"cache_enabled", redisClient != nil,
		)
	}

	engine := r.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// connectRedis returns nil when caching is disabled or Redis is unreachable.
func connectRedis(cfg *config.RedisConfig) *redis.Client {
	if !cfg.Enabled {
		slog.Info("Forecast cache disabled")
		return nil
	}

	client, err := cache.NewRedisConnection(cfg)
	if err != nil {
		slog.Warn("Redis connection failed, running without forecast cache", "error", err)
		return nil
	}
	return client
}

func runRateLimiterCleanup(ctx context.Context, injector *dependency.Injector) {
	ticker := time.NewTicker(rateLimiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			injector.RateLimiter.Cleanup()
		}
	}
}
