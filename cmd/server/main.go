package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"real_estate/internal/config"
	"real_estate/internal/handler"
	"real_estate/internal/middleware"
	"real_estate/internal/relay"
	"real_estate/internal/repository"
	"real_estate/internal/repository/memory"
	"real_estate/internal/service"
	"real_estate/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger := logger.New(cfg.Log.Level)
	ctx := context.Background()

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		appLogger.Fatal("Failed to connect to Redis", "error", err)
	}
	appLogger.Info("Redis connection established")

	// Initialize repositories
	var repos *repository.Repositories
	switch cfg.Database.Driver {
	case config.DriverMemory:
		repos = memory.NewRepositories(rdb, cfg.Cache.SearchTTL, appLogger)
		appLogger.Warn("Using in-memory storage, data is lost on restart")
	default:
		dbPool, err := connectPostgres(ctx, cfg.Database)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", "error", err)
		}
		defer dbPool.Close()
		appLogger.Info("Database connection established")

		if err := repository.Migrate(ctx, dbPool); err != nil {
			appLogger.Fatal("Failed to migrate database", "error", err)
		}
		repos = repository.NewRepositories(dbPool, rdb, cfg.Cache.SearchTTL, appLogger)
	}

	// Initialize services
	images, err := service.NewLocalImageStore(cfg.Upload.Dir, cfg.Upload.BaseURL, cfg.Upload.MaxBytes, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to prepare upload directory", "error", err)
	}

	services := service.NewServices(repos, images, cfg, appLogger)

	// Start the websocket relay
	var fanout relay.Fanout = relay.NewLocalFanout()
	if cfg.Relay.Fanout == config.FanoutRedis {
		fanout = relay.NewRedisFanout(rdb, appLogger)
	}
	hub, err := relay.NewHub(ctx, fanout, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to start relay", "error", err)
	}

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(services.Auth, appLogger)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(services.RateLimit, appLogger)

	handlers := handler.NewHandlers(services, hub, cfg, appLogger)
	router := handler.SetupRouter(handlers, authMiddleware, rateLimitMiddleware, cfg, appLogger)

	// HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", "addr", srv.Addr, "driver", cfg.Database.Driver, "fanout", cfg.Relay.Fanout)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	if err := hub.Stop(); err != nil {
		appLogger.Warn("Relay stopped with error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exited")
}

func connectPostgres(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxConnections)
	poolCfg.MaxConnIdleTime = cfg.MaxIdleTime
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}
