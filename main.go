package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/theleywin/devconnector/src/app"
	"github.com/theleywin/devconnector/src/cache"
	"github.com/theleywin/devconnector/src/config"
	"github.com/theleywin/devconnector/src/lib"
	"github.com/theleywin/devconnector/src/middleware"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := lib.NewLogger(cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	store, err := lib.ConnectDB(connectCtx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return err
	}
	defer closeStore(store)

	if err := store.EnsureIndexes(connectCtx); err != nil {
		return err
	}

	var (
		rdb     *redis.Client
		storage fiber.Storage
	)
	if cfg.RedisURL != "" {
		rdb, err = cache.Connect(connectCtx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		storage = cache.NewRedisStorage(rdb)
		logger.Info("Rate limiter backed by Redis")
	} else {
		logger.Info("REDIS_URL not set, rate limiter runs in memory")
	}

	metrics := middleware.NewMetrics("devconnector")
	svc, err := app.NewServices(cfg, store.DB, metrics)
	if err != nil {
		return err
	}
	server := app.New(cfg, logger, svc, metrics, storage)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server is running", slog.String("port", cfg.Port), slog.String("env", cfg.Env))
		errCh <- server.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func closeStore(store *lib.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := store.Close(ctx); err != nil {
		slog.Error("Failed to close MongoDB connection", slog.Any("error", err))
	}
}
