// Package main is the entry point for the SparkEd API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sparked/backend/config"
	"github.com/sparked/backend/internal/infra/cache"
	"github.com/sparked/backend/internal/infra/db"
	"github.com/sparked/backend/internal/infra/dependency"
	"github.com/sparked/backend/internal/infra/logging"
	"github.com/sparked/backend/internal/integration/persistence/model"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg := config.Load()
	slog.SetDefault(logging.New(cfg.Log, os.Stdout))

	if err := cfg.Validate(); err != nil {
		return err
	}

	slog.Info("Starting SparkEd API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"database_driver", cfg.Database.Driver,
	)

	database, err := db.Open(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(model.All()...); err != nil {
		return err
	}
	slog.Info("Database migrations completed successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := cache.Connect(ctx, cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("Failed to close redis connection", "error", err)
		}
	}()

	injector, err := dependency.NewInjector(cfg, database.DB(), redisClient, dependency.Options{
		DBHealthChecker: database.HealthCheck,
	})
	if err != nil {
		return err
	}

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	workerDone := make(chan struct{})
	if cfg.Email.WorkerEnabled {
		go func() {
			defer close(workerDone)
			injector.EmailWorker.Start(workerCtx)
		}()
	} else {
		close(workerDone)
		slog.Warn("Email worker disabled")
	}

	cleanupDone := make(chan struct{})
	defer close(cleanupDone)
	go injector.RateLimiter.RunCleanup(cleanupDone, 5*time.Minute)

	engine, err := injector.Router.Setup(cfg.Server.Environment)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")

	cancelWorker()
	<-workerDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("Server exited properly")
	return nil
}
