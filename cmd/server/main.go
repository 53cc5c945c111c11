package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/thanhvdo/goldfx-be/internal/config"
	"github.com/thanhvdo/goldfx-be/internal/domain"
	"github.com/thanhvdo/goldfx-be/internal/handler"
	"github.com/thanhvdo/goldfx-be/internal/server"
	"github.com/thanhvdo/goldfx-be/internal/service"
	"github.com/thanhvdo/goldfx-be/internal/storage"
	"github.com/thanhvdo/goldfx-be/pkg/logger"
	"github.com/thanhvdo/goldfx-be/pkg/retry"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Logging.Level)
	defer log.Sync()

	ctx := context.Background()
	log.Info(ctx, "Starting application")

	store, closeStore := initStore(ctx, cfg, log)
	defer closeStore()

	transactionService := service.NewTransactionService(store, log)
	statisticsService := service.NewStatisticsService(store, log)
	exportService := service.NewExportService(log)
	log.Info(ctx, "Services initialized")

	transactionHandler := handler.NewTransactionHandler(transactionService, log)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService, log)
	exportHandler := handler.NewExportHandler(transactionService, statisticsService, exportService, log)
	healthHandler := handler.NewHealthHandler()
	log.Info(ctx, "Handlers initialized")

	srv := server.New(cfg, log, transactionHandler, statisticsHandler, exportHandler, healthHandler)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal(ctx, "Failed to start HTTP server",
				"error", err,
			)
		}
	}()

	log.Info(ctx, "Application started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "HTTP server shutdown error",
			"error", err,
		)
	}

	log.Info(ctx, "Application stopped gracefully")
}

// initStore connects to Postgres when DATABASE_URL is set, retrying with
// backoff; otherwise it falls back to the in-memory store.
func initStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (domain.Store, func()) {
	if cfg.Database.URL == "" {
		log.Info(ctx, "No DATABASE_URL configured, using in-memory store")
		return storage.NewMemoryStore(), func() {}
	}

	var store *storage.PostgresStore
	err := retry.Do(ctx, func() error {
		var connectErr error
		store, connectErr = storage.NewPostgresStore(cfg.Database.URL)
		return connectErr
	}, retry.WithMaxAttempts(cfg.Database.ConnectMaxRetries))
	if err != nil {
		log.Fatal(ctx, "Failed to connect to database",
			"error", err,
		)
	}

	log.Info(ctx, "Connected to Postgres store")

	return store, func() {
		if err := store.Close(); err != nil {
			log.Error(ctx, "Failed to close store",
				"error", err,
			)
		}
	}
}
