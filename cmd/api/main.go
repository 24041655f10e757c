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

	"github.com/fintabular/ledger-api/internal/config"
	"github.com/fintabular/ledger-api/internal/events"
	"github.com/fintabular/ledger-api/internal/events/kafka"
	"github.com/fintabular/ledger-api/internal/handler"
	"github.com/fintabular/ledger-api/internal/logging"
	"github.com/fintabular/ledger-api/internal/middleware"
	"github.com/fintabular/ledger-api/internal/repository"
	"github.com/fintabular/ledger-api/internal/service"
	"github.com/fintabular/ledger-api/internal/service/ledger"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("ledger-api", cfg.LogLevel, cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	})
	cancel()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		publisher = kp
		slog.Info("kafka publisher enabled", "topic", cfg.KafkaTopic)
	}

	accountRepo := repository.NewAccountRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	entryRepo := repository.NewEntryRepository(db)

	accountSvc := service.NewAccountService(accountRepo)
	entrySvc := service.NewEntryService(entryRepo)
	ledgerSvc := ledger.NewService(accountRepo, transactionRepo, entryRepo, publisher, db)

	accountHandler := handler.NewAccountHandler(accountSvc)
	transactionHandler := handler.NewTransactionHandler(ledgerSvc)
	entryHandler := handler.NewEntryHandler(entrySvc)
	healthHandler := handler.NewHealthHandler(db)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.Liveness)
	mux.HandleFunc("GET /health/ready", healthHandler.Readiness)

	mux.HandleFunc("POST /api/v1/accounts", accountHandler.Create)
	mux.HandleFunc("GET /api/v1/accounts", accountHandler.List)
	mux.HandleFunc("GET /api/v1/accounts/{id}", accountHandler.Get)
	mux.HandleFunc("PATCH /api/v1/accounts/{id}", accountHandler.Update)
	mux.HandleFunc("GET /api/v1/accounts/{id}/entries", entryHandler.ListByAccount)

	mux.HandleFunc("POST /api/v1/transactions", transactionHandler.Create)
	mux.HandleFunc("GET /api/v1/transactions", transactionHandler.List)
	mux.HandleFunc("GET /api/v1/transactions/{id}", transactionHandler.Get)

	mux.HandleFunc("GET /api/v1/entries", entryHandler.List)
	mux.HandleFunc("GET /api/v1/entries/{id}", entryHandler.Get)

	var root http.Handler = mux
	root = middleware.Recovery(root)
	root = middleware.Logging(root)
	root = middleware.Tracing(root)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
