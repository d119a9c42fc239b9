package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gastos/internal/amqp"
	"gastos/internal/auth"
	"gastos/internal/backend"
	"gastos/internal/config"
	apphttp "gastos/internal/http"
	"gastos/internal/ledger"
	"gastos/internal/log"
	"gastos/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	built, err := backend.Build(ctx, cfg, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize blob store", "error", err, "backend", cfg.BlobBackend)
		os.Exit(1)
	}
	if built.Cleanup != nil {
		defer func() {
			if err := built.Cleanup(); err != nil {
				logger.Error("Blob store cleanup failed", "error", err)
			}
		}()
	}

	// AMQP is optional: without a URL, saves simply go unannounced.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	store := ledger.NewStore(built.Store, logger)
	svc := services.NewLedgerService(store, amqpClient, cfg.LedgerFileName)
	defer svc.Close()

	gate := auth.NewGate(cfg.AppPassword, cfg.SessionTTL)

	srv := apphttp.NewServer(":"+cfg.Port, svc, gate, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting gastos server", "port", cfg.Port, "backend", cfg.BlobBackend, "document", cfg.LedgerFileName)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
