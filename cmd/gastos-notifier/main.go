// Command gastos-notifier consumes ledger save notifications and logs a
// fresh monthly summary after every save. It is the read-only observer
// side of the exchange the server publishes to.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"gastos/internal/amqp"
	"gastos/internal/backend"
	"gastos/internal/config"
	"gastos/internal/core"
	"gastos/internal/ledger"
	"gastos/internal/log"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	logger.Info("Starting gastos-notifier")

	cfg := config.Load()
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL must be set for the notifier")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	built, err := backend.Build(ctx, cfg, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize blob store", "error", err, "backend", cfg.BlobBackend)
		os.Exit(1)
	}
	defer func() {
		if built.Cleanup != nil {
			_ = built.Cleanup()
		}
	}()
	store := ledger.NewStore(built.Store, logger)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeLedgerSaved(gctx, func(msg *amqp.LedgerSavedMessage) error {
			return logSummary(gctx, store, logger, msg)
		})
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down notifier", "reason", gctx.Err())
		return gctx.Err()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Notifier stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Notifier stopped gracefully")
}

// logSummary re-loads the document the message refers to and logs the
// monthly KPIs. The message itself is only a trigger: the document is the
// source of truth.
func logSummary(ctx context.Context, store *ledger.Store, logger *log.Logger, msg *amqp.LedgerSavedMessage) error {
	l, err := store.Load(ctx)
	if err != nil {
		return err
	}
	kpis := core.ComputeKPIs(l.Transactions, core.Today())

	logger.InfoContext(ctx, "Ledger saved",
		"document", msg.Document,
		"transactions", msg.Transactions,
		"saved_at", msg.Timestamp,
		"cash_balance", kpis.CashBalance.String(),
		"pending_total", kpis.PendingTotal.String(),
		"projected_balance", kpis.ProjectedBalance.String())
	return nil
}
