// Command gastos-init creates the ledger document in the configured blob
// store if it does not exist yet, and prints the table sizes either way.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"gastos/internal/backend"
	"gastos/internal/config"
	"gastos/internal/ledger"
	"gastos/internal/log"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

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
	l, err := store.Load(ctx)
	if err != nil {
		logger.Error("Failed to load or bootstrap ledger", "error", err, "document", cfg.LedgerFileName)
		os.Exit(1)
	}

	fmt.Printf("Document: %s (backend %s)\n", cfg.LedgerFileName, cfg.BlobBackend)
	fmt.Printf("Movements: %d\n", len(l.Transactions))
	fmt.Printf("Concepts:  %d\n", len(l.Concepts))
	fmt.Printf("Fixed:     %d\n", len(l.Fixed))
}
