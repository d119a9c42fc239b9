// Package backend selects and builds the blob store adapter holding the
// ledger document.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"gastos/internal/blob"
	"gastos/internal/blob/drive"
	"gastos/internal/blob/gcs"
	"gastos/internal/blob/memory"
	"gastos/internal/blob/sqlite"
	"gastos/internal/config"
)

// Type identifies a blob store adapter.
type Type string

const (
	Memory Type = "memory"
	GCS    Type = "gcs"
	Drive  Type = "drive"
	SQLite Type = "sqlite"
)

func (t Type) String() string { return string(t) }

// IsValid returns true if the backend type is valid.
func (t Type) IsValid() bool {
	switch t {
	case Memory, GCS, Drive, SQLite:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{Memory, GCS, Drive, SQLite}
}

// CleanupFunc releases adapter resources.
type CleanupFunc func() error

// Result contains the built store and an optional cleanup function.
type Result struct {
	Store   blob.Store
	Cleanup CleanupFunc
}

// Build creates the blob store named by the configuration.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	t := Type(cfg.BlobBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid blob backend %q: must be one of %v", cfg.BlobBackend, Types())
	}

	switch t {
	case GCS:
		store, err := gcs.New(ctx, cfg.GCSBucket, cfg.GCSObject)
		if err != nil {
			return nil, fmt.Errorf("initialize GCS store: %w", err)
		}
		logger.Info("Initialized GCS blob store", "bucket", cfg.GCSBucket, "object", cfg.GCSObject)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case Drive:
		store, err := drive.NewFromEnv(ctx, cfg.LedgerFileName)
		if err != nil {
			return nil, fmt.Errorf("initialize Drive store: %w", err)
		}
		logger.Info("Initialized Drive blob store", "file", cfg.LedgerFileName)
		return &Result{Store: store, Cleanup: nil}, nil

	case SQLite:
		store, err := sqlite.New(cfg.SQLiteDBPath, cfg.LedgerFileName)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite store: %w", err)
		}
		logger.Info("Initialized SQLite blob store", "db_path", cfg.SQLiteDBPath, "document", cfg.LedgerFileName)
		return &Result{Store: store, Cleanup: store.Close}, nil

	default:
		logger.Info("Initialized memory blob store")
		return &Result{Store: memory.New(), Cleanup: nil}, nil
	}
}
