// Package blob defines the outbound port for the remote document: an
// opaque byte blob behind fetch and put, last writer wins. There is no
// locking, no versioning and no retry policy at this boundary.
package blob

import (
	"context"
	"errors"
)

// ErrNotFound signals that no document exists at the configured path. The
// ledger store treats it as the first-run trigger, never as a user error.
var ErrNotFound = errors.New("blob not found")

// Store is the port every storage adapter implements.
type Store interface {
	// Fetch returns the full document bytes, or ErrNotFound.
	Fetch(ctx context.Context) ([]byte, error)

	// Put replaces the full document bytes unconditionally.
	Put(ctx context.Context, data []byte) error
}
