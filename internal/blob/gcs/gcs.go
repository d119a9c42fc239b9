// Package gcs stores the ledger document as a single object in a Google
// Cloud Storage bucket. Credentials come from Application Default
// Credentials.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"

	"gastos/internal/blob"
)

type Store struct {
	client *storage.Client
	bucket string
	object string
}

// New creates a GCS-backed blob store for one bucket/object pair.
func New(ctx context.Context, bucket, object string) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &Store{client: client, bucket: bucket, object: object}, nil
}

func (s *Store) Fetch(ctx context.Context) ([]byte, error) {
	r, err := s.client.Bucket(s.bucket).Object(s.object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, blob.ErrNotFound
		}
		return nil, fmt.Errorf("open GCS object reader: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read GCS object: %w", err)
	}
	return data, nil
}

func (s *Store) Put(ctx context.Context, data []byte) error {
	w := s.client.Bucket(s.bucket).Object(s.object).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write GCS object: %w", err)
	}
	// Close finalizes the upload; readers see either the old or the new
	// object, never a partial write.
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize GCS upload: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

var _ blob.Store = (*Store)(nil)
