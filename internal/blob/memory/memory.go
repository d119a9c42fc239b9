// Package memory provides an in-process blob store for development and
// tests. Failures are injectable and puts are counted so tests can assert
// the write discipline of the ledger store.
package memory

import (
	"context"
	"sync"

	"gastos/internal/blob"
)

type Store struct {
	mu      sync.Mutex
	data    []byte
	present bool
	puts    int

	// Injectable failures. When set, the corresponding call returns the
	// error instead of touching the blob.
	FetchErr error
	PutErr   error
}

func New() *Store {
	return &Store{}
}

// NewWith returns a store pre-populated with the given document bytes.
func NewWith(data []byte) *Store {
	s := New()
	s.data = append([]byte(nil), data...)
	s.present = true
	return s
}

func (s *Store) Fetch(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	if !s.present {
		return nil, blob.ErrNotFound
	}
	return append([]byte(nil), s.data...), nil
}

func (s *Store) Put(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	if s.PutErr != nil {
		return s.PutErr
	}
	s.data = append([]byte(nil), data...)
	s.present = true
	return nil
}

// Puts returns how many Put calls were issued, including failed ones.
func (s *Store) Puts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}

var _ blob.Store = (*Store)(nil)
