package services

import (
	"context"
	"log/slog"
	"sort"

	"gastos/internal/amqp"
	"gastos/internal/core"
	"gastos/internal/ledger"
)

// LedgerService runs the synchronous load-mutate-save cycles behind every
// user interaction. Each call loads a fresh snapshot; nothing is cached
// between requests. The AMQP client is optional: when nil, save
// notifications are skipped.
type LedgerService struct {
	store      *ledger.Store
	amqpClient *amqp.Client
	document   string
}

func NewLedgerService(store *ledger.Store, amqpClient *amqp.Client, document string) *LedgerService {
	return &LedgerService{
		store:      store,
		amqpClient: amqpClient,
		document:   document,
	}
}

// Overview is the dashboard snapshot: monthly KPIs plus the concept table
// for the entry form.
type Overview struct {
	KPIs     core.KPISet
	Concepts []core.Concept
}

// Overview loads the ledger and computes the KPIs for the month of asOf.
func (s *LedgerService) Overview(ctx context.Context, asOf core.Date) (Overview, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		KPIs:     core.ComputeKPIs(l.Transactions, asOf),
		Concepts: l.Concepts,
	}, nil
}

// CreateTransaction appends one movement and persists the merged result.
// Validation failures surface before anything is saved or published.
func (s *LedgerService) CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	appended, err := l.Append(tx)
	if err != nil {
		return core.Transaction{}, err
	}
	if err := s.store.Save(ctx, l); err != nil {
		return core.Transaction{}, err
	}
	s.publishSaved(ctx, len(l.Transactions))
	return appended, nil
}

// PendingTransactions returns the editable pending subset.
func (s *LedgerService) PendingTransactions(ctx context.Context) ([]core.Transaction, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return l.Pending(), nil
}

// UpdatePending merges an edited pending subset back into the full table
// and persists it. Edits whose target row is no longer pending are
// dropped: a row confirmed in the meantime stays exactly as it is.
func (s *LedgerService) UpdatePending(ctx context.Context, edited []core.Transaction) error {
	for i := range edited {
		if !edited[i].Status.Valid() {
			return &core.ValidationError{Field: "status", Reason: "unknown status"}
		}
	}

	l, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	pending := make(map[int64]core.Transaction)
	for _, tx := range l.Pending() {
		pending[tx.ID] = tx
	}
	applicable := make([]core.Transaction, 0, len(edited))
	for _, e := range edited {
		current, ok := pending[e.ID]
		if !ok {
			continue
		}
		// The category is an entry-time snapshot; edits never rewrite it.
		e.Category = current.Category
		applicable = append(applicable, e)
	}

	l.Merge(applicable)
	if err := s.store.Save(ctx, l); err != nil {
		return err
	}
	s.publishSaved(ctx, len(l.Transactions))
	return nil
}

// History returns every movement, newest first.
func (s *LedgerService) History(ctx context.Context) ([]core.Transaction, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := append([]core.Transaction(nil), l.Transactions...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out, nil
}

func (s *LedgerService) publishSaved(ctx context.Context, transactions int) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishLedgerSaved(ctx, s.document, transactions); err != nil {
		// The save already succeeded; a lost notification is not worth
		// failing the request.
		slog.ErrorContext(ctx, "Failed to publish ledger saved message",
			"document", s.document, "error", err)
	}
}

// Close releases the AMQP connection, if any.
func (s *LedgerService) Close() error {
	if s.amqpClient != nil {
		return s.amqpClient.Close()
	}
	return nil
}
