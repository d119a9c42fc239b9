// Package ledger loads and saves the ledger document through the blob
// store port, owning the first-use bootstrap and row coercion.
package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"gastos/internal/blob"
	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/workbook"
)

// Accepted Fecha layouts. The first is what this program writes; the rest
// cover hand-edited documents.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	time.RFC3339,
}

// Absence markers a Detalle cell may carry after a trip through other
// tooling. All normalize to the empty string.
var detailAbsenceMarkers = map[string]struct{}{
	"":      {},
	"nan":   {},
	"NaN":   {},
	"<nil>": {},
	"None":  {},
}

type Store struct {
	blob   blob.Store
	logger *log.Logger
}

func NewStore(b blob.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Store{blob: b, logger: logger.WithComponent(log.ComponentLedger)}
}

// Load fetches and decodes the remote document into a typed ledger. A
// missing document runs the bootstrap path: the canonical template is
// persisted immediately and returned, so first-run and steady-state share
// one code path. Any other failure surfaces as a *LoadError.
func (s *Store) Load(ctx context.Context) (*core.Ledger, error) {
	data, err := s.blob.Fetch(ctx)
	if errors.Is(err, blob.ErrNotFound) {
		return s.bootstrap(ctx)
	}
	if err != nil {
		return nil, &LoadError{Reason: ReasonTransport, Err: err}
	}

	doc, err := workbook.Decode(data)
	if err != nil {
		return nil, &LoadError{Reason: ReasonCorrupt, Err: err}
	}

	l := fromDocument(doc)
	s.logger.InfoContext(ctx, "Ledger loaded",
		log.FieldOperation, log.OpLoad,
		log.FieldTransactions, len(l.Transactions))
	return l, nil
}

// Save serializes all three tables and overwrites the remote document with
// exactly one unconditional put. No read-modify-write, no concurrency
// check: the last writer wins.
func (s *Store) Save(ctx context.Context, l *core.Ledger) error {
	data, err := workbook.Encode(toDocument(l))
	if err != nil {
		return &SaveError{Err: err}
	}
	if err := s.blob.Put(ctx, data); err != nil {
		return &SaveError{Err: err}
	}
	s.logger.InfoContext(ctx, "Ledger saved",
		log.FieldOperation, log.OpSave,
		log.FieldTransactions, len(l.Transactions))
	return nil
}

func (s *Store) bootstrap(ctx context.Context) (*core.Ledger, error) {
	s.logger.InfoContext(ctx, "Ledger document not found, creating template",
		log.FieldOperation, log.OpBootstrap)
	l := NewTemplate()
	if err := s.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// fromDocument coerces raw cells into typed rows. Row content never fails
// a load: malformed amounts map to 0, unknown statuses stay pending, and
// absence markers in Detalle normalize to the empty string.
func fromDocument(doc workbook.Document) *core.Ledger {
	txs := make([]core.Transaction, 0, len(doc.Movements))
	for _, row := range doc.Movements {
		txs = append(txs, core.Transaction{
			Date:     coerceDate(row[0]),
			Concept:  strings.TrimSpace(row[1]),
			Category: strings.TrimSpace(row[2]),
			Detail:   normalizeDetail(row[3]),
			Amount:   core.CoerceCents(row[4]),
			Status:   core.ParseStatus(row[5]),
		})
	}

	concepts := make([]core.Concept, 0, len(doc.Concepts))
	for _, row := range doc.Concepts {
		concepts = append(concepts, core.Concept{
			Name:     strings.TrimSpace(row[0]),
			Category: strings.TrimSpace(row[1]),
			Kind:     strings.TrimSpace(row[2]),
		})
	}

	fixed := make([]core.FixedExpense, 0, len(doc.Fixed))
	for _, row := range doc.Fixed {
		fixed = append(fixed, core.FixedExpense{
			Concept:   strings.TrimSpace(row[0]),
			Estimated: core.CoerceCents(row[1]),
			Category:  strings.TrimSpace(row[2]),
		})
	}

	return core.NewLedger(txs, concepts, fixed)
}

func toDocument(l *core.Ledger) workbook.Document {
	var doc workbook.Document
	for _, tx := range l.Transactions {
		doc.Movements = append(doc.Movements, []string{
			tx.Date.String(),
			tx.Concept,
			tx.Category,
			tx.Detail,
			tx.Amount.String(),
			string(tx.Status),
		})
	}
	for _, c := range l.Concepts {
		doc.Concepts = append(doc.Concepts, []string{c.Name, c.Category, c.Kind})
	}
	for _, f := range l.Fixed {
		doc.Fixed = append(doc.Fixed, []string{f.Concept, f.Estimated.String(), f.Category})
	}
	return doc
}

func coerceDate(s string) core.Date {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return core.NewDate(t.Year(), int(t.Month()), t.Day())
		}
	}
	// Unparseable dates keep the row but fall out of every month filter.
	return core.Date{}
}

func normalizeDetail(s string) string {
	if _, absent := detailAbsenceMarkers[strings.TrimSpace(s)]; absent {
		return ""
	}
	return s
}
