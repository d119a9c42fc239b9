package core

import "strings"

// Ledger is the full in-memory state of the persisted document: the
// movements, concept and fixed-expense tables. It is the sole owner of all
// three; no table outlives the ledger holding it.
//
// Every transaction carries an opaque sequence number assigned here, either
// while loading or on append. Merge matches rows by that identity, never by
// value equality, so two pending rows with identical fields stay
// distinguishable.
type Ledger struct {
	Transactions []Transaction
	Concepts     []Concept
	Fixed        []FixedExpense

	nextID int64
}

// NewLedger builds a ledger from loaded tables, assigning sequence numbers
// to every transaction in table order.
func NewLedger(txs []Transaction, concepts []Concept, fixed []FixedExpense) *Ledger {
	l := &Ledger{
		Transactions: make([]Transaction, 0, len(txs)),
		Concepts:     concepts,
		Fixed:        fixed,
		nextID:       1,
	}
	for _, tx := range txs {
		tx.ID = l.nextID
		l.nextID++
		l.Transactions = append(l.Transactions, tx)
	}
	return l
}

// ResolveCategory returns the default category for a concept name, or
// FallbackCategory when the concept table has no such entry. The concept
// reference is a lookup by value, not an enforced key.
func (l *Ledger) ResolveCategory(conceptName string) string {
	for _, c := range l.Concepts {
		if c.Name == conceptName {
			return c.Category
		}
	}
	return FallbackCategory
}

// Append validates tx, resolves its category from the concept table and
// appends it preserving insertion order. The ledger is untouched when
// validation fails.
//
// The one entry rule: a transaction landing in the sentinel category must
// justify itself with a non-blank detail.
func (l *Ledger) Append(tx Transaction) (Transaction, error) {
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	tx.Category = l.ResolveCategory(tx.Concept)
	if tx.Category == SentinelCategory && strings.TrimSpace(tx.Detail) == "" {
		return Transaction{}, &ValidationError{
			Field:  "detail",
			Reason: "detail is required for category " + SentinelCategory,
		}
	}
	tx.ID = l.nextID
	l.nextID++
	l.Transactions = append(l.Transactions, tx)
	return tx, nil
}

// Pending returns a copy of every transaction with StatusPending, in table
// order. The copies carry their sequence numbers so an edited subset can be
// merged back.
func (l *Ledger) Pending() []Transaction {
	var out []Transaction
	for _, tx := range l.Transactions {
		if tx.Status == StatusPending {
			out = append(out, tx)
		}
	}
	return out
}

// Merge replaces every transaction whose ID matches a row of the edited
// subset with the edited values. Rows absent from the subset are untouched.
// This is the only update path for existing rows: the caller extracts
// Pending(), edits a batch, and merges it back. Edits referencing unknown
// IDs are ignored.
func (l *Ledger) Merge(edited []Transaction) {
	if len(edited) == 0 {
		return
	}
	byID := make(map[int64]Transaction, len(edited))
	for _, e := range edited {
		byID[e.ID] = e
	}
	for i, tx := range l.Transactions {
		e, ok := byID[tx.ID]
		if !ok {
			continue
		}
		e.ID = tx.ID
		l.Transactions[i] = e
	}
}

// Transaction returns the transaction with the given sequence number.
func (l *Ledger) Transaction(id int64) (Transaction, bool) {
	for _, tx := range l.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return Transaction{}, false
}

// ConceptNames returns the concept names in table order, for entry forms.
func (l *Ledger) ConceptNames() []string {
	names := make([]string, 0, len(l.Concepts))
	for _, c := range l.Concepts {
		names = append(names, c.Name)
	}
	return names
}
