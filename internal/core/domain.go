package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	StatusConfirmed Status = "Confirmado"
	StatusPending   Status = "Pendiente"

	// FallbackCategory is assigned when a transaction references a concept
	// that does not exist in the concept table.
	FallbackCategory = "General"

	// SentinelCategory requires a non-empty detail on every transaction.
	SentinelCategory = "Otros gastos"
)

type (
	// Status is the settlement state of a transaction.
	Status string

	Date struct {
		time.Time
	}

	// Money is a signed amount in cents. Positive is income, negative is
	// an expense.
	Money struct {
		Cents int64
	}

	// Transaction is one row of the movements table. Category is resolved
	// from the concept table once, at entry time, and never re-derived.
	Transaction struct {
		ID       int64 // stable row identity, assigned by the ledger
		Date     Date
		Concept  string
		Category string
		Detail   string
		Amount   Money
		Status   Status
	}

	// Concept is a reusable label suggesting a default category for new
	// transactions.
	Concept struct {
		Name     string
		Category string
		Kind     string
	}

	// FixedExpense is a planning record. It never participates in KPI sums.
	FixedExpense struct {
		Concept   string
		Estimated Money
		Category  string
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidStatus = errors.New("invalid status")
)

// ValidationError reports a user-input rule violation on a single field.
// It never indicates a partial mutation: validation runs before any change.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// ParseStatus maps a raw cell value to a Status. Unknown values map to
// StatusPending so a hand-edited document keeps the row visible for review.
func ParseStatus(s string) Status {
	switch strings.TrimSpace(s) {
	case string(StatusConfirmed):
		return StatusConfirmed
	default:
		return StatusPending
	}
}

func (s Status) Valid() bool {
	return s == StatusConfirmed || s == StatusPending
}

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date with the time component dropped.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// SameMonth reports whether both dates fall in the same calendar month and
// year.
func (d Date) SameMonth(other Date) bool {
	return d.Year() == other.Year() && d.Month() == other.Month()
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// String formats the date as YYYY-MM-DD, the layout used in the persisted
// document.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Validate checks the fields the user can get wrong on entry. The detail
// rule for the sentinel category lives on Ledger.Append because it depends
// on the resolved category, not on the raw input.
func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return &ValidationError{Field: "date", Reason: err.Error()}
	}
	if strings.TrimSpace(t.Concept) == "" {
		return &ValidationError{Field: "concept", Reason: "empty concept"}
	}
	if !t.Status.Valid() {
		return &ValidationError{Field: "status", Reason: "unknown status"}
	}
	return nil
}
