package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"gastos/internal/core"
)

type movementPayload struct {
	Date    string `json:"date"`   // YYYY-MM-DD
	Concept string `json:"concept"`
	Detail  string `json:"detail"`
	Amount  string `json:"amount"` // signed decimal, negative = expense
	Status  string `json:"status"` // Confirmado | Pendiente
}

func (p movementPayload) toTransaction() (core.Transaction, error) {
	date, err := parseDate(p.Date)
	if err != nil {
		return core.Transaction{}, &core.ValidationError{Field: "date", Reason: "expected YYYY-MM-DD"}
	}
	cents, err := core.ParseCents(p.Amount)
	if err != nil {
		return core.Transaction{}, &core.ValidationError{Field: "amount", Reason: "not a number"}
	}
	status := core.Status(strings.TrimSpace(p.Status))
	if !status.Valid() {
		return core.Transaction{}, &core.ValidationError{Field: "status", Reason: "unknown status"}
	}
	return core.Transaction{
		Date:    date,
		Concept: strings.TrimSpace(p.Concept),
		Detail:  p.Detail,
		Amount:  core.Money{Cents: cents},
		Status:  status,
	}, nil
}

type editedMovementPayload struct {
	ID int64 `json:"id"`
	movementPayload
}

func (p editedMovementPayload) toTransaction() (core.Transaction, error) {
	tx, err := p.movementPayload.toTransaction()
	if err != nil {
		return core.Transaction{}, err
	}
	if p.ID <= 0 {
		return core.Transaction{}, &core.ValidationError{Field: "id", Reason: "missing row id"}
	}
	tx.ID = p.ID
	// Category travels with the row; edits never re-resolve it.
	tx.Category = ""
	return tx, nil
}

type movementJSON struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Concept  string `json:"concept"`
	Category string `json:"category"`
	Detail   string `json:"detail"`
	Amount   string `json:"amount"`
	Status   string `json:"status"`
}

type conceptJSON struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Kind     string `json:"kind"`
}

type overviewJSON struct {
	Year             int           `json:"year"`
	Month            int           `json:"month"`
	CashBalance      string        `json:"cash_balance"`
	PendingTotal     string        `json:"pending_total"`
	ProjectedBalance string        `json:"projected_balance"`
	Concepts         []conceptJSON `json:"concepts"`
}

func toMovementJSON(tx core.Transaction) movementJSON {
	return movementJSON{
		ID:       tx.ID,
		Date:     tx.Date.String(),
		Concept:  tx.Concept,
		Category: tx.Category,
		Detail:   tx.Detail,
		Amount:   tx.Amount.String(),
		Status:   string(tx.Status),
	}
}

func toMovementList(txs []core.Transaction) []movementJSON {
	out := make([]movementJSON, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toMovementJSON(tx))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
