package ledger

import "gastos/internal/core"

// DefaultConcepts is the concept table seeded into a fresh document.
func DefaultConcepts() []core.Concept {
	return []core.Concept{
		{Name: "Sueldo", Category: "Ingresos", Kind: "Ingreso"},
		{Name: "Alquiler", Category: "Vivienda", Kind: "Fijo"},
		{Name: "Supermercado", Category: "Alimentos", Kind: "Variable"},
		{Name: "Varios", Category: core.SentinelCategory, Kind: "Variable"},
	}
}

// NewTemplate builds the canonical empty ledger: no movements, the seeded
// concepts, no fixed expenses.
func NewTemplate() *core.Ledger {
	return core.NewLedger(nil, DefaultConcepts(), nil)
}
