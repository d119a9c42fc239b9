package services

import (
	"context"
	"errors"
	"testing"

	"gastos/internal/blob/memory"
	"gastos/internal/core"
	"gastos/internal/ledger"
)

func newTestService(t *testing.T) (*LedgerService, *memory.Store) {
	t.Helper()
	mem := memory.New()
	store := ledger.NewStore(mem, nil)
	return NewLedgerService(store, nil, "Gastos.xlsx"), mem
}

func TestCreateTransactionPersists(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	tx, err := svc.CreateTransaction(ctx, core.Transaction{
		Date:    core.NewDate(2026, 8, 1),
		Concept: "Sueldo",
		Amount:  core.Money{Cents: 250000},
		Status:  core.StatusConfirmed,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tx.Category != "Ingresos" {
		t.Fatalf("expected resolved category Ingresos, got %q", tx.Category)
	}

	// bootstrap put + create put
	if mem.Puts() != 2 {
		t.Fatalf("expected 2 puts, got %d", mem.Puts())
	}

	history, err := svc.History(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].Concept != "Sueldo" {
		t.Fatalf("movement not persisted: %+v", history)
	}
}

func TestCreateTransactionValidationDoesNotSave(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	// Warm the document so only validation decides whether a put happens.
	if _, err := svc.Overview(ctx, core.NewDate(2026, 8, 1)); err != nil {
		t.Fatalf("overview: %v", err)
	}
	putsBefore := mem.Puts()

	_, err := svc.CreateTransaction(ctx, core.Transaction{
		Date:    core.NewDate(2026, 8, 2),
		Concept: "Varios", // resolves to the sentinel category
		Detail:  "   ",
		Amount:  core.Money{Cents: -900},
		Status:  core.StatusConfirmed,
	})
	var verr *core.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *core.ValidationError, got %v", err)
	}
	if mem.Puts() != putsBefore {
		t.Fatalf("validation failure must not write, got %d extra puts", mem.Puts()-putsBefore)
	}
}

func TestUpdatePendingMergesAndSaves(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateTransaction(ctx, core.Transaction{
		Date:    core.NewDate(2026, 8, 3),
		Concept: "Alquiler",
		Amount:  core.Money{Cents: -80000},
		Status:  core.StatusPending,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	pending, err := svc.PendingTransactions(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending row, got %d", len(pending))
	}

	pending[0].Status = core.StatusConfirmed
	if err := svc.UpdatePending(ctx, pending); err != nil {
		t.Fatalf("update pending: %v", err)
	}

	after, err := svc.PendingTransactions(ctx)
	if err != nil {
		t.Fatalf("pending after merge: %v", err)
	}
	if len(after) != 0 {
		t.Fatalf("expected no pending rows, got %+v", after)
	}
}

func TestUpdatePendingSkipsConfirmedTargets(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	confirmed, err := svc.CreateTransaction(ctx, core.Transaction{
		Date:    core.NewDate(2026, 8, 1),
		Concept: "Sueldo",
		Amount:  core.Money{Cents: 100000},
		Status:  core.StatusConfirmed,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// An edit addressing a row that is already confirmed must be dropped.
	err = svc.UpdatePending(ctx, []core.Transaction{{
		ID:      confirmed.ID,
		Date:    confirmed.Date,
		Concept: "Sueldo",
		Amount:  core.Money{Cents: -1},
		Status:  core.StatusPending,
	}})
	if err != nil {
		t.Fatalf("update pending: %v", err)
	}

	history, err := svc.History(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if history[0].Amount.Cents != 100000 || history[0].Status != core.StatusConfirmed {
		t.Fatalf("confirmed row was altered: %+v", history[0])
	}
}

func TestUpdatePendingRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.UpdatePending(context.Background(), []core.Transaction{
		{ID: 1, Status: core.Status("Tal vez")},
	})
	var verr *core.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *core.ValidationError, got %v", err)
	}
}

func TestOverviewComputesKPIs(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	asOf := core.NewDate(2026, 8, 30)

	fixtures := []core.Transaction{
		{Date: core.NewDate(2026, 8, 1), Concept: "Sueldo", Amount: core.Money{Cents: 100000}, Status: core.StatusConfirmed},
		{Date: core.NewDate(2026, 8, 10), Concept: "Supermercado", Amount: core.Money{Cents: -30000}, Status: core.StatusConfirmed},
		{Date: core.NewDate(2026, 8, 20), Concept: "Alquiler", Amount: core.Money{Cents: -15000}, Status: core.StatusPending},
	}
	for _, tx := range fixtures {
		if _, err := svc.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	ov, err := svc.Overview(ctx, asOf)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if ov.KPIs.CashBalance.Cents != 70000 ||
		ov.KPIs.PendingTotal.Cents != 15000 ||
		ov.KPIs.ProjectedBalance.Cents != 55000 {
		t.Fatalf("unexpected KPIs: %+v", ov.KPIs)
	}
	if len(ov.Concepts) != 4 {
		t.Fatalf("expected seeded concepts in overview, got %d", len(ov.Concepts))
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	for _, day := range []int{5, 20, 12} {
		if _, err := svc.CreateTransaction(ctx, core.Transaction{
			Date:    core.NewDate(2026, 8, day),
			Concept: "Supermercado",
			Amount:  core.Money{Cents: -100},
			Status:  core.StatusConfirmed,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	history, err := svc.History(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	days := []int{history[0].Date.Day(), history[1].Date.Day(), history[2].Date.Day()}
	if days[0] != 20 || days[1] != 12 || days[2] != 5 {
		t.Fatalf("expected newest first, got %v", days)
	}
}
