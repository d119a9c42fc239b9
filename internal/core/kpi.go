package core

// KPISet holds the monthly aggregates shown on the dashboard. All values
// derive from the transaction snapshot alone; fixed expenses never count.
type KPISet struct {
	Year  int
	Month int // 1-12

	Income            Money // sum of positive amounts
	ConfirmedExpenses Money // sum of negative confirmed amounts (negative)
	PendingExpenses   Money // sum of negative pending amounts (negative)

	CashBalance      Money // Income + ConfirmedExpenses
	PendingTotal     Money // |PendingExpenses|
	ProjectedBalance Money // Income + ConfirmedExpenses + PendingExpenses
}

// ComputeKPIs aggregates the transactions falling in the same calendar
// month and year as asOf. Pure function: no side effects, result depends
// only on the input snapshot and asOf.
func ComputeKPIs(transactions []Transaction, asOf Date) KPISet {
	kpi := KPISet{Year: asOf.Year(), Month: asOf.Month()}
	for _, tx := range transactions {
		if !tx.Date.SameMonth(asOf) {
			continue
		}
		switch {
		case tx.Amount.Cents > 0:
			kpi.Income = kpi.Income.Add(tx.Amount)
		case tx.Amount.Cents < 0 && tx.Status == StatusConfirmed:
			kpi.ConfirmedExpenses = kpi.ConfirmedExpenses.Add(tx.Amount)
		case tx.Amount.Cents < 0 && tx.Status == StatusPending:
			kpi.PendingExpenses = kpi.PendingExpenses.Add(tx.Amount)
		}
	}
	kpi.CashBalance = kpi.Income.Add(kpi.ConfirmedExpenses)
	kpi.PendingTotal = kpi.PendingExpenses.Abs()
	kpi.ProjectedBalance = kpi.Income.Add(kpi.ConfirmedExpenses).Add(kpi.PendingExpenses)
	return kpi
}
