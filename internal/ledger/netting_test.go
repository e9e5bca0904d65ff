package ledger

import (
	"testing"

	"github.com/jdsingh122918/steamboat-sub004/internal/models"
)

func findDebt(debts []Debt, debtor, creditor string) (Debt, bool) {
	for _, d := range debts {
		if d.Debtor == debtor && d.Creditor == creditor {
			return d, true
		}
	}
	return Debt{}, false
}

func TestNetDebts(t *testing.T) {
	tests := []struct {
		name      string
		expenses  []*models.Expense
		payments  []*models.Payment
		wantDebts map[[2]string]int64
		wantIDs   []string
	}{
		{
			name: "shares become debts toward the payer",
			expenses: []*models.Expense{
				expense("e1", "x", 9000,
					optedIn("x", 3000), optedIn("y", 3000), optedIn("z", 3000)),
			},
			wantDebts: map[[2]string]int64{
				{"y", "x"}: 3000,
				{"z", "x"}: 3000,
			},
			wantIDs: []string{"e1"},
		},
		{
			name: "same pair accumulates across expenses",
			expenses: []*models.Expense{
				expense("e1", "x", 2000, optedIn("y", 2000)),
				expense("e2", "x", 3000, optedIn("y", 3000)),
			},
			wantDebts: map[[2]string]int64{
				{"y", "x"}: 5000,
			},
			wantIDs: []string{"e1", "e2"},
		},
		{
			name: "settled expense excluded from debts and pending ids",
			expenses: []*models.Expense{
				func() *models.Expense {
					e := expense("e1", "x", 2000, optedIn("y", 2000))
					e.Status = models.ExpenseSettled
					return e
				}(),
				expense("e2", "x", 3000, optedIn("y", 3000)),
			},
			wantDebts: map[[2]string]int64{
				{"y", "x"}: 3000,
			},
			wantIDs: []string{"e2"},
		},
		{
			name: "deleted expense excluded entirely",
			expenses: []*models.Expense{
				func() *models.Expense {
					e := expense("e1", "x", 2000, optedIn("y", 2000))
					e.DeletedAt = ptr(1700000000)
					return e
				}(),
			},
			wantDebts: map[[2]string]int64{},
			wantIDs:   nil,
		},
		{
			name: "partial payment reduces the edge",
			expenses: []*models.Expense{
				expense("e1", "x", 1000, optedIn("y", 1000)),
			},
			payments: []*models.Payment{
				{ID: "p1", FromID: "y", ToID: "x", AmountCents: 400},
			},
			wantDebts: map[[2]string]int64{
				{"y", "x"}: 600,
			},
			wantIDs: []string{"e1"},
		},
		{
			name: "exact payment removes the edge",
			expenses: []*models.Expense{
				expense("e1", "x", 1000, optedIn("y", 1000)),
			},
			payments: []*models.Payment{
				{ID: "p1", FromID: "y", ToID: "x", AmountCents: 1000},
			},
			wantDebts: map[[2]string]int64{},
			wantIDs:   []string{"e1"},
		},
		{
			name: "overpayment reverses the edge",
			expenses: []*models.Expense{
				expense("e1", "x", 1000, optedIn("y", 1000)),
			},
			payments: []*models.Payment{
				{ID: "p1", FromID: "y", ToID: "x", AmountCents: 1500},
			},
			wantDebts: map[[2]string]int64{
				{"x", "y"}: 500,
			},
			wantIDs: []string{"e1"},
		},
		{
			name: "payment without a matching debt is skipped",
			payments: []*models.Payment{
				{ID: "p1", FromID: "y", ToID: "x", AmountCents: 1000},
			},
			wantDebts: map[[2]string]int64{},
			wantIDs:   nil,
		},
		{
			name: "deleted payment ignored",
			expenses: []*models.Expense{
				expense("e1", "x", 1000, optedIn("y", 1000)),
			},
			payments: []*models.Payment{
				{ID: "p1", FromID: "y", ToID: "x", AmountCents: 1000, DeletedAt: ptr(1700000000)},
			},
			wantDebts: map[[2]string]int64{
				{"y", "x"}: 1000,
			},
			wantIDs: []string{"e1"},
		},
		{
			name: "three-way trip with a payment",
			expenses: []*models.Expense{
				expense("e1", "x", 9000,
					optedIn("x", 3000), optedIn("y", 3000), optedIn("z", 3000)),
			},
			payments: []*models.Payment{
				{ID: "p1", FromID: "y", ToID: "x", AmountCents: 3000},
			},
			wantDebts: map[[2]string]int64{
				{"z", "x"}: 3000,
			},
			wantIDs: []string{"e1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debts, pendingIDs := NetDebts(tt.expenses, tt.payments)

			if len(debts) != len(tt.wantDebts) {
				t.Fatalf("got %d debts %v, want %d", len(debts), debts, len(tt.wantDebts))
			}
			for pair, want := range tt.wantDebts {
				d, ok := findDebt(debts, pair[0], pair[1])
				if !ok {
					t.Errorf("missing debt %s -> %s", pair[0], pair[1])
					continue
				}
				if d.AmountCents != want {
					t.Errorf("debt %s -> %s = %d, want %d", pair[0], pair[1], d.AmountCents, want)
				}
			}

			if len(pendingIDs) != len(tt.wantIDs) {
				t.Fatalf("pending ids = %v, want %v", pendingIDs, tt.wantIDs)
			}
			for i, id := range tt.wantIDs {
				if pendingIDs[i] != id {
					t.Errorf("pending id[%d] = %s, want %s", i, pendingIDs[i], id)
				}
			}
		})
	}
}

func TestNetDebtsTracksExpenseIDs(t *testing.T) {
	debts, _ := NetDebts([]*models.Expense{
		expense("e1", "x", 2000, optedIn("y", 2000)),
		expense("e2", "x", 3000, optedIn("y", 3000)),
	}, nil)

	if len(debts) != 1 {
		t.Fatalf("got %d debts, want 1", len(debts))
	}
	ids := debts[0].ExpenseIDs
	if len(ids) != 2 || ids[0] != "e1" || ids[1] != "e2" {
		t.Errorf("expense ids = %v, want [e1 e2]", ids)
	}
}

func TestNetDebtsSettlementIdempotency(t *testing.T) {
	// After a settlement run the expenses are settled and its payments
	// recorded; recomputing must yield an empty graph, not reverse debts.
	e := expense("e1", "x", 9000, optedIn("y", 4500), optedIn("z", 4500))
	e.Status = models.ExpenseSettled

	debts, pendingIDs := NetDebts([]*models.Expense{e}, []*models.Payment{
		{ID: "p1", FromID: "y", ToID: "x", AmountCents: 4500},
		{ID: "p2", FromID: "z", ToID: "x", AmountCents: 4500},
	})

	if len(debts) != 0 {
		t.Errorf("got debts %v after settlement, want none", debts)
	}
	if len(pendingIDs) != 0 {
		t.Errorf("got pending ids %v after settlement, want none", pendingIDs)
	}
}
