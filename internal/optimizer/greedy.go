// Package optimizer provides the default debt-settlement optimizer: a
// greedy net-balance matcher that clears any debt graph with at most
// one payment per participant pair.
package optimizer

import (
	"fmt"
	"sort"

	"github.com/jdsingh122918/steamboat-sub004/internal/ledger"
)

// Greedy implements ledger.Optimizer.
//
// Algorithm: compute each participant's net balance across the debt graph,
// partition into creditors (positive) and debtors (negative), sort both
// descending by amount, then repeatedly transfer min(largest debt, largest
// credit) until everyone is settled. The result conserves net balances and
// never exceeds the input debt count.
type Greedy struct{}

// New returns a Greedy optimizer.
func New() *Greedy {
	return &Greedy{}
}

type party struct {
	id    string
	cents int64
}

// Simplify turns the debt graph into a minimized payment list.
func (g *Greedy) Simplify(debts []ledger.Debt) (*ledger.Plan, error) {
	originalCount := len(debts)
	if originalCount == 0 {
		return &ledger.Plan{Payments: []ledger.PlannedPayment{}}, nil
	}

	balances := make(map[string]int64)
	for _, d := range debts {
		if d.Debtor == "" || d.Creditor == "" {
			return nil, fmt.Errorf("debt with empty participant id")
		}
		if d.Debtor == d.Creditor {
			return nil, fmt.Errorf("debt from %s to themselves", d.Debtor)
		}
		if d.AmountCents <= 0 {
			return nil, fmt.Errorf("debt from %s to %s has non-positive amount %d", d.Debtor, d.Creditor, d.AmountCents)
		}
		balances[d.Debtor] -= d.AmountCents
		balances[d.Creditor] += d.AmountCents
	}

	var creditors, debtors []party
	for id, cents := range balances {
		switch {
		case cents > 0:
			creditors = append(creditors, party{id: id, cents: cents})
		case cents < 0:
			debtors = append(debtors, party{id: id, cents: -cents})
		}
		// Zero balance: already settled, drops out.
	}
	sortParties(creditors)
	sortParties(debtors)

	payments := []ledger.PlannedPayment{}
	ci, di := 0, 0
	for ci < len(creditors) && di < len(debtors) {
		transfer := min(creditors[ci].cents, debtors[di].cents)
		if transfer > 0 {
			payments = append(payments, ledger.PlannedPayment{
				From:        debtors[di].id,
				To:          creditors[ci].id,
				AmountCents: transfer,
			})
			creditors[ci].cents -= transfer
			debtors[di].cents -= transfer
		}
		if creditors[ci].cents == 0 {
			ci++
		}
		if debtors[di].cents == 0 {
			di++
		}
	}

	optimizedCount := len(payments)
	return &ledger.Plan{
		Payments:       payments,
		OriginalCount:  originalCount,
		OptimizedCount: optimizedCount,
		SavingsPercent: float64(originalCount-optimizedCount) / float64(originalCount) * 100,
	}, nil
}

// sortParties orders by amount descending, id ascending as tie-break so the
// plan is deterministic for a given debt graph.
func sortParties(parties []party) {
	sort.Slice(parties, func(i, j int) bool {
		if parties[i].cents != parties[j].cents {
			return parties[i].cents > parties[j].cents
		}
		return parties[i].id < parties[j].id
	})
}
