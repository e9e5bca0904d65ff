package ledger

import (
	"github.com/jdsingh122918/steamboat-sub004/internal/models"
)

// Debt is a derived, unpersisted directed edge: debtor owes creditor a net
// amount after payments already made are accounted for. ExpenseIDs trace
// which expenses contributed to the edge.
type Debt struct {
	Debtor      string   `json:"debtor"`
	Creditor    string   `json:"creditor"`
	AmountCents int64    `json:"amount_cents"`
	ExpenseIDs  []string `json:"expense_ids"`
}

type pairKey struct {
	debtor, creditor string
}

type pairDebt struct {
	amountCents int64
	expenseIDs  []string
}

// NetDebts folds pending, non-deleted expenses and non-deleted payments into
// a deduplicated debt graph. For every pending expense, each opted-in
// participant other than the payer owes the payer their share. Payments
// reduce the matching debtor-to-creditor edge; driving it to zero removes
// the edge, and overpaying reverses it: the receiver then owes the sender
// the overage.
//
// The returned debt list has no ordering guarantee and contains only edges
// with a positive amount. Self-edges are impossible by construction since
// the payer's own share is never accumulated.
//
// NetDebts also returns the ids of every expense that was pending at
// computation time; the settlement executor marks exactly that set settled.
func NetDebts(expenses []*models.Expense, payments []*models.Payment) ([]Debt, []string) {
	pairs := make(map[pairKey]*pairDebt)
	var pendingIDs []string

	for _, e := range expenses {
		if e.Deleted() || e.Status != models.ExpensePending {
			continue
		}
		pendingIDs = append(pendingIDs, e.ID)

		optedIn := e.OptedIn()
		for _, p := range optedIn {
			if p.AttendeeID == e.PayerID {
				continue
			}
			k := pairKey{debtor: p.AttendeeID, creditor: e.PayerID}
			d, ok := pairs[k]
			if !ok {
				d = &pairDebt{}
				pairs[k] = d
			}
			d.amountCents += participantShare(e, p, len(optedIn))
			d.expenseIDs = append(d.expenseIDs, e.ID)
		}
	}

	for _, p := range payments {
		if p.Deleted() || p.AmountCents == 0 {
			continue
		}
		// Payments only net against an existing edge. A payment with no
		// outstanding debt in its direction (e.g. one created by an
		// earlier settlement run whose expenses are already settled) has
		// nothing to reduce and is skipped.
		forward := pairKey{debtor: p.FromID, creditor: p.ToID}
		d, ok := pairs[forward]
		if !ok {
			continue
		}
		d.amountCents -= p.AmountCents
		if d.amountCents > 0 {
			continue
		}
		overage := -d.amountCents
		delete(pairs, forward)
		if overage == 0 {
			continue
		}
		// The sender overpaid; the receiver now owes them the difference.
		reverse := pairKey{debtor: p.ToID, creditor: p.FromID}
		rd, ok := pairs[reverse]
		if !ok {
			rd = &pairDebt{}
			pairs[reverse] = rd
		}
		rd.amountCents += overage
	}

	debts := make([]Debt, 0, len(pairs))
	for k, d := range pairs {
		if d.amountCents <= 0 {
			continue
		}
		debts = append(debts, Debt{
			Debtor:      k.debtor,
			Creditor:    k.creditor,
			AmountCents: d.amountCents,
			ExpenseIDs:  d.expenseIDs,
		})
	}
	return debts, pendingIDs
}
