package ledger

import (
	"github.com/jdsingh122918/steamboat-sub004/internal/models"
)

// Balances folds all non-deleted expenses and payments of a trip into a net
// balance per attendee, in cents. Positive means others owe this attendee,
// negative means this attendee owes others.
//
// Rules, per expense:
//   - the payer is credited the full amount;
//   - every opted-in participant is debited their stored share, falling
//     back to floor(amount/optedInCount) for rows that predate persisted
//     shares;
//   - with zero opted-in participants the payer's credit is offset by an
//     equal debit: the payer covered the expense alone, nobody owes
//     anything.
//
// Per payment (any status, unless soft-deleted): the sender is credited and
// the receiver debited, since transferred money reduces what the sender
// owes.
//
// The values of the returned map always sum to exactly zero: every credit
// has a matching debit.
func Balances(expenses []*models.Expense, payments []*models.Payment) map[string]int64 {
	balances := make(map[string]int64)

	for _, e := range expenses {
		if e.Deleted() {
			continue
		}
		balances[e.PayerID] += e.AmountCents

		optedIn := e.OptedIn()
		if len(optedIn) == 0 {
			balances[e.PayerID] -= e.AmountCents
			continue
		}
		for _, p := range optedIn {
			balances[p.AttendeeID] -= participantShare(e, p, len(optedIn))
		}
	}

	for _, p := range payments {
		if p.Deleted() {
			continue
		}
		balances[p.FromID] += p.AmountCents
		balances[p.ToID] -= p.AmountCents
	}

	return balances
}

// participantShare returns the stored share, or the legacy equal-split
// fallback when shares were never persisted for this expense.
func participantShare(e *models.Expense, p models.ExpenseParticipant, optedInCount int) int64 {
	if p.ShareCents != nil {
		return *p.ShareCents
	}
	return e.AmountCents / int64(optedInCount)
}
