package models

// SplitType selects how an expense is divided among its participants.
type SplitType string

const (
	// SplitEqual divides the amount evenly, distributing remainder cents
	// one at a time to the first participants in input order.
	SplitEqual SplitType = "equal"

	// SplitCustom uses caller-supplied shares, which must sum to the
	// expense amount exactly.
	SplitCustom SplitType = "custom"

	// SplitPercentage uses caller-supplied percentages summing to 100.
	SplitPercentage SplitType = "percentage"
)

// ExpenseStatus is the settlement state of an expense.
type ExpenseStatus string

const (
	// ExpensePending means the expense still contributes to the trip's
	// outstanding debt graph.
	ExpensePending ExpenseStatus = "pending"

	// ExpenseSettled means a settlement run has cleared the expense. It
	// still counts toward balances, but not toward new debts.
	ExpenseSettled ExpenseStatus = "settled"
)

// ExpenseParticipant is one attendee considered for an expense split.
// Only opted-in participants owe money.
type ExpenseParticipant struct {
	AttendeeID string

	// OptedIn marks whether this attendee shares the expense.
	OptedIn bool

	// ShareCents is the participant's stored share of the amount. Nil on
	// rows created before shares were persisted; the balance aggregator
	// falls back to an equal split for those.
	ShareCents *int64
}

// Expense is a cost paid by one attendee and shared among participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// TripID is the trip this expense belongs to.
	TripID string

	// PayerID is the attendee who paid the full amount.
	PayerID string

	// AmountCents is the total cost in cents. Always non-negative.
	AmountCents int64

	// Description is a human-readable label (e.g., "Dinner night 2").
	Description string

	// Category groups expenses for presentation (e.g., "food").
	Category string

	// SplitType records how the stored shares were computed.
	SplitType SplitType

	// Status is pending until a settlement run marks it settled.
	Status ExpenseStatus

	// Participants lists every attendee considered for the split.
	Participants []ExpenseParticipant

	// CreatedAt is the Unix timestamp when the expense was created.
	CreatedAt int64

	// DeletedAt is the soft-delete marker. Non-nil rows are excluded from
	// all ledger computations.
	DeletedAt *int64
}

// Deleted reports whether the expense has been soft-deleted.
func (e *Expense) Deleted() bool {
	return e.DeletedAt != nil
}

// OptedIn returns only the participants who actually share the expense.
func (e *Expense) OptedIn() []ExpenseParticipant {
	var in []ExpenseParticipant
	for _, p := range e.Participants {
		if p.OptedIn {
			in = append(in, p)
		}
	}
	return in
}
