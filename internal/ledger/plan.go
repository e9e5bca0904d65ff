package ledger

// PlannedPayment is one transfer in a settlement plan. FromName and ToName
// are attached by the caller for presentation; optimizers leave them empty.
type PlannedPayment struct {
	From        string `json:"from"`
	FromName    string `json:"fromName,omitempty"`
	To          string `json:"to"`
	ToName      string `json:"toName,omitempty"`
	AmountCents int64  `json:"amount_cents"`
}

// Plan is the minimized set of payments that clears a trip's outstanding
// debts, plus summary counters for presentation.
type Plan struct {
	Payments       []PlannedPayment `json:"settlements"`
	OriginalCount  int              `json:"original_count"`
	OptimizedCount int              `json:"optimized_count"`
	SavingsPercent float64          `json:"savings_percent"`
}

// Optimizer turns a debt graph into a minimized payment list. The engine
// consumes it as an opaque strategy: any error is a hard failure of the
// settlement request, never retried.
//
// Implementations must conserve the per-attendee net balances implied by the
// input debts and must not return more payments than input debts.
type Optimizer interface {
	Simplify(debts []Debt) (*Plan, error)
}
