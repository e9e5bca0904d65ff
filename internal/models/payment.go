package models

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentConfirmed PaymentStatus = "confirmed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Payment is a point-to-point transfer between two attendees of a trip.
// Payments reduce outstanding debts; the ledger counts every non-deleted
// payment regardless of status.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// TripID is the trip this payment belongs to.
	TripID string

	// FromID is the attendee who paid (debtor settling up).
	FromID string

	// ToID is the attendee who received the money.
	ToID string

	// AmountCents is the transferred amount in cents. Always non-negative.
	AmountCents int64

	// Status is pending for settlement-generated payments until the
	// recipient confirms.
	Status PaymentStatus

	// Note is an optional description for the payment.
	Note string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64

	// DeletedAt is the soft-delete marker.
	DeletedAt *int64
}

// Deleted reports whether the payment has been soft-deleted.
func (p *Payment) Deleted() bool {
	return p.DeletedAt != nil
}
