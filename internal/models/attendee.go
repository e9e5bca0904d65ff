package models

// Attendee represents a registered person who can join trips, pay for
// expenses, and owe shares.
type Attendee struct {
	// ID is the unique identifier for the attendee (UUID format).
	ID string

	// Name is the display name shown on balances and settlement plans.
	Name string

	// Email is the attendee's email address (unique). Used for login.
	Email string

	// PasswordHash is the bcrypt hash of the attendee's password.
	// Never serialized.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}
