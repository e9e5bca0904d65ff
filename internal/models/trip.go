package models

// Role is an attendee's role within a trip.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Trip represents a multi-day group trip that owns expenses and payments.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// Name is the display name of the trip (e.g., "Tahoe 2026").
	Name string

	// CreatedBy is the attendee who created the trip. They become its
	// first admin.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64
}

// TripMember links an attendee to a trip with a role.
type TripMember struct {
	TripID     string
	AttendeeID string
	Role       Role
}

// IsAdmin reports whether the member can run privileged operations such as
// settlement execution.
func (m *TripMember) IsAdmin() bool {
	return m.Role == RoleAdmin
}
