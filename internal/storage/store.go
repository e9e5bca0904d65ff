// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/jdsingh122918/steamboat-sub004/internal/models"
)

// ErrNotFound is returned when a requested entity does not exist.
// Implementations wrap it so callers can classify with errors.Is.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations the trip ledger needs. The
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateAttendee persists a new attendee, generating ID and CreatedAt
	// if unset.
	CreateAttendee(ctx context.Context, attendee *models.Attendee) error

	// GetAttendee retrieves an attendee by id.
	GetAttendee(ctx context.Context, id string) (*models.Attendee, error)

	// GetAttendeeByEmail retrieves an attendee by email.
	GetAttendeeByEmail(ctx context.Context, email string) (*models.Attendee, error)

	// GetAttendees retrieves the attendees for the given ids, keyed by id.
	// Unknown ids are simply absent from the result.
	GetAttendees(ctx context.Context, ids []string) (map[string]*models.Attendee, error)

	// CreateTrip persists a new trip and adds its creator as admin.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip by id.
	GetTrip(ctx context.Context, id string) (*models.Trip, error)

	// AddTripMember adds an attendee to a trip with the given role.
	AddTripMember(ctx context.Context, member *models.TripMember) error

	// GetTripMember retrieves one membership row, or ErrNotFound if the
	// attendee is not on the trip.
	GetTripMember(ctx context.Context, tripID, attendeeID string) (*models.TripMember, error)

	// CreateExpense persists a new expense with its participants.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense (including soft-deleted ones) by id.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// ListExpensesByTrip retrieves up to limit non-deleted expenses for a
	// trip, oldest first.
	ListExpensesByTrip(ctx context.Context, tripID string, limit int) ([]*models.Expense, error)

	// SoftDeleteExpense marks an expense deleted without removing the row.
	SoftDeleteExpense(ctx context.Context, id string) error

	// CreatePayment persists a new payment.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// ListPaymentsByTrip retrieves all non-deleted payments for a trip,
	// oldest first.
	ListPaymentsByTrip(ctx context.Context, tripID string) ([]*models.Payment, error)

	// RecordSettlement atomically creates the optimized payments and marks
	// the given expenses settled. Either everything is written or nothing
	// is.
	RecordSettlement(ctx context.Context, payments []*models.Payment, expenseIDs []string) error

	// Close releases any resources held by the store.
	Close() error
}
