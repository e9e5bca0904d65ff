package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jdsingh122918/steamboat-sub004/internal/models"
	"github.com/jdsingh122918/steamboat-sub004/internal/storage"
)

// Classification errors. Services wrap these so the API layer can map them
// to HTTP statuses with errors.Is.
var (
	// ErrValidation marks malformed input: bad ids, negative amounts,
	// shares that don't reconcile.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden marks an authenticated attendee without the required
	// trip role.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound marks a missing trip, expense or attendee.
	ErrNotFound = errors.New("not found")

	// ErrOptimizer marks a failed external optimizer call. The whole
	// settlement request fails; nothing is written.
	ErrOptimizer = errors.New("optimization failed")
)

// requireMember checks that the trip exists and the attendee belongs to it,
// returning the membership row.
func requireMember(ctx context.Context, store storage.Store, tripID, attendeeID string) (*models.TripMember, error) {
	if _, err := store.GetTrip(ctx, tripID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: trip %s", ErrNotFound, tripID)
		}
		return nil, err
	}

	member, err := store.GetTripMember(ctx, tripID, attendeeID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: you must be a trip member", ErrForbidden)
		}
		return nil, err
	}
	return member, nil
}

// requireAdmin checks membership and the admin role.
func requireAdmin(ctx context.Context, store storage.Store, tripID, attendeeID string) (*models.TripMember, error) {
	member, err := requireMember(ctx, store, tripID, attendeeID)
	if err != nil {
		return nil, err
	}
	if !member.IsAdmin() {
		return nil, fmt.Errorf("%w: trip admin role required", ErrForbidden)
	}
	return member, nil
}
