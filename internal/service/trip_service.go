package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jdsingh122918/steamboat-sub004/internal/models"
	"github.com/jdsingh122918/steamboat-sub004/internal/storage"
)

// TripService handles trip creation and membership management.
type TripService struct {
	store storage.Store
}

// NewTripService creates a new TripService with the given storage backend.
func NewTripService(store storage.Store) *TripService {
	return &TripService{store: store}
}

// Create creates a trip; the creator becomes its first admin.
func (s *TripService) Create(ctx context.Context, creatorID, name string) (*models.Trip, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: trip name is required", ErrValidation)
	}

	trip := &models.Trip{Name: name, CreatedBy: creatorID}
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		return nil, err
	}
	slog.Info("trip created", "trip_id", trip.ID, "created_by", creatorID)
	return trip, nil
}

// AddMember adds an attendee to a trip. Only admins may add members.
func (s *TripService) AddMember(ctx context.Context, actorID, tripID, attendeeID string, role models.Role) (*models.TripMember, error) {
	if _, err := requireAdmin(ctx, s.store, tripID, actorID); err != nil {
		return nil, err
	}
	if role != models.RoleMember && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if _, err := s.store.GetAttendee(ctx, attendeeID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: attendee %s", ErrNotFound, attendeeID)
		}
		return nil, err
	}

	member := &models.TripMember{TripID: tripID, AttendeeID: attendeeID, Role: role}
	if err := s.store.AddTripMember(ctx, member); err != nil {
		return nil, err
	}
	slog.Info("trip member added", "trip_id", tripID, "attendee_id", attendeeID, "role", role)
	return member, nil
}
