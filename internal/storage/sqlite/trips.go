package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jdsingh122918/steamboat-sub004/internal/models"
	"github.com/jdsingh122918/steamboat-sub004/internal/storage"
)

// CreateTrip persists a new trip and adds its creator as admin.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO trips (id, name, created_by, created_at) VALUES (?, ?, ?, ?)",
		trip.ID, trip.Name, trip.CreatedBy, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO trip_members (trip_id, attendee_id, role) VALUES (?, ?, ?)",
		trip.ID, trip.CreatedBy, models.RoleAdmin,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip creator: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTrip retrieves a trip by id.
func (s *SQLiteStore) GetTrip(ctx context.Context, id string) (*models.Trip, error) {
	trip := &models.Trip{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_by, created_at FROM trips WHERE id = ?",
		id,
	).Scan(&trip.ID, &trip.Name, &trip.CreatedBy, &trip.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("trip %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return trip, nil
}

// AddTripMember adds an attendee to a trip with the given role.
func (s *SQLiteStore) AddTripMember(ctx context.Context, member *models.TripMember) error {
	if member.Role == "" {
		member.Role = models.RoleMember
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO trip_members (trip_id, attendee_id, role) VALUES (?, ?, ?)",
		member.TripID, member.AttendeeID, member.Role,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip member: %w", err)
	}
	return nil
}

// GetTripMember retrieves one membership row.
func (s *SQLiteStore) GetTripMember(ctx context.Context, tripID, attendeeID string) (*models.TripMember, error) {
	member := &models.TripMember{}
	err := s.db.QueryRowContext(ctx,
		"SELECT trip_id, attendee_id, role FROM trip_members WHERE trip_id = ? AND attendee_id = ?",
		tripID, attendeeID,
	).Scan(&member.TripID, &member.AttendeeID, &member.Role)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("membership of %s on trip %s: %w", attendeeID, tripID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip member: %w", err)
	}
	return member, nil
}
