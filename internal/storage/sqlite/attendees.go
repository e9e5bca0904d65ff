package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jdsingh122918/steamboat-sub004/internal/models"
	"github.com/jdsingh122918/steamboat-sub004/internal/storage"
)

// CreateAttendee persists a new attendee to the database.
func (s *SQLiteStore) CreateAttendee(ctx context.Context, attendee *models.Attendee) error {
	if attendee.ID == "" {
		attendee.ID = uuid.New().String()
	}
	if attendee.CreatedAt == 0 {
		attendee.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO attendees (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)",
		attendee.ID, attendee.Name, attendee.Email, attendee.PasswordHash, attendee.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert attendee: %w", err)
	}
	return nil
}

// GetAttendee retrieves an attendee by id.
func (s *SQLiteStore) GetAttendee(ctx context.Context, id string) (*models.Attendee, error) {
	return s.getAttendee(ctx, "id", id)
}

// GetAttendeeByEmail retrieves an attendee by email.
func (s *SQLiteStore) GetAttendeeByEmail(ctx context.Context, email string) (*models.Attendee, error) {
	return s.getAttendee(ctx, "email", email)
}

func (s *SQLiteStore) getAttendee(ctx context.Context, column, value string) (*models.Attendee, error) {
	attendee := &models.Attendee{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, created_at FROM attendees WHERE "+column+" = ?",
		value,
	).Scan(&attendee.ID, &attendee.Name, &attendee.Email, &attendee.PasswordHash, &attendee.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("attendee %s: %w", value, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attendee: %w", err)
	}
	return attendee, nil
}

// GetAttendees retrieves the attendees for the given ids, keyed by id.
func (s *SQLiteStore) GetAttendees(ctx context.Context, ids []string) (map[string]*models.Attendee, error) {
	result := make(map[string]*models.Attendee, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := strings.Repeat("?,", len(ids)-1) + "?"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, password_hash, created_at FROM attendees WHERE id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		attendee := &models.Attendee{}
		if err := rows.Scan(&attendee.ID, &attendee.Name, &attendee.Email, &attendee.PasswordHash, &attendee.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendee: %w", err)
		}
		result[attendee.ID] = attendee
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendees: %w", err)
	}
	return result, nil
}
