package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jdsingh122918/steamboat-sub004/internal/models"
)

// CreatePayment persists a new payment to the database.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	preparePayment(payment)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, trip_id, from_id, to_id, amount_cents, status, note, created_at, deleted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.TripID, payment.FromID, payment.ToID,
		payment.AmountCents, payment.Status, payment.Note, payment.CreatedAt, payment.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// ListPaymentsByTrip retrieves all non-deleted payments for a trip, oldest
// first.
func (s *SQLiteStore) ListPaymentsByTrip(ctx context.Context, tripID string) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, from_id, to_id, amount_cents, status, note, created_at, deleted_at
		 FROM payments WHERE trip_id = ? AND deleted_at IS NULL ORDER BY created_at, id`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		var deletedAt sql.NullInt64
		if err := rows.Scan(&payment.ID, &payment.TripID, &payment.FromID, &payment.ToID,
			&payment.AmountCents, &payment.Status, &payment.Note, &payment.CreatedAt, &deletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if deletedAt.Valid {
			payment.DeletedAt = &deletedAt.Int64
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// RecordSettlement atomically creates the optimized payments and marks the
// given expenses settled. A failure anywhere rolls the whole write back.
func (s *SQLiteStore) RecordSettlement(ctx context.Context, payments []*models.Payment, expenseIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, payment := range payments {
		preparePayment(payment)
		_, err := tx.ExecContext(ctx,
			`INSERT INTO payments (id, trip_id, from_id, to_id, amount_cents, status, note, created_at, deleted_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			payment.ID, payment.TripID, payment.FromID, payment.ToID,
			payment.AmountCents, payment.Status, payment.Note, payment.CreatedAt, payment.DeletedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement payment: %w", err)
		}
	}

	for _, id := range expenseIDs {
		_, err := tx.ExecContext(ctx,
			"UPDATE expenses SET status = ? WHERE id = ?",
			models.ExpenseSettled, id,
		)
		if err != nil {
			return fmt.Errorf("failed to settle expense %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settlement: %w", err)
	}
	return nil
}

func preparePayment(payment *models.Payment) {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}
	if payment.Status == "" {
		payment.Status = models.PaymentPending
	}
}
