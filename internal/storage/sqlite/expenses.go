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

// CreateExpense persists a new expense with its participants.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Status == "" {
		expense.Status = models.ExpensePending
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, trip_id, payer_id, amount_cents, description, category, split_type, status, created_at, deleted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.TripID, expense.PayerID, expense.AmountCents,
		expense.Description, expense.Category, expense.SplitType, expense.Status,
		expense.CreatedAt, expense.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, p := range expense.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, attendee_id, opted_in, share_cents) VALUES (?, ?, ?, ?)",
			expense.ID, p.AttendeeID, p.OptedIn, p.ShareCents,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense (including soft-deleted ones) by id.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	expense := &models.Expense{}
	var deletedAt sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, payer_id, amount_cents, description, category, split_type, status, created_at, deleted_at
		 FROM expenses WHERE id = ?`,
		id,
	).Scan(&expense.ID, &expense.TripID, &expense.PayerID, &expense.AmountCents,
		&expense.Description, &expense.Category, &expense.SplitType, &expense.Status,
		&expense.CreatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	if deletedAt.Valid {
		expense.DeletedAt = &deletedAt.Int64
	}

	participants, err := s.loadParticipants(ctx, []string{expense.ID})
	if err != nil {
		return nil, err
	}
	expense.Participants = participants[expense.ID]
	return expense, nil
}

// ListExpensesByTrip retrieves up to limit non-deleted expenses for a trip,
// oldest first.
func (s *SQLiteStore) ListExpensesByTrip(ctx context.Context, tripID string, limit int) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, payer_id, amount_cents, description, category, split_type, status, created_at, deleted_at
		 FROM expenses WHERE trip_id = ? AND deleted_at IS NULL ORDER BY created_at, id LIMIT ?`,
		tripID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	var ids []string
	for rows.Next() {
		expense := &models.Expense{}
		var deletedAt sql.NullInt64
		if err := rows.Scan(&expense.ID, &expense.TripID, &expense.PayerID, &expense.AmountCents,
			&expense.Description, &expense.Category, &expense.SplitType, &expense.Status,
			&expense.CreatedAt, &deletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if deletedAt.Valid {
			expense.DeletedAt = &deletedAt.Int64
		}
		expenses = append(expenses, expense)
		ids = append(ids, expense.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	participants, err := s.loadParticipants(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		e.Participants = participants[e.ID]
	}
	return expenses, nil
}

// loadParticipants fetches the participant rows for the given expense ids,
// keyed by expense id, in insertion (rowid) order.
func (s *SQLiteStore) loadParticipants(ctx context.Context, expenseIDs []string) (map[string][]models.ExpenseParticipant, error) {
	result := make(map[string][]models.ExpenseParticipant, len(expenseIDs))
	if len(expenseIDs) == 0 {
		return result, nil
	}

	args := make([]any, len(expenseIDs))
	placeholders := ""
	for i, id := range expenseIDs {
		args[i] = id
		if i > 0 {
			placeholders += ","
		}
		placeholders += "?"
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT expense_id, attendee_id, opted_in, share_cents
		 FROM expense_participants WHERE expense_id IN (`+placeholders+`) ORDER BY rowid`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID string
		var p models.ExpenseParticipant
		var share sql.NullInt64
		if err := rows.Scan(&expenseID, &p.AttendeeID, &p.OptedIn, &share); err != nil {
			return nil, fmt.Errorf("failed to scan expense participant: %w", err)
		}
		if share.Valid {
			p.ShareCents = &share.Int64
		}
		result[expenseID] = append(result[expenseID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense participants: %w", err)
	}
	return result, nil
}

// SoftDeleteExpense marks an expense deleted without removing the row.
func (s *SQLiteStore) SoftDeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL",
		time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
