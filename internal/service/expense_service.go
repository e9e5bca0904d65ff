package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jdsingh122918/steamboat-sub004/internal/ledger"
	"github.com/jdsingh122918/steamboat-sub004/internal/models"
	"github.com/jdsingh122918/steamboat-sub004/internal/storage"
)

// expenseReadLimit bounds how many expenses a single request reads into
// memory.
const expenseReadLimit = 10000

// ExpenseService handles expense and payment CRUD. Split shares are
// computed and validated at creation time and stored on the expense.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage
// backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// ParticipantInput is one attendee in an expense-creation request. OptedIn
// defaults to true when omitted. ShareCents is required for custom splits,
// Percent for percentage splits.
type ParticipantInput struct {
	AttendeeID string   `json:"attendeeId"`
	OptedIn    *bool    `json:"optedIn,omitempty"`
	ShareCents *int64   `json:"share_cents,omitempty"`
	Percent    *float64 `json:"percentage,omitempty"`
}

func (p ParticipantInput) optedIn() bool {
	return p.OptedIn == nil || *p.OptedIn
}

// CreateExpenseInput is the payload for creating an expense.
type CreateExpenseInput struct {
	PayerID      string             `json:"payerId"`
	AmountCents  int64              `json:"amount_cents"`
	Description  string             `json:"description"`
	Category     string             `json:"category"`
	SplitType    models.SplitType   `json:"splitType"`
	Participants []ParticipantInput `json:"participants"`
}

// Create validates the split, computes per-participant shares and persists
// the expense. The actor must be a trip member and the payer must be one
// too.
func (s *ExpenseService) Create(ctx context.Context, actorID, tripID string, in CreateExpenseInput) (*models.Expense, error) {
	if _, err := requireMember(ctx, s.store, tripID, actorID); err != nil {
		return nil, err
	}
	if in.PayerID == "" {
		return nil, fmt.Errorf("%w: payerId is required", ErrValidation)
	}
	if _, err := s.store.GetTripMember(ctx, tripID, in.PayerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: payer %s is not a trip member", ErrValidation, in.PayerID)
		}
		return nil, err
	}

	shares, err := computeShares(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	shareByID := make(map[string]int64, len(shares))
	for _, sh := range shares {
		shareByID[sh.AttendeeID] = sh.Cents
	}

	participants := make([]models.ExpenseParticipant, 0, len(in.Participants))
	for _, p := range in.Participants {
		participant := models.ExpenseParticipant{
			AttendeeID: p.AttendeeID,
			OptedIn:    p.optedIn(),
		}
		if participant.OptedIn {
			cents := shareByID[p.AttendeeID]
			participant.ShareCents = &cents
		}
		participants = append(participants, participant)
	}

	expense := &models.Expense{
		TripID:       tripID,
		PayerID:      in.PayerID,
		AmountCents:  in.AmountCents,
		Description:  in.Description,
		Category:     in.Category,
		SplitType:    in.SplitType,
		Status:       models.ExpensePending,
		Participants: participants,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	slog.Info("expense created",
		"trip_id", tripID,
		"expense_id", expense.ID,
		"amount_cents", expense.AmountCents,
		"split_type", expense.SplitType,
	)
	return expense, nil
}

// computeShares runs the split calculator for the opted-in participants.
func computeShares(in CreateExpenseInput) ([]ledger.Share, error) {
	switch in.SplitType {
	case models.SplitEqual:
		var ids []string
		for _, p := range in.Participants {
			if p.optedIn() {
				ids = append(ids, p.AttendeeID)
			}
		}
		return ledger.EqualSplit(in.AmountCents, ids)

	case models.SplitCustom:
		var shares []ledger.Share
		for _, p := range in.Participants {
			if !p.optedIn() {
				continue
			}
			if p.ShareCents == nil {
				return nil, fmt.Errorf("custom split requires share_cents for %s", p.AttendeeID)
			}
			shares = append(shares, ledger.Share{AttendeeID: p.AttendeeID, Cents: *p.ShareCents})
		}
		return ledger.CustomSplit(in.AmountCents, shares)

	case models.SplitPercentage:
		var portions []ledger.PercentShare
		for _, p := range in.Participants {
			if !p.optedIn() {
				continue
			}
			if p.Percent == nil {
				return nil, fmt.Errorf("percentage split requires percentage for %s", p.AttendeeID)
			}
			portions = append(portions, ledger.PercentShare{AttendeeID: p.AttendeeID, Percent: *p.Percent})
		}
		return ledger.PercentageSplit(in.AmountCents, portions)

	default:
		return nil, fmt.Errorf("unknown splitType %q", in.SplitType)
	}
}

// List returns the trip's non-deleted expenses. The actor must be a member.
func (s *ExpenseService) List(ctx context.Context, actorID, tripID string) ([]*models.Expense, error) {
	if _, err := requireMember(ctx, s.store, tripID, actorID); err != nil {
		return nil, err
	}
	return s.store.ListExpensesByTrip(ctx, tripID, expenseReadLimit)
}

// Delete soft-deletes an expense, excluding it from all ledger computations.
func (s *ExpenseService) Delete(ctx context.Context, actorID, tripID, expenseID string) error {
	if _, err := requireMember(ctx, s.store, tripID, actorID); err != nil {
		return err
	}
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: expense %s", ErrNotFound, expenseID)
		}
		return err
	}
	if expense.TripID != tripID {
		return fmt.Errorf("%w: expense %s", ErrNotFound, expenseID)
	}
	if err := s.store.SoftDeleteExpense(ctx, expenseID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: expense %s", ErrNotFound, expenseID)
		}
		return err
	}
	slog.Info("expense deleted", "trip_id", tripID, "expense_id", expenseID)
	return nil
}

// CreatePaymentInput is the payload for recording a payment.
type CreatePaymentInput struct {
	FromID      string `json:"fromId"`
	ToID        string `json:"toId"`
	AmountCents int64  `json:"amount_cents"`
	Note        string `json:"note"`
}

// CreatePayment records a point-to-point payment between two trip members.
func (s *ExpenseService) CreatePayment(ctx context.Context, actorID, tripID string, in CreatePaymentInput) (*models.Payment, error) {
	if _, err := requireMember(ctx, s.store, tripID, actorID); err != nil {
		return nil, err
	}
	if in.AmountCents < 0 {
		return nil, fmt.Errorf("%w: amount must be non-negative", ErrValidation)
	}
	if in.FromID == "" || in.ToID == "" {
		return nil, fmt.Errorf("%w: fromId and toId are required", ErrValidation)
	}
	if in.FromID == in.ToID {
		return nil, fmt.Errorf("%w: fromId and toId must differ", ErrValidation)
	}
	for _, id := range []string{in.FromID, in.ToID} {
		if _, err := s.store.GetTripMember(ctx, tripID, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s is not a trip member", ErrValidation, id)
			}
			return nil, err
		}
	}

	payment := &models.Payment{
		TripID:      tripID,
		FromID:      in.FromID,
		ToID:        in.ToID,
		AmountCents: in.AmountCents,
		Status:      models.PaymentConfirmed,
		Note:        in.Note,
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}
	slog.Info("payment recorded",
		"trip_id", tripID,
		"payment_id", payment.ID,
		"amount_cents", payment.AmountCents,
	)
	return payment, nil
}
