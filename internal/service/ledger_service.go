package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/jdsingh122918/steamboat-sub004/internal/ledger"
	"github.com/jdsingh122918/steamboat-sub004/internal/metrics"
	"github.com/jdsingh122918/steamboat-sub004/internal/models"
	"github.com/jdsingh122918/steamboat-sub004/internal/storage"
)

// LedgerService runs the read paths (balances, settlement plan) and the
// write path (settlement execution) of the ledger engine. Every call
// recomputes from a fresh bounded read; nothing is cached.
type LedgerService struct {
	store     storage.Store
	optimizer ledger.Optimizer

	// Execute is serialized per trip: two concurrent executions over the
	// same expense set would both net the same debts and double-settle
	// them.
	mu        sync.Mutex
	tripLocks map[string]*sync.Mutex
}

// NewLedgerService creates a new LedgerService with the given storage
// backend and settlement optimizer.
func NewLedgerService(store storage.Store, optimizer ledger.Optimizer) *LedgerService {
	return &LedgerService{
		store:     store,
		optimizer: optimizer,
		tripLocks: make(map[string]*sync.Mutex),
	}
}

func (s *LedgerService) tripLock(tripID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.tripLocks[tripID]
	if !ok {
		lock = &sync.Mutex{}
		s.tripLocks[tripID] = lock
	}
	return lock
}

// readLedger performs the bounded read both folds run over.
func (s *LedgerService) readLedger(ctx context.Context, tripID string) ([]*models.Expense, []*models.Payment, error) {
	expenses, err := s.store.ListExpensesByTrip(ctx, tripID, expenseReadLimit)
	if err != nil {
		return nil, nil, err
	}
	payments, err := s.store.ListPaymentsByTrip(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}
	return expenses, payments, nil
}

// AttendeeBalance is one attendee's net position, annotated with their
// display name.
type AttendeeBalance struct {
	AttendeeID   string `json:"attendeeId"`
	Name         string `json:"name"`
	BalanceCents int64  `json:"balance_cents"`
}

// Balances computes the per-attendee net balance for a trip. Positive means
// others owe this attendee, negative means they owe others. The actor must
// be a trip member.
func (s *LedgerService) Balances(ctx context.Context, actorID, tripID string) ([]AttendeeBalance, error) {
	if _, err := requireMember(ctx, s.store, tripID, actorID); err != nil {
		return nil, err
	}

	expenses, payments, err := s.readLedger(ctx, tripID)
	if err != nil {
		return nil, err
	}
	balances := ledger.Balances(expenses, payments)

	ids := make([]string, 0, len(balances))
	for id := range balances {
		ids = append(ids, id)
	}
	names, err := s.store.GetAttendees(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]AttendeeBalance, 0, len(balances))
	for id, cents := range balances {
		b := AttendeeBalance{AttendeeID: id, BalanceCents: cents}
		if a, ok := names[id]; ok {
			b.Name = a.Name
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttendeeID < out[j].AttendeeID })
	return out, nil
}

// PlanSettlement nets the trip's debts, runs the optimizer and returns the
// resulting plan with display names attached. Storage is never mutated; an
// empty debt graph yields an empty plan, not an error.
func (s *LedgerService) PlanSettlement(ctx context.Context, actorID, tripID string) (*ledger.Plan, error) {
	if _, err := requireMember(ctx, s.store, tripID, actorID); err != nil {
		return nil, err
	}

	expenses, payments, err := s.readLedger(ctx, tripID)
	if err != nil {
		return nil, err
	}
	debts, _ := ledger.NetDebts(expenses, payments)

	plan, err := s.optimizer.Simplify(debts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOptimizer, err)
	}
	if err := s.attachNames(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// attachNames fills FromName/ToName on each planned payment for
// presentation.
func (s *LedgerService) attachNames(ctx context.Context, plan *ledger.Plan) error {
	idSet := make(map[string]struct{})
	for _, p := range plan.Payments {
		idSet[p.From] = struct{}{}
		idSet[p.To] = struct{}{}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	attendees, err := s.store.GetAttendees(ctx, ids)
	if err != nil {
		return err
	}
	for i := range plan.Payments {
		if a, ok := attendees[plan.Payments[i].From]; ok {
			plan.Payments[i].FromName = a.Name
		}
		if a, ok := attendees[plan.Payments[i].To]; ok {
			plan.Payments[i].ToName = a.Name
		}
	}
	return nil
}

// SettlementResult summarizes an executed settlement.
type SettlementResult struct {
	PaymentsCreated int `json:"paymentsCreated"`
	ExpensesSettled int `json:"expensesSettled"`
}

// ExecuteSettlement nets the trip's debts, runs the optimizer, persists the
// optimized transfers as pending payments and marks every expense that was
// pending at computation time as settled. The write phase is a single
// transaction; an optimizer failure aborts with no writes.
//
// Execution is serialized per trip. It is not idempotent in general, but
// re-running after a successful execution with no intervening activity nets
// an empty debt graph and is a safe no-op. The actor must be a trip admin.
func (s *LedgerService) ExecuteSettlement(ctx context.Context, actorID, tripID string) (*SettlementResult, error) {
	if _, err := requireAdmin(ctx, s.store, tripID, actorID); err != nil {
		return nil, err
	}

	lock := s.tripLock(tripID)
	lock.Lock()
	defer lock.Unlock()

	expenses, payments, err := s.readLedger(ctx, tripID)
	if err != nil {
		return nil, err
	}
	// pendingIDs is captured once, before the optimizer call; exactly this
	// set gets settled below.
	debts, pendingIDs := ledger.NetDebts(expenses, payments)

	plan, err := s.optimizer.Simplify(debts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOptimizer, err)
	}

	created := make([]*models.Payment, 0, len(plan.Payments))
	for _, p := range plan.Payments {
		created = append(created, &models.Payment{
			TripID:      tripID,
			FromID:      p.From,
			ToID:        p.To,
			AmountCents: p.AmountCents,
			Status:      models.PaymentPending,
			Note:        "settlement",
		})
	}

	if err := s.store.RecordSettlement(ctx, created, pendingIDs); err != nil {
		return nil, err
	}

	metrics.SettlementsExecuted.Inc()
	metrics.SettlementPaymentsCreated.Add(float64(len(created)))
	slog.Info("settlement executed",
		"trip_id", tripID,
		"payments_created", len(created),
		"expenses_settled", len(pendingIDs),
		"savings_percent", plan.SavingsPercent,
	)
	return &SettlementResult{
		PaymentsCreated: len(created),
		ExpensesSettled: len(pendingIDs),
	}, nil
}
