package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jdsingh122918/steamboat-sub004/internal/ledger"
	"github.com/jdsingh122918/steamboat-sub004/internal/models"
	"github.com/jdsingh122918/steamboat-sub004/internal/optimizer"
	"github.com/jdsingh122918/steamboat-sub004/internal/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedAttendee(t *testing.T, store *sqlite.SQLiteStore, id, name string) {
	t.Helper()
	err := store.CreateAttendee(context.Background(), &models.Attendee{
		ID: id, Name: name, Email: id + "@example.com", PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("failed to create attendee %s: %v", id, err)
	}
}

// seedTrip creates a trip owned by admin and adds the other ids as members.
func seedTrip(t *testing.T, store *sqlite.SQLiteStore, admin string, members ...string) string {
	t.Helper()
	ctx := context.Background()
	trip := &models.Trip{Name: "Steamboat 2026", CreatedBy: admin}
	if err := store.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("failed to create trip: %v", err)
	}
	for _, m := range members {
		err := store.AddTripMember(ctx, &models.TripMember{
			TripID: trip.ID, AttendeeID: m, Role: models.RoleMember,
		})
		if err != nil {
			t.Fatalf("failed to add member %s: %v", m, err)
		}
	}
	return trip.ID
}

func seedExpense(t *testing.T, store *sqlite.SQLiteStore, tripID, payer string, amount int64, shares map[string]int64) string {
	t.Helper()
	participants := make([]models.ExpenseParticipant, 0, len(shares))
	for id, cents := range shares {
		c := cents
		participants = append(participants, models.ExpenseParticipant{
			AttendeeID: id, OptedIn: true, ShareCents: &c,
		})
	}
	e := &models.Expense{
		TripID: tripID, PayerID: payer, AmountCents: amount,
		SplitType: models.SplitEqual, Participants: participants,
	}
	if err := store.CreateExpense(context.Background(), e); err != nil {
		t.Fatalf("failed to create expense: %v", err)
	}
	return e.ID
}

// stubOptimizer returns a canned plan or error and records the debts it saw.
type stubOptimizer struct {
	plan     *ledger.Plan
	err      error
	gotDebts []ledger.Debt
}

func (s *stubOptimizer) Simplify(debts []ledger.Debt) (*ledger.Plan, error) {
	s.gotDebts = debts
	if s.err != nil {
		return nil, s.err
	}
	return s.plan, nil
}

func TestBalancesRequiresMembership(t *testing.T) {
	store := newTestStore(t)
	svc := NewLedgerService(store, optimizer.New())
	seedAttendee(t, store, "x", "Xenia")
	seedAttendee(t, store, "outsider", "Olga")
	tripID := seedTrip(t, store, "x")

	if _, err := svc.Balances(context.Background(), "outsider", tripID); !errors.Is(err, ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
	if _, err := svc.Balances(context.Background(), "x", "no-such-trip"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestBalancesThreeWayTrip(t *testing.T) {
	store := newTestStore(t)
	svc := NewLedgerService(store, optimizer.New())
	seedAttendee(t, store, "x", "Xenia")
	seedAttendee(t, store, "y", "Yuri")
	seedAttendee(t, store, "z", "Zoe")
	tripID := seedTrip(t, store, "x", "y", "z")
	seedExpense(t, store, tripID, "x", 9000, map[string]int64{"x": 3000, "y": 3000, "z": 3000})

	got, err := svc.Balances(context.Background(), "y", tripID)
	if err != nil {
		t.Fatalf("Balances() error = %v", err)
	}

	want := []AttendeeBalance{
		{AttendeeID: "x", Name: "Xenia", BalanceCents: 6000},
		{AttendeeID: "y", Name: "Yuri", BalanceCents: -3000},
		{AttendeeID: "z", Name: "Zoe", BalanceCents: -3000},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d balances %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("balance[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPlanSettlementAttachesNamesWithoutWriting(t *testing.T) {
	store := newTestStore(t)
	svc := NewLedgerService(store, optimizer.New())
	ctx := context.Background()
	seedAttendee(t, store, "x", "Xenia")
	seedAttendee(t, store, "y", "Yuri")
	tripID := seedTrip(t, store, "x", "y")
	seedExpense(t, store, tripID, "x", 6000, map[string]int64{"y": 6000})

	plan, err := svc.PlanSettlement(ctx, "y", tripID)
	if err != nil {
		t.Fatalf("PlanSettlement() error = %v", err)
	}
	if len(plan.Payments) != 1 {
		t.Fatalf("got %d payments, want 1", len(plan.Payments))
	}
	p := plan.Payments[0]
	if p.From != "y" || p.To != "x" || p.AmountCents != 6000 {
		t.Errorf("payment = %+v", p)
	}
	if p.FromName != "Yuri" || p.ToName != "Xenia" {
		t.Errorf("names = %q -> %q, want Yuri -> Xenia", p.FromName, p.ToName)
	}

	// Planning never mutates storage.
	payments, err := store.ListPaymentsByTrip(ctx, tripID)
	if err != nil {
		t.Fatalf("ListPaymentsByTrip() error = %v", err)
	}
	if len(payments) != 0 {
		t.Errorf("plan wrote %d payments", len(payments))
	}
}

func TestExecuteSettlementRequiresAdmin(t *testing.T) {
	store := newTestStore(t)
	svc := NewLedgerService(store, optimizer.New())
	seedAttendee(t, store, "x", "Xenia")
	seedAttendee(t, store, "y", "Yuri")
	tripID := seedTrip(t, store, "x", "y")

	if _, err := svc.ExecuteSettlement(context.Background(), "y", tripID); !errors.Is(err, ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
}

func TestExecuteSettlement(t *testing.T) {
	store := newTestStore(t)
	svc := NewLedgerService(store, optimizer.New())
	ctx := context.Background()
	seedAttendee(t, store, "x", "Xenia")
	seedAttendee(t, store, "y", "Yuri")
	seedAttendee(t, store, "z", "Zoe")
	tripID := seedTrip(t, store, "x", "y", "z")
	e1 := seedExpense(t, store, tripID, "x", 9000, map[string]int64{"x": 3000, "y": 3000, "z": 3000})
	e2 := seedExpense(t, store, tripID, "x", 1000, map[string]int64{"y": 1000})

	result, err := svc.ExecuteSettlement(ctx, "x", tripID)
	if err != nil {
		t.Fatalf("ExecuteSettlement() error = %v", err)
	}
	if result.ExpensesSettled != 2 {
		t.Errorf("ExpensesSettled = %d, want 2", result.ExpensesSettled)
	}
	if result.PaymentsCreated != 2 {
		t.Errorf("PaymentsCreated = %d, want 2", result.PaymentsCreated)
	}

	for _, id := range []string{e1, e2} {
		expense, err := store.GetExpense(ctx, id)
		if err != nil {
			t.Fatalf("GetExpense() error = %v", err)
		}
		if expense.Status != models.ExpenseSettled {
			t.Errorf("expense %s status = %s, want settled", id, expense.Status)
		}
	}

	payments, err := store.ListPaymentsByTrip(ctx, tripID)
	if err != nil {
		t.Fatalf("ListPaymentsByTrip() error = %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("got %d payments, want 2", len(payments))
	}
	var total int64
	for _, p := range payments {
		if p.Status != models.PaymentPending {
			t.Errorf("payment status = %s, want pending", p.Status)
		}
		if p.Note != "settlement" {
			t.Errorf("payment note = %q, want settlement", p.Note)
		}
		if p.ToID != "x" {
			t.Errorf("payment recipient = %s, want x", p.ToID)
		}
		total += p.AmountCents
	}
	if total != 7000 {
		t.Errorf("settlement payments total %d, want 7000", total)
	}

	// Balances reach zero once the plan is on the books.
	balances, err := svc.Balances(ctx, "x", tripID)
	if err != nil {
		t.Fatalf("Balances() error = %v", err)
	}
	for _, b := range balances {
		if b.BalanceCents != 0 {
			t.Errorf("balance[%s] = %d after settlement, want 0", b.AttendeeID, b.BalanceCents)
		}
	}
}

func TestExecuteSettlementTwiceIsNoOp(t *testing.T) {
	store := newTestStore(t)
	svc := NewLedgerService(store, optimizer.New())
	ctx := context.Background()
	seedAttendee(t, store, "x", "Xenia")
	seedAttendee(t, store, "y", "Yuri")
	tripID := seedTrip(t, store, "x", "y")
	seedExpense(t, store, tripID, "x", 5000, map[string]int64{"y": 5000})

	if _, err := svc.ExecuteSettlement(ctx, "x", tripID); err != nil {
		t.Fatalf("first ExecuteSettlement() error = %v", err)
	}

	result, err := svc.ExecuteSettlement(ctx, "x", tripID)
	if err != nil {
		t.Fatalf("second ExecuteSettlement() error = %v", err)
	}
	if result.PaymentsCreated != 0 || result.ExpensesSettled != 0 {
		t.Errorf("second run = %+v, want a no-op", result)
	}

	payments, err := store.ListPaymentsByTrip(ctx, tripID)
	if err != nil {
		t.Fatalf("ListPaymentsByTrip() error = %v", err)
	}
	if len(payments) != 1 {
		t.Errorf("got %d payments after two runs, want 1", len(payments))
	}
}

func TestExecuteSettlementOptimizerFailureWritesNothing(t *testing.T) {
	store := newTestStore(t)
	stub := &stubOptimizer{err: errors.New("solver exploded")}
	svc := NewLedgerService(store, stub)
	ctx := context.Background()
	seedAttendee(t, store, "x", "Xenia")
	seedAttendee(t, store, "y", "Yuri")
	tripID := seedTrip(t, store, "x", "y")
	eID := seedExpense(t, store, tripID, "x", 5000, map[string]int64{"y": 5000})

	if _, err := svc.ExecuteSettlement(ctx, "x", tripID); !errors.Is(err, ErrOptimizer) {
		t.Fatalf("error = %v, want ErrOptimizer", err)
	}

	expense, err := store.GetExpense(ctx, eID)
	if err != nil {
		t.Fatalf("GetExpense() error = %v", err)
	}
	if expense.Status != models.ExpensePending {
		t.Errorf("expense status = %s, want still pending", expense.Status)
	}
	payments, err := store.ListPaymentsByTrip(ctx, tripID)
	if err != nil {
		t.Fatalf("ListPaymentsByTrip() error = %v", err)
	}
	if len(payments) != 0 {
		t.Errorf("got %d payments after optimizer failure, want 0", len(payments))
	}
}

func TestExecuteSettlementPersistsOptimizerPlanVerbatim(t *testing.T) {
	store := newTestStore(t)
	stub := &stubOptimizer{plan: &ledger.Plan{
		Payments: []ledger.PlannedPayment{
			{From: "y", To: "x", AmountCents: 1234},
		},
		OriginalCount:  1,
		OptimizedCount: 1,
	}}
	svc := NewLedgerService(store, stub)
	ctx := context.Background()
	seedAttendee(t, store, "x", "Xenia")
	seedAttendee(t, store, "y", "Yuri")
	tripID := seedTrip(t, store, "x", "y")
	seedExpense(t, store, tripID, "x", 5000, map[string]int64{"y": 5000})

	result, err := svc.ExecuteSettlement(ctx, "x", tripID)
	if err != nil {
		t.Fatalf("ExecuteSettlement() error = %v", err)
	}
	if result.PaymentsCreated != 1 {
		t.Errorf("PaymentsCreated = %d, want 1", result.PaymentsCreated)
	}
	if len(stub.gotDebts) != 1 || stub.gotDebts[0].Debtor != "y" || stub.gotDebts[0].AmountCents != 5000 {
		t.Errorf("optimizer saw debts %v", stub.gotDebts)
	}

	payments, err := store.ListPaymentsByTrip(ctx, tripID)
	if err != nil {
		t.Fatalf("ListPaymentsByTrip() error = %v", err)
	}
	if len(payments) != 1 || payments[0].AmountCents != 1234 {
		t.Errorf("stored payments %v, want the optimizer amount 1234", payments)
	}
}
