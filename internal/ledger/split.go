// Package ledger implements the expense ledger and settlement engine: split
// calculation, balance aggregation, and debt netting. Everything here is a
// pure function over expenses and payments; persistence and transport live
// elsewhere.
package ledger

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSplit wraps every split-validation failure. Callers can map it
// to a 400 response with errors.Is.
var ErrInvalidSplit = errors.New("invalid split")

// percentTolerance is how far the sum of percentages may drift from 100
// before the split is rejected.
const percentTolerance = 0.01

// Share is one participant's portion of an expense, in cents.
type Share struct {
	AttendeeID string `json:"attendeeId"`
	Cents      int64  `json:"share_cents"`
}

// PercentShare is a caller-supplied percentage for one participant.
type PercentShare struct {
	AttendeeID string
	Percent    float64
}

// EqualSplit divides amountCents evenly among the participants. The sum of
// the returned shares always equals amountCents exactly: the remainder
// (amountCents mod n) is distributed one cent at a time to the first
// participants in input order.
//
// Zero participants is valid and yields an empty share list; the expense
// then records the payer's credit with no offsetting debit.
func EqualSplit(amountCents int64, participants []string) ([]Share, error) {
	if err := validateAmount(amountCents); err != nil {
		return nil, err
	}
	if err := validateIDs(participants); err != nil {
		return nil, err
	}

	n := int64(len(participants))
	shares := make([]Share, 0, n)
	if n == 0 {
		return shares, nil
	}

	base := amountCents / n
	remainder := amountCents % n
	for i, id := range participants {
		cents := base
		if int64(i) < remainder {
			cents++
		}
		shares = append(shares, Share{AttendeeID: id, Cents: cents})
	}
	return shares, nil
}

// CustomSplit validates caller-supplied shares against the expense amount.
// Shares that do not sum to amountCents exactly are rejected, never
// rescaled.
func CustomSplit(amountCents int64, shares []Share) ([]Share, error) {
	if err := validateAmount(amountCents); err != nil {
		return nil, err
	}

	var sum int64
	for _, s := range shares {
		if s.AttendeeID == "" {
			return nil, fmt.Errorf("%w: participant with empty attendee id", ErrInvalidSplit)
		}
		if s.Cents < 0 {
			return nil, fmt.Errorf("%w: share for %s is negative", ErrInvalidSplit, s.AttendeeID)
		}
		sum += s.Cents
	}
	if sum != amountCents {
		return nil, fmt.Errorf("%w: shares sum to %d cents, expense amount is %d", ErrInvalidSplit, sum, amountCents)
	}

	out := make([]Share, len(shares))
	copy(out, shares)
	return out, nil
}

// PercentageSplit converts percentages into cent shares. Every participant's
// share is round(percent/100 * amountCents) except the last, which receives
// the exact remainder so the shares reconcile to amountCents.
func PercentageSplit(amountCents int64, portions []PercentShare) ([]Share, error) {
	if err := validateAmount(amountCents); err != nil {
		return nil, err
	}
	if len(portions) == 0 {
		return nil, fmt.Errorf("%w: percentage split requires at least one participant", ErrInvalidSplit)
	}

	var total float64
	for _, p := range portions {
		if p.AttendeeID == "" {
			return nil, fmt.Errorf("%w: participant with empty attendee id", ErrInvalidSplit)
		}
		if p.Percent < 0 || p.Percent > 100 {
			return nil, fmt.Errorf("%w: percentage for %s out of range: %g", ErrInvalidSplit, p.AttendeeID, p.Percent)
		}
		total += p.Percent
	}
	if math.Abs(total-100) > percentTolerance {
		return nil, fmt.Errorf("%w: percentages sum to %g, want 100", ErrInvalidSplit, total)
	}

	shares := make([]Share, 0, len(portions))
	var assigned int64
	for i, p := range portions {
		var cents int64
		if i == len(portions)-1 {
			cents = amountCents - assigned
			// Rounding the earlier shares up can overshoot a tiny amount
			// and push the remainder below zero.
			if cents < 0 {
				return nil, fmt.Errorf("%w: rounded shares exceed the expense amount", ErrInvalidSplit)
			}
		} else {
			cents = int64(math.Round(p.Percent / 100 * float64(amountCents)))
		}
		assigned += cents
		shares = append(shares, Share{AttendeeID: p.AttendeeID, Cents: cents})
	}
	return shares, nil
}

func validateAmount(amountCents int64) error {
	if amountCents < 0 {
		return fmt.Errorf("%w: amount must be non-negative, got %d cents", ErrInvalidSplit, amountCents)
	}
	return nil
}

func validateIDs(ids []string) error {
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("%w: participant with empty attendee id", ErrInvalidSplit)
		}
	}
	return nil
}
