/**
 * @description
 * This file defines the `AccumulatorStore` interface, the contract for all
 * persistence the anti-fraud pipeline needs: reading per-account daily
 * totals and atomically applying approved amounts together with the
 * idempotency ledger. Defining an interface decouples the evaluation logic
 * from PostgreSQL and keeps it testable with in-memory fakes.
 */

package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/velopay/antifraud-service/internal/domain"
)

var (
	// ErrAccumulatorNotFound signals that no accumulator row exists for the
	// requested account and day.
	ErrAccumulatorNotFound = errors.New("daily accumulator not found")
	// ErrStoreUnavailable wraps transient database failures so callers can
	// treat them as retryable rather than terminal.
	ErrStoreUnavailable = errors.New("accumulator store unavailable")
)

// ApplyResult reports the outcome of ApplyApproved.
type ApplyResult struct {
	// Accumulated is the account-day total after the call, including the
	// transaction's amount whether it was applied now or by an earlier
	// delivery.
	Accumulated domain.Amount
	// AlreadyApplied is true when the transaction id was found in the
	// ledger, meaning this delivery was a replay and no amount was added.
	AlreadyApplied bool
}

// AccumulatorStore persists per-account daily totals together with the
// ledger of transaction ids already counted against them.
type AccumulatorStore interface {
	// Get returns the accumulator for an account and UTC day, or
	// ErrAccumulatorNotFound when no transaction has been approved yet for
	// that account on that day.
	Get(ctx context.Context, accountID uuid.UUID, day time.Time) (*domain.DailyAccumulator, error)

	// AlreadyApplied reports whether a transaction id has already been
	// counted against an accumulator on a previous delivery.
	AlreadyApplied(ctx context.Context, transactionID uuid.UUID) (bool, error)

	// ApplyApproved records the transaction in the ledger and adds its
	// amount to the account-day accumulator as a single atomic operation.
	// Replayed transaction ids leave the accumulator untouched.
	ApplyApproved(ctx context.Context, accountID uuid.UUID, day time.Time, transactionID uuid.UUID, amount domain.Amount) (ApplyResult, error)
}
