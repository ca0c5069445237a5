/**
 * @description
 * This file provides the PostgreSQL implementation of the `AccumulatorStore`
 * interface. The accumulator upsert and the idempotency-ledger insert run in
 * one database transaction so a redelivered transaction event can never be
 * counted twice, and two transactions racing on the same account-day row
 * resolve through the ON CONFLICT increment instead of losing an update.
 *
 * @dependencies
 * - github.com/jackc/pgx/v5: The PostgreSQL driver for database operations.
 * - github.com/shopspring/decimal: Numeric columns are scanned through the
 *   decimal codec registered on the connection pool.
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/velopay/antifraud-service/internal/domain"
)

// PostgresAccumulatorStore is a concrete implementation of AccumulatorStore
// for PostgreSQL.
type PostgresAccumulatorStore struct {
	db *pgxpool.Pool
}

// NewPostgresAccumulatorStore creates a new instance of
// PostgresAccumulatorStore.
func NewPostgresAccumulatorStore(db *pgxpool.Pool) *PostgresAccumulatorStore {
	return &PostgresAccumulatorStore{db: db}
}

// Get retrieves the accumulator for an account and UTC day.
func (s *PostgresAccumulatorStore) Get(ctx context.Context, accountID uuid.UUID, day time.Time) (*domain.DailyAccumulator, error) {
	var accumulated decimal.Decimal
	query := `SELECT accumulated FROM daily_accumulators WHERE account_id = $1 AND day = $2`
	err := s.db.QueryRow(ctx, query, accountID, domain.DayOf(day)).Scan(&accumulated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccumulatorNotFound
		}
		return nil, fmt.Errorf("%w: query accumulator: %v", ErrStoreUnavailable, err)
	}

	amount, err := domain.NewAmount(accumulated)
	if err != nil {
		return nil, fmt.Errorf("stored accumulator for account %s is invalid: %w", accountID, err)
	}
	return domain.NewDailyAccumulator(accountID, day, amount), nil
}

// AlreadyApplied reports whether the transaction id is present in the
// idempotency ledger.
func (s *PostgresAccumulatorStore) AlreadyApplied(ctx context.Context, transactionID uuid.UUID) (bool, error) {
	var applied bool
	query := `SELECT EXISTS (SELECT 1 FROM processed_transactions WHERE transaction_id = $1)`
	if err := s.db.QueryRow(ctx, query, transactionID).Scan(&applied); err != nil {
		return false, fmt.Errorf("%w: query ledger: %v", ErrStoreUnavailable, err)
	}
	return applied, nil
}

// ApplyApproved inserts the transaction into the ledger and increments the
// account-day accumulator inside one database transaction. The conditional
// ledger insert makes redelivered transactions no-ops for the accumulator.
func (s *PostgresAccumulatorStore) ApplyApproved(ctx context.Context, accountID uuid.UUID, day time.Time, transactionID uuid.UUID, amount domain.Amount) (ApplyResult, error) {
	day = domain.DayOf(day)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return ApplyResult{}, fmt.Errorf("%w: begin: %v", ErrStoreUnavailable, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`INSERT INTO processed_transactions (transaction_id, account_id, day, applied_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (transaction_id) DO NOTHING`,
		transactionID, accountID, day,
	)
	if err != nil {
		return ApplyResult{}, fmt.Errorf("%w: record ledger entry: %v", ErrStoreUnavailable, err)
	}

	var accumulated decimal.Decimal
	if tag.RowsAffected() == 0 {
		// Replay: the amount was already counted by an earlier delivery.
		err = tx.QueryRow(ctx,
			`SELECT accumulated FROM daily_accumulators WHERE account_id = $1 AND day = $2`,
			accountID, day,
		).Scan(&accumulated)
		if err != nil {
			return ApplyResult{}, fmt.Errorf("%w: read accumulator on replay: %v", ErrStoreUnavailable, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return ApplyResult{}, fmt.Errorf("%w: commit: %v", ErrStoreUnavailable, err)
		}
		total, convErr := domain.NewAmount(accumulated)
		if convErr != nil {
			return ApplyResult{}, fmt.Errorf("stored accumulator for account %s is invalid: %w", accountID, convErr)
		}
		return ApplyResult{Accumulated: total, AlreadyApplied: true}, nil
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO daily_accumulators (account_id, day, accumulated)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (account_id, day)
		 DO UPDATE SET accumulated = daily_accumulators.accumulated + EXCLUDED.accumulated
		 RETURNING accumulated`,
		accountID, day, amount.Decimal(),
	).Scan(&accumulated)
	if err != nil {
		return ApplyResult{}, fmt.Errorf("%w: upsert accumulator: %v", ErrStoreUnavailable, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return ApplyResult{}, fmt.Errorf("%w: commit: %v", ErrStoreUnavailable, err)
	}

	total, err := domain.NewAmount(accumulated)
	if err != nil {
		return ApplyResult{}, fmt.Errorf("stored accumulator for account %s is invalid: %w", accountID, err)
	}
	return ApplyResult{Accumulated: total}, nil
}
