/**
 * @description
 * This file contains the Checker, the service-layer orchestrator for
 * anti-fraud validation. It runs a transaction through the individual limit,
 * the per-account daily accumulated limit, and the idempotency ledger, then
 * publishes exactly one validation result event for it.
 *
 * @notes
 * - Evaluations for the same source account are serialized with an
 *   in-process keyed mutex so the read-evaluate-apply sequence cannot
 *   interleave and overshoot the daily limit.
 * - The result event is published only after the accumulator write has
 *   committed. A crash between commit and publish is recovered on
 *   redelivery through the ledger.
 */

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/velopay/antifraud-service/internal/domain"
	"github.com/velopay/antifraud-service/internal/store"
)

// EventPublisher is the interface for emitting validation result events.
type EventPublisher interface {
	PublishValidationResult(ctx context.Context, event domain.ValidationResultEvent) error
}

// Checker evaluates transactions against the anti-fraud limits.
type Checker struct {
	store     store.AccumulatorStore
	publisher EventPublisher
	locks     *keyedMutex
}

// NewChecker creates a new Checker.
func NewChecker(accumulators store.AccumulatorStore, publisher EventPublisher) *Checker {
	return &Checker{
		store:     accumulators,
		publisher: publisher,
		locks:     newKeyedMutex(),
	}
}

// CheckTransaction validates a pending transaction and publishes its result
// event. It is safe to call concurrently and safe to call again with a
// transaction that was already decided: replays publish the same approved
// status without touching the accumulator again.
func (c *Checker) CheckTransaction(ctx context.Context, tx *domain.Transaction) error {
	if events := tx.EvaluateIndividualLimit(); len(events) > 0 {
		log.Printf("level=warn component=checker msg=\"transaction exceeds individual limit\" transaction_id=%s amount=%s", tx.ID, tx.Amount)
		return c.publish(ctx, events)
	}

	accountKey := tx.SourceAccountID.String()
	c.locks.Lock(accountKey)
	defer c.locks.Unlock(accountKey)

	applied, err := c.store.AlreadyApplied(ctx, tx.ID)
	if err != nil {
		return fmt.Errorf("check ledger for transaction %s: %w", tx.ID, err)
	}
	if applied {
		log.Printf("level=info component=checker msg=\"transaction already decided, re-publishing result\" transaction_id=%s", tx.ID)
		tx.Status = domain.StatusApproved
		event := domain.NewValidationResultEvent(tx.ID, domain.StatusApproved)
		return c.publish(ctx, []domain.ValidationResultEvent{event})
	}

	day := domain.DayOf(time.Now())
	accumulated := domain.Amount{}
	acc, err := c.store.Get(ctx, tx.SourceAccountID, day)
	switch {
	case err == nil:
		accumulated = acc.Accumulated
	case errors.Is(err, store.ErrAccumulatorNotFound):
		// First transaction of the day for this account.
	default:
		return fmt.Errorf("load accumulator for account %s: %w", tx.SourceAccountID, err)
	}

	events := tx.EvaluateDailyLimit(accumulated)

	if tx.Status == domain.StatusApproved {
		result, err := c.store.ApplyApproved(ctx, tx.SourceAccountID, day, tx.ID, tx.Amount)
		if err != nil {
			return fmt.Errorf("apply approved transaction %s: %w", tx.ID, err)
		}
		log.Printf("level=info component=checker msg=\"transaction approved\" transaction_id=%s account_id=%s daily_total=%s", tx.ID, tx.SourceAccountID, result.Accumulated)
	} else {
		log.Printf("level=warn component=checker msg=\"transaction exceeds daily limit\" transaction_id=%s account_id=%s accumulated=%s amount=%s", tx.ID, tx.SourceAccountID, accumulated, tx.Amount)
	}

	return c.publish(ctx, events)
}

func (c *Checker) publish(ctx context.Context, events []domain.ValidationResultEvent) error {
	for _, event := range events {
		if err := c.publisher.PublishValidationResult(ctx, event); err != nil {
			return fmt.Errorf("publish validation result for transaction %s: %w", event.TransactionID, err)
		}
	}
	return nil
}
