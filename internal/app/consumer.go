/**
 * @description
 * This file contains the message handler for transaction created events. It
 * deserializes the payload, maps it into a domain transaction, and delegates
 * to the Checker. The boolean return drives acknowledgement: true acks the
 * delivery, false nacks it for redelivery.
 *
 * @notes
 * - Malformed payloads and payloads that cannot form a valid transaction
 *   (negative amounts) are acked and dropped. Redelivering them can never
 *   succeed.
 * - Store and publish failures nack so the broker redelivers once the
 *   dependency recovers.
 */

package app

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/velopay/antifraud-service/internal/domain"
)

const defaultHandleTimeout = 15 * time.Second

// TransactionCreatedConsumer handles transaction created messages from the
// broker.
type TransactionCreatedConsumer struct {
	checker *Checker
	timeout time.Duration
}

// NewTransactionCreatedConsumer creates a new TransactionCreatedConsumer.
// A non-positive timeout falls back to the default.
func NewTransactionCreatedConsumer(checker *Checker, timeout time.Duration) *TransactionCreatedConsumer {
	if timeout <= 0 {
		timeout = defaultHandleTimeout
	}
	return &TransactionCreatedConsumer{checker: checker, timeout: timeout}
}

// HandleMessage processes one delivery. The return value indicates whether
// the message should be acknowledged.
func (c *TransactionCreatedConsumer) HandleMessage(body []byte) bool {
	var event domain.TransactionCreatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("level=error component=transaction_consumer msg=\"failed to unmarshal message, dropping\" error=%v", err)
		return true
	}

	tx, err := event.ToTransaction()
	if err != nil {
		var negErr *domain.NegativeAmountError
		if errors.As(err, &negErr) {
			log.Printf("level=error component=transaction_consumer msg=\"rejecting unprocessable payload, dropping\" transaction_id=%s error=%v", event.EventID, err)
			return true
		}
		log.Printf("level=error component=transaction_consumer msg=\"invalid transaction payload, dropping\" transaction_id=%s error=%v", event.EventID, err)
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.checker.CheckTransaction(ctx, tx); err != nil {
		log.Printf("level=error component=transaction_consumer msg=\"failed to check transaction, requeueing\" transaction_id=%s error=%v", tx.ID, err)
		return false
	}

	return true
}
