package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type discriminators carried on the wire.
const (
	EventTypeTransactionCreated = "TransactionCreated"
	EventTypeValidationResult   = "TransactionValidationResultEvent"
)

// TransactionCreatedEvent is the inbound message emitted by the transaction
// service when a transfer is requested. The event id doubles as the
// transaction id, which is what makes redeliveries detectable downstream.
type TransactionCreatedEvent struct {
	EventID         uuid.UUID       `json:"eventId"`
	OccurredOn      time.Time       `json:"occurredOn"`
	EventType       string          `json:"eventType"`
	SourceAccountID uuid.UUID       `json:"sourceAccountId"`
	TargetAccountID uuid.UUID       `json:"targetAccountId"`
	TransferTypeID  int             `json:"transferTypeId"`
	Value           decimal.Decimal `json:"value"`
}

// ToTransaction validates the payload and maps it onto a pending
// Transaction. A negative value fails with NegativeAmountError before any
// Transaction exists.
func (e TransactionCreatedEvent) ToTransaction() (*Transaction, error) {
	amount, err := NewAmount(e.Value)
	if err != nil {
		return nil, err
	}
	return NewPendingTransaction(e.EventID, e.SourceAccountID, e.TargetAccountID, e.TransferTypeID, amount, e.OccurredOn), nil
}

// ValidationResultEvent is the outbound decision for one transaction.
type ValidationResultEvent struct {
	EventID       uuid.UUID `json:"eventId"`
	OccurredOn    time.Time `json:"occurredOn"`
	EventType     string    `json:"eventType"`
	TransactionID uuid.UUID `json:"transactionId"`
	FinalStatus   Status    `json:"finalStatus"`
}

// NewValidationResultEvent stamps a fresh event id and UTC timestamp onto a
// decision for the given transaction.
func NewValidationResultEvent(transactionID uuid.UUID, finalStatus Status) ValidationResultEvent {
	return ValidationResultEvent{
		EventID:       uuid.New(),
		OccurredOn:    time.Now().UTC(),
		EventType:     EventTypeValidationResult,
		TransactionID: transactionID,
		FinalStatus:   finalStatus,
	}
}
