package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a transaction under fraud evaluation.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Fixed fraud limits, in the platform's single currency unit. A candidate
// exactly equal to a limit passes; only strictly greater values are rejected.
var (
	IndividualLimit = AmountFromInt(2000)
	DailyLimit      = AmountFromInt(20000)
)

// Transaction is one transfer request moving through the validation
// pipeline. Status starts Pending and settles in exactly one terminal state;
// transition attempts on a terminal transaction are silent no-ops.
type Transaction struct {
	ID              uuid.UUID
	SourceAccountID uuid.UUID
	TargetAccountID uuid.UUID
	TransferTypeID  int
	Amount          Amount
	Status          Status
	CreatedAt       time.Time
}

// NewPendingTransaction builds a Transaction in the Pending state.
func NewPendingTransaction(id, sourceAccountID, targetAccountID uuid.UUID, transferTypeID int, amount Amount, createdAt time.Time) *Transaction {
	return &Transaction{
		ID:              id,
		SourceAccountID: sourceAccountID,
		TargetAccountID: targetAccountID,
		TransferTypeID:  transferTypeID,
		Amount:          amount,
		Status:          StatusPending,
		CreatedAt:       createdAt,
	}
}

// IsTerminal reports whether the transaction has settled.
func (t *Transaction) IsTerminal() bool {
	return t.Status == StatusApproved || t.Status == StatusRejected
}

// EvaluateIndividualLimit rejects the transaction when its amount exceeds
// IndividualLimit and returns the decision events produced by the
// transition. The transaction stays Pending when the limit is respected and
// no events are emitted.
func (t *Transaction) EvaluateIndividualLimit() []ValidationResultEvent {
	if t.IsTerminal() {
		return nil
	}
	if t.Amount.GreaterThan(IndividualLimit) {
		t.Status = StatusRejected
		return []ValidationResultEvent{NewValidationResultEvent(t.ID, StatusRejected)}
	}
	return nil
}

// EvaluateDailyLimit settles a still-pending transaction against the daily
// cap. accumulated is the account's approved total for the day before this
// transaction; the transaction is rejected only when adding its amount would
// push that total strictly past DailyLimit.
func (t *Transaction) EvaluateDailyLimit(accumulated Amount) []ValidationResultEvent {
	if t.IsTerminal() {
		return nil
	}
	candidate := accumulated.Add(t.Amount)
	if candidate.GreaterThan(DailyLimit) {
		t.Status = StatusRejected
		return []ValidationResultEvent{NewValidationResultEvent(t.ID, StatusRejected)}
	}
	t.Status = StatusApproved
	return []ValidationResultEvent{NewValidationResultEvent(t.ID, StatusApproved)}
}
