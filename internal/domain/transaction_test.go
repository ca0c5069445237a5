package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newTestTransaction(amount Amount) *Transaction {
	return NewPendingTransaction(uuid.New(), uuid.New(), uuid.New(), 1, amount, time.Now().UTC())
}

func TestEvaluateIndividualLimit(t *testing.T) {
	tests := []struct {
		name       string
		amount     Amount
		wantStatus Status
		wantEvents int
	}{
		{"over limit rejects", AmountFromInt(2500), StatusRejected, 1},
		{"exactly at limit stays pending", AmountFromInt(2000), StatusPending, 0},
		{"under limit stays pending", AmountFromInt(150), StatusPending, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := newTestTransaction(tt.amount)
			events := tx.EvaluateIndividualLimit()

			if tx.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", tx.Status, tt.wantStatus)
			}
			if len(events) != tt.wantEvents {
				t.Fatalf("got %d events, want %d", len(events), tt.wantEvents)
			}
			if tt.wantEvents == 1 {
				event := events[0]
				if event.TransactionID != tx.ID {
					t.Errorf("event transaction id = %s, want %s", event.TransactionID, tx.ID)
				}
				if event.FinalStatus != StatusRejected {
					t.Errorf("event final status = %s, want %s", event.FinalStatus, StatusRejected)
				}
				if event.EventType != EventTypeValidationResult {
					t.Errorf("event type = %s, want %s", event.EventType, EventTypeValidationResult)
				}
			}
		})
	}
}

func TestEvaluateIndividualLimitIsNoOpOnTerminalTransaction(t *testing.T) {
	tx := newTestTransaction(AmountFromInt(2500))
	tx.Status = StatusApproved

	if events := tx.EvaluateIndividualLimit(); len(events) != 0 {
		t.Fatalf("expected no events for a settled transaction, got %d", len(events))
	}
	if tx.Status != StatusApproved {
		t.Errorf("status changed to %s on a settled transaction", tx.Status)
	}
}

func TestEvaluateDailyLimit(t *testing.T) {
	tests := []struct {
		name        string
		accumulated Amount
		amount      Amount
		wantStatus  Status
	}{
		{"first transaction of the day", AmountFromInt(0), AmountFromInt(500), StatusApproved},
		{"would exceed daily cap", AmountFromInt(19800), AmountFromInt(300), StatusRejected},
		{"lands exactly on the cap", AmountFromInt(19700), AmountFromInt(300), StatusApproved},
		{"cap already reached", AmountFromInt(20000), AmountFromInt(1), StatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := newTestTransaction(tt.amount)
			events := tx.EvaluateDailyLimit(tt.accumulated)

			if tx.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", tx.Status, tt.wantStatus)
			}
			if len(events) != 1 {
				t.Fatalf("got %d events, want exactly 1", len(events))
			}
			if events[0].FinalStatus != tt.wantStatus {
				t.Errorf("event final status = %s, want %s", events[0].FinalStatus, tt.wantStatus)
			}
			if events[0].TransactionID != tx.ID {
				t.Errorf("event transaction id = %s, want %s", events[0].TransactionID, tx.ID)
			}
		})
	}
}

func TestEvaluateDailyLimitIsNoOpOnTerminalTransaction(t *testing.T) {
	tx := newTestTransaction(AmountFromInt(100))
	tx.Status = StatusRejected

	if events := tx.EvaluateDailyLimit(AmountFromInt(0)); len(events) != 0 {
		t.Fatalf("expected no events for a settled transaction, got %d", len(events))
	}
	if tx.Status != StatusRejected {
		t.Errorf("status changed to %s on a settled transaction", tx.Status)
	}
}

func TestTransactionCreatedEventToTransaction(t *testing.T) {
	event := TransactionCreatedEvent{
		EventID:         uuid.New(),
		OccurredOn:      time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		EventType:       EventTypeTransactionCreated,
		SourceAccountID: uuid.New(),
		TargetAccountID: uuid.New(),
		TransferTypeID:  1,
		Value:           decimal.NewFromFloat(120.50),
	}

	tx, err := event.ToTransaction()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.ID != event.EventID {
		t.Errorf("transaction id = %s, want event id %s", tx.ID, event.EventID)
	}
	if tx.SourceAccountID != event.SourceAccountID {
		t.Errorf("source account id = %s, want %s", tx.SourceAccountID, event.SourceAccountID)
	}
	if tx.Status != StatusPending {
		t.Errorf("status = %s, want %s", tx.Status, StatusPending)
	}
	if !tx.Amount.Decimal().Equal(event.Value) {
		t.Errorf("amount = %s, want %s", tx.Amount, event.Value)
	}
}

func TestTransactionCreatedEventToTransactionRejectsNegativeValue(t *testing.T) {
	event := TransactionCreatedEvent{
		EventID: uuid.New(),
		Value:   decimal.NewFromInt(-50),
	}

	if _, err := event.ToTransaction(); err == nil {
		t.Fatal("expected an error for a negative value")
	}
}
