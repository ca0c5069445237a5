package app

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/velopay/antifraud-service/internal/domain"
	"github.com/velopay/antifraud-service/internal/store"
)

func newTestConsumer(accumulators *fakeAccumulatorStore, publisher *fakePublisher) *TransactionCreatedConsumer {
	return NewTransactionCreatedConsumer(NewChecker(accumulators, publisher), time.Second)
}

func encodeEvent(t *testing.T, event domain.TransactionCreatedEvent) []byte {
	t.Helper()
	body, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}
	return body
}

func TestHandleMessageAcksMalformedPayload(t *testing.T) {
	accumulators := newFakeAccumulatorStore()
	publisher := &fakePublisher{}
	consumer := newTestConsumer(accumulators, publisher)

	if !consumer.HandleMessage([]byte(`{not json`)) {
		t.Fatal("malformed payload should be acked and dropped")
	}
	if len(publisher.published()) != 0 {
		t.Errorf("events published for a malformed payload: %+v", publisher.published())
	}
}

func TestHandleMessageAcksNegativeAmount(t *testing.T) {
	accumulators := newFakeAccumulatorStore()
	publisher := &fakePublisher{}
	consumer := newTestConsumer(accumulators, publisher)

	body := encodeEvent(t, domain.TransactionCreatedEvent{
		EventID:         uuid.New(),
		OccurredOn:      time.Now().UTC(),
		EventType:       domain.EventTypeTransactionCreated,
		SourceAccountID: uuid.New(),
		TargetAccountID: uuid.New(),
		TransferTypeID:  1,
		Value:           decimal.NewFromInt(-100),
	})

	if !consumer.HandleMessage(body) {
		t.Fatal("negative amount should be acked and dropped")
	}
	if len(publisher.published()) != 0 {
		t.Errorf("events published for a negative amount: %+v", publisher.published())
	}
	if accumulators.getCalls != 0 || accumulators.applyCalls != 0 {
		t.Errorf("store was touched: getCalls=%d applyCalls=%d", accumulators.getCalls, accumulators.applyCalls)
	}
}

func TestHandleMessageNacksOnStoreFailure(t *testing.T) {
	accumulators := newFakeAccumulatorStore()
	accumulators.getErr = store.ErrStoreUnavailable
	publisher := &fakePublisher{}
	consumer := newTestConsumer(accumulators, publisher)

	body := encodeEvent(t, domain.TransactionCreatedEvent{
		EventID:         uuid.New(),
		OccurredOn:      time.Now().UTC(),
		EventType:       domain.EventTypeTransactionCreated,
		SourceAccountID: uuid.New(),
		TargetAccountID: uuid.New(),
		TransferTypeID:  1,
		Value:           decimal.NewFromInt(100),
	})

	if consumer.HandleMessage(body) {
		t.Fatal("store failure should nack for redelivery")
	}
	if len(publisher.published()) != 0 {
		t.Errorf("events published despite store failure: %+v", publisher.published())
	}
}

func TestHandleMessageAcksAndPublishesOnSuccess(t *testing.T) {
	accumulators := newFakeAccumulatorStore()
	publisher := &fakePublisher{}
	consumer := newTestConsumer(accumulators, publisher)

	transactionID := uuid.New()
	body := encodeEvent(t, domain.TransactionCreatedEvent{
		EventID:         transactionID,
		OccurredOn:      time.Now().UTC(),
		EventType:       domain.EventTypeTransactionCreated,
		SourceAccountID: uuid.New(),
		TargetAccountID: uuid.New(),
		TransferTypeID:  1,
		Value:           decimal.NewFromInt(120),
	})

	if !consumer.HandleMessage(body) {
		t.Fatal("successful check should ack")
	}

	events := publisher.published()
	if len(events) != 1 {
		t.Fatalf("got %d events, want exactly 1", len(events))
	}
	if events[0].TransactionID != transactionID {
		t.Errorf("event transaction id = %s, want %s", events[0].TransactionID, transactionID)
	}
	if events[0].FinalStatus != domain.StatusApproved {
		t.Errorf("event final status = %s, want %s", events[0].FinalStatus, domain.StatusApproved)
	}
}
