package app

import (
	"context"
	"strings"

	"github.com/velopay/antifraud-service/internal/domain"
	"github.com/velopay/antifraud-service/pkg/rabbitmq"
)

// AMQPResultPublisher publishes validation result events to the events
// exchange, routed by final status.
type AMQPResultPublisher struct {
	producer *rabbitmq.EventProducer
}

// NewAMQPResultPublisher creates a new AMQPResultPublisher.
func NewAMQPResultPublisher(producer *rabbitmq.EventProducer) *AMQPResultPublisher {
	return &AMQPResultPublisher{producer: producer}
}

// PublishValidationResult emits the event with routing key
// transaction.validation.<approved|rejected>.
func (p *AMQPResultPublisher) PublishValidationResult(ctx context.Context, event domain.ValidationResultEvent) error {
	routingKey := "transaction.validation." + strings.ToLower(string(event.FinalStatus))
	return p.producer.Publish(ctx, routingKey, event)
}
