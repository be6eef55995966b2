package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/denr-tlph/licensing-api/internal/observability"
)

// PaymentEvent is published whenever a payment changes state, so downstream
// consumers (permit issuance, accounting) can react without polling Mongo.
type PaymentEvent struct {
	ExternalID string    `json:"external_id"`
	InvoiceID  string    `json:"invoice_id"`
	UserEmail  string    `json:"user_email"`
	Status     string    `json:"status"`
	Amount     int       `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits domain events.
type Publisher interface {
	PublishPaymentEvent(ctx context.Context, event PaymentEvent) error
	Close() error
}

// KafkaPublisher writes payment events to a Kafka topic, keyed by external
// reference so events for the same payment land on the same partition.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaPublisher(broker, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			Async:        true,
		},
		logger: observability.Logger().With(zap.String("component", "events")),
	}
}

func (p *KafkaPublisher) PublishPaymentEvent(ctx context.Context, event PaymentEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.ExternalID),
		Value: data,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish payment event",
			zap.String("external_id", event.ExternalID),
			zap.Error(err))
		return err
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher discards events. Used when the broker is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishPaymentEvent(context.Context, PaymentEvent) error { return nil }
func (NoopPublisher) Close() error                                            { return nil }
