// Package messaging implements the event publisher port on Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/config"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/events"
)

// KafkaEventPublisher writes domain events to a single topic, keyed by
// aggregate id so all events of one aggregate land in the same partition.
type KafkaEventPublisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewKafkaEventPublisher creates a publisher targeting the configured
// broker and topic.
func NewKafkaEventPublisher(cfg config.KafkaConfig, logger *slog.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.Broker),
			Topic:        cfg.Topic,
			Balancer:     &kafkago.Hash{},
			RequiredAcks: kafkago.RequireOne,
			WriteTimeout: 10 * time.Second,
			BatchTimeout: 50 * time.Millisecond,
		},
		logger: logger,
	}
}

// Publish serializes and sends one domain event.
func (p *KafkaEventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.EventType(), err)
	}

	msg := kafkago.Message{
		Key:   []byte(event.AggregateID()),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType())},
			{Key: "aggregate_type", Value: []byte(event.AggregateType())},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publish %s: %w", event.EventType(), err)
	}

	p.logger.Debug("domain event published",
		"eventType", event.EventType(),
		"aggregateId", event.AggregateID())
	return nil
}

// Close flushes and closes the writer.
func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}
