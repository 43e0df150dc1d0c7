// internal/events/kafka.go
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// KafkaPublisher writes settlement events to a Kafka topic. Messages are
// keyed by user so per-user ordering is preserved across partitions.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// PublishSettlement marshals and writes one settlement event.
func (p *KafkaPublisher) PublishSettlement(ctx context.Context, userID string, awarded decimal.Decimal, settledAt time.Time) error {
	event := SettlementEvent{
		EventID:   uuid.NewString(),
		UserID:    userID,
		Awarded:   awarded,
		SettledAt: settledAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal settlement event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(userID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to write settlement event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
