package kafka

import (
	"context"

	"unibus/internal/platform/kafka/producer"
	audit "unibus/pkg/platform/audit"
)

// Producer is the subset of producer.Producer the sink needs.
type Producer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// Store streams audit entries to a Kafka topic, keyed by entry ID so
// redeliveries can be deduplicated downstream.
type Store struct {
	producer Producer
	topic    string
}

func New(p Producer, topic string) *Store {
	if p == nil {
		panic("kafka producer is required")
	}
	return &Store{producer: p, topic: topic}
}

func (s *Store) Append(ctx context.Context, entry audit.Entry) error {
	value, err := audit.Encode(entry)
	if err != nil {
		return err
	}
	headers := map[string]string{"category": string(entry.Category)}
	if entry.RequestID != "" {
		headers["request_id"] = entry.RequestID
	}
	return s.producer.Produce(ctx, &producer.Message{
		Topic:   s.topic,
		Key:     []byte(entry.ID.String()),
		Value:   value,
		Headers: headers,
	})
}
