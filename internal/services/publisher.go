package services

import (
	"context"
	"encoding/json"

	"github.com/sbilibin2017/gw-fintech-demo/internal/logger"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// KafkaPublisher publishes domain records as JSON messages keyed by record ID.
type KafkaPublisher struct {
	writer KafkaWriter
	topic  string
}

// NewKafkaPublisher creates a publisher. A nil writer turns publishing into a no-op.
func NewKafkaPublisher(writer KafkaWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, topic: topic}
}

// Publish writes v to Kafka. Failures are logged and swallowed: events are a
// side channel and must not fail the request that produced them.
func (p *KafkaPublisher) Publish(ctx context.Context, key string, v any) {
	if p == nil || p.writer == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "key", key)
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		logger.Log.Errorw("Failed to marshal event for Kafka", "topic", p.topic, "key", key, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish event to Kafka", "topic", p.topic, "key", key, "error", err)
		return
	}
	logger.Log.Infow("Event published to Kafka", "topic", p.topic, "key", key)
}

// Close closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
