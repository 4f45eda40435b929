package storage

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"qrdine/internal/domain"
)

// KafkaPublisher writes lifecycle events to the session stream, keyed by
// session so per-session ordering is preserved.
type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.SessionID.String()),
		Value: payload,
	})
}
