// Package kafka publishes committed row changes to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"morna/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ChangePublisher implements ports.ChangePublisher. Messages are keyed by
// table and id so that changes to one row stay in one partition.
type ChangePublisher struct {
	writer messageWriter
}

func NewChangePublisher(brokerAddr, topic string) *ChangePublisher {
	return &ChangePublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokerAddr),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		},
	}
}

// NewChangePublisherWithWriter is used by tests.
func NewChangePublisherWithWriter(writer messageWriter) *ChangePublisher {
	return &ChangePublisher{writer: writer}
}

func (p *ChangePublisher) Publish(ctx context.Context, events ...ports.ChangeEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		value, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal change event: %w", err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(string(event.Table) + ":" + event.ID),
			Value: value,
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write change events: %w", err)
	}
	return nil
}

func (p *ChangePublisher) Close() error {
	return p.writer.Close()
}
