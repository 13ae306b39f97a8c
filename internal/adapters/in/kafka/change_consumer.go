// Package kafka consumes row change events from Kafka and hands them to a
// ports.ChangeHandler.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"morna/internal/core/ports"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// ChangeConsumer feeds one process with every change event on the topic.
// It reconnects after reader failures and calls OnConnect each time a reader
// is opened, so callers can resync whatever may have been missed.
type ChangeConsumer struct {
	newReader func() MessageReader
	handler   ports.ChangeHandler
	reconnect time.Duration
	logger    *slog.Logger

	OnConnect func(ctx context.Context)
}

// NewChangeConsumer joins a consumer group of its own, named groupPrefix plus
// a random suffix, starting at the newest offset. Every replica therefore sees
// every partition. The group is kept across reconnects so no committed event
// is read twice or skipped.
func NewChangeConsumer(
	brokerAddr, topic, groupPrefix string,
	reconnect time.Duration,
	handler ports.ChangeHandler,
	logger *slog.Logger,
) *ChangeConsumer {
	groupID := groupPrefix + "-" + uuid.NewString()
	newReader := func() MessageReader {
		return kafka.NewReader(kafka.ReaderConfig{
			Brokers:     []string{brokerAddr},
			Topic:       topic,
			GroupID:     groupID,
			StartOffset: kafka.LastOffset,
			MaxBytes:    10e6,
		})
	}

	c := NewChangeConsumerWithReaders(newReader, reconnect, handler, logger)
	c.logger = c.logger.With("group_id", groupID)
	return c
}

// NewChangeConsumerWithReaders is used by tests. newReader is called once per
// connection attempt.
func NewChangeConsumerWithReaders(
	newReader func() MessageReader,
	reconnect time.Duration,
	handler ports.ChangeHandler,
	logger *slog.Logger,
) *ChangeConsumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChangeConsumer{
		newReader: newReader,
		handler:   handler,
		reconnect: reconnect,
		logger:    logger.With("component", "kafka_consumer"),
	}
}

// Run consumes until ctx is done, reopening the reader after every failure.
func (c *ChangeConsumer) Run(ctx context.Context) error {
	for {
		err := c.session(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.WarnContext(ctx, "change consumer disconnected", "error", err, "retry_in", c.reconnect)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.reconnect):
		}
	}
}

func (c *ChangeConsumer) session(ctx context.Context) error {
	reader := c.newReader()
	defer func() {
		if err := reader.Close(); err != nil {
			c.logger.WarnContext(ctx, "closing kafka reader", "error", err)
		}
	}()

	if c.OnConnect != nil {
		c.OnConnect(ctx)
	}

	return c.consume(ctx, reader)
}

// consume dispatches messages until ctx is done or the reader fails.
// Malformed messages are logged and skipped.
func (c *ChangeConsumer) consume(ctx context.Context, reader MessageReader) error {
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		var event ports.ChangeEvent
		if err = json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.ErrorContext(ctx, "failed to parse change event", "offset", msg.Offset, "error", err)
			continue
		}

		c.handler.HandleChange(ctx, event)
	}
}
