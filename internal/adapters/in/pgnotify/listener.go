// Package pgnotify feeds row change notifications raised by the database
// triggers into a ports.ChangeHandler.
package pgnotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"morna/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// Listener holds one dedicated connection in LISTEN mode and reconnects after
// failures. Notifications raised while disconnected are lost, so OnConnect is
// the place to trigger a full resync.
type Listener struct {
	dsn       string
	channel   string
	handler   ports.ChangeHandler
	reconnect time.Duration
	logger    *slog.Logger

	// OnConnect runs after every successful LISTEN, the first one included.
	OnConnect func(ctx context.Context)
}

func NewListener(
	dsn, channel string,
	handler ports.ChangeHandler,
	reconnect time.Duration,
	logger *slog.Logger,
) *Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{
		dsn:       dsn,
		channel:   channel,
		handler:   handler,
		reconnect: reconnect,
		logger:    logger.With("component", "pgnotify", "channel", channel),
	}
}

// Run listens until ctx is done.
func (l *Listener) Run(ctx context.Context) error {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		l.logger.WarnContext(ctx, "change listener disconnected", "error", err, "retry_in", l.reconnect)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.reconnect):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}()

	if _, err = conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	l.logger.InfoContext(ctx, "listening for row changes")

	if l.OnConnect != nil {
		l.OnConnect(ctx)
	}

	for {
		notification, waitErr := conn.WaitForNotification(ctx)
		if waitErr != nil {
			return fmt.Errorf("wait for notification: %w", waitErr)
		}

		event, decodeErr := DecodeNotification(notification.Payload)
		if decodeErr != nil {
			l.logger.ErrorContext(ctx, "failed to decode notification",
				"payload", notification.Payload, "error", decodeErr)
			continue
		}

		l.handler.HandleChange(ctx, event)
	}
}

// DecodeNotification parses the trigger payload {table, type, id, at}.
func DecodeNotification(payload string) (ports.ChangeEvent, error) {
	var event ports.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return ports.ChangeEvent{}, err
	}

	switch event.Type {
	case ports.EventInsert, ports.EventUpdate, ports.EventDelete:
	default:
		return ports.ChangeEvent{}, fmt.Errorf("unknown event type %q", event.Type)
	}
	if event.Table == "" {
		return ports.ChangeEvent{}, errors.New("missing table")
	}

	return event, nil
}
