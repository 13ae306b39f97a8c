package realtime

import (
	"context"
	"time"
)

type MessageType string

const (
	MessageRefresh   MessageType = "refresh"
	MessageDegraded  MessageType = "degraded"
	MessageRecovered MessageType = "recovered"
)

// Message is pushed to a dashboard. A refresh carries the complete new content
// of one slot.
type Message struct {
	Type  MessageType `json:"type"`
	Slot  Slot        `json:"slot,omitempty"`
	Data  any         `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
	At    time.Time   `json:"at"`
}

// Sink delivers messages to one dashboard connection.
type Sink interface {
	Send(ctx context.Context, msg Message) error
}

// Observer is told about every slot refetch.
type Observer interface {
	ObserveRefetch(slot string, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveRefetch(string, error) {}
