package ports

import (
	"context"
	"time"
)

// Table names a stored entity set whose rows are announced on the change feed.
type Table string

const (
	TableOrders     Table = "orders"
	TableBoxes      Table = "boxes"
	TableContainers Table = "containers"
	TableClients    Table = "clients"
)

func (t Table) IsKnown() bool {
	switch t {
	case TableOrders, TableBoxes, TableContainers, TableClients:
		return true
	default:
		return false
	}
}

type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// ChangeEvent announces that a row was inserted, updated or deleted. It carries
// no row data; receivers refetch whatever they display.
type ChangeEvent struct {
	Table Table     `json:"table"`
	Type  EventType `json:"type"`
	ID    string    `json:"id"`
	At    time.Time `json:"at"`
}

// ChangePublisher pushes committed changes to the change feed.
type ChangePublisher interface {
	Publish(ctx context.Context, events ...ChangeEvent) error
}

// ChangeHandler receives change events from a change feed.
type ChangeHandler interface {
	HandleChange(ctx context.Context, event ChangeEvent)
}

// ChangeHandlerFunc adapts a function to ChangeHandler.
type ChangeHandlerFunc func(ctx context.Context, event ChangeEvent)

func (f ChangeHandlerFunc) HandleChange(ctx context.Context, event ChangeEvent) {
	f(ctx, event)
}

// OnlyTables forwards the events of the listed tables to h and drops the rest.
func OnlyTables(h ChangeHandler, tables ...Table) ChangeHandler {
	return ChangeHandlerFunc(func(ctx context.Context, event ChangeEvent) {
		for _, t := range tables {
			if event.Table == t {
				h.HandleChange(ctx, event)
				return
			}
		}
	})
}
