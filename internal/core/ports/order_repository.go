// Package ports defines the contracts between the logistics core and the
// infrastructure that stores entities and carries change notifications.
package ports

import (
	"context"

	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Reads performed inside a unit of work lock the returned rows until the
// transaction ends, so the chain order → box → container read by a mutation
// cannot change underneath it. Mutations lock the chain top down: container,
// then box, then order.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists an order read earlier in the same unit of work.
	// Returns a CONFLICT rejection when the stored version moved on.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// Peek reads an order without locking it.
	Peek(ctx context.Context, id kernel.ID) (*order.Order, error)

	// ListByBox returns every order referencing boxID, oldest first.
	ListByBox(ctx context.Context, boxID kernel.ID) ([]*order.Order, error)

	// CountByBox returns the number of orders referencing boxID.
	CountByBox(ctx context.Context, boxID kernel.ID) (int, error)
}
