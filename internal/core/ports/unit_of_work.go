package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a single mutation. Either every
// row of a cascade is written or none is.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and then announces the rows it
	// changed on the change feed.
	Commit(ctx context.Context) error

	// Rollback discards the current transaction.
	// Returns error if no active transaction exists.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	BoxRepository() BoxRepository
	ContainerRepository() ContainerRepository
}
