package ports

import (
	"context"

	"morna/internal/core/domain/model/box"
	"morna/internal/core/domain/model/kernel"
)

// BoxRepository defines the persistence contract for boxes. Locking follows
// OrderRepository.
type BoxRepository interface {
	Add(ctx context.Context, aggregate *box.Box) error
	Update(ctx context.Context, aggregate *box.Box) error
	Delete(ctx context.Context, aggregate *box.Box) error
	Get(ctx context.Context, id kernel.ID) (*box.Box, error)

	// Peek reads a box without locking it. The result only tells a mutation
	// which container to lock before it locks the box with Get.
	Peek(ctx context.Context, id kernel.ID) (*box.Box, error)

	// ListByContainer returns every box referencing containerID, oldest first.
	ListByContainer(ctx context.Context, containerID kernel.ID) ([]*box.Box, error)

	// CountByContainer returns the number of boxes referencing containerID.
	CountByContainer(ctx context.Context, containerID kernel.ID) (int, error)
}
