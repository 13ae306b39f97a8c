package ports

import (
	"context"

	"morna/internal/core/domain/model/container"
	"morna/internal/core/domain/model/kernel"
)

// ContainerRepository defines the persistence contract for containers.
type ContainerRepository interface {
	Add(ctx context.Context, aggregate *container.Container) error
	Update(ctx context.Context, aggregate *container.Container) error
	Delete(ctx context.Context, aggregate *container.Container) error
	Get(ctx context.Context, id kernel.ID) (*container.Container, error)
}
