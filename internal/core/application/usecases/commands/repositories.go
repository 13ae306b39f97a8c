// Package commands contains the mutations of the logistics pipeline. Every
// handler follows the same shape: validate the command, open a unit of work,
// load the ownership chain, let the transition engine compute the cascade,
// write it and commit. A handler that returns an error has committed nothing.
package commands

import (
	"context"
	"slices"
	"strings"

	"morna/internal/core/domain/model/box"
	"morna/internal/core/domain/model/container"
	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/services"
	"morna/internal/core/ports"
	"morna/internal/pkg/errs"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	BoxRepoFactory interface {
		BoxRepository() ports.BoxRepository
	}

	ContainerRepoFactory interface {
		ContainerRepository() ports.ContainerRepository
	}

	// OrderUoW manages transactions for operations that touch a single order.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions across orders, boxes and containers. Used by
	// every operation that crosses an ownership boundary.
	UoW interface {
		TxManager
		OrderRepoFactory
		BoxRepoFactory
		ContainerRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// writeCascade persists a cascade parents first.
func writeCascade(ctx context.Context, uow UoW, cascade services.Cascade) error {
	if len(cascade.Containers) > 0 {
		repo := uow.ContainerRepository()
		for _, c := range cascade.Containers {
			if err := repo.Update(ctx, c); err != nil {
				return err
			}
		}
	}

	if len(cascade.Boxes) > 0 {
		repo := uow.BoxRepository()
		for _, b := range cascade.Boxes {
			if err := repo.Update(ctx, b); err != nil {
				return err
			}
		}
	}

	if len(cascade.Orders) > 0 {
		repo := uow.OrderRepository()
		for _, o := range cascade.Orders {
			if err := repo.Update(ctx, o); err != nil {
				return err
			}
		}
	}

	return nil
}

// lockContainers locks the given containers in id order, each at most once,
// so that two mutations touching the same pair never wait on each other.
func lockContainers(
	ctx context.Context,
	repo ports.ContainerRepository,
	ids ...kernel.ID,
) (map[kernel.ID]*container.Container, error) {
	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b kernel.ID) int {
		return strings.Compare(a.String(), b.String())
	})
	sorted = slices.CompactFunc(sorted, kernel.ID.Equal)

	locked := make(map[kernel.ID]*container.Container, len(sorted))
	for _, id := range sorted {
		c, err := repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = c
	}

	return locked, nil
}

// lockBox locks box id after the container it is loaded into and any extra
// containers the caller needs. Rows are always locked container first, then
// box, then order, the order a container send uses. The box is peeked to find
// its container; a box that moved before its own lock was taken is a CONFLICT.
func lockBox(
	ctx context.Context,
	uow UoW,
	id kernel.ID,
	extra ...kernel.ID,
) (*box.Box, map[kernel.ID]*container.Container, error) {
	boxes := uow.BoxRepository()
	peeked, err := boxes.Peek(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	ids := slices.Clone(extra)
	if ref := peeked.ContainerID(); ref != nil {
		ids = append(ids, *ref)
	}

	containers, err := lockContainers(ctx, uow.ContainerRepository(), ids...)
	if err != nil {
		return nil, nil, err
	}

	b, err := boxes.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if !sameRef(peeked.ContainerID(), b.ContainerID()) {
		return nil, nil, errs.NewConflictError("box", id.String())
	}

	return b, containers, nil
}

// parentOf returns the locked container b is loaded into, or nil for a loose box.
func parentOf(b *box.Box, locked map[kernel.ID]*container.Container) *container.Container {
	ref := b.ContainerID()
	if ref == nil {
		return nil
	}
	return locked[*ref]
}

func sameRef(a, b *kernel.ID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
