package commands

import (
	"context"
	"errors"

	"morna/internal/core/domain/model/container"
	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/services"
	"morna/internal/pkg/guard"
)

var ErrContainerCommandIsNotConstructed = errors.New(
	"ContainerCommand must be created via NewContainerCommand constructor",
)

// ContainerCommand addresses a single container. It is shared by create,
// delete and receive.
type ContainerCommand struct {
	containerID kernel.ID

	guard guard.ConstructorGuard
}

func NewContainerCommand(containerID kernel.ID) (ContainerCommand, error) {
	if err := containerID.Validate(); err != nil {
		return ContainerCommand{}, err
	}

	return ContainerCommand{
		containerID: containerID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ContainerCommand) Validate() error {
	return c.guard.Validate(ErrContainerCommandIsNotConstructed)
}

func (c ContainerCommand) ContainerID() kernel.ID { return c.containerID }

type ContainerLifecycleCommandHandler struct {
	uowFactory UoWFactory
	engine     services.TransitionEngine
}

func NewContainerLifecycleCommandHandler(uowFactory UoWFactory) ContainerLifecycleCommandHandler {
	return ContainerLifecycleCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewTransitionEngine(),
	}
}

func (h ContainerLifecycleCommandHandler) HandleCreate(ctx context.Context, cmd ContainerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	c, err := container.NewContainer(cmd.ContainerID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ContainerRepository().Add(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// HandleDelete hard-deletes a container that holds no boxes and was not sent.
func (h ContainerLifecycleCommandHandler) HandleDelete(ctx context.Context, cmd ContainerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	containers := uow.ContainerRepository()
	c, err := containers.Get(ctx, cmd.ContainerID())
	if err != nil {
		return err
	}

	count, err := uow.BoxRepository().CountByContainer(ctx, c.ID())
	if err != nil {
		return err
	}

	if err = h.engine.DeleteContainer(c, count); err != nil {
		return err
	}

	if err = containers.Delete(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// HandleReceive confirms a shipped container in Venezuela and makes its boxes
// available for receipt.
func (h ContainerLifecycleCommandHandler) HandleReceive(ctx context.Context, cmd ContainerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.ContainerRepository().Get(ctx, cmd.ContainerID())
	if err != nil {
		return err
	}

	boxes, err := uow.BoxRepository().ListByContainer(ctx, c.ID())
	if err != nil {
		return err
	}

	cascade, err := h.engine.ReceiveContainer(c, boxes)
	if err != nil {
		return err
	}

	if err = writeCascade(ctx, uow, cascade); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
