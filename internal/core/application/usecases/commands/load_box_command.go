package commands

import (
	"context"
	"errors"

	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/services"
	"morna/internal/pkg/guard"
)

var (
	ErrAssignBoxToContainerCommandIsNotConstructed = errors.New(
		"AssignBoxToContainerCommand must be created via NewAssignBoxToContainerCommand constructor",
	)
	ErrUnassignBoxFromContainerCommandIsNotConstructed = errors.New(
		"UnassignBoxFromContainerCommand must be created via NewUnassignBoxFromContainerCommand constructor",
	)
)

// AssignBoxToContainerCommand loads a box, and every order in it, into a container.
type AssignBoxToContainerCommand struct {
	boxID       kernel.ID
	containerID kernel.ID

	guard guard.ConstructorGuard
}

func NewAssignBoxToContainerCommand(boxID, containerID kernel.ID) (AssignBoxToContainerCommand, error) {
	if err := errors.Join(boxID.Validate(), containerID.Validate()); err != nil {
		return AssignBoxToContainerCommand{}, err
	}

	return AssignBoxToContainerCommand{
		boxID:       boxID,
		containerID: containerID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AssignBoxToContainerCommand) Validate() error {
	return c.guard.Validate(ErrAssignBoxToContainerCommandIsNotConstructed)
}

func (c AssignBoxToContainerCommand) BoxID() kernel.ID { return c.boxID }
func (c AssignBoxToContainerCommand) ContainerID() kernel.ID { return c.containerID }

type UnassignBoxFromContainerCommand struct {
	boxID kernel.ID

	guard guard.ConstructorGuard
}

func NewUnassignBoxFromContainerCommand(boxID kernel.ID) (UnassignBoxFromContainerCommand, error) {
	if err := boxID.Validate(); err != nil {
		return UnassignBoxFromContainerCommand{}, err
	}

	return UnassignBoxFromContainerCommand{
		boxID: boxID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c UnassignBoxFromContainerCommand) Validate() error {
	return c.guard.Validate(ErrUnassignBoxFromContainerCommandIsNotConstructed)
}

func (c UnassignBoxFromContainerCommand) BoxID() kernel.ID { return c.boxID }

// LoadBoxCommandHandler moves boxes in and out of containers. Rows are locked
// container first, then box, then orders.
type LoadBoxCommandHandler struct {
	uowFactory UoWFactory
	engine     services.TransitionEngine
}

func NewLoadBoxCommandHandler(uowFactory UoWFactory) LoadBoxCommandHandler {
	return LoadBoxCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewTransitionEngine(),
	}
}

func (h LoadBoxCommandHandler) HandleAssign(ctx context.Context, cmd AssignBoxToContainerCommand) error {
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

	b, locked, err := lockBox(ctx, uow, cmd.BoxID(), cmd.ContainerID())
	if err != nil {
		return err
	}

	target := locked[cmd.ContainerID()]
	current := parentOf(b, locked)

	orders, err := uow.OrderRepository().ListByBox(ctx, b.ID())
	if err != nil {
		return err
	}

	cascade, err := h.engine.AssignBoxToContainer(b, current, target, orders)
	if err != nil {
		return err
	}

	if err = writeCascade(ctx, uow, cascade); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h LoadBoxCommandHandler) HandleUnassign(ctx context.Context, cmd UnassignBoxFromContainerCommand) error {
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

	b, locked, err := lockBox(ctx, uow, cmd.BoxID())
	if err != nil {
		return err
	}

	orders, err := uow.OrderRepository().ListByBox(ctx, b.ID())
	if err != nil {
		return err
	}

	cascade, err := h.engine.UnassignBoxFromContainer(b, parentOf(b, locked), orders)
	if err != nil {
		return err
	}

	if err = writeCascade(ctx, uow, cascade); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
