package commands

import (
	"context"
	"errors"

	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/services"
	"morna/internal/pkg/errs"
	"morna/internal/pkg/guard"
)

var (
	ErrAssignOrderToBoxCommandIsNotConstructed = errors.New(
		"AssignOrderToBoxCommand must be created via NewAssignOrderToBoxCommand constructor",
	)
	ErrUnassignOrderFromBoxCommandIsNotConstructed = errors.New(
		"UnassignOrderFromBoxCommand must be created via NewUnassignOrderFromBoxCommand constructor",
	)
)

// AssignOrderToBoxCommand packs a ready order into a box.
type AssignOrderToBoxCommand struct {
	orderID kernel.ID
	boxID   kernel.ID

	guard guard.ConstructorGuard
}

func NewAssignOrderToBoxCommand(orderID, boxID kernel.ID) (AssignOrderToBoxCommand, error) {
	if err := errors.Join(orderID.Validate(), boxID.Validate()); err != nil {
		return AssignOrderToBoxCommand{}, err
	}

	return AssignOrderToBoxCommand{
		orderID: orderID,
		boxID:   boxID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AssignOrderToBoxCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderToBoxCommandIsNotConstructed)
}

func (c AssignOrderToBoxCommand) OrderID() kernel.ID { return c.orderID }
func (c AssignOrderToBoxCommand) BoxID() kernel.ID { return c.boxID }

// UnassignOrderFromBoxCommand takes an order out of whatever box holds it.
type UnassignOrderFromBoxCommand struct {
	orderID kernel.ID

	guard guard.ConstructorGuard
}

func NewUnassignOrderFromBoxCommand(orderID kernel.ID) (UnassignOrderFromBoxCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UnassignOrderFromBoxCommand{}, err
	}

	return UnassignOrderFromBoxCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UnassignOrderFromBoxCommand) Validate() error {
	return c.guard.Validate(ErrUnassignOrderFromBoxCommandIsNotConstructed)
}

func (c UnassignOrderFromBoxCommand) OrderID() kernel.ID { return c.orderID }

// PackOrderCommandHandler moves orders in and out of boxes. It locks the box's
// container, then the box, then the order, the same order a container send
// takes, so the two wait on each other instead of deadlocking.
type PackOrderCommandHandler struct {
	uowFactory UoWFactory
	engine     services.TransitionEngine
}

func NewPackOrderCommandHandler(uowFactory UoWFactory) PackOrderCommandHandler {
	return PackOrderCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewTransitionEngine(),
	}
}

func (h PackOrderCommandHandler) HandleAssign(ctx context.Context, cmd AssignOrderToBoxCommand) error {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	cascade, err := h.engine.AssignOrderToBox(o, b, parentOf(b, locked))
	if err != nil {
		return err
	}

	if err = writeCascade(ctx, uow, cascade); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h PackOrderCommandHandler) HandleUnassign(ctx context.Context, cmd UnassignOrderFromBoxCommand) error {
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

	orders := uow.OrderRepository()
	peeked, err := orders.Peek(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	boxID := peeked.BoxID()
	if boxID == nil {
		return errs.NewInvalidTransitionError("order", peeked.ID().String(), "order is not in a box")
	}

	b, locked, err := lockBox(ctx, uow, *boxID)
	if err != nil {
		return err
	}

	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !sameRef(boxID, o.BoxID()) {
		return errs.NewConflictError("order", o.ID().String())
	}

	cascade, err := h.engine.UnassignOrderFromBox(o, b, parentOf(b, locked))
	if err != nil {
		return err
	}

	if err = writeCascade(ctx, uow, cascade); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
