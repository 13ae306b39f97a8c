package commands

import (
	"context"
	"errors"

	"morna/internal/core/domain/model/box"
	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/services"
	"morna/internal/pkg/guard"
)

var ErrBoxCommandIsNotConstructed = errors.New(
	"BoxCommand must be created via NewBoxCommand constructor",
)

// BoxCommand addresses a single box. It is shared by create, delete and receive.
type BoxCommand struct {
	boxID kernel.ID

	guard guard.ConstructorGuard
}

func NewBoxCommand(boxID kernel.ID) (BoxCommand, error) {
	if err := boxID.Validate(); err != nil {
		return BoxCommand{}, err
	}

	return BoxCommand{
		boxID: boxID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c BoxCommand) Validate() error {
	return c.guard.Validate(ErrBoxCommandIsNotConstructed)
}

func (c BoxCommand) BoxID() kernel.ID { return c.boxID }

// BoxLifecycleCommandHandler creates, deletes and receives boxes.
type BoxLifecycleCommandHandler struct {
	uowFactory UoWFactory
	engine     services.TransitionEngine
}

func NewBoxLifecycleCommandHandler(uowFactory UoWFactory) BoxLifecycleCommandHandler {
	return BoxLifecycleCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewTransitionEngine(),
	}
}

// HandleCreate stores an empty box in the New status.
func (h BoxLifecycleCommandHandler) HandleCreate(ctx context.Context, cmd BoxCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	b, err := box.NewBox(cmd.BoxID())
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

	if err = uow.BoxRepository().Add(ctx, b); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// HandleDelete hard-deletes a box that holds no orders and has not shipped.
func (h BoxLifecycleCommandHandler) HandleDelete(ctx context.Context, cmd BoxCommand) error {
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

	boxes := uow.BoxRepository()
	b, err := boxes.Get(ctx, cmd.BoxID())
	if err != nil {
		return err
	}

	count, err := uow.OrderRepository().CountByBox(ctx, b.ID())
	if err != nil {
		return err
	}

	if err = h.engine.DeleteBox(b, count); err != nil {
		return err
	}

	if err = boxes.Delete(ctx, b); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// HandleReceive confirms an arrived box at the Venezuela warehouse.
func (h BoxLifecycleCommandHandler) HandleReceive(ctx context.Context, cmd BoxCommand) error {
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

	b, err := uow.BoxRepository().Get(ctx, cmd.BoxID())
	if err != nil {
		return err
	}

	cascade, err := h.engine.ReceiveBox(b)
	if err != nil {
		return err
	}

	if err = writeCascade(ctx, uow, cascade); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
