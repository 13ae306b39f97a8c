package commands

import (
	"context"
	"errors"

	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/model/order"
	"morna/internal/core/domain/services"
	"morna/internal/pkg/guard"
)

var (
	ErrAdvanceOrderCommandIsNotConstructed = errors.New(
		"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
	)
	ErrSendOrderToChinaCommandIsNotConstructed = errors.New(
		"SendOrderToChinaCommand must be created via NewSendOrderToChinaCommand constructor",
	)
)

// AdvanceOrderCommand requests a single-step move of an order to next.
type AdvanceOrderCommand struct {
	orderID kernel.ID
	next    order.Status

	guard guard.ConstructorGuard
}

func NewAdvanceOrderCommand(orderID kernel.ID, next order.Status) (AdvanceOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), next.Validate()); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return AdvanceOrderCommand{
		orderID: orderID,
		next:    next,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

func (c AdvanceOrderCommand) OrderID() kernel.ID { return c.orderID }
func (c AdvanceOrderCommand) Next() order.Status { return c.next }

// SendOrderToChinaCommand hands a freshly created order to the China team.
// It is the Created → ReceivedByStaff advance, optionally recording who
// picked the order up.
type SendOrderToChinaCommand struct {
	orderID      kernel.ID
	chinaStaffID *kernel.ID

	guard guard.ConstructorGuard
}

func NewSendOrderToChinaCommand(orderID kernel.ID, chinaStaffID *kernel.ID) (SendOrderToChinaCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SendOrderToChinaCommand{}, err
	}
	if chinaStaffID != nil {
		if err := chinaStaffID.Validate(); err != nil {
			return SendOrderToChinaCommand{}, err
		}
	}

	return SendOrderToChinaCommand{
		orderID:      orderID,
		chinaStaffID: chinaStaffID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c SendOrderToChinaCommand) Validate() error {
	return c.guard.Validate(ErrSendOrderToChinaCommandIsNotConstructed)
}

func (c SendOrderToChinaCommand) OrderID() kernel.ID { return c.orderID }
func (c SendOrderToChinaCommand) ChinaStaffID() *kernel.ID { return c.chinaStaffID }

// AdvanceOrderCommandHandler serves both the generic advance and the send to
// China shortcut.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     services.TransitionEngine
}

func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewTransitionEngine(),
	}
}

func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.advance(ctx, cmd.OrderID(), cmd.Next(), nil)
}

func (h AdvanceOrderCommandHandler) HandleSendToChina(ctx context.Context, cmd SendOrderToChinaCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.advance(ctx, cmd.OrderID(), order.ReceivedByStaff, cmd.ChinaStaffID())
}

func (h AdvanceOrderCommandHandler) advance(
	ctx context.Context,
	orderID kernel.ID,
	next order.Status,
	chinaStaffID *kernel.ID,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if _, err = h.engine.AdvanceOrder(o, next); err != nil {
		return err
	}
	o.AssignStaff(chinaStaffID, nil)

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
