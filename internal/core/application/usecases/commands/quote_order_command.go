package commands

import (
	"context"
	"errors"

	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/services"
	"morna/internal/pkg/guard"
)

var ErrQuoteOrderCommandIsNotConstructed = errors.New(
	"QuoteOrderCommand must be created via NewQuoteOrderCommand constructor",
)

// QuoteOrderCommand prices an order. Repeating it before payment replaces the quote.
type QuoteOrderCommand struct {
	orderID   kernel.ID
	unitPrice kernel.Money

	guard guard.ConstructorGuard
}

func NewQuoteOrderCommand(orderID kernel.ID, unitPrice kernel.Money) (QuoteOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), unitPrice.Validate()); err != nil {
		return QuoteOrderCommand{}, err
	}

	return QuoteOrderCommand{
		orderID:   orderID,
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c QuoteOrderCommand) Validate() error {
	return c.guard.Validate(ErrQuoteOrderCommandIsNotConstructed)
}

func (c QuoteOrderCommand) OrderID() kernel.ID { return c.orderID }
func (c QuoteOrderCommand) UnitPrice() kernel.Money { return c.unitPrice }

type QuoteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     services.TransitionEngine
}

func NewQuoteOrderCommandHandler(uowFactory OrderUoWFactory) QuoteOrderCommandHandler {
	return QuoteOrderCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewTransitionEngine(),
	}
}

func (h QuoteOrderCommandHandler) Handle(ctx context.Context, cmd QuoteOrderCommand) error {
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

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if _, err = h.engine.QuoteOrder(o, cmd.UnitPrice()); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
