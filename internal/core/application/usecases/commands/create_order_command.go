package commands

import (
	"context"
	"errors"
	"strings"

	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/model/order"
	"morna/internal/pkg/errs"
	"morna/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a client purchase at intake.
//
// Example:
//
//	orderID := kernel.NewID()
//	cmd, err := NewCreateOrderCommand(orderID, "client-42", "Phone case", 30, nil, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.ID
	clientID         string
	productName      string
	quantity         int
	chinaStaffID     *kernel.ID
	venezuelaStaffID *kernel.ID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the intake data. Staff ids are optional.
func NewCreateOrderCommand(
	orderID kernel.ID,
	clientID string,
	productName string,
	quantity int,
	chinaStaffID *kernel.ID,
	venezuelaStaffID *kernel.ID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		chinaStaffID:     chinaStaffID,
		venezuelaStaffID: venezuelaStaffID,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setClientID(clientID),
		cmd.setProductName(productName),
		cmd.setQuantity(quantity),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.ID { return c.orderID }
func (c CreateOrderCommand) ClientID() string { return c.clientID }
func (c CreateOrderCommand) ProductName() string { return c.productName }
func (c CreateOrderCommand) Quantity() int { return c.quantity }
func (c CreateOrderCommand) ChinaStaffID() *kernel.ID { return c.chinaStaffID }
func (c CreateOrderCommand) VenezuelaStaffID() *kernel.ID { return c.venezuelaStaffID }

func (c *CreateOrderCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setClientID(clientID string) error {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return errs.NewValueIsRequiredError("clientID")
	}
	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setProductName(productName string) error {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	c.productName = productName
	return nil
}

func (c *CreateOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	c.quantity = quantity
	return nil
}

// CreateOrderCommandHandler stores a new order in the Created status.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.ClientID(), cmd.ProductName(), cmd.Quantity())
	if err != nil {
		return err
	}
	o.AssignStaff(cmd.ChinaStaffID(), cmd.VenezuelaStaffID())

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
