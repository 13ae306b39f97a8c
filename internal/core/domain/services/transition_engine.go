package services

import (
	"errors"
	"fmt"

	"morna/internal/core/domain/model/box"
	"morna/internal/core/domain/model/container"
	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/model/order"
	"morna/internal/pkg/errs"
)

// Cascade lists the aggregates an operation changed, in the order they
// should be written.
type Cascade struct {
	Orders     []*order.Order
	Boxes      []*box.Box
	Containers []*container.Container
}

func (c Cascade) IsEmpty() bool {
	return len(c.Orders) == 0 && len(c.Boxes) == 0 && len(c.Containers) == 0
}

// TransitionEngine applies logistics operations to loaded aggregates.
// Every method validates the whole cascade before mutating anything, so a
// returned error means no aggregate was changed.
type TransitionEngine struct {
	guard ConsistencyGuard
}

func NewTransitionEngine() TransitionEngine {
	return TransitionEngine{guard: NewConsistencyGuard()}
}

// QuoteOrder prices an order at unitPrice per unit.
func (e TransitionEngine) QuoteOrder(o *order.Order, unitPrice kernel.Money) (Cascade, error) {
	if err := o.Validate(); err != nil {
		return Cascade{}, err
	}
	if err := o.Quote(unitPrice); err != nil {
		return Cascade{}, err
	}
	return Cascade{Orders: []*order.Order{o}}, nil
}

// AdvanceOrder performs a staff-driven single-step move.
func (e TransitionEngine) AdvanceOrder(o *order.Order, next order.Status) (Cascade, error) {
	if err := o.Validate(); err != nil {
		return Cascade{}, err
	}
	if err := o.Advance(next); err != nil {
		return Cascade{}, err
	}
	return Cascade{Orders: []*order.Order{o}}, nil
}

// AssignOrderToBox packs o into b. parent is the container b is loaded into, or nil.
func (e TransitionEngine) AssignOrderToBox(
	o *order.Order,
	b *box.Box,
	parent *container.Container,
) (Cascade, error) {
	if err := o.Validate(); err != nil {
		return Cascade{}, err
	}
	if err := e.guard.CheckBoxChain(b, parent); err != nil {
		return Cascade{}, err
	}
	if err := o.Pack(b.ID(), b.Status() == box.Loaded); err != nil {
		return Cascade{}, err
	}
	return Cascade{Orders: []*order.Order{o}}, nil
}

// UnassignOrderFromBox takes o out of b, its current box.
func (e TransitionEngine) UnassignOrderFromBox(
	o *order.Order,
	b *box.Box,
	parent *container.Container,
) (Cascade, error) {
	if err := o.Validate(); err != nil {
		return Cascade{}, err
	}
	if err := e.guard.CheckBoxChain(b, parent); err != nil {
		return Cascade{}, err
	}
	if !o.IsInBox(b.ID()) {
		return Cascade{}, errs.NewInvalidTransitionError("order", o.ID().String(),
			fmt.Sprintf("order is not in box %s", b.ID()))
	}
	if err := o.Unpack(); err != nil {
		return Cascade{}, err
	}
	return Cascade{Orders: []*order.Order{o}}, nil
}

// AssignBoxToContainer loads b, holding orders, into target. current is the
// container b is loaded into today, or nil.
func (e TransitionEngine) AssignBoxToContainer(
	b *box.Box,
	current *container.Container,
	target *container.Container,
	orders []*order.Order,
) (Cascade, error) {
	if err := e.guard.CheckBoxChain(b, current); err != nil {
		return Cascade{}, err
	}
	if err := e.guard.CheckContainer(target); err != nil {
		return Cascade{}, err
	}
	if err := e.guard.CheckBoxNotEmpty(b, len(orders)); err != nil {
		return Cascade{}, err
	}
	if err := e.validateOrders(b, orders, (*order.Order).ValidateContainerize); err != nil {
		return Cascade{}, err
	}

	if err := b.Load(target.ID()); err != nil {
		return Cascade{}, err
	}

	cascade := Cascade{Boxes: []*box.Box{b}}
	for _, o := range orders {
		before := o.Status()
		if err := o.Containerize(); err != nil {
			return Cascade{}, err
		}
		if o.Status() != before {
			cascade.Orders = append(cascade.Orders, o)
		}
	}

	changed, err := target.StartLoading()
	if err != nil {
		return Cascade{}, err
	}
	if changed {
		cascade.Containers = append(cascade.Containers, target)
	}

	return cascade, nil
}

// UnassignBoxFromContainer takes b out of parent. The orders stay in the box
// and return to ReadyToPack.
func (e TransitionEngine) UnassignBoxFromContainer(
	b *box.Box,
	parent *container.Container,
	orders []*order.Order,
) (Cascade, error) {
	if err := e.guard.CheckBoxChain(b, parent); err != nil {
		return Cascade{}, err
	}
	if err := b.ValidateUnload(); err != nil {
		return Cascade{}, err
	}
	if err := e.validateOrders(b, orders, (*order.Order).ValidateLeaveContainer); err != nil {
		return Cascade{}, err
	}

	if err := b.Unload(); err != nil {
		return Cascade{}, err
	}

	cascade := Cascade{Boxes: []*box.Box{b}}
	for _, o := range orders {
		before := o.Status()
		if err := o.LeaveContainer(); err != nil {
			return Cascade{}, err
		}
		if o.Status() != before {
			cascade.Orders = append(cascade.Orders, o)
		}
	}

	return cascade, nil
}

// SendContainer seals c and ships every box in it and every order in those boxes.
// ordersByBox is keyed by box id.
func (e TransitionEngine) SendContainer(
	c *container.Container,
	boxes []*box.Box,
	ordersByBox map[kernel.ID][]*order.Order,
	tracking container.Tracking,
) (Cascade, error) {
	if err := c.Validate(); err != nil {
		return Cascade{}, err
	}
	if err := tracking.Validate(); err != nil {
		return Cascade{}, err
	}
	if err := c.ValidateSend(); err != nil {
		return Cascade{}, err
	}
	if len(boxes) == 0 {
		return Cascade{}, errs.NewInvalidTransitionError("container", c.ID().String(), "container holds no boxes")
	}

	var problems []error
	for _, b := range boxes {
		if err := b.Validate(); err != nil {
			return Cascade{}, err
		}
		problems = append(problems, b.ValidateShip())
		problems = append(problems, e.validateOrders(b, ordersByBox[b.ID()], (*order.Order).ValidateShip))
	}
	if err := errors.Join(problems...); err != nil {
		return Cascade{}, err
	}

	if err := c.Send(tracking); err != nil {
		return Cascade{}, err
	}

	cascade := Cascade{Containers: []*container.Container{c}}
	for _, b := range boxes {
		if err := b.Ship(); err != nil {
			return Cascade{}, err
		}
		cascade.Boxes = append(cascade.Boxes, b)

		for _, o := range ordersByBox[b.ID()] {
			if err := o.Ship(); err != nil {
				return Cascade{}, err
			}
			cascade.Orders = append(cascade.Orders, o)
		}
	}

	return cascade, nil
}

// ReceiveContainer confirms c in Venezuela. Its shipped boxes become
// available for receipt.
func (e TransitionEngine) ReceiveContainer(c *container.Container, boxes []*box.Box) (Cascade, error) {
	if err := c.Validate(); err != nil {
		return Cascade{}, err
	}
	if err := c.Receive(); err != nil {
		return Cascade{}, err
	}

	cascade := Cascade{Containers: []*container.Container{c}}
	for _, b := range boxes {
		if b.Status() != box.Shipped && b.Status() != box.InTransit {
			continue
		}
		if err := b.Arrive(); err != nil {
			return Cascade{}, err
		}
		cascade.Boxes = append(cascade.Boxes, b)
	}

	return cascade, nil
}

// ReceiveBox confirms b at the Venezuela warehouse.
func (e TransitionEngine) ReceiveBox(b *box.Box) (Cascade, error) {
	if err := b.Validate(); err != nil {
		return Cascade{}, err
	}
	if err := b.Receive(); err != nil {
		return Cascade{}, err
	}
	return Cascade{Boxes: []*box.Box{b}}, nil
}

// DeleteBox checks that b may be removed. orderCount is the number of orders referencing it.
func (e TransitionEngine) DeleteBox(b *box.Box, orderCount int) error {
	return e.guard.CheckBoxDeletable(b, orderCount)
}

// DeleteContainer checks that c may be removed. boxCount is the number of boxes referencing it.
func (e TransitionEngine) DeleteContainer(c *container.Container, boxCount int) error {
	return e.guard.CheckContainerDeletable(c, boxCount)
}

func (e TransitionEngine) validateOrders(b *box.Box, orders []*order.Order, check func(*order.Order) error) error {
	problems := make([]error, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
		if !o.IsInBox(b.ID()) {
			return errs.NewInvalidTransitionError("order", o.ID().String(),
				fmt.Sprintf("order is not in box %s", b.ID()))
		}
		problems = append(problems, check(o))
	}
	return errors.Join(problems...)
}
