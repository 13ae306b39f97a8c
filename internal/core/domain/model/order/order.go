package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"morna/internal/core/domain/model/kernel"
	"morna/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a single client purchase travelling
// China → Venezuela.
//
// Invariants:
//   - quantity is positive
//   - boxID is set while the status is PackedInBox or PackedInContainer
//   - totalQuote is set from Quoted onwards
//   - status only moves forward, except Unpack and LeaveContainer which return to ReadyToPack
type Order struct {
	id               kernel.ID
	clientID         string
	productName      string
	quantity         int
	totalQuote       *kernel.Money
	status           Status
	boxID            *kernel.ID
	chinaStaffID     *kernel.ID
	venezuelaStaffID *kernel.ID
	createdAt        time.Time
	version          int

	isConstructed bool
}

// NewOrder registers an order at intake, in the Created status.
func NewOrder(id kernel.ID, clientID, productName string, quantity int) (*Order, error) {
	o := &Order{
		status:        Created,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setProductName(productName),
		o.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreParams carries a persisted order back into the domain.
type RestoreParams struct {
	ID               kernel.ID
	ClientID         string
	ProductName      string
	Quantity         int
	TotalQuote       *kernel.Money
	Status           Status
	BoxID            *kernel.ID
	ChinaStaffID     *kernel.ID
	VenezuelaStaffID *kernel.ID
	CreatedAt        time.Time
	Version          int
}

// RestoreOrder rebuilds an order read from the store. Rows written by other
// tools may carry a box reference outside the boxed states, so only field
// level validation is applied.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		totalQuote:       p.TotalQuote,
		boxID:            p.BoxID,
		chinaStaffID:     p.ChinaStaffID,
		venezuelaStaffID: p.VenezuelaStaffID,
		createdAt:        p.CreatedAt,
		version:          p.Version,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setClientID(p.ClientID),
		o.setProductName(p.ProductName),
		o.setQuantity(p.Quantity),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = p.Status

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.Equal(other.id)
}

func (o *Order) ID() kernel.ID { return o.id }
func (o *Order) ClientID() string { return o.clientID }
func (o *Order) ProductName() string { return o.productName }
func (o *Order) Quantity() int { return o.quantity }
func (o *Order) TotalQuote() *kernel.Money { return o.totalQuote }
func (o *Order) Status() Status { return o.status }
func (o *Order) BoxID() *kernel.ID { return o.boxID }
func (o *Order) ChinaStaffID() *kernel.ID { return o.chinaStaffID }
func (o *Order) VenezuelaStaffID() *kernel.ID { return o.venezuelaStaffID }
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// Version is the optimistic concurrency stamp read from the store.
func (o *Order) Version() int { return o.version }

// IsInBox reports whether the order references boxID.
func (o *Order) IsInBox(boxID kernel.ID) bool {
	return o.boxID != nil && o.boxID.Equal(boxID)
}

// AssignStaff records who handles the order on each side. Nil keeps the current value.
func (o *Order) AssignStaff(chinaStaffID, venezuelaStaffID *kernel.ID) {
	if chinaStaffID != nil {
		o.chinaStaffID = chinaStaffID
	}
	if venezuelaStaffID != nil {
		o.venezuelaStaffID = venezuelaStaffID
	}
}

// Quote sets totalQuote = unitPrice × quantity and moves the order to Quoted.
func (o *Order) Quote(unitPrice kernel.Money) error {
	next, err := o.status.Quote()
	if err != nil {
		return o.reject(err)
	}

	total, err := unitPrice.Multiply(o.quantity)
	if err != nil {
		return err
	}

	o.totalQuote = &total
	o.status = next
	return nil
}

// Advance performs a staff-driven single-step move.
func (o *Order) Advance(next Status) error {
	newStatus, err := o.status.Advance(next)
	if err != nil {
		return o.reject(err)
	}

	o.status = newStatus
	return nil
}

// ValidatePack checks Pack without mutating the order.
func (o *Order) ValidatePack() error {
	_, err := o.status.Pack(false)
	return o.reject(err)
}

// Pack places the order into boxID. boxInContainer reports whether that box is
// already loaded into a container.
func (o *Order) Pack(boxID kernel.ID, boxInContainer bool) error {
	if err := boxID.Validate(); err != nil {
		return err
	}

	next, err := o.status.Pack(boxInContainer)
	if err != nil {
		return o.reject(err)
	}

	o.boxID = &boxID
	o.status = next
	return nil
}

// ValidateUnpack checks Unpack without mutating the order.
func (o *Order) ValidateUnpack() error {
	if o.boxID == nil {
		return o.reject(errs.NewInvalidTransitionError("order", "", "order is not in a box"))
	}
	_, err := o.status.Unpack()
	return o.reject(err)
}

// Unpack removes the order from its box and returns it to ReadyToPack.
func (o *Order) Unpack() error {
	if err := o.ValidateUnpack(); err != nil {
		return err
	}

	o.boxID = nil
	o.status = ReadyToPack
	return nil
}

// ValidateContainerize checks Containerize without mutating the order.
func (o *Order) ValidateContainerize() error {
	_, err := o.status.Containerize()
	return o.reject(err)
}

// Containerize follows the order's box into a container.
func (o *Order) Containerize() error {
	next, err := o.status.Containerize()
	if err != nil {
		return o.reject(err)
	}

	o.status = next
	return nil
}

// ValidateLeaveContainer checks LeaveContainer without mutating the order.
func (o *Order) ValidateLeaveContainer() error {
	_, err := o.status.Unpack()
	return o.reject(err)
}

// LeaveContainer follows the order's box out of its container. The box
// reference is kept and the order returns to ReadyToPack.
func (o *Order) LeaveContainer() error {
	next, err := o.status.Unpack()
	if err != nil {
		return o.reject(err)
	}

	o.status = next
	return nil
}

// ValidateShip checks Ship without mutating the order.
func (o *Order) ValidateShip() error {
	_, err := o.status.Ship()
	return o.reject(err)
}

// Ship follows the order's container out of China.
func (o *Order) Ship() error {
	next, err := o.status.Ship()
	if err != nil {
		return o.reject(err)
	}

	o.status = next
	return nil
}

// reject attributes a status rejection to this order.
func (o *Order) reject(err error) error {
	var rejection *errs.RejectionError
	if errors.As(err, &rejection) {
		rejection.Entity = "order"
		rejection.ID = o.id.String()
	}
	return err
}

func (o *Order) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClientID(clientID string) error {
	if strings.TrimSpace(clientID) == "" {
		return errs.NewValueIsRequiredError("clientID")
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setProductName(productName string) error {
	if strings.TrimSpace(productName) == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	o.productName = productName
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	o.quantity = quantity
	return nil
}
