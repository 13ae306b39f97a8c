package queries

import (
	"errors"
	"time"

	"morna/internal/core/domain/model/kernel"
	"morna/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
	ErrListOrdersByBoxQueryIsNotConstructed = errors.New(
		"ListOrdersByBoxQuery must be created via NewListOrdersByBoxQuery constructor",
	)
)

// ListOrdersQuery lists the orders a dashboard shows on its orders tab.
//
// China staff see orders whose china_staff_id is staffID, Venezuela staff see
// orders whose venezuela_staff_id is staffID. Admins see every order, or only
// those where staffID is either staff member when it is given. A nil staffID
// for a staff role lists every order.
type ListOrdersQuery struct {
	role    Role
	staffID *kernel.ID

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(role Role, staffID *kernel.ID) (ListOrdersQuery, error) {
	if err := role.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if staffID != nil {
		if err := staffID.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	return ListOrdersQuery{
		role:    role,
		staffID: staffID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Role() Role { return q.role }
func (q ListOrdersQuery) StaffID() *kernel.ID { return q.staffID }

// ListOrdersByBoxQuery lists the contents of one box for the box detail view.
type ListOrdersByBoxQuery struct {
	boxID kernel.ID

	guard guard.ConstructorGuard
}

func NewListOrdersByBoxQuery(boxID kernel.ID) (ListOrdersByBoxQuery, error) {
	if err := boxID.Validate(); err != nil {
		return ListOrdersByBoxQuery{}, err
	}

	return ListOrdersByBoxQuery{
		boxID: boxID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersByBoxQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersByBoxQueryIsNotConstructed)
}

func (q ListOrdersByBoxQuery) BoxID() kernel.ID { return q.boxID }

// OrderView is one row of an orders list. ClientName is empty when the client
// row is missing.
type OrderView struct {
	ID               kernel.ID        `json:"id"`
	ClientID         string           `json:"clientId"`
	ClientName       string           `json:"clientName"`
	ProductName      string           `json:"productName"`
	Quantity         int              `json:"quantity"`
	TotalQuote       *decimal.Decimal `json:"totalQuote,omitempty"`
	State            int              `json:"state"`
	StateName        string           `json:"stateName"`
	BoxID            *kernel.ID       `json:"boxId,omitempty"`
	ChinaStaffID     *kernel.ID       `json:"chinaStaffId,omitempty"`
	VenezuelaStaffID *kernel.ID       `json:"venezuelaStaffId,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
}
