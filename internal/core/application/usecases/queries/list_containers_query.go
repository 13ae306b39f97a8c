package queries

import (
	"errors"
	"time"

	"morna/internal/core/domain/model/kernel"
	"morna/internal/pkg/guard"
)

var ErrListContainersQueryIsNotConstructed = errors.New(
	"ListContainersQuery must be created via NewListContainersQuery constructor",
)

// ListContainersQuery lists containers whose id contains filter.
type ListContainersQuery struct {
	filter string

	guard guard.ConstructorGuard
}

func NewListContainersQuery(filter string) ListContainersQuery {
	return ListContainersQuery{filter: filter, guard: guard.NewConstructorGuard()}
}

func (q ListContainersQuery) Validate() error {
	return q.guard.Validate(ErrListContainersQueryIsNotConstructed)
}

func (q ListContainersQuery) Filter() string { return q.filter }

// ContainerView carries tracking only once the container has been sent.
type ContainerView struct {
	ID              kernel.ID  `json:"id"`
	State           int        `json:"state"`
	StateName       string     `json:"stateName"`
	TrackingNumber  *string    `json:"trackingNumber,omitempty"`
	TrackingCompany *string    `json:"trackingCompany,omitempty"`
	ArriveDate      *time.Time `json:"arriveDate,omitempty"`
	CreationDate    time.Time  `json:"creationDate"`
}
