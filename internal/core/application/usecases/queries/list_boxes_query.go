package queries

import (
	"errors"
	"time"

	"morna/internal/core/domain/model/kernel"
	"morna/internal/pkg/guard"
)

var (
	ErrListBoxesQueryIsNotConstructed = errors.New(
		"ListBoxesQuery must be created via NewListBoxesQuery constructor",
	)
	ErrListBoxesByContainerQueryIsNotConstructed = errors.New(
		"ListBoxesByContainerQuery must be created via NewListBoxesByContainerQuery constructor",
	)
)

// ListBoxesQuery lists boxes whose id contains filter. An empty filter lists
// every box.
type ListBoxesQuery struct {
	filter string

	guard guard.ConstructorGuard
}

func NewListBoxesQuery(filter string) ListBoxesQuery {
	return ListBoxesQuery{filter: filter, guard: guard.NewConstructorGuard()}
}

func (q ListBoxesQuery) Validate() error {
	return q.guard.Validate(ErrListBoxesQueryIsNotConstructed)
}

func (q ListBoxesQuery) Filter() string { return q.filter }

type ListBoxesByContainerQuery struct {
	containerID kernel.ID

	guard guard.ConstructorGuard
}

func NewListBoxesByContainerQuery(containerID kernel.ID) (ListBoxesByContainerQuery, error) {
	if err := containerID.Validate(); err != nil {
		return ListBoxesByContainerQuery{}, err
	}

	return ListBoxesByContainerQuery{
		containerID: containerID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q ListBoxesByContainerQuery) Validate() error {
	return q.guard.Validate(ErrListBoxesByContainerQueryIsNotConstructed)
}

func (q ListBoxesByContainerQuery) ContainerID() kernel.ID { return q.containerID }

type BoxView struct {
	ID           kernel.ID  `json:"id"`
	State        int        `json:"state"`
	StateName    string     `json:"stateName"`
	ContainerID  *kernel.ID `json:"containerId,omitempty"`
	CreationDate time.Time  `json:"creationDate"`
}
