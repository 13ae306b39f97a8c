package queries

import (
	"errors"

	"morna/internal/core/domain/model/kernel"
	"morna/internal/pkg/guard"
)

var ErrCountChildrenQueryIsNotConstructed = errors.New(
	"CountChildrenQuery must be created via NewCountChildrenQuery constructor",
)

// CountChildrenQuery asks for the number of children of each parent id: orders
// per box or boxes per container depending on the handler method.
type CountChildrenQuery struct {
	parentIDs []kernel.ID

	guard guard.ConstructorGuard
}

func NewCountChildrenQuery(parentIDs []kernel.ID) (CountChildrenQuery, error) {
	unique := make([]kernel.ID, 0, len(parentIDs))
	seen := make(map[kernel.ID]struct{}, len(parentIDs))
	for _, id := range parentIDs {
		if err := id.Validate(); err != nil {
			return CountChildrenQuery{}, err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	return CountChildrenQuery{
		parentIDs: unique,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q CountChildrenQuery) Validate() error {
	return q.guard.Validate(ErrCountChildrenQueryIsNotConstructed)
}

func (q CountChildrenQuery) ParentIDs() []kernel.ID { return q.parentIDs }
