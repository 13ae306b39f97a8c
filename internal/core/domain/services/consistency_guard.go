package services

import (
	"fmt"

	"morna/internal/core/domain/model/box"
	"morna/internal/core/domain/model/container"
	"morna/internal/pkg/errs"
)

// ConsistencyGuard enforces that nothing is added to or removed from a box or
// container that already left China.
type ConsistencyGuard struct{}

func NewConsistencyGuard() ConsistencyGuard {
	return ConsistencyGuard{}
}

// CheckBoxChain validates a box and, when the box is loaded, the container it
// references. parent must be that container, or nil for a loose box.
func (ConsistencyGuard) CheckBoxChain(b *box.Box, parent *container.Container) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := b.ValidateMutable(); err != nil {
		return err
	}

	ref := b.ContainerID()
	if ref == nil {
		return nil
	}
	if parent == nil {
		return errs.NewObjectNotFoundError("container", ref.String())
	}
	if err := parent.Validate(); err != nil {
		return err
	}
	if !parent.ID().Equal(*ref) {
		return errs.NewInvalidTransitionError("box", b.ID().String(),
			fmt.Sprintf("box references container %s, got %s", ref, parent.ID()))
	}
	return parent.ValidateMutable()
}

// CheckContainer validates that boxes may still be loaded into or taken out of c.
func (ConsistencyGuard) CheckContainer(c *container.Container) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return c.ValidateMutable()
}

// CheckBoxNotEmpty rejects loading a box that no order references.
func (ConsistencyGuard) CheckBoxNotEmpty(b *box.Box, orderCount int) error {
	if orderCount == 0 {
		return errs.NewEmptyBoxError(b.ID().String())
	}
	return nil
}

// CheckBoxDeletable allows deletion of an empty box that has not shipped.
func (ConsistencyGuard) CheckBoxDeletable(b *box.Box, orderCount int) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := b.ValidateDelete(); err != nil {
		return err
	}
	if orderCount > 0 {
		return errs.NewInvalidTransitionError("box", b.ID().String(),
			fmt.Sprintf("box still holds %d orders", orderCount))
	}
	return nil
}

// CheckContainerDeletable allows deletion of an empty container that has not shipped.
func (ConsistencyGuard) CheckContainerDeletable(c *container.Container, boxCount int) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := c.ValidateDelete(); err != nil {
		return err
	}
	if boxCount > 0 {
		return errs.NewInvalidTransitionError("container", c.ID().String(),
			fmt.Sprintf("container still holds %d boxes", boxCount))
	}
	return nil
}
