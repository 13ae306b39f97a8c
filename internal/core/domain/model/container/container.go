package container

import (
	"errors"
	"time"

	"morna/internal/core/domain/model/kernel"
	"morna/internal/pkg/errs"
)

var (
	// ErrContainerIsNotConstructed is returned when a Container was not created by NewContainer or RestoreContainer.
	ErrContainerIsNotConstructed = errors.New("Container must be created via NewContainer constructor")
)

// Container carries boxes overseas. Tracking is present once the container is Shipped.
type Container struct {
	id           kernel.ID
	status       Status
	tracking     *Tracking
	creationDate time.Time
	version      int

	isConstructed bool
}

func NewContainer(id kernel.ID) (*Container, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Container{
		id:            id,
		status:        New,
		creationDate:  time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreContainer rebuilds a container read from the store.
func RestoreContainer(
	id kernel.ID,
	status Status,
	tracking *Tracking,
	creationDate time.Time,
	version int,
) (*Container, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Container{
		id:            id,
		status:        status,
		tracking:      tracking,
		creationDate:  creationDate,
		version:       version,
		isConstructed: true,
	}, nil
}

func (c *Container) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrContainerIsNotConstructed
	}
	return nil
}

func (c *Container) IsEqual(other *Container) bool {
	return other != nil && c.id.Equal(other.id)
}

func (c *Container) ID() kernel.ID { return c.id }
func (c *Container) Status() Status { return c.status }
func (c *Container) Tracking() *Tracking { return c.tracking }
func (c *Container) CreationDate() time.Time { return c.creationDate }
func (c *Container) Version() int { return c.version }
func (c *Container) IsSealed() bool { return c.status.IsSealed() }

// ValidateMutable rejects changes to the container contents once it was sent.
func (c *Container) ValidateMutable() error {
	if c.IsSealed() {
		return errs.NewAlreadyShippedError("container", c.id.String(), "container is "+c.status.String())
	}
	return nil
}

// StartLoading marks the container as being filled. It reports whether the status changed.
func (c *Container) StartLoading() (bool, error) {
	next, err := c.status.StartLoading()
	if err != nil {
		return false, c.reject(err)
	}

	changed := next != c.status
	c.status = next
	return changed, nil
}

// ValidateSend checks Send without mutating the container.
func (c *Container) ValidateSend() error {
	_, err := c.status.Send()
	return c.reject(err)
}

// Send seals the container and records its carrier tracking.
func (c *Container) Send(tracking Tracking) error {
	if err := tracking.Validate(); err != nil {
		return err
	}

	next, err := c.status.Send()
	if err != nil {
		return c.reject(err)
	}

	c.tracking = &tracking
	c.status = next
	return nil
}

// Receive confirms arrival in Venezuela.
func (c *Container) Receive() error {
	next, err := c.status.Receive()
	if err != nil {
		return c.reject(err)
	}
	c.status = next
	return nil
}

// ValidateDelete allows hard deletion only before the container is sent.
func (c *Container) ValidateDelete() error {
	return c.ValidateMutable()
}

func (c *Container) reject(err error) error {
	var rejection *errs.RejectionError
	if errors.As(err, &rejection) {
		rejection.Entity = "container"
		rejection.ID = c.id.String()
	}
	return err
}
