package box

import (
	"errors"
	"time"

	"morna/internal/core/domain/model/kernel"
	"morna/internal/pkg/errs"
)

var (
	// ErrBoxIsNotConstructed is returned when a Box was not created by NewBox or RestoreBox.
	ErrBoxIsNotConstructed = errors.New("Box must be created via NewBox constructor")
)

// Box groups orders for shipping.
//
// Invariants:
//   - containerID is set while the status is Loaded or later
//   - a box in New is not referenced by any container
type Box struct {
	id           kernel.ID
	status       Status
	containerID  *kernel.ID
	creationDate time.Time
	version      int

	isConstructed bool
}

func NewBox(id kernel.ID) (*Box, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Box{
		id:            id,
		status:        New,
		creationDate:  time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreBox rebuilds a box read from the store.
func RestoreBox(id kernel.ID, status Status, containerID *kernel.ID, creationDate time.Time, version int) (*Box, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Box{
		id:            id,
		status:        status,
		containerID:   containerID,
		creationDate:  creationDate,
		version:       version,
		isConstructed: true,
	}, nil
}

func (b *Box) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBoxIsNotConstructed
	}
	return nil
}

func (b *Box) IsEqual(other *Box) bool {
	return other != nil && b.id.Equal(other.id)
}

func (b *Box) ID() kernel.ID { return b.id }
func (b *Box) Status() Status { return b.status }
func (b *Box) ContainerID() *kernel.ID { return b.containerID }
func (b *Box) CreationDate() time.Time { return b.creationDate }
func (b *Box) Version() int { return b.version }
func (b *Box) IsFrozen() bool { return b.status.IsFrozen() }
func (b *Box) IsInContainer() bool { return b.containerID != nil }

// ValidateMutable rejects changes to the box contents once it left the packing floor.
func (b *Box) ValidateMutable() error {
	if b.IsFrozen() {
		return errs.NewAlreadyShippedError("box", b.id.String(), "box is "+b.status.String())
	}
	return nil
}

// ValidateLoad checks Load without mutating the box.
func (b *Box) ValidateLoad() error {
	_, err := b.status.Load()
	return b.reject(err)
}

// Load places the box into containerID. Moving between containers is allowed.
func (b *Box) Load(containerID kernel.ID) error {
	if err := containerID.Validate(); err != nil {
		return err
	}

	next, err := b.status.Load()
	if err != nil {
		return b.reject(err)
	}

	b.containerID = &containerID
	b.status = next
	return nil
}

// ValidateUnload checks Unload without mutating the box.
func (b *Box) ValidateUnload() error {
	if b.containerID == nil {
		return errs.NewInvalidTransitionError("box", b.id.String(), "box is not in a container")
	}
	_, err := b.status.Unload()
	return b.reject(err)
}

// Unload takes the box out of its container and returns it to New.
func (b *Box) Unload() error {
	if err := b.ValidateUnload(); err != nil {
		return err
	}

	b.containerID = nil
	b.status = New
	return nil
}

// ValidateShip checks Ship without mutating the box.
func (b *Box) ValidateShip() error {
	_, err := b.status.Ship()
	return b.reject(err)
}

func (b *Box) Ship() error {
	next, err := b.status.Ship()
	if err != nil {
		return b.reject(err)
	}
	b.status = next
	return nil
}

// Arrive marks a shipped box as available for receipt at destination.
func (b *Box) Arrive() error {
	next, err := b.status.Arrive()
	if err != nil {
		return b.reject(err)
	}
	b.status = next
	return nil
}

// Receive confirms the box at the Venezuela warehouse.
func (b *Box) Receive() error {
	next, err := b.status.Receive()
	if err != nil {
		return b.reject(err)
	}
	b.status = next
	return nil
}

// ValidateDelete allows hard deletion only before the box leaves the packing floor.
func (b *Box) ValidateDelete() error {
	return b.ValidateMutable()
}

func (b *Box) reject(err error) error {
	var rejection *errs.RejectionError
	if errors.As(err, &rejection) {
		rejection.Entity = "box"
		rejection.ID = b.id.String()
	}
	return err
}
