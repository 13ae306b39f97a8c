package box

import (
	"fmt"

	"morna/internal/pkg/errs"
)

// Status is the position of a box in the pipeline. Values are persisted.
//
//	1 New ─load─> 2 Loaded ─send─> 4 Shipped ─container received─> 5 Arrived ─receive─> 6 Received
//	2 Loaded ─unload─> 1 New
//
// InTransit (3) is kept for rows written by earlier tooling and is treated
// like Shipped.
type Status int

const (
	Unknown Status = iota
	New
	Loaded
	InTransit
	Shipped
	Arrived
	Received
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		New:       "New",
		Loaded:    "Loaded",
		InTransit: "InTransit",
		Shipped:   "Shipped",
		Arrived:   "Arrived",
		Received:  "Received",
	}
}

func (s Status) Validate() error {
	if s < New || s > Received {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			"status", int(s), int(New), int(Received),
			fmt.Errorf("%d is not a valid box status", s),
		)
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFrozen reports whether the box has left the packing floor.
func (s Status) IsFrozen() bool {
	return s >= InTransit
}

func (s Status) Load() (Status, error) {
	if s.IsFrozen() {
		return Unknown, errs.NewAlreadyShippedError("box status", s.String(),
			fmt.Sprintf("%s is not a valid status to load", s))
	}
	return Loaded, nil
}

func (s Status) Unload() (Status, error) {
	if s.IsFrozen() {
		return Unknown, errs.NewAlreadyShippedError("box status", s.String(),
			fmt.Sprintf("%s is not a valid status to unload", s))
	}
	return New, nil
}

func (s Status) Ship() (Status, error) {
	if s != Loaded && s != InTransit {
		return Unknown, errs.NewInvalidTransitionError("box status", s.String(),
			fmt.Sprintf("%s is not a valid status to ship", s))
	}
	return Shipped, nil
}

func (s Status) Arrive() (Status, error) {
	if s != Shipped && s != InTransit {
		return Unknown, errs.NewInvalidTransitionError("box status", s.String(),
			fmt.Sprintf("%s is not a valid status to arrive", s))
	}
	return Arrived, nil
}

func (s Status) Receive() (Status, error) {
	if s != Arrived {
		return Unknown, errs.NewInvalidTransitionError("box status", s.String(),
			fmt.Sprintf("%s is not a valid status to receive", s))
	}
	return Received, nil
}
