package container

import (
	"fmt"

	"morna/internal/pkg/errs"
)

// Status is the position of a container in the pipeline. Values are persisted.
//
//	1 New ─first box─> 2 Loading ─send─> 3 Shipped ─receive─> 4 Received
type Status int

const (
	Unknown Status = iota
	New
	Loading
	Shipped
	Received
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		New:      "New",
		Loading:  "Loading",
		Shipped:  "Shipped",
		Received: "Received",
	}
}

func (s Status) Validate() error {
	if s < New || s > Received {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			"status", int(s), int(New), int(Received),
			fmt.Errorf("%d is not a valid container status", s),
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

// IsSealed reports whether the container already left China.
func (s Status) IsSealed() bool {
	return s >= Shipped
}

func (s Status) StartLoading() (Status, error) {
	if s.IsSealed() {
		return Unknown, errs.NewAlreadyShippedError("container status", s.String(),
			fmt.Sprintf("%s is not a valid status to load", s))
	}
	return Loading, nil
}

func (s Status) Send() (Status, error) {
	if s != Loading {
		return Unknown, errs.NewInvalidTransitionError("container status", s.String(),
			fmt.Sprintf("%s is not a valid status to send", s))
	}
	return Shipped, nil
}

func (s Status) Receive() (Status, error) {
	if s != Shipped {
		return Unknown, errs.NewInvalidTransitionError("container status", s.String(),
			fmt.Sprintf("%s is not a valid status to receive", s))
	}
	return Received, nil
}
