package order

import (
	"fmt"

	"morna/internal/pkg/errs"
)

// Status is the position of an order in the China → Venezuela pipeline.
// The numeric values are persisted and shown to staff, so they must not change.
//
//	1 Created ─send─> 2 ReceivedByStaff ─quote─> 3 Quoted ─> 4 Paid ─> 5 ReadyToPack
//	5 ─box─> 6 PackedInBox ─container─> 7 PackedInContainer ─send container─> 9
//	8 ShippedToDestination ─> 9 ArrivedInDestination ─> 10 InCustoms
//	10 ─> 11 ReceivedAtWarehouse ─> 12 ReadyForDelivery ─> 13 Delivered
//
// Unpacking (6 or 7 back to 5) is the only backwards move.
type Status int

const (
	Unknown Status = iota
	Created
	ReceivedByStaff
	Quoted
	Paid
	ReadyToPack
	PackedInBox
	PackedInContainer
	ShippedToDestination
	ArrivedInDestination
	InCustoms
	ReceivedAtWarehouse
	ReadyForDelivery
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:              "Unknown",
		Created:              "Created",
		ReceivedByStaff:      "ReceivedByStaff",
		Quoted:               "Quoted",
		Paid:                 "Paid",
		ReadyToPack:          "ReadyToPack",
		PackedInBox:          "PackedInBox",
		PackedInContainer:    "PackedInContainer",
		ShippedToDestination: "ShippedToDestination",
		ArrivedInDestination: "ArrivedInDestination",
		InCustoms:            "InCustoms",
		ReceivedAtWarehouse:  "ReceivedAtWarehouse",
		ReadyForDelivery:     "ReadyForDelivery",
		Delivered:            "Delivered",
	}
}

// getAdvanceTable lists the single-step moves staff may request directly.
// Moves into Quoted, PackedInBox, PackedInContainer and ArrivedInDestination
// from a packing state belong to dedicated operations and are absent here.
func getAdvanceTable() map[Status]Status {
	return map[Status]Status{
		Created:              ReceivedByStaff,
		Quoted:               Paid,
		Paid:                 ReadyToPack,
		ShippedToDestination: ArrivedInDestination,
		ArrivedInDestination: InCustoms,
		InCustoms:            ReceivedAtWarehouse,
		ReceivedAtWarehouse:  ReadyForDelivery,
		ReadyForDelivery:     Delivered,
	}
}

// Validate rejects Unknown and values outside 1..13.
func (s Status) Validate() error {
	if s < Created || s > Delivered {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			"status", int(s), int(Created), int(Delivered),
			fmt.Errorf("%d is not a valid order status", s),
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

// NextStates returns the states reachable through Advance.
func (s Status) NextStates() []Status {
	if next, ok := getAdvanceTable()[s]; ok {
		return []Status{next}
	}
	return nil
}

// IsBoxed reports whether an order in this status must reference a box.
func (s Status) IsBoxed() bool {
	return s == PackedInBox || s == PackedInContainer
}

// IsShipped reports whether the order already left China.
func (s Status) IsShipped() bool {
	return s >= ShippedToDestination
}

// Advance moves one step along the advance table.
func (s Status) Advance(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}

	if next > s+1 {
		return Unknown, errs.NewInvalidJumpError("order status", s.String(),
			fmt.Sprintf("cannot jump from %d to %d", s, next))
	}

	if next <= s {
		return Unknown, errs.NewInvalidTransitionError("order status", s.String(),
			fmt.Sprintf("cannot move back from %s to %s", s, next))
	}

	if allowed, ok := getAdvanceTable()[s]; !ok || allowed != next {
		return Unknown, errs.NewInvalidTransitionError("order status", s.String(),
			fmt.Sprintf("%s -> %s is performed by a dedicated operation", s, next))
	}

	return next, nil
}

// Quote is allowed until the quote has been accepted.
func (s Status) Quote() (Status, error) {
	if s != Created && s != ReceivedByStaff && s != Quoted {
		return Unknown, errs.NewInvalidTransitionError("order status", s.String(),
			fmt.Sprintf("%s is not a valid status to quote", s))
	}
	return Quoted, nil
}

// Pack moves a ready order into a box. boxInContainer selects the target state.
func (s Status) Pack(boxInContainer bool) (Status, error) {
	if s != ReadyToPack {
		return Unknown, errs.NewInvalidTransitionError("order status", s.String(),
			fmt.Sprintf("%s is not a valid status to pack", s))
	}
	if boxInContainer {
		return PackedInContainer, nil
	}
	return PackedInBox, nil
}

// Unpack returns a packed order to ReadyToPack.
func (s Status) Unpack() (Status, error) {
	if !s.IsBoxed() && s != ReadyToPack {
		return Unknown, errs.NewInvalidTransitionError("order status", s.String(),
			fmt.Sprintf("%s is not a valid status to unpack", s))
	}
	return ReadyToPack, nil
}

// Containerize follows its box into a container.
func (s Status) Containerize() (Status, error) {
	if !s.IsBoxed() && s != ReadyToPack {
		return Unknown, errs.NewInvalidTransitionError("order status", s.String(),
			fmt.Sprintf("%s is not a valid status to load into a container", s))
	}
	return PackedInContainer, nil
}

// Ship follows its container out of China.
func (s Status) Ship() (Status, error) {
	if s < ReadyToPack || s > ShippedToDestination {
		return Unknown, errs.NewInvalidTransitionError("order status", s.String(),
			fmt.Sprintf("%s is not a valid status to ship", s))
	}
	return ArrivedInDestination, nil
}
