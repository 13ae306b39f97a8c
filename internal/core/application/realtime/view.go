// Package realtime keeps attached dashboards in sync with the store.
//
// Every attached dashboard is a Session with its own event loop. Change events
// from the change feed are coalesced per table for a short debounce window,
// mapped through the subscription table to the view slots they can affect and
// then refetched. A refetch replaces the slot wholesale, so a duplicated or
// reordered event never leaves a view in a different state than a single
// delivery would.
package realtime

import (
	"errors"

	"morna/internal/core/application/usecases/queries"
	"morna/internal/core/domain/model/kernel"
	"morna/internal/pkg/errs"
)

// Tab is the list a dashboard currently shows.
type Tab string

const (
	TabOrders     Tab = "orders"
	TabBoxes      Tab = "boxes"
	TabContainers Tab = "containers"
)

func (t Tab) Validate() error {
	switch t {
	case TabOrders, TabBoxes, TabContainers:
		return nil
	default:
		return errs.NewValueIsInvalidError("tab")
	}
}

// Slot is one independently refetched part of a dashboard.
type Slot string

const (
	SlotOrders          Slot = "orders"
	SlotBoxes           Slot = "boxes"
	SlotContainers      Slot = "containers"
	SlotBoxOrders       Slot = "boxOrders"
	SlotContainerBoxes  Slot = "containerBoxes"
	SlotBoxCounts       Slot = "boxCounts"
	SlotContainerCounts Slot = "containerCounts"
)

// slotOrder is the refetch order. Lists come before the counters derived
// from their ids.
var slotOrder = []Slot{
	SlotOrders,
	SlotBoxes,
	SlotContainers,
	SlotBoxOrders,
	SlotContainerBoxes,
	SlotBoxCounts,
	SlotContainerCounts,
}

// ViewState is what a dashboard shows right now. It is sent by the client
// whenever the user switches tab, types a filter or opens a detail modal.
type ViewState struct {
	Role          queries.Role `json:"role"`
	StaffID       *kernel.ID   `json:"staffId,omitempty"`
	Tab           Tab          `json:"tab"`
	Filter        string       `json:"filter,omitempty"`
	OpenBox       *kernel.ID   `json:"openBox,omitempty"`
	OpenContainer *kernel.ID   `json:"openContainer,omitempty"`
}

func (v ViewState) Validate() error {
	return errors.Join(v.Role.Validate(), v.Tab.Validate())
}
