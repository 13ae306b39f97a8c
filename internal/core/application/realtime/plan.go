package realtime

import (
	"morna/internal/core/ports"
)

// subscriptions maps a changed table and the active tab to the slots to refetch.
var subscriptions = map[ports.Table]map[Tab][]Slot{
	ports.TableOrders: {
		TabOrders: {SlotOrders},
		TabBoxes:  {SlotBoxCounts},
	},
	ports.TableBoxes: {
		TabOrders:     {SlotOrders},
		TabBoxes:      {SlotBoxes, SlotBoxCounts},
		TabContainers: {SlotContainerCounts},
	},
	ports.TableContainers: {
		TabContainers: {SlotContainers, SlotContainerCounts},
	},
	ports.TableClients: {
		TabOrders: {SlotOrders},
	},
}

// modalBoxSubscriptions and modalContainerSubscriptions add the child
// collection of an open detail modal.
var modalBoxSubscriptions = map[ports.Table][]Slot{
	ports.TableOrders:  {SlotBoxOrders, SlotBoxCounts},
	ports.TableBoxes:   {SlotBoxOrders},
	ports.TableClients: {SlotBoxOrders},
}

var modalContainerSubscriptions = map[ports.Table][]Slot{
	ports.TableOrders:     {SlotBoxCounts},
	ports.TableBoxes:      {SlotContainerBoxes, SlotBoxCounts, SlotContainerCounts},
	ports.TableContainers: {SlotContainerBoxes},
}

type slotSet map[Slot]struct{}

func (s slotSet) add(slots ...Slot) {
	for _, slot := range slots {
		s[slot] = struct{}{}
	}
}

// ordered returns the members in refetch order.
func (s slotSet) ordered() []Slot {
	out := make([]Slot, 0, len(s))
	for _, slot := range slotOrder {
		if _, ok := s[slot]; ok {
			out = append(out, slot)
		}
	}
	return out
}

// Plan returns the slots of view affected by changes to tables.
func Plan(view ViewState, tables []ports.Table) []Slot {
	set := make(slotSet)
	for _, table := range tables {
		set.add(subscriptions[table][view.Tab]...)
		if view.OpenBox != nil {
			set.add(modalBoxSubscriptions[table]...)
		}
		if view.OpenContainer != nil {
			set.add(modalContainerSubscriptions[table]...)
		}
	}
	return set.ordered()
}

// FullPlan returns every slot view displays.
func FullPlan(view ViewState) []Slot {
	set := make(slotSet)
	switch view.Tab {
	case TabOrders:
		set.add(SlotOrders)
	case TabBoxes:
		set.add(SlotBoxes, SlotBoxCounts)
	case TabContainers:
		set.add(SlotContainers, SlotContainerCounts)
	}
	if view.OpenBox != nil {
		set.add(SlotBoxOrders)
	}
	if view.OpenContainer != nil {
		set.add(SlotContainerBoxes, SlotBoxCounts)
	}
	return set.ordered()
}
