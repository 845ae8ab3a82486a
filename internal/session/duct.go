package session

// TotalSegments is the number of duct slots the cable is routed through.
const TotalSegments = 6

// Slot is a routing position in the cable duct, indexed left to right.
type Slot struct {
	Index  int
	Filled bool
}

// Duct is the level 1 state. Slots fill strictly left to right.
type Duct struct {
	Slots       []*Slot
	Placed      int
	CableInHand bool
	CoverClosed bool
}

func newDuct() *Duct {
	d := &Duct{Slots: make([]*Slot, TotalSegments)}
	for i := range d.Slots {
		d.Slots[i] = &Slot{Index: i}
	}
	return d
}

// Total is the number of slots.
func (d *Duct) Total() int {
	return len(d.Slots)
}

// Full reports whether every slot is filled.
func (d *Duct) Full() bool {
	return d.Placed == d.Total()
}
