package session

import "cabletrainer/internal/standard"

// CableSnapshot is a value copy of one cable's state.
type CableSnapshot struct {
	ID          int                        `json:"id" yaml:"id"`
	Reference   bool                       `json:"reference" yaml:"reference"`
	Assignments map[string]standard.CoreID `json:"assignments" yaml:"assignments"`
	Used        []standard.CoreID          `json:"used" yaml:"used"`
}

// DuctSnapshot is a value copy of the duct state.
type DuctSnapshot struct {
	Filled      []bool `json:"filled" yaml:"filled"`
	Placed      int    `json:"placed" yaml:"placed"`
	CableInHand bool   `json:"cable_in_hand" yaml:"cable_in_hand"`
	CoverClosed bool   `json:"cover_closed" yaml:"cover_closed"`
}

// Snapshot is a pointer-free copy of a Game, safe to hand to other goroutines
// and to compare.
type Snapshot struct {
	Level       int             `json:"level" yaml:"level"`
	ActiveCable int             `json:"active_cable" yaml:"active_cable"`
	Selected    standard.CoreID `json:"selected,omitempty" yaml:"selected,omitempty"`
	Started     bool            `json:"started" yaml:"started"`
	Elapsed     int             `json:"elapsed" yaml:"elapsed"`
	HelpLevel   int             `json:"help_level" yaml:"help_level"`
	UndoDepth   int             `json:"undo_depth" yaml:"undo_depth"`
	Cables      []CableSnapshot `json:"cables,omitempty" yaml:"cables,omitempty"`
	Duct        *DuctSnapshot   `json:"duct,omitempty" yaml:"duct,omitempty"`
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Level:       g.Level,
		ActiveCable: g.ActiveCable,
		Selected:    g.Selected,
		Started:     g.Started,
		Elapsed:     g.Elapsed,
		HelpLevel:   g.HelpLevel,
		UndoDepth:   len(g.undo),
	}
	for _, id := range g.order {
		c := g.Cables[id]
		cs := CableSnapshot{
			ID:          id,
			Reference:   c.Reference,
			Assignments: make(map[string]standard.CoreID, len(c.Assignments)),
			Used:        c.UsedCores(),
		}
		for k, a := range c.Assignments {
			cs.Assignments[k.String()] = a.CoreID
		}
		s.Cables = append(s.Cables, cs)
	}
	if d := g.Duct; d != nil {
		ds := &DuctSnapshot{
			Filled:      make([]bool, len(d.Slots)),
			Placed:      d.Placed,
			CableInHand: d.CableInHand,
			CoverClosed: d.CoverClosed,
		}
		for i, slot := range d.Slots {
			ds.Filled[i] = slot.Filled
		}
		s.Duct = ds
	}
	return s
}
