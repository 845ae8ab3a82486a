package session

import (
	"fmt"

	"cabletrainer/internal/standard"
)

// Verify checks the occupancy invariants: a terminal is assigned exactly
// when its cable holds an assignment for it and lists the core as used, no
// core is used twice, and duct slots form a filled prefix.
func (g *Game) Verify() error {
	for _, id := range g.order {
		c := g.Cables[id]
		s := g.Sockets[id]
		seen := make(map[standard.CoreID]bool)
		for _, t := range s.Terminals {
			a, has := c.Assignments[t.Key]
			switch {
			case t.Empty() && has:
				return fmt.Errorf("cable %d: empty terminal %s has assignment", id, t.Key)
			case !t.Empty() && !has:
				return fmt.Errorf("cable %d: terminal %s assigned without record", id, t.Key)
			case !t.Empty() && a.CoreID != t.Assigned:
				return fmt.Errorf("cable %d: terminal %s holds %s, record says %s", id, t.Key, t.Assigned, a.CoreID)
			}
			if t.Empty() {
				continue
			}
			if seen[t.Assigned] {
				return fmt.Errorf("cable %d: core %s used twice", id, t.Assigned)
			}
			seen[t.Assigned] = true
			if !c.Used(t.Assigned) {
				return fmt.Errorf("cable %d: core %s placed but not marked used", id, t.Assigned)
			}
		}
		if len(seen) != c.UsedCount() {
			return fmt.Errorf("cable %d: %d cores marked used, %d placed", id, c.UsedCount(), len(seen))
		}
		if len(c.Assignments) != len(seen) {
			return fmt.Errorf("cable %d: %d assignments for %d placed cores", id, len(c.Assignments), len(seen))
		}
	}

	if d := g.Duct; d != nil {
		filled := 0
		for i, s := range d.Slots {
			if s.Index != i {
				return fmt.Errorf("slot %d carries index %d", i, s.Index)
			}
			if s.Filled {
				if i != filled {
					return fmt.Errorf("slot %d filled before slot %d", i, filled)
				}
				filled++
			}
		}
		if filled != d.Placed {
			return fmt.Errorf("duct: %d slots filled, %d segments counted", filled, d.Placed)
		}
	}

	if g.HelpLevel < 0 || g.HelpLevel > MaxHelpTier {
		return fmt.Errorf("help level %d out of range", g.HelpLevel)
	}
	return nil
}
