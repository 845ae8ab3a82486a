package session

import (
	"sort"

	"cabletrainer/internal/standard"
)

// Assignment records which core was punched into a terminal and which core
// the terminal expects.
type Assignment struct {
	CoreID   standard.CoreID
	Expected standard.CoreID
}

// Correct reports whether the placed core matches the expectation.
func (a Assignment) Correct() bool {
	return a.CoreID == a.Expected
}

// Cable is the per-cable wiring state. A core is used at most once per cable.
type Cable struct {
	ID          int
	Reference   bool
	Assignments map[TerminalKey]Assignment
	used        map[standard.CoreID]struct{}
}

func newCable(id int) *Cable {
	return &Cable{
		ID:          id,
		Assignments: make(map[TerminalKey]Assignment),
		used:        make(map[standard.CoreID]struct{}),
	}
}

// Used reports whether core id is already placed on this cable.
func (c *Cable) Used(id standard.CoreID) bool {
	_, ok := c.used[id]
	return ok
}

// UsedCount is the number of placed cores.
func (c *Cable) UsedCount() int {
	return len(c.used)
}

// Complete reports whether all eight cores are placed, right or wrong.
func (c *Cable) Complete() bool {
	return len(c.used) == standard.CoreCount
}

// UsedCores returns the placed cores in pin order.
func (c *Cable) UsedCores() []standard.CoreID {
	out := make([]standard.CoreID, 0, len(c.used))
	for _, core := range standard.Cores() {
		if c.Used(core.ID) {
			out = append(out, core.ID)
		}
	}
	return out
}

// SortedKeys returns the assigned terminal keys in a stable order.
func (c *Cable) SortedKeys() []TerminalKey {
	keys := make([]TerminalKey, 0, len(c.Assignments))
	for k := range c.Assignments {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}

// Bind records core on terminal t. The caller has validated occupancy and use.
func (c *Cable) Bind(t *Terminal, core standard.CoreID) {
	c.Assignments[t.Key] = Assignment{CoreID: core, Expected: t.Expected}
	c.used[core] = struct{}{}
	t.Assigned = core
}

// Unbind reverses Bind.
func (c *Cable) Unbind(t *Terminal, core standard.CoreID) {
	delete(c.Assignments, t.Key)
	delete(c.used, core)
	t.Assigned = ""
}
