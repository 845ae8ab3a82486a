// Package placement validates and performs placements: cores onto LSA
// terminals for the socket level and cable segments into duct slots for the
// duct level. Both engines share the Engine capability so the level
// controller drives them the same way; what counts as correct is decided by
// a Policy.
package placement

import "cabletrainer/internal/standard"

// Engine is the capability shared by the level engines.
type Engine interface {
	// Place binds the armed item to target: a terminal key such as "top-0"
	// or a duct slot index.
	Place(target string) (Placement, error)

	// Undo reverses the most recent placement.
	Undo() (Placement, error)

	// CanUndo reports whether Undo would succeed.
	CanUndo() bool

	// Ready reports whether the attempt may be checked.
	Ready() bool

	// Progress reports per-cable or duct counters.
	Progress() []Progress
}

// Placement describes one accepted (or reversed) placement.
type Placement struct {
	Target string
	Cable  int
	Core   standard.CoreID
	Slot   int

	// Completed is set when the placement filled the last position.
	Completed bool
}

// Progress is a counter rendered as "done/total".
type Progress struct {
	Label string
	Done  int
	Total int
}
