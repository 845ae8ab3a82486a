// Package session holds the mutable state of one attempt at a level. A Game
// is created on level selection or reset and replaced, never cleared field by
// field, when the next attempt begins.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"cabletrainer/internal/standard"
)

// MaxHelpTier is the highest hint tier a learner can reveal.
const MaxHelpTier = 3

// Options describes what to materialise for a new attempt.
type Options struct {
	Level int

	// Cables lists the cable/socket numbers to build. Empty for the duct level.
	Cables []int

	// ReferenceCables are pre-wired per the standard and cannot be played.
	ReferenceCables []int

	// Duct builds the six-slot cable duct.
	Duct bool
}

// UndoEntry holds what is needed to reverse exactly one assignment.
type UndoEntry struct {
	Cable    int
	Core     standard.CoreID
	Key      TerminalKey
	Terminal *Terminal
}

// Game is the state of one attempt.
type Game struct {
	ID          uuid.UUID
	Level       int
	ActiveCable int
	Selected    standard.CoreID

	Started   bool
	StartTime time.Time
	Elapsed   int // whole seconds
	HelpLevel int
	Checked   bool

	Cables  map[int]*Cable
	Sockets map[int]*Socket
	Duct    *Duct

	order []int
	undo  []UndoEntry
}

// New builds a fresh Game with every terminal and slot empty, except the
// reference cables which are wired correctly.
func New(opts Options) *Game {
	g := &Game{
		ID:      uuid.New(),
		Level:   opts.Level,
		Cables:  make(map[int]*Cable),
		Sockets: make(map[int]*Socket),
	}
	ref := make(map[int]bool, len(opts.ReferenceCables))
	for _, id := range opts.ReferenceCables {
		ref[id] = true
	}
	for _, id := range opts.Cables {
		c := newCable(id)
		s := newSocket(id)
		if ref[id] {
			c.Reference = true
			for _, t := range s.Terminals {
				c.Bind(t, t.Expected)
			}
		} else if g.ActiveCable == 0 {
			g.ActiveCable = id
		}
		g.Cables[id] = c
		g.Sockets[id] = s
		g.order = append(g.order, id)
	}
	if opts.Duct {
		g.Duct = newDuct()
	}
	return g
}

// CableIDs returns the cable numbers in creation order.
func (g *Game) CableIDs() []int {
	out := make([]int, len(g.order))
	copy(out, g.order)
	return out
}

// PlayableCables returns the cables the learner wires.
func (g *Game) PlayableCables() []int {
	var out []int
	for _, id := range g.order {
		if !g.Cables[id].Reference {
			out = append(out, id)
		}
	}
	return out
}

// Cable returns the cable with the given number, or nil.
func (g *Game) Cable(id int) *Cable {
	return g.Cables[id]
}

// Active returns the cable currently being wired, or nil on the duct level.
func (g *Game) Active() *Cable {
	return g.Cables[g.ActiveCable]
}

// SetActiveCable switches the cable being wired and clears the selection.
func (g *Game) SetActiveCable(id int) error {
	c, ok := g.Cables[id]
	if !ok || c.Reference {
		return fmt.Errorf("%w: %d", ErrInvalidCable, id)
	}
	if id != g.ActiveCable {
		g.Selected = ""
	}
	g.ActiveCable = id
	return nil
}

// Terminal looks up a terminal across all sockets.
func (g *Game) Terminal(key TerminalKey) *Terminal {
	s, ok := g.Sockets[key.Socket]
	if !ok {
		return nil
	}
	return s.Terminal(key)
}

// PushUndo records an assignment for later reversal.
func (g *Game) PushUndo(e UndoEntry) {
	g.undo = append(g.undo, e)
}

// PopUndo removes and returns the most recent entry.
func (g *Game) PopUndo() (UndoEntry, bool) {
	if len(g.undo) == 0 {
		return UndoEntry{}, false
	}
	e := g.undo[len(g.undo)-1]
	g.undo = g.undo[:len(g.undo)-1]
	return e, true
}

// UndoDepth is the number of reversible assignments.
func (g *Game) UndoDepth() int {
	return len(g.undo)
}

// RecordHelp raises the help level to tier. Lower tiers never reduce it.
func (g *Game) RecordHelp(tier int) error {
	if tier < 1 || tier > MaxHelpTier {
		return fmt.Errorf("%w: %d", ErrInvalidHelpTier, tier)
	}
	if tier > g.HelpLevel {
		g.HelpLevel = tier
	}
	return nil
}
