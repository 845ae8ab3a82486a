package placement

import (
	"fmt"

	"cabletrainer/internal/session"
	"cabletrainer/internal/standard"
)

// Selection is the outcome of arming a core.
type Selection struct {
	// Core is the armed core after the call, empty when none.
	Core standard.CoreID

	// Ignored is set when the core was already placed and nothing changed.
	Ignored bool
}

// Assigner punches cores onto LSA terminals.
type Assigner struct {
	game *session.Game
}

var _ Engine = (*Assigner)(nil)

// NewAssigner binds an assigner to a game.
func NewAssigner(g *session.Game) *Assigner {
	return &Assigner{game: g}
}

// SelectCore arms a core on the active cable. Selecting the armed core again
// disarms it; selecting a placed core is ignored.
func (a *Assigner) SelectCore(id standard.CoreID) (Selection, error) {
	if _, ok := standard.Lookup(id); !ok {
		return Selection{Core: a.game.Selected}, fmt.Errorf("%w: %q", ErrUnknownCore, id)
	}
	cable := a.game.Active()
	if cable == nil {
		return Selection{}, session.ErrInvalidCable
	}
	if cable.Used(id) {
		return Selection{Core: a.game.Selected, Ignored: true}, nil
	}
	if a.game.Selected == id {
		a.game.Selected = ""
	} else {
		a.game.Selected = id
	}
	return Selection{Core: a.game.Selected}, nil
}

// AssignCore punches the armed core onto the terminal at key.
func (a *Assigner) AssignCore(key session.TerminalKey) (Placement, error) {
	core := a.game.Selected
	if core == "" {
		return Placement{}, ErrNoCoreSelected
	}
	cable := a.game.Active()
	if cable == nil {
		return Placement{}, session.ErrInvalidCable
	}
	term := a.game.Terminal(key)
	if term == nil {
		return Placement{}, fmt.Errorf("%w: %s", ErrUnknownTerminal, key)
	}
	if key.Socket != cable.ID {
		return Placement{}, fmt.Errorf("%w: %s", ErrForeignTerminal, key)
	}
	if !term.Empty() {
		return Placement{}, fmt.Errorf("%w: %s", ErrTerminalOccupied, key.Short())
	}
	if cable.Used(core) {
		return Placement{}, fmt.Errorf("%w: %s", ErrCoreUsed, core)
	}

	cable.Bind(term, core)
	a.game.PushUndo(session.UndoEntry{Cable: cable.ID, Core: core, Key: key, Terminal: term})
	a.game.Selected = ""

	return Placement{
		Target:    key.Short(),
		Cable:     cable.ID,
		Core:      core,
		Completed: cable.Complete(),
	}, nil
}

// UndoLast reverses the most recent assignment, whichever cable it was on.
func (a *Assigner) UndoLast() (Placement, error) {
	e, ok := a.game.PopUndo()
	if !ok {
		return Placement{}, ErrNothingToUndo
	}
	a.game.Cable(e.Cable).Unbind(e.Terminal, e.Core)
	return Placement{Target: e.Key.Short(), Cable: e.Cable, Core: e.Core}, nil
}

// IsComplete reports whether every core of the cable is placed.
func (a *Assigner) IsComplete(cable int) bool {
	c := a.game.Cable(cable)
	return c != nil && c.Complete()
}

// Place parses target as a terminal key on the active socket and assigns.
func (a *Assigner) Place(target string) (Placement, error) {
	if a.game.Selected == "" {
		return Placement{}, ErrNoCoreSelected
	}
	key, err := session.ParseTerminalKey(target, a.game.ActiveCable)
	if err != nil {
		return Placement{}, err
	}
	return a.AssignCore(key)
}

// Undo implements Engine.
func (a *Assigner) Undo() (Placement, error) {
	return a.UndoLast()
}

// CanUndo implements Engine.
func (a *Assigner) CanUndo() bool {
	return a.game.UndoDepth() > 0
}

// Ready reports whether every playable cable is complete.
func (a *Assigner) Ready() bool {
	playable := a.game.PlayableCables()
	if len(playable) == 0 {
		return false
	}
	for _, id := range playable {
		if !a.IsComplete(id) {
			return false
		}
	}
	return true
}

// Progress returns one counter per cable, reference cables included.
func (a *Assigner) Progress() []Progress {
	var out []Progress
	for _, id := range a.game.CableIDs() {
		c := a.game.Cable(id)
		out = append(out, Progress{
			Label: fmt.Sprintf("Cable %d", id),
			Done:  c.UsedCount(),
			Total: standard.CoreCount,
		})
	}
	return out
}
