package placement

import (
	"fmt"
	"strconv"
	"strings"

	"cabletrainer/internal/session"
)

// Ducter routes the installation cable through the duct, one segment per
// slot, strictly left to right.
type Ducter struct {
	game *session.Game
}

var _ Engine = (*Ducter)(nil)

// NewDucter binds a duct engine to a game built with a duct.
func NewDucter(g *session.Game) *Ducter {
	return &Ducter{game: g}
}

// PickUp takes the cable in hand. There is no way to put it down again.
func (d *Ducter) PickUp() error {
	duct := d.game.Duct
	switch {
	case duct.CoverClosed:
		return ErrCoverClosed
	case duct.Full():
		return ErrDuctFull
	case duct.CableInHand:
		return ErrCableInHand
	}
	duct.CableInHand = true
	return nil
}

// PlaceSegment lays the next segment into slot index. Filling the last slot
// releases the cable and unlocks the cover.
func (d *Ducter) PlaceSegment(index int) (Placement, error) {
	duct := d.game.Duct
	if duct.CoverClosed {
		return Placement{}, ErrCoverClosed
	}
	if !duct.CableInHand {
		return Placement{}, ErrCableNotInHand
	}
	if index < 0 || index >= duct.Total() {
		return Placement{}, fmt.Errorf("%w: %d", ErrUnknownSlot, index)
	}
	if duct.Slots[index].Filled {
		return Placement{}, fmt.Errorf("%w: %d", ErrSlotOccupied, index)
	}
	if index != duct.Placed {
		return Placement{}, fmt.Errorf("%w: slot %d, next is %d", ErrOutOfOrder, index, duct.Placed)
	}

	duct.Slots[index].Filled = true
	duct.Placed++
	if duct.Full() {
		duct.CableInHand = false
	}
	return Placement{
		Target:    strconv.Itoa(index),
		Slot:      index,
		Completed: duct.Full(),
	}, nil
}

// CloseCover shuts the duct once every segment is routed.
func (d *Ducter) CloseCover() error {
	duct := d.game.Duct
	if duct.CoverClosed {
		return ErrCoverClosed
	}
	if !duct.Full() {
		return fmt.Errorf("%w: %d of %d", ErrSegmentsMissing, duct.Placed, duct.Total())
	}
	duct.CoverClosed = true
	return nil
}

// CanClose reports whether the cover action is unlocked.
func (d *Ducter) CanClose() bool {
	return d.game.Duct.Full() && !d.game.Duct.CoverClosed
}

// Place parses target as a slot index, accepting an optional "slot-" prefix.
func (d *Ducter) Place(target string) (Placement, error) {
	s := strings.TrimPrefix(strings.TrimSpace(target), "slot-")
	index, err := strconv.Atoi(s)
	if err != nil {
		return Placement{}, fmt.Errorf("%w: %q", ErrUnknownSlot, target)
	}
	return d.PlaceSegment(index)
}

// Undo always fails: routing cannot be undone.
func (d *Ducter) Undo() (Placement, error) {
	return Placement{}, ErrNothingToUndo
}

// CanUndo implements Engine.
func (d *Ducter) CanUndo() bool {
	return false
}

// Ready reports whether every slot is filled.
func (d *Ducter) Ready() bool {
	return d.game.Duct.Full()
}

// Progress implements Engine.
func (d *Ducter) Progress() []Progress {
	return []Progress{{Label: "Cable duct", Done: d.game.Duct.Placed, Total: d.game.Duct.Total()}}
}
