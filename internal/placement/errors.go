package placement

import (
	"errors"

	"cabletrainer/internal/session"
)

// Placement rejections. None of them is fatal and none mutates state.
var (
	// ErrNoCoreSelected is returned when a terminal is clicked with no core armed.
	ErrNoCoreSelected = errors.New("no core selected")

	// ErrTerminalOccupied is returned when the target terminal already holds a core.
	ErrTerminalOccupied = errors.New("terminal already occupied")

	// ErrCoreUsed is returned when a core is already placed on the cable.
	ErrCoreUsed = errors.New("core already placed on this cable")

	// ErrUnknownCore is returned for a core id outside the standard.
	ErrUnknownCore = errors.New("unknown core")

	// ErrUnknownTerminal is returned for a terminal that does not exist.
	ErrUnknownTerminal = errors.New("unknown terminal")

	// ErrForeignTerminal is returned for a terminal on a socket other than the active one.
	ErrForeignTerminal = errors.New("terminal belongs to another socket")

	// ErrNothingToUndo is returned when the undo stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrCableNotInHand is returned when a segment is placed before picking up the cable.
	ErrCableNotInHand = errors.New("cable not picked up")

	// ErrCableInHand is returned when the cable is picked up twice.
	ErrCableInHand = errors.New("cable already in hand")

	// ErrDuctFull is returned when the cable is picked up after every slot is filled.
	ErrDuctFull = errors.New("all duct segments already placed")

	// ErrUnknownSlot is returned for a slot index outside the duct.
	ErrUnknownSlot = errors.New("unknown duct slot")

	// ErrSlotOccupied is returned when the target slot is already filled.
	ErrSlotOccupied = errors.New("duct slot already filled")

	// ErrOutOfOrder is returned when a slot is filled out of left-to-right order.
	ErrOutOfOrder = errors.New("segments must be placed left to right")

	// ErrSegmentsMissing is returned when the cover is closed over an incomplete duct.
	ErrSegmentsMissing = errors.New("duct not fully routed")

	// ErrCoverClosed is returned when the duct is used after its cover was closed.
	ErrCoverClosed = errors.New("duct cover already closed")
)

var messages = []struct {
	err error
	msg string
}{
	{ErrNoCoreSelected, "Select a core first."},
	{ErrTerminalOccupied, "This terminal is already occupied!"},
	{ErrCoreUsed, "This core is already punched down."},
	{ErrUnknownCore, "There is no such core."},
	{ErrUnknownTerminal, "There is no such terminal."},
	{ErrForeignTerminal, "That terminal is on the other socket."},
	{ErrNothingToUndo, "Nothing to undo."},
	{ErrCableNotInHand, "Pick up the cable first."},
	{ErrCableInHand, "You are already holding the cable."},
	{ErrDuctFull, "The cable is already fully routed."},
	{ErrUnknownSlot, "There is no such duct position."},
	{ErrSlotOccupied, "This position is already occupied!"},
	{ErrOutOfOrder, "Route the cable in order from left to right!"},
	{ErrSegmentsMissing, "Route every segment before closing the cover."},
	{ErrCoverClosed, "The cover is already closed."},
	{session.ErrInvalidTerminalKey, "There is no such terminal."},
	{session.ErrInvalidCable, "That cable cannot be wired."},
	{session.ErrInvalidHelpTier, "Hints come in tiers 1 to 3."},
}

// Message returns the short status line shown for a rejection. Unknown
// errors fall back to their own text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return err.Error()
}
