package script

import (
	"errors"
	"strings"

	"cabletrainer/internal/level"
	"cabletrainer/internal/placement"
	"cabletrainer/internal/session"
)

// ErrExpectation is returned when a step does not fail the way it was
// expected to, or fails when it should not.
var ErrExpectation = errors.New("expectation not met")

var namedErrors = []struct {
	name string
	err  error
}{
	{"no_core_selected", placement.ErrNoCoreSelected},
	{"terminal_occupied", placement.ErrTerminalOccupied},
	{"core_used", placement.ErrCoreUsed},
	{"unknown_core", placement.ErrUnknownCore},
	{"unknown_terminal", placement.ErrUnknownTerminal},
	{"foreign_terminal", placement.ErrForeignTerminal},
	{"nothing_to_undo", placement.ErrNothingToUndo},
	{"cable_not_in_hand", placement.ErrCableNotInHand},
	{"cable_in_hand", placement.ErrCableInHand},
	{"duct_full", placement.ErrDuctFull},
	{"unknown_slot", placement.ErrUnknownSlot},
	{"slot_occupied", placement.ErrSlotOccupied},
	{"out_of_order", placement.ErrOutOfOrder},
	{"segments_missing", placement.ErrSegmentsMissing},
	{"cover_closed", placement.ErrCoverClosed},
	{"invalid_terminal_key", session.ErrInvalidTerminalKey},
	{"invalid_help_tier", session.ErrInvalidHelpTier},
	{"invalid_cable", session.ErrInvalidCable},
	{"unknown_level", level.ErrUnknownLevel},
	{"level_unavailable", level.ErrLevelUnavailable},
	{"level_locked", level.ErrLevelLocked},
	{"not_started", level.ErrNotStarted},
	{"already_started", level.ErrAlreadyStarted},
	{"already_checked", level.ErrAlreadyChecked},
	{"check_disabled", level.ErrCheckDisabled},
	{"wrong_level", level.ErrWrongLevel},
	{"no_next_level", level.ErrNoNextLevel},
}

func lookupError(name string) (error, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range namedErrors {
		if n.name == name {
			return n.err, true
		}
	}
	return nil, false
}

// ErrorName returns the script name of a rejection, or "" if it has none.
func ErrorName(err error) string {
	for _, n := range namedErrors {
		if errors.Is(err, n.err) {
			return n.name
		}
	}
	return ""
}
