package level

import (
	"errors"

	"cabletrainer/internal/placement"
)

// Controller errors.
var (
	// ErrUnknownLevel is returned for a level number outside the catalogue.
	ErrUnknownLevel = errors.New("unknown level")

	// ErrLevelUnavailable is returned for a catalogued level that cannot be played yet.
	ErrLevelUnavailable = errors.New("level not available yet")

	// ErrLevelLocked is returned under strict progression before the previous level is passed.
	ErrLevelLocked = errors.New("level locked")

	// ErrNotStarted is returned for inputs before StartGame.
	ErrNotStarted = errors.New("game not started")

	// ErrAlreadyStarted is returned when StartGame is called twice.
	ErrAlreadyStarted = errors.New("game already started")

	// ErrAlreadyChecked is returned for inputs after the attempt was checked.
	ErrAlreadyChecked = errors.New("attempt already checked")

	// ErrCheckDisabled is returned when checking an incomplete attempt.
	ErrCheckDisabled = errors.New("attempt not complete")

	// ErrWrongLevel is returned for an input the active level does not accept.
	ErrWrongLevel = errors.New("input not accepted on this level")

	// ErrNoNextLevel is returned by Advance when no level was unlocked.
	ErrNoNextLevel = errors.New("no next level unlocked")
)

var messages = []struct {
	err error
	msg string
}{
	{ErrUnknownLevel, "There is no such level."},
	{ErrLevelUnavailable, "This level is coming soon."},
	{ErrLevelLocked, "Pass the previous level first."},
	{ErrNotStarted, "Press start first."},
	{ErrAlreadyStarted, "The timer is already running."},
	{ErrAlreadyChecked, "This attempt is finished. Reset to try again."},
	{ErrCheckDisabled, "Finish the wiring before checking."},
	{ErrWrongLevel, "That does not work on this level."},
	{ErrNoNextLevel, "No further level unlocked."},
}

// Message returns the status line for any controller or placement rejection.
func Message(err error) string {
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return placement.Message(err)
}
