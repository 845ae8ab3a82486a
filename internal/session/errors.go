package session

import "errors"

// Session errors.
var (
	// ErrInvalidTerminalKey is returned when a terminal key cannot be parsed.
	ErrInvalidTerminalKey = errors.New("invalid terminal key")

	// ErrInvalidHelpTier is returned for help tiers outside 1-3.
	ErrInvalidHelpTier = errors.New("help tier must be between 1 and 3")

	// ErrInvalidCable is returned for a cable that does not exist or is not playable.
	ErrInvalidCable = errors.New("cable not playable")
)
