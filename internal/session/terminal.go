package session

import (
	"fmt"
	"strconv"
	"strings"

	"cabletrainer/internal/standard"
)

// TerminalKey identifies an LSA terminal: which socket, which row, which
// position in the row.
type TerminalKey struct {
	Socket int
	Row    standard.Row
	Index  int
}

// String renders the key as "socket:row-index", e.g. "1:top-0".
func (k TerminalKey) String() string {
	return fmt.Sprintf("%d:%s-%d", k.Socket, k.Row, k.Index)
}

// Short renders the key without the socket, the form shown next to a socket.
func (k TerminalKey) Short() string {
	return fmt.Sprintf("%s-%d", k.Row, k.Index)
}

// ParseTerminalKey parses "socket:row-index" or "row-index". The short form
// is bound to socket.
func ParseTerminalKey(s string, socket int) (TerminalKey, error) {
	rest := strings.TrimSpace(s)
	if prefix, after, ok := strings.Cut(rest, ":"); ok {
		n, err := strconv.Atoi(prefix)
		if err != nil {
			return TerminalKey{}, fmt.Errorf("%w: %q", ErrInvalidTerminalKey, s)
		}
		socket = n
		rest = after
	}
	row, idx, ok := strings.Cut(rest, "-")
	if !ok {
		return TerminalKey{}, fmt.Errorf("%w: %q", ErrInvalidTerminalKey, s)
	}
	index, err := strconv.Atoi(idx)
	if err != nil {
		return TerminalKey{}, fmt.Errorf("%w: %q", ErrInvalidTerminalKey, s)
	}
	k := TerminalKey{Socket: socket, Row: standard.Row(row), Index: index}
	if _, ok := standard.Expected(k.Row, k.Index); !ok {
		return TerminalKey{}, fmt.Errorf("%w: %q", ErrInvalidTerminalKey, s)
	}
	return k, nil
}

// Terminal is one punch-down position. Assigned is empty while the
// terminal is free.
type Terminal struct {
	Key      TerminalKey
	Expected standard.CoreID
	Assigned standard.CoreID
}

// Empty reports whether no core occupies the terminal.
func (t *Terminal) Empty() bool {
	return t.Assigned == ""
}

// Socket is an LSA block: two rows of four terminals.
type Socket struct {
	ID        int
	Terminals []*Terminal
}

func newSocket(id int) *Socket {
	s := &Socket{ID: id}
	for _, row := range standard.Rows() {
		for i, expected := range standard.Layout(row) {
			s.Terminals = append(s.Terminals, &Terminal{
				Key:      TerminalKey{Socket: id, Row: row, Index: i},
				Expected: expected,
			})
		}
	}
	return s
}

// Terminal returns the terminal at key, or nil.
func (s *Socket) Terminal(key TerminalKey) *Terminal {
	if key.Socket != s.ID {
		return nil
	}
	for _, t := range s.Terminals {
		if t.Key == key {
			return t
		}
	}
	return nil
}
