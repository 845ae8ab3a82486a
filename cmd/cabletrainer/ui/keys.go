package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the trainer's key bindings.
type KeyMap struct {
	Start  key.Binding
	Core   key.Binding
	Move   key.Binding
	Punch  key.Binding
	Undo   key.Binding
	Cable  key.Binding
	PickUp key.Binding
	Close  key.Binding
	Check  key.Binding
	Hint   key.Binding
	Reset  key.Binding
	Level  key.Binding
	Next   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Core:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"), key.WithHelp("1-8", "pick core")),
		Move:   key.NewBinding(key.WithKeys("up", "down", "left", "right", "h", "j", "k", "l"), key.WithHelp("←↑↓→", "move")),
		Punch:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "place")),
		Undo:   key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
		Cable:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch cable")),
		PickUp: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pick up cable")),
		Close:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "close cover")),
		Check:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "check")),
		Hint:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "hint")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Level:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "next level in list")),
		Next:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "advance")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Check, k.Hint, k.Reset, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Check, k.Hint, k.Reset},
		{k.Core, k.Move, k.Punch, k.Undo, k.Cable},
		{k.PickUp, k.Close},
		{k.Level, k.Next, k.Quit},
	}
}
