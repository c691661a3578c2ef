package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines key bindings used across the TUI.
type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	Refresh  key.Binding
	Up       key.Binding
	Down     key.Binding

	// Journal filters
	Instrument  key.Binding
	Direction   key.Binding
	Performance key.Binding
	Search      key.Binding
	From        key.Binding
	To          key.Binding
	Reset       key.Binding
	Expand      key.Binding
	Open        key.Binding

	// Trade actions
	Notes      key.Binding
	Screenshot key.Binding
	Analyze    key.Binding
	Save       key.Binding
	Cancel     key.Binding
}

// DefaultKeyMap provides the default key bindings for the TUI.
var DefaultKeyMap = KeyMap{
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	ShiftTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Refresh:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh")),
	Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
	Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),

	Instrument:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "cycle instrument")),
	Direction:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "cycle direction")),
	Performance: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "cycle performance")),
	Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search notes")),
	From:        key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "from date")),
	To:          key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "to date")),
	Reset:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset filters")),
	Expand:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	Open:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "open in trade tab")),

	Notes:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "edit notes")),
	Screenshot: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "attach screenshot")),
	Analyze:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "AI feedback")),
	Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}
