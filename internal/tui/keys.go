package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings of the fetch screen.
type KeyMap struct {
	Send  key.Binding
	Abort key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("enter/s", "send request"),
		),
		Abort: key.NewBinding(
			key.WithKeys("a", "esc"),
			key.WithHelp("a/esc", "abort request"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Abort, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.Abort},
		{k.Help, k.Quit},
	}
}
