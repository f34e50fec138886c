package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the fact browser
type KeyMap struct {
	Next         key.Binding
	NextCategory key.Binding
	Categories   []key.Binding // Index i selects the i-th category
	Quit         key.Binding
}

// DefaultKeyMap is the built-in key binding set
var DefaultKeyMap = KeyMap{
	Next: key.NewBinding(
		key.WithKeys("n", " ", "right", "l"),
		key.WithHelp("n/space/→", "next fact"),
	),
	NextCategory: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next category"),
	),
	Categories: []key.Binding{
		key.NewBinding(key.WithKeys("1")),
		key.NewBinding(key.WithKeys("2")),
		key.NewBinding(key.WithKeys("3")),
		key.NewBinding(key.WithKeys("4")),
		key.NewBinding(key.WithKeys("5")),
		key.NewBinding(key.WithKeys("6")),
		key.NewBinding(key.WithKeys("7")),
		key.NewBinding(key.WithKeys("8")),
		key.NewBinding(key.WithKeys("9")),
	},
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}
