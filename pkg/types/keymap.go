package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the interactive browser, shared by the
// navigator and the terminal front-end.
type KeyMap struct {
	// Navigation
	Up        key.Binding
	Down      key.Binding
	DrillUp   key.Binding // go to the parent directory
	DrillDown key.Binding // open the selected directory

	// Ordering
	ToggleSort key.Binding

	// General
	Quit key.Binding
}

// DefaultKeyMap returns the vi-like default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "down"),
		),
		DrillUp: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "parent"),
		),
		DrillDown: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		ToggleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.DrillDown, k.DrillUp, k.ToggleSort, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up},
		{k.DrillDown, k.DrillUp},
		{k.ToggleSort, k.Quit},
	}
}
