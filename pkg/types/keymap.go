package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the sidebar. It lives in pkg/types so
// the model, handlers, and help rendering share one definition. The surface
// is fixed; there is deliberately no remapping layer.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	JumpPrev key.Binding // Previous sibling directory, parent at the edge
	JumpNext key.Binding // Next sibling directory, parent at the edge

	// Tree
	Toggle key.Binding

	// File actions
	Preview key.Binding
	Edit    key.Binding
	CopyRel key.Binding
	CopyAbs key.Binding

	// Environment
	Zoom key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the sidebar's fixed keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		JumpPrev: key.NewBinding(
			key.WithKeys("shift+up"),
			key.WithHelp("shift+↑", "prev dir"),
		),
		JumpNext: key.NewBinding(
			key.WithKeys("shift+down"),
			key.WithHelp("shift+↓", "next dir"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "toggle"),
		),
		Preview: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		CopyRel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy rel"),
		),
		CopyAbs: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "copy abs"),
		),
		Zoom: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "zoom"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
