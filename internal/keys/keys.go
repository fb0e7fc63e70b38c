// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the viewer.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Jump     key.Binding

	// Actions
	Refresh         key.Binding
	Yank            key.Binding
	ToggleScrollbar key.Binding
	ToggleLogs      key.Binding

	// General
	Help         key.Binding
	Escape       key.Binding
	Quit         key.Binding
	ToggleStatus key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		HalfUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup/b", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f"),
			key.WithHelp("pgdn/f", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first record"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last record"),
		),
		Jump: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "jump to record"),
		),

		// Actions
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh records"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy record ID"),
		),
		ToggleScrollbar: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle scrollbar"),
		),
		ToggleLogs: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "toggle logs"),
		),

		// General
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "go back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ToggleStatus: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle status bar"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.HalfUp, k.HalfDown, k.PageUp, k.PageDown}, // Navigation
		{k.Top, k.Bottom, k.Jump},                                  // Jumps
		{k.Refresh, k.Yank, k.ToggleScrollbar, k.ToggleLogs},       // Actions
		{k.Help, k.ToggleStatus, k.Escape, k.Quit},                 // General
	}
}

// JumpKeyMap defines the keybindings for the jump prompt.
type JumpKeyMap struct {
	Execute key.Binding
	Cancel  key.Binding
}

// DefaultJumpKeyMap returns the keybindings for the jump prompt.
func DefaultJumpKeyMap() JumpKeyMap {
	return JumpKeyMap{
		Execute: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "jump"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
