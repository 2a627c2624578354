package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Missions
	Add       key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	ClearDone key.Binding

	// Pet
	Poke       key.Binding
	Library    key.Binding
	ThemeCycle key.Binding

	// Update notice
	OpenUpdate    key.Binding
	DismissUpdate key.Binding

	// General
	Help key.Binding
	Quit key.Binding
	Back key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),

		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "tab", "enter"),
			key.WithHelp("space", "done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		ClearDone: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear done"),
		),

		Poke: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pet"),
		),
		Library: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "library"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),

		OpenUpdate: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "get update"),
		),
		DismissUpdate: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Poke, k.Library, k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
		{k.Add, k.Toggle, k.Delete, k.ClearDone},
		{k.Poke, k.Library, k.ThemeCycle},
		{k.OpenUpdate, k.DismissUpdate},
		{k.Help, k.Back, k.Quit},
	}
}
