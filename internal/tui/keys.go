package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the preview.
type KeyMap struct {
	// Overlays
	Info     key.Binding
	Success  key.Binding
	Warning  key.Binding
	Error    key.Binding
	Snackbar key.Binding

	// Actions on the newest overlay
	Action   key.Binding
	Click    key.Binding
	Dismiss  key.Binding
	Copy     key.Binding
	CloseAll key.Binding

	Placement key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Info, k.Snackbar, k.Action, k.CloseAll, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Info, k.Success, k.Warning, k.Error},
		{k.Snackbar, k.Action, k.Placement},
		{k.Click, k.Dismiss, k.Copy, k.CloseAll},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Info: key.NewBinding(
			key.WithKeys("t", "i"),
			key.WithHelp("t", "info toast"),
		),
		Success: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "success toast"),
		),
		Warning: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "warning toast"),
		),
		Error: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "error toast"),
		),
		Snackbar: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "snackbar"),
		),
		Action: key.NewBinding(
			key.WithKeys("a", "enter"),
			key.WithHelp("a", "press action"),
		),
		Click: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "click newest"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d", "backspace"),
			key.WithHelp("d", "close newest"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy message"),
		),
		CloseAll: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close all"),
		),
		Placement: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "cycle placement"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
