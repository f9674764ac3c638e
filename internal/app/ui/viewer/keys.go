package viewer

import (
	"github.com/charmbracelet/bubbles/key"

	"logviewer/internal/app/ui/components"
)

// KeyMap defines the key bindings for all viewer screens
type KeyMap struct {
	components.KeyMap
	NextField key.Binding
	PrevField key.Binding
	Toggle    key.Binding
	Refresh   key.Binding
	Logout    key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	base := components.DefaultKeyMap()

	base.Confirm.SetHelp("enter", "view logs")

	return KeyMap{
		KeyMap: base,
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "expand"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refetch"),
		),
		Logout: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "logout"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
	}
}

// loginHelp lists the bindings shown on the login form
func (k KeyMap) loginHelp() []key.Binding {
	submit := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "login"))
	quit := k.ForceQuit
	quit.SetHelp("ctrl+c", "quit")

	return []key.Binding{k.NextField, submit, quit}
}

// selectionHelp lists the bindings shown on the user selection
func (k KeyMap) selectionHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Logout, k.Quit}
}

// viewingHelp lists the bindings shown on the log table
func (k KeyMap) viewingHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Refresh, k.Back, k.Quit}
}

// alertHelp lists the bindings accepted while an alert is shown
func (k KeyMap) alertHelp() []key.Binding {
	dismiss := key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter/esc", "dismiss"))

	return []key.Binding{dismiss, k.ForceQuit}
}
