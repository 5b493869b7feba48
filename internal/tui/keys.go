package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the shell screen.
type KeyMap struct {
	Submit    key.Binding
	HistPrev  key.Binding
	HistNext  key.Binding
	Complete  key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	ClearView key.Binding
	Quit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		HistPrev: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous"),
		),
		HistNext: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "complete"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		ClearView: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+d", "quit"),
		),
	}
}

// HelpText returns the one-line key summary shown under the prompt.
func (k KeyMap) HelpText() string {
	return "tab complete • ↑/↓ history • pgup/pgdn scroll • ctrl+l clear • ctrl+d quit"
}
