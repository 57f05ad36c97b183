package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/susops/susops-tray/internal/daemon/state"
)

// KeyMap lists every key the screen reacts to.
type KeyMap struct {
	Start   key.Binding
	Stop    key.Binding
	Restart key.Binding
	TestAll key.Binding
	Up      key.Binding
	Down    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = KeyMap{
	Start: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "start"),
	),
	Stop: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "stop"),
	),
	Restart: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "restart"),
	),
	TestAll: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "test all"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("j/k", "scroll"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/k", "scroll"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// actionKeys maps state-bound actions to their keys, in display order.
var actionKeys = []struct {
	action  state.Action
	binding key.Binding
}{
	{state.ActionStart, keys.Start},
	{state.ActionStop, keys.Stop},
	{state.ActionRestart, keys.Restart},
	{state.ActionTestAll, keys.TestAll},
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Restart, k.TestAll, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Stop, k.Restart, k.TestAll},
		{k.Up, k.Help, k.Quit},
	}
}
