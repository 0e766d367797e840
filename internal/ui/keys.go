package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap lists the bindings shown in the footer. Input itself is handled by the input modes.
type keyMap struct {
	Move     key.Binding
	Toggle   key.Binding
	Range    key.Binding
	Clear    key.Binding
	Search   key.Binding
	Sort     key.Binding
	Category key.Binding
	Export   key.Binding
	Tasks    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Move: key.NewBinding(
			key.WithKeys("up", "down", "j", "k"),
			key.WithHelp("↑/↓", "move"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Range: key.NewBinding(
			key.WithKeys("shift+up", "shift+down", "v"),
			key.WithHelp("shift+↑/↓", "range"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "category"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Tasks: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tasks"),
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
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Toggle, k.Range, k.Search, k.Sort, k.Export, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Toggle, k.Range, k.Clear},
		{k.Search, k.Sort, k.Category},
		{k.Export, k.Tasks, k.Help, k.Quit},
	}
}

// withSelection enables the bindings that need a selection
func (k keyMap) withSelection(selected bool) keyMap {
	k.Export.SetEnabled(selected)
	k.Clear.SetEnabled(selected)
	return k
}
