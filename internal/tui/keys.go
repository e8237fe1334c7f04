package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up            key.Binding
	Down          key.Binding
	NextCard      key.Binding
	PrevCard      key.Binding
	NextHighlight key.Binding
	PrevHighlight key.Binding
	Toggle        key.Binding
	Pick          key.Binding
	Analyze       key.Binding
	Filter        key.Binding
	Export        key.Binding
	Mailto        key.Binding
	NewDraft      key.Binding
	Schools       key.Binding
	Help          key.Binding
	Quit          key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	NextCard: key.NewBinding(
		key.WithKeys("n", "tab"),
		key.WithHelp("n/tab", "next card"),
	),
	PrevCard: key.NewBinding(
		key.WithKeys("N", "shift+tab"),
		key.WithHelp("N/S-tab", "prev card"),
	),
	NextHighlight: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next highlight"),
	),
	PrevHighlight: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "prev highlight"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "expand card"),
	),
	Pick: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "pick school"),
	),
	Analyze: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "analyze"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "cycle filter"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export report"),
	),
	Mailto: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "copy mailto link"),
	),
	NewDraft: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "new draft"),
	),
	Schools: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "target schools"),
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
