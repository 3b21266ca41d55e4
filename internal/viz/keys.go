package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle  key.Binding
	New     key.Binding
	Reset   key.Binding
	Smaller key.Binding
	Larger  key.Binding
	Slower  key.Binding
	Faster  key.Binding
	Theme   key.Binding
	Explain key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "start/pause"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new array"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Smaller: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "fewer bars"),
		),
		Larger: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "more bars"),
		),
		Slower: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "slower"),
		),
		Faster: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "faster"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle theme"),
		),
		Explain: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "explain algorithm"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.New, k.Reset, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.New, k.Reset},
		{k.Smaller, k.Larger, k.Slower, k.Faster},
		{k.Theme, k.Explain, k.Help, k.Quit},
	}
}
