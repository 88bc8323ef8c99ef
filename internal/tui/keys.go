package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Syllable key.Binding
	Toggle   key.Binding
	Add      key.Binding
	Remove   key.Binding
	Start    key.Binding
	Submit   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "line up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "line down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev word")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next word")),
		Syllable: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next syllable")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle stress")),
		Add:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "add syllable")),
		Remove:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "remove syllable")),
		Start:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "starting scansion")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Syllable, k.Submit, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Syllable, k.Toggle, k.Add, k.Remove},
		{k.Start, k.Submit, k.Help, k.Quit},
	}
}
