package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Increase      key.Binding
	Decrease      key.Binding
	IncreaseLarge key.Binding
	DecreaseLarge key.Binding
	Strategy      key.Binding
	Compare       key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Increase: key.NewBinding(
			key.WithKeys("+", "=", "up"),
			key.WithHelp("+", "budget +$10"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-", "down"),
			key.WithHelp("-", "budget -$10"),
		),
		IncreaseLarge: key.NewBinding(
			key.WithKeys("shift+up", "]"),
			key.WithHelp("shift+↑", "budget +$100"),
		),
		DecreaseLarge: key.NewBinding(
			key.WithKeys("shift+down", "["),
			key.WithHelp("shift+↓", "budget -$100"),
		),
		Strategy: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "strategy"),
		),
		Compare: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "compare"),
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

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Increase, k.Decrease, k.Strategy, k.Compare, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Increase, k.Decrease, k.IncreaseLarge, k.DecreaseLarge},
		{k.Strategy, k.Compare, k.Help, k.Quit},
	}
}
