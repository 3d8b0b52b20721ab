package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Quit  key.Binding
	Tabs  [tabCount]key.Binding
}

func newKeyMap() keyMap {
	km := keyMap{
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "move up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "move down")),
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "focus list")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "focus content")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	names := [tabCount]string{"1", "2", "3", "4", "5"}
	for i, n := range names {
		km.Tabs[i] = key.NewBinding(key.WithKeys(n))
	}
	return km
}
