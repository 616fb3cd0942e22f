package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Next       key.Binding
	Prev       key.Binding
	Jump       key.Binding
	NudgeLeft  key.Binding
	NudgeRight key.Binding
	Down       key.Binding
	Up         key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:       key.NewBinding(key.WithKeys("right", "tab"), key.WithHelp("→", "next")),
		Prev:       key.NewBinding(key.WithKeys("left", "shift+tab"), key.WithHelp("←", "prev")),
		Jump:       key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump")),
		NudgeLeft:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h/l", "drag")),
		NudgeRight: key.NewBinding(key.WithKeys("l")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/k", "wheel")),
		Up:         key.NewBinding(key.WithKeys("up", "k")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpLine renders the bindings that carry help text.
func (k keyMap) helpLine() string {
	var parts []string
	for _, b := range []key.Binding{k.Next, k.Prev, k.Jump, k.NudgeLeft, k.Down, k.Quit} {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
