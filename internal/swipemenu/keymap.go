package swipemenu

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the widget's key bindings. It implements help.KeyMap.
type KeyMap struct {
	Prev         key.Binding
	Next         key.Binding
	Select       key.Binding // digits 1-9 pick a tab directly
	SwipeBack    key.Binding
	SwipeForward key.Binding
	Focus        key.Binding
}

var _ help.KeyMap = KeyMap{}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev tab"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next tab"),
		),
		Select: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "go to tab"),
		),
		SwipeBack: key.NewBinding(
			key.WithKeys("shift+left", "H"),
			key.WithHelp("H", "swipe back"),
		),
		SwipeForward: key.NewBinding(
			key.WithKeys("shift+right", "L"),
			key.WithHelp("L", "swipe forward"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus tabs/page"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.SwipeBack, k.SwipeForward, k.Focus}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Select},
		{k.SwipeBack, k.SwipeForward, k.Focus},
	}
}
