package components

import "github.com/charmbracelet/bubbles/key"

// SavedListKeyMap defines key bindings for the saved movies list
type SavedListKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Home   key.Binding
	End    key.Binding
	Escape key.Binding
	Filter key.Binding
}

// DefaultSavedListKeyMap returns the default saved list key bindings
func DefaultSavedListKeyMap() SavedListKeyMap {
	return SavedListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
	}
}

// SavedListKeys is the global saved list key map
var SavedListKeys = DefaultSavedListKeyMap()
