package ui

import "github.com/charmbracelet/bubbles/key"

// searchKeyMap holds the bindings of a location search view. Printable keys
// belong to the text input, so nothing here may bind a bare letter.
type searchKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	CycleTheme key.Binding
}

func defaultSearchKeyMap() searchKeyMap {
	return searchKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "Previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "Next"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "Quit"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "Cycle theme"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k searchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.CycleTheme, k.Cancel}
}

// FullHelp returns key bindings for the full help view.
func (k searchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Confirm},
		{k.CycleTheme, k.Cancel},
	}
}

// itineraryKeyMap holds the bindings of the itinerary view.
type itineraryKeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
}

func defaultItineraryKeyMap() itineraryKeyMap {
	return itineraryKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k itineraryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k itineraryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.CycleTheme},
		{k.Help, k.Quit},
	}
}
