package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Browsing
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	NextGenre key.Binding
	PrevGenre key.Binding
	Filter    key.Binding
	Search    key.Binding
	Refresh   key.Binding

	// Reading
	NextPage key.Binding
	PrevPage key.Binding
	GoToPage key.Binding
	Bookmark key.Binding
	Language key.Binding

	// Global
	Back key.Binding
	Quit key.Binding
	Help key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "previous tab"),
		),
		NextGenre: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next category"),
		),
		PrevGenre: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous category"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Search: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "search"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),

		NextPage: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "previous page"),
		),
		GoToPage: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to page"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bookmark"),
		),
		Language: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "language"),
		),

		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()

// ShortHelp returns the footer bindings for the browse view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.NextTab, k.Filter, k.Search, k.Help, k.Quit}
}

// FullHelp returns the help screen bindings, one column per group
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.NextTab, k.PrevTab, k.NextGenre, k.PrevGenre, k.Filter, k.Search, k.Refresh},
		{k.NextPage, k.PrevPage, k.GoToPage, k.Bookmark, k.Language},
		{k.Back, k.Help, k.Quit},
	}
}

// readerHelp returns the footer bindings for the reader view
func (k KeyMap) readerHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.GoToPage, k.Bookmark, k.Language, k.Back}
}
