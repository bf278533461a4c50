package ticketui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the ticket TUI. Bindings that are plain
// letters only fire while the ticket list has focus; text fields receive
// them as input otherwise.
type KeyMap struct {
	// Focus movement between regions.
	NextField key.Binding
	PrevField key.Binding

	// List navigation.
	Up   key.Binding
	Down key.Binding

	// List actions.
	CycleStatus    key.Binding // Advance the selected ticket's status.
	FilterCategory key.Binding
	FilterPriority key.Binding
	FilterStatus   key.Binding
	FilterClear    key.Binding
	Search         key.Binding // Jump to the search box.
	Refresh        key.Binding

	// Form actions.
	CycleOption key.Binding // Advance category or priority in the form.
	Submit      key.Binding

	// Alert acknowledgement.
	Dismiss key.Binding

	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-Tab", "previous field"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	CycleStatus: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "cycle status"),
	),
	FilterCategory: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "filter category"),
	),
	FilterPriority: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "filter priority"),
	),
	FilterStatus: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter status"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear filters"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "refresh"),
	),
	CycleOption: key.NewBinding(
		key.WithKeys(" ", "right", "l"),
		key.WithHelp("Space", "next option"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "submit ticket"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("enter", "esc"),
		key.WithHelp("Enter", "dismiss"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}

// ShortHelp returns the bindings shown in the footer.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		keys.NextField, keys.Up, keys.Down, keys.CycleStatus,
		keys.FilterCategory, keys.FilterPriority, keys.FilterStatus,
		keys.Search, keys.Submit, keys.Quit,
	}
}
