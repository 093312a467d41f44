package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the editor's keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Home   key.Binding
	End    key.Binding
	Switch key.Binding

	// Editing
	Toggle   key.Binding
	Add      key.Binding
	Browse   key.Binding
	Remove   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Dedupe   key.Binding
	Sort     key.Binding
	Filter   key.Binding

	// Views
	Expanded key.Binding
	Copy     key.Binding

	// Persistence
	Save    key.Binding
	SaveAll key.Binding
	Reload  key.Binding
	Elevate key.Binding

	Help key.Binding
	Quit key.Binding

	// Dialogs
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "user/system"),
		),

		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Browse: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "browse"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "remove"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		Dedupe: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "dedupe"),
		),
		Sort: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "sort"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),

		Expanded: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "expanded"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy raw"),
		),

		Save: key.NewBinding(
			key.WithKeys("s", "ctrl+s"),
			key.WithHelp("s", "save"),
		),
		SaveAll: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "save all"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r", "reload"),
		),
		Elevate: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "run as admin"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "ok"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp is the footer line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Switch, k.Toggle, k.Add, k.Remove, k.MoveUp, k.MoveDown, k.Filter, k.Save, k.Help, k.Quit}
}

// FullHelp groups every binding for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End, k.Switch},
		{k.Toggle, k.Add, k.Browse, k.Remove, k.MoveUp, k.MoveDown},
		{k.Dedupe, k.Sort, k.Filter, k.Expanded, k.Copy},
		{k.Save, k.SaveAll, k.Reload, k.Elevate, k.Help, k.Quit},
	}
}
