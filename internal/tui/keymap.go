package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts of the browse screen.
type KeyMap struct {
	// Navigation
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding

	// Filters
	Search       key.Binding
	Pending      key.Binding
	Confirmed    key.Binding
	Failed       key.Binding
	DateFrom     key.Binding
	DateTo       key.Binding
	ClearFilters key.Binding

	// Ordering and paging
	CycleSort    key.Binding
	FlipSort     key.Binding
	PageSizeUp   key.Binding
	PageSizeDown key.Binding

	// Actions
	Reload key.Binding
	Export key.Binding
	Create key.Binding

	// Application
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("←/h", "previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("→/l", "next page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last page"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Pending: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "pending"),
		),
		Confirmed: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "confirmed"),
		),
		Failed: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "failed"),
		),
		DateFrom: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "from date"),
		),
		DateTo: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "to date"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),

		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort field"),
		),
		FlipSort: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "sort direction"),
		),
		PageSizeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more per page"),
		),
		PageSizeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "fewer per page"),
		),

		Reload: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "reload"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export xlsx"),
		),
		Create: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new transaction"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.PrevPage, k.NextPage, k.Open, k.Reload, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.PrevPage, k.NextPage, k.FirstPage, k.LastPage},
		{k.Search, k.Pending, k.Confirmed, k.Failed, k.DateFrom, k.DateTo, k.ClearFilters},
		{k.CycleSort, k.FlipSort, k.PageSizeUp, k.PageSizeDown},
		{k.Reload, k.Export, k.Create, k.Help, k.Quit},
	}
}
