package main

import (
	"github.com/charmbracelet/bubbles/key"
)

type Keymap struct {
	Quit          key.Binding
	PickContinent key.Binding
	PickCountry   key.Binding
	PickRange     key.Binding
	RangeShorter  key.Binding
	RangeLonger   key.Binding
	PrevTab       key.Binding
	NextTab       key.Binding
	NextTabGroup  key.Binding
	ToggleView    key.Binding
	Where         key.Binding
	ClearWhere    key.Binding
	AddCountry    key.Binding
	JumpToRow     key.Binding
	ExportCSV     key.Binding
	ExportCharts  key.Binding
	CopyCSV       key.Binding
	Reload        key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	RowDown       key.Binding
	RowUp         key.Binding
	JumpToStart   key.Binding
	JumpToEnd     key.Binding
	OpenHelp      key.Binding
}

var Keys = Keymap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	PickContinent: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "select continents"),
	),
	PickCountry: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "select countries (type to search)"),
	),
	PickRange: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "select date range"),
	),
	RangeShorter: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "shorter date range"),
	),
	RangeLonger: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "longer date range"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "previous tab in focused group"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next tab in focused group"),
	),
	NextTabGroup: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "focus next tab group"),
	),
	ToggleView: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "toggle charts / rows"),
	),
	Where: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter rows with an expression, e.g. new_cases > 1000"),
	),
	ClearWhere: key.NewBinding(
		key.WithKeys("F"),
		key.WithHelp("F", "clear expression filter"),
	),
	AddCountry: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "add a country by name"),
	),
	JumpToRow: key.NewBinding(
		key.WithKeys(":"),
		key.WithHelp(":", "jump to row number"),
	),
	ExportCSV: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export filtered CSV"),
	),
	ExportCharts: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export chart PNGs to a directory"),
	),
	CopyCSV: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy filtered CSV to clipboard"),
	),
	Reload: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "retry a failed load"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("ctrl+u/pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("ctrl+d/pgdown", "page down"),
	),
	RowDown: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	RowUp: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	JumpToStart: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "first row"),
	),
	JumpToEnd: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "last row"),
	),
	OpenHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help / keys"),
	),
}

func (k Keymap) Legend() []key.Binding {
	return []key.Binding{
		k.PickContinent,
		k.PickCountry,
		k.PickRange,
		k.RangeShorter,
		k.RangeLonger,
		k.PrevTab,
		k.NextTab,
		k.NextTabGroup,
		k.ToggleView,
		k.Where,
		k.ClearWhere,
		k.AddCountry,
		k.JumpToRow,
		k.ExportCSV,
		k.ExportCharts,
		k.CopyCSV,
		k.Reload,
		k.RowUp,
		k.RowDown,
		k.PageUp,
		k.PageDown,
		k.JumpToStart,
		k.JumpToEnd,
		k.Quit,
	}
}
