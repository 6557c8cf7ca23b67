// Package keys defines the key bindings shared by every riceinspect view.
package keys

import "github.com/charmbracelet/bubbles/key"

// CommonKeys are bindings most components understand.
type CommonKeys struct {
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Escape    key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
}

// Common is the shared navigation set.
var Common = CommonKeys{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("↓/j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

// ComponentKeys move focus inside widgets such as pickers and forms.
type ComponentKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
}

// Component is the focus-movement set.
var Component = ComponentKeys{
	Next: key.NewBinding(
		key.WithKeys("tab", "ctrl+n"),
		key.WithHelp("tab", "next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "ctrl+p"),
		key.WithHelp("shift+tab", "prev"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle"),
	),
}

// AppKeys switch between top-level pages.
type AppKeys struct {
	SwitchPage key.Binding
}

// App holds the page-switching bindings.
var App = AppKeys{
	SwitchPage: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "create/history"),
	),
}

// HistoryKeys drive the history table.
type HistoryKeys struct {
	Search      key.Binding
	DateRange   key.Binding
	Clear       key.Binding
	Open        key.Binding
	Toggle      key.Binding
	SelectAll   key.Binding
	Delete      key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	PageSize    key.Binding
	JumpPage    key.Binding
	Refresh     key.Binding
	Export      key.Binding
	RecallPrev  key.Binding
	RecallNext  key.Binding
	SubmitInput key.Binding
}

// History holds the history table bindings.
var History = HistoryKeys{
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search id"),
	),
	DateRange: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "date range"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear filters"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "select"),
	),
	SelectAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "select page"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x", "delete"),
		key.WithHelp("x", "delete selected"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "n"),
		key.WithHelp("→/l", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "p"),
		key.WithHelp("←/h", "prev page"),
	),
	PageSize: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "page size"),
	),
	JumpPage: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "go to page"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "refresh"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export xlsx"),
	),
	RecallPrev: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous id"),
	),
	RecallNext: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next id"),
	),
	SubmitInput: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "search"),
	),
}

// ResultKeys drive the result page.
type ResultKeys struct {
	Back   key.Binding
	Edit   key.Binding
	Report key.Binding
	Reload key.Binding
}

// Result holds the result page bindings.
var Result = ResultKeys{
	Back: key.NewBinding(
		key.WithKeys("esc", "b"),
		key.WithHelp("esc", "back"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Report: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pdf report"),
	),
	Reload: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reload"),
	),
}

// FormKeys drive the create and edit forms.
type FormKeys struct {
	Submit key.Binding
	Cancel key.Binding
}

// Form holds the form bindings.
var Form = FormKeys{
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}
