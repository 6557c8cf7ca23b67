package historyview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/riceinspect/internal/history"
	"github.com/zjrosen/riceinspect/internal/inspection"
	"github.com/zjrosen/riceinspect/internal/keys"
	"github.com/zjrosen/riceinspect/internal/ui/styles"
)

// column widths; the note column takes what is left.
const (
	colCheck    = 4
	colDate     = 20
	colID       = 38
	colName     = 18
	colStandard = 20
	minNote     = 8
)

// keyMap adapts the history bindings to bubbles/help.
type keyMap struct{}

func (keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		keys.History.Search, keys.History.DateRange, keys.History.Open,
		keys.History.Toggle, keys.History.Delete, keys.Common.Help,
	}
}

func (keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Common.Up, keys.Common.Down, keys.History.Open, keys.History.Toggle, keys.History.SelectAll},
		{keys.History.Search, keys.History.DateRange, keys.History.Clear, keys.History.Refresh},
		{keys.History.NextPage, keys.History.PrevPage, keys.History.JumpPage, keys.History.PageSize},
		{keys.History.Delete, keys.History.Export, keys.App.SwitchPage, keys.Common.Help},
	}
}

// View renders the page.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Inspection History"))
	b.WriteString("\n\n")
	b.WriteString(m.renderInputs())
	b.WriteString("\n")
	if m.rangeErr != "" {
		b.WriteString(styles.ErrorStyle.Render(m.rangeErr))
		b.WriteString("\n")
	}
	if m.focus == focusJump {
		b.WriteString(styles.LabelStyle.Render("Go to page ") + styles.FocusedInputStyle.Render(m.jump.View()))
		b.WriteString("\n")
		if m.jumpErr != "" {
			b.WriteString(styles.ErrorStyle.Render(m.jumpErr))
			b.WriteString("\n")
		}
	}
	if m.showStatusBar {
		b.WriteString(m.renderStatus())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderTable())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(keyMap{}))

	view := b.String()
	if m.showPicker {
		view = m.picker.Overlay(view)
	}
	if m.confirm.IsVisible() {
		view = m.confirm.Overlay(view)
	}
	return view
}

func (m Model) renderInputs() string {
	box := func(label string, f focus, v string) string {
		style := styles.BlurredInputStyle
		if m.focus == f {
			style = styles.FocusedInputStyle
		}
		return lipgloss.JoinVertical(lipgloss.Left, styles.LabelStyle.Render(label), style.Render(v))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom,
		box("Search", focusSearch, m.search.View()), " ",
		box("From", focusFrom, m.from.View()), " ",
		box("To", focusTo, m.to.View()),
	)
}

func (m Model) renderStatus() string {
	st := m.coord.State()
	parts := []string{
		"Filter: " + st.Filter.Label(),
		m.coord.Summary(),
	}
	if st.Filter.Kind() != history.FilterByID {
		parts = append(parts,
			fmt.Sprintf("Page %d/%d", st.Page, m.coord.PageCount()),
			fmt.Sprintf("%d / page", st.PageSize),
		)
	}
	if n := len(m.coord.Selected()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	line := strings.Join(parts, " · ")
	if m.coord.Loading() || m.coord.Deleting() {
		line = m.spinner.View() + " " + line
	}
	return styles.StatusBarStyle.Render(line)
}

func (m Model) noteWidth() int {
	used := colCheck + colDate + colID + colName + colStandard
	return max(m.width-used, minNote)
}

func (m Model) renderTable() string {
	noteW := m.noteWidth()
	cell := func(s string, w int) string {
		s = ansi.Truncate(s, w-1, "…")
		return s + strings.Repeat(" ", max(w-ansi.StringWidth(s), 0))
	}

	check := "[ ]"
	if m.coord.AllSelected() {
		check = "[x]"
	}
	header := cell(check, colCheck) +
		cell("Create Date", colDate) +
		cell("Inspection ID", colID) +
		cell("Name", colName) +
		cell("Standard", colStandard) +
		cell("Note", noteW)

	lines := []string{styles.TableHeaderStyle.Render(header)}
	items := m.coord.State().Items
	if len(items) == 0 {
		lines = append(lines, styles.MutedStyle.Render("No data"))
		return strings.Join(lines, "\n")
	}
	for i, r := range items {
		lines = append(lines, m.renderRow(i, r, cell, noteW))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(i int, r inspection.Record, cell func(string, int) string, noteW int) string {
	check := "[ ]"
	if m.coord.IsSelected(r.ID) {
		check = styles.SelectionIndicatorStyle.Render("[x]")
	}
	row := cell(check, colCheck) +
		cell(inspection.FormatTime(r.CreatedAt), colDate) +
		cell(r.ID, colID) +
		cell(r.Name, colName) +
		cell(r.StandardLabel(), colStandard) +
		cell(r.NoteLabel(), noteW)
	if i == m.cursor && m.focus == focusTable {
		return styles.CursorRowStyle.Render(row)
	}
	return row
}
