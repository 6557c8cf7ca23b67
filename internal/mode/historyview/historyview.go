// Package historyview is the inspection history page: search by id, filter
// by date range, page through results, select rows and delete them in bulk.
// All query state lives in a history.Coordinator; this package only turns
// keys into coordinator events and runs the requests it hands back.
package historyview

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/riceinspect/internal/export"
	"github.com/zjrosen/riceinspect/internal/history"
	"github.com/zjrosen/riceinspect/internal/inspection"
	"github.com/zjrosen/riceinspect/internal/keys"
	"github.com/zjrosen/riceinspect/internal/log"
	"github.com/zjrosen/riceinspect/internal/mode"
	"github.com/zjrosen/riceinspect/internal/mode/shared"
	"github.com/zjrosen/riceinspect/internal/ui/shared/confirm"
	"github.com/zjrosen/riceinspect/internal/ui/shared/picker"
	"github.com/zjrosen/riceinspect/internal/ui/shared/recall"
	"github.com/zjrosen/riceinspect/internal/ui/shared/toaster"
	"github.com/zjrosen/riceinspect/internal/ui/styles"
)

type focus int

const (
	focusTable focus = iota
	focusSearch
	focusFrom
	focusTo
	focusJump
)

// Messages carrying async results back into Update.
type (
	responseMsg struct{ resp history.Response }

	exportedMsg struct {
		path  string
		count int
		err   error
	}
)

const (
	noticeNothingSelected = "Select records to delete first"
	noticeNothingToExport = "Nothing to export"
	noticeBadPage         = "Page must be a whole number"
)

// Model is the history page state.
type Model struct {
	services mode.Services
	coord    history.Coordinator
	cursor   int
	focus    focus

	search textinput.Model
	from   textinput.Model
	to     textinput.Model
	jump   textinput.Model

	rangeErr string
	jumpErr  string

	confirm    confirm.Model
	picker     picker.Model
	showPicker bool

	spinner spinner.Model
	help    help.Model

	width, height int
	showStatusBar bool
}

// New builds the page. Call Mount to issue the first fetch.
func New(services mode.Services) Model {
	pageSize := history.DefaultPageSize
	showStatusBar := true
	if services.Config != nil {
		pageSize = services.Config.History.PageSize
		showStatusBar = services.Config.UI.ShowStatusBar
	}
	if services.Recall == nil {
		services.Recall = recall.New(recall.DefaultSize)
	}

	search := textinput.New()
	search.Placeholder = "Search by Inspection ID"
	search.Prompt = ""
	search.Width = 36

	from := textinput.New()
	from.Placeholder = "YYYY-MM-DD HH:MM:SS"
	from.Prompt = ""
	from.CharLimit = len(inspection.DateTimeLayout)
	from.Width = len(inspection.DateTimeLayout)

	to := from
	to.Placeholder = from.Placeholder

	jump := textinput.New()
	jump.Placeholder = "page"
	jump.Prompt = ""
	jump.CharLimit = 6
	jump.Width = 6

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.AccentColor)

	return Model{
		services: services,
		coord:    history.New(pageSize),
		search:   search,
		from:     from,
		to:       to,
		jump:     jump,
		confirm: confirm.New(confirm.Config{
			Title:       "Delete records",
			ConfirmText: "Delete",
			Danger:      true,
		}),
		spinner:       s,
		help:          help.New(),
		showStatusBar: showStatusBar,
	}
}

// Mount issues the initial unfiltered fetch.
func (m Model) Mount() (Model, tea.Cmd) {
	var req *history.Request
	m.coord, req = m.coord.Load()
	return m, tea.Batch(m.spinner.Tick, m.run(req))
}

// Refresh re-fetches the current page, e.g. when returning from an edit.
func (m Model) Refresh() (Model, tea.Cmd) {
	var req *history.Request
	m.coord, req = m.coord.Refresh()
	return m, m.run(req)
}

// SetSize handles terminal resize.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.confirm.SetSize(width, height)
	m.picker = m.picker.SetSize(width, height)
	m.help.Width = width
	return m
}

// Coordinator exposes the query state for rendering and tests.
func (m Model) Coordinator() history.Coordinator {
	return m.coord
}

// InputActive reports whether keys are being captured by an input or
// overlay, so the app must not treat them as global shortcuts.
func (m Model) InputActive() bool {
	return m.focus != focusTable || m.showPicker || m.confirm.IsVisible()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirm.IsVisible() {
		var cmd tea.Cmd
		var result confirm.Result
		m.confirm, cmd, result = m.confirm.Update(msg)
		switch result {
		case confirm.ResultConfirm:
			var req *history.Request
			m.coord, req = m.coord.DeleteSelected()
			return m, m.run(req)
		case confirm.ResultCancel:
			return m, nil
		}
		if cmd != nil {
			return m, cmd
		}
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, nil
		}
	}

	switch msg := msg.(type) {
	case responseMsg:
		return m.applyResponse(msg.resp)

	case exportedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatExport, "history export failed", msg.err, "path", msg.path)
			return m, mode.Toast("Export failed: "+msg.err.Error(), toaster.StyleError)
		}
		return m, mode.Toast(fmt.Sprintf("Exported %d records to %s", msg.count, msg.path), toaster.StyleSuccess)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case picker.SelectMsg:
		m.showPicker = false
		size, err := strconv.Atoi(msg.Option.Value)
		if err != nil {
			return m, nil
		}
		var req *history.Request
		m.coord, req = m.coord.PageChange(1, size)
		return m, m.run(req)

	case picker.CancelMsg:
		m.showPicker = false
		return m, nil

	case tea.KeyMsg:
		if m.showPicker {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		switch m.focus {
		case focusSearch:
			return m.handleSearchKey(msg)
		case focusFrom, focusTo:
			return m.handleRangeKey(msg)
		case focusJump:
			return m.handleJumpKey(msg)
		default:
			return m.handleTableKey(msg)
		}
	}

	// Cursor blink and similar input-internal messages.
	var cmd tea.Cmd
	switch m.focus {
	case focusSearch:
		m.search, cmd = m.search.Update(msg)
	case focusFrom:
		m.from, cmd = m.from.Update(msg)
	case focusTo:
		m.to, cmd = m.to.Update(msg)
	case focusJump:
		m.jump, cmd = m.jump.Update(msg)
	}
	return m, cmd
}

func (m Model) applyResponse(resp history.Response) (Model, tea.Cmd) {
	var next *history.Request
	m.coord, next = m.coord.Apply(resp)

	cmds := []tea.Cmd{m.run(next)}
	switch n := m.coord.Notice(); n.Level {
	case history.NoticeSuccess:
		cmds = append(cmds, mode.Toast(n.Text, toaster.StyleSuccess))
	case history.NoticeError:
		cmds = append(cmds, mode.Toast(n.Text, toaster.StyleError))
	}
	m.clampCursor()
	return m, tea.Batch(cmds...)
}

func (m Model) handleTableKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	items := m.coord.State().Items
	var req *history.Request

	switch {
	case key.Matches(msg, keys.Common.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Common.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.History.Search):
		m.focus = focusSearch
		m.search.CursorEnd()
		m.search.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.History.DateRange):
		m.focus = focusFrom
		m.from.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.History.Clear):
		m.search.SetValue("")
		m.from.SetValue("")
		m.to.SetValue("")
		m.rangeErr = ""
		m.cursor = 0
		m.coord, req = m.coord.Clear()
	case key.Matches(msg, keys.History.Open):
		if r, ok := m.current(); ok {
			id := r.ID
			return m, func() tea.Msg { return mode.OpenResultMsg{ID: id} }
		}
	case key.Matches(msg, keys.History.Toggle):
		if r, ok := m.current(); ok {
			m.coord = m.coord.Toggle(r.ID)
		}
	case key.Matches(msg, keys.History.SelectAll):
		if m.coord.AllSelected() {
			m.coord = m.coord.ClearSelection()
		} else {
			m.coord = m.coord.SelectAll()
		}
	case key.Matches(msg, keys.History.Delete):
		n := len(m.coord.Selected())
		if n == 0 {
			return m, mode.Toast(noticeNothingSelected, toaster.StyleWarn)
		}
		if m.coord.Deleting() {
			return m, nil
		}
		m.confirm.ShowMessage(fmt.Sprintf("Delete %d selected record(s)? This cannot be undone.", n))
	case key.Matches(msg, keys.History.NextPage):
		m.coord, req = m.coord.NextPage()
	case key.Matches(msg, keys.History.PrevPage):
		m.coord, req = m.coord.PrevPage()
	case key.Matches(msg, keys.History.PageSize):
		if m.coord.State().Filter.Kind() == history.FilterByID {
			return m, nil
		}
		m.picker = m.pageSizePicker()
		m.showPicker = true
	case key.Matches(msg, keys.History.JumpPage):
		if m.coord.State().Filter.Kind() == history.FilterByID {
			return m, nil
		}
		m.focus = focusJump
		m.jump.SetValue("")
		m.jumpErr = ""
		m.jump.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.History.Refresh):
		m.coord, req = m.coord.Refresh()
	case key.Matches(msg, keys.History.Export):
		return m, m.exportCmd()
	case key.Matches(msg, keys.Common.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, m.run(req)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.History.SubmitInput):
		value := m.search.Value()
		m.services.Recall.Add(value)
		m.blurAll()
		m.cursor = 0
		var req *history.Request
		m.coord, req = m.coord.SetSearchID(value).Search()
		return m, tea.Batch(m.run(req), m.saveRecallCmd())
	case key.Matches(msg, keys.Common.Escape):
		m.services.Recall.Reset()
		m.blurAll()
		return m, nil
	case key.Matches(msg, keys.History.RecallPrev):
		m.search.SetValue(m.services.Recall.Previous(m.search.Value()))
		m.search.CursorEnd()
		m.coord = m.coord.SetSearchID(m.search.Value())
		return m, nil
	case key.Matches(msg, keys.History.RecallNext):
		m.search.SetValue(m.services.Recall.Next(m.search.Value()))
		m.search.CursorEnd()
		m.coord = m.coord.SetSearchID(m.search.Value())
		return m, nil
	}

	m.services.Recall.Reset()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.coord = m.coord.SetSearchID(m.search.Value())
	return m, cmd
}

func (m Model) handleRangeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.History.SubmitInput):
		from, to, err := inspection.ParseRange(m.from.Value(), m.to.Value(), m.services.Location())
		if err != nil {
			m.rangeErr = err.Error()
			var verr *inspection.ValidationError
			if errors.As(err, &verr) {
				m.rangeErr = verr.Message("dateRange")
			}
			return m, nil
		}
		var r *history.DateRange
		if from != nil {
			r = &history.DateRange{From: *from, To: *to}
		}
		m.rangeErr = ""
		m.blurAll()
		m.cursor = 0
		var req *history.Request
		m.coord, req = m.coord.SetDateRange(r).Search()
		return m, m.run(req)
	case key.Matches(msg, keys.Common.Escape):
		m.blurAll()
		return m, nil
	case key.Matches(msg, keys.Component.Next), key.Matches(msg, keys.Component.Prev):
		if m.focus == focusFrom {
			m.from.Blur()
			m.focus = focusTo
			m.to.Focus()
		} else {
			m.to.Blur()
			m.focus = focusFrom
			m.from.Focus()
		}
		return m, textinput.Blink
	}

	m.rangeErr = ""
	var cmd tea.Cmd
	if m.focus == focusFrom {
		m.from, cmd = m.from.Update(msg)
	} else {
		m.to, cmd = m.to.Update(msg)
	}
	return m, cmd
}

// handleJumpKey reads a page number. Numbers outside the known pages are
// clamped to the first or last page.
func (m Model) handleJumpKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.History.SubmitInput):
		page, err := strconv.Atoi(strings.TrimSpace(m.jump.Value()))
		if err != nil {
			m.jumpErr = noticeBadPage
			return m, nil
		}
		page = min(max(page, 1), m.coord.PageCount())
		m.blurAll()
		m.cursor = 0
		var req *history.Request
		m.coord, req = m.coord.PageChange(page, m.coord.State().PageSize)
		return m, m.run(req)
	case key.Matches(msg, keys.Common.Escape):
		m.blurAll()
		return m, nil
	}

	m.jumpErr = ""
	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(msg)
	return m, cmd
}

func (m *Model) blurAll() {
	m.focus = focusTable
	m.jumpErr = ""
	m.search.Blur()
	m.from.Blur()
	m.to.Blur()
	m.jump.Blur()
}

func (m Model) current() (inspection.Record, bool) {
	items := m.coord.State().Items
	if m.cursor >= 0 && m.cursor < len(items) {
		return items[m.cursor], true
	}
	return inspection.Record{}, false
}

func (m *Model) clampCursor() {
	n := len(m.coord.State().Items)
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m Model) pageSizePicker() picker.Model {
	options, selected := shared.PageSizeOptions(m.coord.State().PageSize)
	return picker.New(picker.Config{
		Title:    "Page size",
		Options:  options,
		Selected: selected,
	}).SetSize(m.width, m.height)
}

// run executes req in a command. A nil req yields a nil command.
func (m Model) run(req *history.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	r := *req
	ctx := m.services.Context()
	client := m.services.Client
	return func() tea.Msg {
		return responseMsg{resp: r.Run(ctx, client)}
	}
}

func (m Model) saveRecallCmd() tea.Cmd {
	path := m.services.RecallPath
	list := m.services.Recall
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		if err := recall.Save(path, list); err != nil {
			log.ErrorErr(log.CatUI, "saving search recall", err, "path", path)
		}
		return nil
	}
}

func (m Model) exportCmd() tea.Cmd {
	items := slices.Clone(m.coord.State().Items)
	if len(items) == 0 {
		return mode.Toast(noticeNothingToExport, toaster.StyleWarn)
	}
	dir := "."
	if m.services.Config != nil && m.services.Config.Export.Dir != "" {
		dir = m.services.Config.Export.Dir
	}
	path := filepath.Join(dir, export.FileName("history", "xlsx", m.services.Clock()))
	return func() tea.Msg {
		err := export.ToFile(path, func(w io.Writer) error {
			return export.WriteHistoryXLSX(w, items)
		})
		return exportedMsg{path: path, count: len(items), err: err}
	}
}
