// Package app is the root Bubble Tea model. It owns page routing, the quit
// confirmation, toasts and the service-unreachable state; the pages under
// internal/mode do the rest.
package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/riceinspect/internal/keys"
	"github.com/zjrosen/riceinspect/internal/log"
	"github.com/zjrosen/riceinspect/internal/mode"
	"github.com/zjrosen/riceinspect/internal/mode/historyview"
	"github.com/zjrosen/riceinspect/internal/mode/inspectionform"
	"github.com/zjrosen/riceinspect/internal/mode/result"
	"github.com/zjrosen/riceinspect/internal/ui/shared/confirm"
	"github.com/zjrosen/riceinspect/internal/ui/shared/formmodal"
	"github.com/zjrosen/riceinspect/internal/ui/shared/modal"
	"github.com/zjrosen/riceinspect/internal/ui/shared/picker"
	"github.com/zjrosen/riceinspect/internal/ui/shared/toaster"
	"github.com/zjrosen/riceinspect/internal/ui/styles"
	"github.com/zjrosen/riceinspect/internal/ui/unreachable"
)

// Page identifies the visible page.
type Page int

const (
	PageCreate Page = iota
	PageHistory
	PageResult
	PageEdit
)

func (p Page) String() string {
	switch p {
	case PageHistory:
		return "history"
	case PageResult:
		return "result"
	case PageEdit:
		return "edit"
	default:
		return "create"
	}
}

// headerLines is the height of the tab bar.
const headerLines = 2

// Model is the application state.
type Model struct {
	services mode.Services
	page     Page

	create  inspectionform.Model
	history historyview.Model
	result  result.Model
	edit    inspectionform.Model

	// Pages are mounted lazily; history keeps its state once mounted.
	historyMounted bool
	resultMounted  bool
	editMounted    bool

	offline     bool
	unreachable unreachable.Model

	toaster toaster.Model
	quit    confirm.Model

	width, height int
}

// New builds the app on the create page.
func New(services mode.Services) Model {
	return Model{
		services: services,
		page:     PageCreate,
		create:   inspectionform.NewCreate(services),
		history:  historyview.New(services),
		toaster:  toaster.New(),
		quit:     confirm.Quit(),
	}
}

// Page returns the visible page.
func (m Model) Page() Page { return m.page }

// Offline reports whether the unreachable state is shown.
func (m Model) Offline() bool { return m.offline }

// Init mounts the create page, which also probes the service.
func (m Model) Init() tea.Cmd {
	var cmd tea.Cmd
	m.create, cmd = m.create.Mount()
	return cmd
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case mode.ShowToastMsg:
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(msg.Message, msg.Style)
		return m, cmd

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case mode.ServiceUnreachableMsg:
		reason := ""
		if msg.Err != nil {
			reason = msg.Err.Error()
		}
		baseURL := ""
		if m.services.Config != nil {
			baseURL = m.services.Config.API.BaseURL
		}
		log.Warn(log.CatUI, "record service unreachable", "base_url", baseURL, "error", reason)
		m.offline = true
		m.unreachable = unreachable.New(baseURL, reason).SetSize(m.width, m.height)
		return m, nil

	case unreachable.RetryMsg:
		m.offline = false
		return m.openCreate()

	case mode.OpenCreateMsg:
		return m.openCreate()

	case mode.OpenHistoryMsg:
		return m.openHistory()

	case mode.OpenResultMsg:
		return m.openResult(msg.ID, msg.Notice)

	case mode.OpenEditMsg:
		return m.openEdit(msg.ID)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case modal.SubmitMsg, modal.CancelMsg:
		if m.quit.IsVisible() {
			return m.updateQuit(msg)
		}
		return m.updateActive(msg)

	case picker.SelectMsg, picker.CancelMsg, formmodal.SubmitMsg, formmodal.CancelMsg:
		return m.updateActive(msg)
	}

	return m.broadcast(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.quit.IsVisible() {
		return m.updateQuit(msg)
	}
	if key.Matches(msg, keys.Common.ForceQuit) {
		m.quit.Show()
		return m, nil
	}
	if m.offline {
		var cmd tea.Cmd
		m.unreachable, cmd = m.unreachable.Update(msg)
		return m, cmd
	}
	if key.Matches(msg, keys.App.SwitchPage) {
		if m.page == PageCreate {
			return m.openHistory()
		}
		return m.openCreate()
	}
	if key.Matches(msg, keys.Common.Quit) && m.quitAllowed() {
		m.quit.Show()
		return m, nil
	}
	return m.updateActive(msg)
}

// quitAllowed reports whether q means quit rather than text input.
func (m Model) quitAllowed() bool {
	switch m.page {
	case PageHistory:
		return !m.history.InputActive()
	case PageResult:
		return true
	}
	return false
}

func (m Model) updateQuit(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var res confirm.Result
	m.quit, cmd, res = m.quit.Update(msg)
	if res == confirm.ResultConfirm {
		log.Info(log.CatUI, "quitting")
		return m, tea.Quit
	}
	return m, cmd
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.page {
	case PageCreate:
		m.create, cmd = m.create.Update(msg)
	case PageHistory:
		m.history, cmd = m.history.Update(msg)
	case PageResult:
		m.result, cmd = m.result.Update(msg)
	case PageEdit:
		m.edit, cmd = m.edit.Update(msg)
	}
	return m, cmd
}

// broadcast hands async results to every mounted page. Each page only acts
// on its own message types, so responses for a page that is no longer
// visible still land in its state.
func (m Model) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.create, cmd = m.create.Update(msg)
	cmds = append(cmds, cmd)
	if m.historyMounted {
		m.history, cmd = m.history.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.resultMounted {
		m.result, cmd = m.result.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.editMounted {
		m.edit, cmd = m.edit.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) openCreate() (tea.Model, tea.Cmd) {
	m.page = PageCreate
	var cmd tea.Cmd
	m.create, cmd = inspectionform.NewCreate(m.services).SetSize(m.pageSize()).Mount()
	return m, cmd
}

func (m Model) openHistory() (tea.Model, tea.Cmd) {
	m.page = PageHistory
	var cmd tea.Cmd
	if !m.historyMounted {
		m.historyMounted = true
		m.history, cmd = m.history.SetSize(m.pageSize()).Mount()
		return m, cmd
	}
	m.history, cmd = m.history.Refresh()
	return m, cmd
}

func (m Model) openResult(id, notice string) (tea.Model, tea.Cmd) {
	m.page = PageResult
	m.resultMounted = true
	var cmd tea.Cmd
	m.result, cmd = result.New(m.services, id, notice).SetSize(m.pageSize()).Mount()
	return m, cmd
}

func (m Model) openEdit(id string) (tea.Model, tea.Cmd) {
	m.page = PageEdit
	m.editMounted = true
	var cmd tea.Cmd
	m.edit, cmd = inspectionform.NewEdit(m.services, id).SetSize(m.pageSize()).Mount()
	return m, cmd
}

func (m Model) pageSize() (int, int) {
	return m.width, max(m.height-headerLines, 0)
}

func (m Model) resize(width, height int) Model {
	m.width = width
	m.height = height
	w, h := m.pageSize()
	m.create = m.create.SetSize(w, h)
	m.history = m.history.SetSize(w, h)
	if m.resultMounted {
		m.result = m.result.SetSize(w, h)
	}
	if m.editMounted {
		m.edit = m.edit.SetSize(w, h)
	}
	m.unreachable = m.unreachable.SetSize(width, height)
	m.toaster = m.toaster.SetSize(width, height)
	m.quit.SetSize(width, height)
	return m
}

// View renders the app.
func (m Model) View() string {
	var view string
	if m.offline {
		view = m.unreachable.View()
	} else {
		var body string
		switch m.page {
		case PageHistory:
			body = m.history.View()
		case PageResult:
			body = m.result.View()
		case PageEdit:
			body = m.edit.View()
		default:
			body = m.create.View()
		}
		view = lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), "", body)
	}

	if m.toaster.Visible() {
		view = m.toaster.Overlay(view)
	}
	if m.quit.IsVisible() {
		view = m.quit.Overlay(view)
	}
	return view
}

func (m Model) renderTabs() string {
	tab := func(label string, active bool) string {
		if active {
			return styles.TabActiveStyle.Render(label)
		}
		return styles.TabInactiveStyle.Render(label)
	}
	tabs := []string{
		tab("Create", m.page == PageCreate || m.page == PageEdit),
		tab("History", m.page == PageHistory || m.page == PageResult),
	}
	hint := styles.MutedStyle.Render(keys.App.SwitchPage.Help().Key + " switch")
	return strings.Join(tabs, " ") + "  " + hint
}
