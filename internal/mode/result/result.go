// Package result is the inspection result page.
package result

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/riceinspect/internal/export"
	"github.com/zjrosen/riceinspect/internal/history"
	"github.com/zjrosen/riceinspect/internal/inspection"
	"github.com/zjrosen/riceinspect/internal/keys"
	"github.com/zjrosen/riceinspect/internal/log"
	"github.com/zjrosen/riceinspect/internal/mode"
	"github.com/zjrosen/riceinspect/internal/ui/shared/toaster"
	"github.com/zjrosen/riceinspect/internal/ui/styles"
)

type (
	loadedMsg struct {
		id     string
		seq    int
		record inspection.Record
		err    error
	}

	reportMsg struct {
		path string
		err  error
	}
)

// chrome is the number of lines around the viewport: title, blank, help.
const chrome = 4

// Model is the result page state.
type Model struct {
	services mode.Services
	id       string
	notice   string

	record  *inspection.Record
	loading bool
	seq     int
	errText string

	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model

	width, height int
}

// New builds the page for id. notice, when set, is shown once the page is
// mounted.
func New(services mode.Services, id, notice string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.AccentColor)
	return Model{
		services: services,
		id:       id,
		notice:   notice,
		viewport: viewport.New(0, 0),
		spinner:  s,
		help:     help.New(),
	}
}

// ID returns the record id shown.
func (m Model) ID() string { return m.id }

// Record returns the loaded record, if any.
func (m Model) Record() (inspection.Record, bool) {
	if m.record == nil {
		return inspection.Record{}, false
	}
	return *m.record, true
}

// Error returns the load failure text, empty when loaded.
func (m Model) Error() string { return m.errText }

// Mount starts the load.
func (m Model) Mount() (Model, tea.Cmd) {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.notice != "" {
		cmds = append(cmds, mode.Toast(m.notice, toaster.StyleSuccess))
		m.notice = ""
	}
	var load tea.Cmd
	m, load = m.load()
	return m, tea.Batch(append(cmds, load)...)
}

func (m Model) load() (Model, tea.Cmd) {
	m.seq++
	m.loading = true
	seq, id := m.seq, m.id
	ctx, client := m.services.Context(), m.services.Client
	return m, func() tea.Msg {
		rec, err := client.GetHistory(ctx, id)
		return loadedMsg{id: id, seq: seq, record: rec, err: err}
	}
}

// SetSize handles terminal resize.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.help.Width = width
	m.viewport.Width = width
	m.viewport.Height = max(height-chrome, 1)
	m.refreshContent()
	return m
}

func (m *Model) refreshContent() {
	if m.record == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(Render(*m.record, m.width))
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.id != m.id || msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errText = history.NoticeFetchFailed
			if errors.Is(msg.err, inspection.ErrNotFound) {
				m.errText = history.NoticeNotFound
			}
			log.ErrorErr(log.CatUI, "loading result", msg.err, "id", m.id)
			return m, mode.Toast(m.errText, toaster.StyleError)
		}
		rec := msg.record
		m.record = &rec
		m.errText = ""
		m.refreshContent()
		m.viewport.GotoTop()
		return m, nil

	case reportMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatExport, "report failed", msg.err, "path", msg.path)
			return m, mode.Toast("Report failed: "+msg.err.Error(), toaster.StyleError)
		}
		return m, mode.Toast("Report saved to "+msg.path, toaster.StyleSuccess)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Result.Back):
			return m, func() tea.Msg { return mode.OpenHistoryMsg{} }
		case key.Matches(msg, keys.Result.Edit):
			if m.record == nil {
				return m, nil
			}
			id := m.id
			return m, func() tea.Msg { return mode.OpenEditMsg{ID: id} }
		case key.Matches(msg, keys.Result.Report):
			return m, m.reportCmd()
		case key.Matches(msg, keys.Result.Reload):
			var cmd tea.Cmd
			m, cmd = m.load()
			return m, tea.Batch(cmd, m.spinner.Tick)
		case key.Matches(msg, keys.Common.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) reportCmd() tea.Cmd {
	if m.record == nil {
		return nil
	}
	rec := *m.record
	dir := "."
	var opts export.ReportOptions
	if cfg := m.services.Config; cfg != nil {
		if cfg.Export.Dir != "" {
			dir = cfg.Export.Dir
		}
		opts.FontFile = cfg.Export.FontFile
	}
	now := m.services.Clock()
	opts.Generated = now
	path := filepath.Join(dir, export.FileName("report-"+shortID(rec.ID), "pdf", now))
	return func() tea.Msg {
		err := export.ToFile(path, func(w io.Writer) error {
			return export.WriteReportPDF(w, rec, opts)
		})
		return reportMsg{path: path, err: err}
	}
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

type keyMap struct{ loaded bool }

func (k keyMap) ShortHelp() []key.Binding {
	if !k.loaded {
		return []key.Binding{keys.Result.Back, keys.Result.Reload}
	}
	return []key.Binding{keys.Result.Back, keys.Result.Edit, keys.Result.Report, keys.Result.Reload}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {keys.Common.Up, keys.Common.Down, keys.App.SwitchPage}}
}

// View renders the page.
func (m Model) View() string {
	title := styles.TitleStyle.Render("Inspection Result")
	if m.record != nil && m.record.Name != "" {
		title += styles.MutedStyle.Render("  " + m.record.Name)
	}
	if m.loading {
		title += " " + m.spinner.View()
	}

	var body string
	switch {
	case m.errText != "" && m.record == nil:
		body = styles.ErrorStyle.Render(m.errText)
	case m.record == nil:
		body = styles.MutedStyle.Render(fmt.Sprintf("Loading %s…", m.id))
	default:
		body = m.viewport.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		title, "", body, "", m.help.View(keyMap{loaded: m.record != nil}))
}
