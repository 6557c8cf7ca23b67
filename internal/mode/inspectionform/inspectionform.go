// Package inspectionform is the create and edit inspection page. Both forms
// are formmodal forms; this package loads what they need, turns submitted
// values into request payloads and reports the outcome.
package inspectionform

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/riceinspect/internal/history"
	"github.com/zjrosen/riceinspect/internal/inspection"
	"github.com/zjrosen/riceinspect/internal/log"
	"github.com/zjrosen/riceinspect/internal/mode"
	"github.com/zjrosen/riceinspect/internal/recordapi"
	"github.com/zjrosen/riceinspect/internal/ui/shared/formmodal"
	"github.com/zjrosen/riceinspect/internal/ui/shared/toaster"
	"github.com/zjrosen/riceinspect/internal/ui/styles"
)

// Kind selects the form.
type Kind int

const (
	Create Kind = iota
	Edit
)

// Field keys. They match the field names inspection validation reports.
const (
	fieldName     = "name"
	fieldStandard = "standardId"
	fieldNote     = "note"
	fieldPrice    = "price"
	fieldSampling = "samplingPoint"
	fieldDateTime = "dateTime"
	fieldRawJSON  = "rawJson"
)

// Outcome texts.
const (
	NoticeCreated      = "Inspection created successfully! ID: %s"
	NoticeCreateFailed = "Failed to create inspection"
	NoticeUpdated      = "Updated successfully"
	NoticeUpdateFailed = "Failed to update history"
	noticeStandards    = "Failed to load standards"
)

type (
	standardsMsg struct {
		standards []inspection.Standard
		err       error
	}

	recordMsg struct {
		id     string
		record inspection.Record
		err    error
	}

	createdMsg struct {
		id  string
		err error
	}

	updatedMsg struct {
		id  string
		err error
	}
)

// Model is the form page.
type Model struct {
	services mode.Services
	kind     Kind
	id       string // Edit only

	form    formmodal.Model
	ready   bool
	loadErr string

	spinner       spinner.Model
	width, height int
}

// NewCreate builds the create page.
func NewCreate(services mode.Services) Model {
	return newModel(services, Create, "")
}

// NewEdit builds the edit page for id.
func NewEdit(services mode.Services, id string) Model {
	return newModel(services, Edit, id)
}

func newModel(services mode.Services, kind Kind, id string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.AccentColor)
	return Model{services: services, kind: kind, id: id, spinner: s}
}

// Kind returns which form this is.
func (m Model) Kind() Kind { return m.kind }

// ID returns the edited record id; empty for the create form.
func (m Model) ID() string { return m.id }

// Ready reports whether the form has loaded and can take input.
func (m Model) Ready() bool { return m.ready }

// Form exposes the form for inspection.
func (m Model) Form() formmodal.Model { return m.form }

// Mount starts loading what the form needs.
func (m Model) Mount() (Model, tea.Cmd) {
	ctx, client := m.services.Context(), m.services.Client
	if m.kind == Edit {
		id := m.id
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			rec, err := client.GetHistory(ctx, id)
			return recordMsg{id: id, record: rec, err: err}
		})
	}
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		standards, err := client.ListStandards(ctx)
		return standardsMsg{standards: standards, err: err}
	})
}

// SetSize handles terminal resize.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.form = m.form.SetSize(width, height)
	return m
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case standardsMsg:
		if m.kind != Create || m.ready {
			return m, nil
		}
		if msg.err != nil {
			log.ErrorErr(log.CatUI, "loading standards", msg.err)
			if recordapi.IsNetwork(msg.err) {
				err := msg.err
				return m, func() tea.Msg { return mode.ServiceUnreachableMsg{Err: err} }
			}
			m.loadErr = noticeStandards
			return m, mode.Toast(noticeStandards, toaster.StyleError)
		}
		m.form = formmodal.New(createConfig(msg.standards, m.services)).SetSize(m.width, m.height)
		m.ready = true
		return m, m.form.Init()

	case recordMsg:
		if m.kind != Edit || msg.id != m.id || m.ready {
			return m, nil
		}
		if msg.err != nil {
			m.loadErr = history.NoticeFetchFailed
			if errors.Is(msg.err, inspection.ErrNotFound) {
				m.loadErr = history.NoticeNotFound
			}
			log.ErrorErr(log.CatUI, "loading record for edit", msg.err, "id", m.id)
			return m, mode.Toast(m.loadErr, toaster.StyleError)
		}
		m.form = formmodal.New(editConfig(msg.record, m.services)).SetSize(m.width, m.height)
		m.ready = true
		return m, m.form.Init()

	case formmodal.SubmitMsg:
		m.form = m.form.SetSubmitting(true)
		if m.kind == Edit {
			return m, m.updateCmd(msg.Values)
		}
		return m, m.createCmd(msg.Values)

	case formmodal.CancelMsg:
		if m.kind == Edit {
			id := m.id
			return m, func() tea.Msg { return mode.OpenResultMsg{ID: id} }
		}
		return m, func() tea.Msg { return mode.OpenHistoryMsg{} }

	case createdMsg:
		if m.kind != Create || !m.ready {
			return m, nil
		}
		m.form = m.form.SetSubmitting(false)
		if msg.err != nil {
			text := createFailure(msg.err)
			m.form = m.form.SetError(formError(msg.err, text))
			return m, mode.Toast(strings.SplitN(text, "\n", 2)[0], toaster.StyleError)
		}
		id := msg.id
		return m, func() tea.Msg {
			return mode.OpenResultMsg{ID: id, Notice: fmt.Sprintf(NoticeCreated, id)}
		}

	case updatedMsg:
		if m.kind != Edit || msg.id != m.id || !m.ready {
			return m, nil
		}
		m.form = m.form.SetSubmitting(false)
		if msg.err != nil {
			m.form = m.form.SetError(formError(msg.err, NoticeUpdateFailed))
			return m, mode.Toast(NoticeUpdateFailed, toaster.StyleError)
		}
		id := m.id
		return m, func() tea.Msg { return mode.OpenResultMsg{ID: id, Notice: NoticeUpdated} }

	case spinner.TickMsg:
		if m.ready || m.loadErr != "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) createCmd(values map[string]any) tea.Cmd {
	ctx, client, loc := m.services.Context(), m.services.Client, m.services.Location()
	return func() tea.Msg {
		f, err := createForm(values)
		if err != nil {
			return createdMsg{err: err}
		}
		p, err := f.Payload(loc)
		if err != nil {
			return createdMsg{err: err}
		}
		id, err := client.CreateHistory(ctx, p)
		return createdMsg{id: id, err: err}
	}
}

func (m Model) updateCmd(values map[string]any) tea.Cmd {
	ctx, client, loc, id := m.services.Context(), m.services.Client, m.services.Location(), m.id
	return func() tea.Msg {
		p, err := updateForm(values).Payload(loc)
		if err != nil {
			return updatedMsg{id: id, err: err}
		}
		return updatedMsg{id: id, err: client.UpdateHistory(ctx, id, p)}
	}
}

// createForm reads submitted values, loading the raw JSON file when a path
// was given.
func createForm(values map[string]any) (inspection.CreateForm, error) {
	f := inspection.CreateForm{
		Name:          str(values, fieldName),
		StandardID:    str(values, fieldStandard),
		Note:          str(values, fieldNote),
		Price:         str(values, fieldPrice),
		SamplingPoint: list(values, fieldSampling),
		DateTime:      str(values, fieldDateTime),
	}
	if path := strings.TrimSpace(str(values, fieldRawJSON)); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return f, &inspection.ValidationError{Fields: []inspection.FieldError{
				{Field: fieldRawJSON, Message: "Cannot read file: " + err.Error()},
			}}
		}
		f.RawJSON = data
	}
	return f, nil
}

func updateForm(values map[string]any) inspection.UpdateForm {
	return inspection.UpdateForm{
		Note:          str(values, fieldNote),
		Price:         str(values, fieldPrice),
		SamplingPoint: list(values, fieldSampling),
		DateTime:      str(values, fieldDateTime),
	}
}

// createFailure is the text shown for a failed create: one line per remote
// violation, the service message, or a generic fallback.
func createFailure(err error) string {
	var rverr *inspection.RemoteValidationError
	if errors.As(err, &rverr) && len(rverr.Fields) > 0 {
		return strings.Join(rverr.Lines(), "\n")
	}
	var verr *inspection.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	var rerr *recordapi.RemoteError
	if errors.As(err, &rerr) {
		if msg := rerr.Message(); msg != "" {
			return msg
		}
	}
	return NoticeCreateFailed
}

// formError keeps client-side validation field-aware and turns everything
// else into a form-level message.
func formError(err error, text string) error {
	var verr *inspection.ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return errors.New(text)
}

func str(values map[string]any, key string) string {
	s, _ := values[key].(string)
	return s
}

func list(values map[string]any, key string) []string {
	l, _ := values[key].([]string)
	return l
}

// View renders the page.
func (m Model) View() string {
	title := "Create Inspection"
	if m.kind == Edit {
		title = "Edit Inspection " + m.id
	}
	header := styles.TitleStyle.Render(title)

	var body string
	switch {
	case m.loadErr != "":
		body = styles.ErrorStyle.Render(m.loadErr)
	case !m.ready:
		body = m.spinner.View() + " Loading…"
	default:
		body = m.form.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
}
