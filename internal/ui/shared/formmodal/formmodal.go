package formmodal

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/riceinspect/internal/keys"
	"github.com/zjrosen/riceinspect/internal/ui/shared/picker"
)

// SubmitMsg carries the field values of a form that passed Validate.
// Values are keyed by FieldConfig.Key: string for text and select fields,
// []string for list fields.
type SubmitMsg struct {
	Values map[string]any
}

// CancelMsg is sent on esc or the cancel button.
type CancelMsg struct{}

// fieldMessager is implemented by validation errors that know which field
// each message belongs to.
type fieldMessager interface {
	Message(field string) string
}

const (
	buttonSubmit = 0
	buttonCancel = 1
)

// Model is the form state. Methods return a new Model.
type Model struct {
	config        FormConfig
	fields        []fieldState
	focusedIndex  int // -1 when a button is focused
	focusedButton int

	width, height int

	picker     picker.Model
	showPicker bool

	fieldErrors map[string]string
	formError   string
	submitting  bool
}

// New builds a form focused on its first field.
func New(cfg FormConfig) Model {
	inputWidth := cfg.width() - 6
	m := Model{
		config: cfg,
		fields: make([]fieldState, len(cfg.Fields)),
	}
	for i, fc := range cfg.Fields {
		m.fields[i] = newFieldState(fc, inputWidth)
	}
	if len(m.fields) == 0 {
		m.focusedIndex = -1
	} else {
		m.focusField(0)
	}
	return m
}

// Init starts the cursor blink when a text field has focus.
func (m Model) Init() tea.Cmd {
	return m.blinkCmd()
}

// SetSize sets the screen size used by Overlay.
func (m Model) SetSize(w, h int) Model {
	m.width = w
	m.height = h
	m.picker = m.picker.SetSize(w, h)
	return m
}

// SetError shows err under the form; a field-aware error is split per field.
// A nil err clears all messages.
func (m Model) SetError(err error) Model {
	m.fieldErrors = nil
	m.formError = ""
	if err == nil {
		return m
	}
	if fm, ok := err.(fieldMessager); ok {
		for _, f := range m.fields {
			if msg := fm.Message(f.config.Key); msg != "" {
				if m.fieldErrors == nil {
					m.fieldErrors = map[string]string{}
				}
				m.fieldErrors[f.config.Key] = msg
			}
		}
		if len(m.fieldErrors) > 0 {
			return m
		}
	}
	m.formError = err.Error()
	return m
}

// SetSubmitting blocks further submits while a request is in flight.
func (m Model) SetSubmitting(on bool) Model {
	m.submitting = on
	return m
}

// Submitting reports whether a submit is in flight.
func (m Model) Submitting() bool {
	return m.submitting
}

// FieldError returns the message shown under field key.
func (m Model) FieldError(key string) string {
	return m.fieldErrors[key]
}

// FormError returns the message shown above the buttons.
func (m Model) FormError() string {
	return m.formError
}

// Values returns the current field values.
func (m Model) Values() map[string]any {
	values := make(map[string]any, len(m.fields))
	for i := range m.fields {
		values[m.fields[i].config.Key] = m.fields[i].value()
	}
	return values
}

// Update handles input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case picker.SelectMsg:
		m.showPicker = false
		if fs := m.focused(); fs != nil && fs.config.Type == FieldTypeSelect {
			for i, opt := range fs.config.Options {
				if opt.Value == msg.Option.Value {
					fs.choice = i
				}
			}
			delete(m.fieldErrors, fs.config.Key)
		}
		return m, nil
	case picker.CancelMsg:
		m.showPicker = false
		return m, nil
	}

	if m.showPicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m = m.SetSize(msg.Width, msg.Height)
	}

	if fs := m.focused(); fs != nil && fs.config.Type == FieldTypeText {
		var cmd tea.Cmd
		fs.textInput, cmd = fs.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Form.Cancel):
		return m, func() tea.Msg { return CancelMsg{} }
	case key.Matches(msg, keys.Form.Submit):
		return m.submit()
	case key.Matches(msg, keys.Component.Next):
		m = m.nextField()
		return m, m.blinkCmd()
	case key.Matches(msg, keys.Component.Prev):
		m = m.prevField()
		return m, m.blinkCmd()
	case key.Matches(msg, keys.Common.Enter):
		return m.handleEnter()
	}

	fs := m.focused()
	if fs == nil {
		switch msg.String() {
		case "h", "left":
			m.focusedButton = buttonSubmit
		case "l", "right":
			m.focusedButton = buttonCancel
		}
		return m, nil
	}

	switch fs.config.Type {
	case FieldTypeList:
		switch {
		case key.Matches(msg, keys.Common.Down):
			if fs.listCursor < len(fs.listItems)-1 {
				fs.listCursor++
			}
		case key.Matches(msg, keys.Common.Up):
			if fs.listCursor > 0 {
				fs.listCursor--
			}
		case key.Matches(msg, keys.Component.Toggle):
			fs.toggleCursor()
			delete(m.fieldErrors, fs.config.Key)
		}
		return m, nil
	case FieldTypeText:
		var cmd tea.Cmd
		fs.textInput, cmd = fs.textInput.Update(msg)
		delete(m.fieldErrors, fs.config.Key)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleEnter() (Model, tea.Cmd) {
	if fs := m.focused(); fs != nil {
		if fs.config.Type == FieldTypeSelect {
			options := make([]picker.Option, len(fs.config.Options))
			for i, o := range fs.config.Options {
				options[i] = picker.Option{Label: o.Label, Value: o.Value}
			}
			m.picker = picker.New(picker.Config{
				Title:      fs.config.Label,
				Options:    options,
				Selected:   max(fs.choice, 0),
				MaxVisible: 8,
			}).SetBoxWidth(m.config.width() - 8).SetSize(m.width, m.height)
			m.showPicker = true
			return m, nil
		}
		m = m.nextField()
		return m, m.blinkCmd()
	}
	if m.focusedButton == buttonCancel {
		return m, func() tea.Msg { return CancelMsg{} }
	}
	return m.submit()
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	values := m.Values()
	if m.config.Validate != nil {
		if err := m.config.Validate(values); err != nil {
			return m.SetError(err), nil
		}
	}
	m = m.SetError(nil)
	return m, func() tea.Msg { return SubmitMsg{Values: values} }
}

func (m *Model) focused() *fieldState {
	if m.focusedIndex >= 0 && m.focusedIndex < len(m.fields) {
		return &m.fields[m.focusedIndex]
	}
	return nil
}

func (m *Model) focusField(i int) {
	if fs := m.focused(); fs != nil && fs.config.Type == FieldTypeText {
		fs.textInput.Blur()
	}
	m.focusedIndex = i
	if fs := m.focused(); fs != nil && fs.config.Type == FieldTypeText {
		fs.textInput.Focus()
	}
}

// nextField walks fields, then submit, then cancel, then wraps.
func (m Model) nextField() Model {
	switch {
	case m.focusedIndex >= 0 && m.focusedIndex < len(m.fields)-1:
		m.focusField(m.focusedIndex + 1)
	case m.focusedIndex >= 0:
		m.focusField(-1)
		m.focusedButton = buttonSubmit
	case m.focusedButton == buttonSubmit:
		m.focusedButton = buttonCancel
	case len(m.fields) > 0:
		m.focusField(0)
	default:
		m.focusedButton = buttonSubmit
	}
	return m
}

func (m Model) prevField() Model {
	switch {
	case m.focusedIndex > 0:
		m.focusField(m.focusedIndex - 1)
	case m.focusedIndex == 0:
		m.focusField(-1)
		m.focusedButton = buttonCancel
	case m.focusedButton == buttonCancel:
		m.focusedButton = buttonSubmit
	case len(m.fields) > 0:
		m.focusField(len(m.fields) - 1)
	default:
		m.focusedButton = buttonCancel
	}
	return m
}

func (m Model) blinkCmd() tea.Cmd {
	if fs := m.focused(); fs != nil && fs.config.Type == FieldTypeText {
		return textinput.Blink
	}
	return nil
}
