// Package confirm wraps modal.Model with visibility handling and a Result
// enum, so a page can ask "are you sure?" for quitting or deleting records
// and decide for itself what happens next.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/riceinspect/internal/ui/shared/modal"
)

// Result is the outcome of one Update call.
type Result int

const (
	ResultNone    Result = iota // still open, or never shown
	ResultConfirm               // user confirmed
	ResultCancel                // user dismissed
)

// Config controls dialog content.
type Config struct {
	Title       string
	Message     string
	ConfirmText string
	// Danger styles the confirm button as destructive.
	Danger bool
	// ForceOnCtrlC treats ctrl+c as a confirmation (quit dialogs).
	ForceOnCtrlC bool
}

// Model is a hideable confirmation dialog.
type Model struct {
	modal   modal.Model
	config  Config
	visible bool
	width   int
	height  int
}

// New returns a hidden dialog.
func New(cfg Config) Model {
	return Model{modal: newInner(cfg), config: cfg}
}

// Quit is the application exit dialog.
func Quit() Model {
	return New(Config{
		Title:        "Quit riceinspect?",
		Message:      "Unsaved form input will be lost.",
		ConfirmText:  "Quit",
		Danger:       true,
		ForceOnCtrlC: true,
	})
}

func newInner(cfg Config) modal.Model {
	variant := modal.ButtonPrimary
	if cfg.Danger {
		variant = modal.ButtonDanger
	}
	return modal.New(modal.Config{
		Title:          cfg.Title,
		Message:        cfg.Message,
		ConfirmText:    cfg.ConfirmText,
		ConfirmVariant: variant,
	})
}

// Show displays the dialog with focus reset to the confirm button.
func (m *Model) Show() {
	m.modal = newInner(m.config)
	m.modal.SetSize(m.width, m.height)
	m.visible = true
}

// ShowMessage displays the dialog with a new body.
func (m *Model) ShowMessage(msg string) {
	m.config.Message = msg
	m.Show()
}

// Hide dismisses the dialog.
func (m *Model) Hide() {
	m.visible = false
}

// IsVisible reports whether the dialog is showing.
func (m Model) IsVisible() bool {
	return m.visible
}

// SetSize caches the screen size for centering.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.modal.SetSize(width, height)
}

// Update resolves the dialog. Enter follows button focus; esc always cancels.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd, Result) {
	if !m.visible {
		return m, nil, ResultNone
	}

	switch msg.(type) {
	case modal.SubmitMsg:
		m.visible = false
		return m, nil, ResultConfirm
	case modal.CancelMsg:
		m.visible = false
		return m, nil, ResultCancel
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC:
			m.visible = false
			if m.config.ForceOnCtrlC {
				return m, nil, ResultConfirm
			}
			return m, nil, ResultCancel
		case tea.KeyEscape:
			m.visible = false
			return m, nil, ResultCancel
		}
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd, ResultNone
}

// Overlay renders the dialog over bg.
func (m Model) Overlay(bg string) string {
	return m.modal.Overlay(bg)
}
