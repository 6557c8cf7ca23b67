// Package modal provides a two-button confirmation dialog.
package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/riceinspect/internal/keys"
	"github.com/zjrosen/riceinspect/internal/ui/shared/overlay"
	"github.com/zjrosen/riceinspect/internal/ui/styles"
)

// ButtonVariant picks the confirm button's focused style.
type ButtonVariant int

const (
	ButtonPrimary ButtonVariant = iota
	ButtonDanger
)

// Config controls the dialog content.
type Config struct {
	Title          string
	Message        string
	ConfirmVariant ButtonVariant
	ConfirmText    string // default "Confirm"
	CancelText     string // default "Cancel"
}

// SubmitMsg is sent when the confirm button is pressed.
type SubmitMsg struct{}

// CancelMsg is sent when the dialog is dismissed.
type CancelMsg struct{}

const (
	focusConfirm = iota
	focusCancel
)

const minWidth = 36

// Model is the dialog state.
type Model struct {
	config Config
	focus  int
	width  int
	height int
}

// New builds a dialog with the confirm button focused.
func New(cfg Config) Model {
	if cfg.ConfirmText == "" {
		cfg.ConfirmText = "Confirm"
	}
	if cfg.CancelText == "" {
		cfg.CancelText = "Cancel"
	}
	return Model{config: cfg}
}

// SetSize records the screen size used by Overlay.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetMessage replaces the body text.
func (m *Model) SetMessage(msg string) {
	m.config.Message = msg
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update moves focus between buttons and resolves the dialog.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keys.Common.Escape):
		return m, func() tea.Msg { return CancelMsg{} }
	case key.Matches(keyMsg, keys.Common.Enter):
		if m.focus == focusConfirm {
			return m, func() tea.Msg { return SubmitMsg{} }
		}
		return m, func() tea.Msg { return CancelMsg{} }
	case key.Matches(keyMsg, keys.Component.Next), key.Matches(keyMsg, keys.Component.Prev),
		keyMsg.Type == tea.KeyLeft, keyMsg.Type == tea.KeyRight:
		m.focus = 1 - m.focus
	}
	return m, nil
}

// View renders the dialog box.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor)

	confirm := styles.ButtonStyle
	cancel := styles.ButtonStyle
	if m.focus == focusConfirm {
		confirm = styles.ButtonFocusedStyle
		if m.config.ConfirmVariant == ButtonDanger {
			confirm = styles.ButtonDangerFocusedStyle
		}
	} else {
		cancel = styles.ButtonFocusedStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		confirm.Render(m.config.ConfirmText), " ", cancel.Render(m.config.CancelText))

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.config.Title))
	if m.config.Message != "" {
		sb.WriteString("\n\n")
		sb.WriteString(styles.ValueStyle.Render(m.config.Message))
	}
	sb.WriteString("\n\n")
	sb.WriteString(buttons)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Padding(1, 2).
		Width(minWidth).
		Render(sb.String())
}

// Overlay draws the dialog centered over bg.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}
