// Package toaster shows short-lived notifications at the bottom of the screen.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/riceinspect/internal/ui/shared/overlay"
	"github.com/zjrosen/riceinspect/internal/ui/styles"
)

// Style picks the toast color.
type Style int

const (
	StyleInfo Style = iota
	StyleSuccess
	StyleWarn
	StyleError
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 3 * time.Second

// DismissMsg hides the toast it was scheduled for.
type DismissMsg struct {
	id int
}

// Model holds the current toast.
type Model struct {
	message  string
	style    Style
	visible  bool
	id       int
	width    int
	height   int
	duration time.Duration
}

// New returns a hidden toaster.
func New() Model {
	return Model{duration: DefaultDuration}
}

// SetSize sets the screen size used by Overlay.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Show displays message and schedules its dismissal. A newer toast
// replaces the old one; the old timer becomes a no-op.
func (m Model) Show(message string, style Style) (Model, tea.Cmd) {
	m.id++
	m.message = message
	m.style = style
	m.visible = true
	id := m.id
	return m, tea.Tick(m.duration, func(time.Time) tea.Msg { return DismissMsg{id: id} })
}

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.id == m.id {
		m.visible = false
	}
	return m
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool { return m.visible }

// Message returns the current toast text.
func (m Model) Message() string { return m.message }

// View renders the toast box, or "" when hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	color := styles.OverlayBorderColor
	switch m.style {
	case StyleSuccess:
		color = styles.StatusSuccessColor
	case StyleWarn:
		color = styles.StatusWarningColor
	case StyleError:
		color = styles.StatusErrorColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Foreground(color).
		Padding(0, 2).
		Render(m.message)
}

// Overlay draws the toast near the bottom of bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}
