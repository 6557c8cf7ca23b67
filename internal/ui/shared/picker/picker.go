// Package picker is a scrolling single-choice list drawn as an overlay.
// It backs the standard chooser on the create form and the page-size menu.
package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/riceinspect/internal/keys"
	"github.com/zjrosen/riceinspect/internal/ui/shared/overlay"
	"github.com/zjrosen/riceinspect/internal/ui/styles"
)

// Option is one choice.
type Option struct {
	Label string
	Value string
	Hint  string // muted text after the label
}

// Config builds a picker.
type Config struct {
	Title      string
	Options    []Option
	Selected   int
	MaxVisible int // rows shown before scrolling; 0 shows all

	// OnSelect overrides the SelectMsg sent on enter.
	OnSelect func(selected Option) tea.Msg
	// OnCancel overrides the CancelMsg sent on esc or q.
	OnCancel func() tea.Msg
}

// SelectMsg is sent when an option is chosen.
type SelectMsg struct {
	Option Option
}

// CancelMsg is sent when the picker is dismissed.
type CancelMsg struct{}

const defaultBoxWidth = 28

// Model holds the picker state.
type Model struct {
	config         Config
	selected       int
	offset         int
	boxWidth       int
	viewportWidth  int
	viewportHeight int
}

// New builds a picker; an out-of-range Selected falls back to 0.
func New(cfg Config) Model {
	m := Model{config: cfg}
	if cfg.Selected >= 0 && cfg.Selected < len(cfg.Options) {
		m.selected = cfg.Selected
	}
	m.scrollToSelected()
	return m
}

// SetSize sets the screen size used for centering.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	return m
}

// SetBoxWidth fixes the box width.
func (m Model) SetBoxWidth(width int) Model {
	m.boxWidth = width
	return m
}

// Selected returns the highlighted option.
func (m Model) Selected() Option {
	if m.selected >= 0 && m.selected < len(m.config.Options) {
		return m.config.Options[m.selected]
	}
	return Option{}
}

// Update moves the highlight and resolves the picker.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keys.Common.Down), key.Matches(keyMsg, keys.Component.Next):
		if m.selected < len(m.config.Options)-1 {
			m.selected++
		}
	case key.Matches(keyMsg, keys.Common.Up), key.Matches(keyMsg, keys.Component.Prev):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(keyMsg, keys.Common.Enter):
		if len(m.config.Options) == 0 {
			return m, nil
		}
		return m, m.selectCmd()
	case key.Matches(keyMsg, keys.Common.Escape), key.Matches(keyMsg, keys.Common.Quit):
		return m, m.cancelCmd()
	}
	m.scrollToSelected()
	return m, nil
}

func (m *Model) scrollToSelected() {
	visible := m.config.MaxVisible
	if visible <= 0 {
		return
	}
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+visible {
		m.offset = m.selected - visible + 1
	}
}

func (m Model) selectCmd() tea.Cmd {
	selected := m.Selected()
	if m.config.OnSelect != nil {
		return func() tea.Msg { return m.config.OnSelect(selected) }
	}
	return func() tea.Msg { return SelectMsg{Option: selected} }
}

func (m Model) cancelCmd() tea.Cmd {
	if m.config.OnCancel != nil {
		return func() tea.Msg { return m.config.OnCancel() }
	}
	return func() tea.Msg { return CancelMsg{} }
}

// View renders the box without positioning.
func (m Model) View() string {
	width := m.boxWidth
	if width == 0 {
		width = defaultBoxWidth
	}
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)

	start, end := 0, len(m.config.Options)
	if v := m.config.MaxVisible; v > 0 && end > v {
		start = m.offset
		end = min(start+v, len(m.config.Options))
	}

	var rows []string
	if start > 0 {
		rows = append(rows, styles.MutedStyle.Render(" ↑ more"))
	}
	for i := start; i < end; i++ {
		opt := m.config.Options[i]
		label := opt.Label
		if opt.Hint != "" {
			label += " " + styles.MutedStyle.Render(opt.Hint)
		}
		if i == m.selected {
			rows = append(rows, styles.SelectionIndicatorStyle.Render(">")+lipgloss.NewStyle().Bold(true).Render(label))
		} else {
			rows = append(rows, " "+label)
		}
	}
	if end < len(m.config.Options) {
		rows = append(rows, styles.MutedStyle.Render(" ↓ more"))
	}
	if len(rows) == 0 {
		rows = append(rows, styles.MutedStyle.Render(" (none)"))
	}

	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", width))
	content := titleStyle.Render(m.config.Title) + "\n" + divider + "\n" + strings.Join(rows, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width).
		Render(content)
}

// Overlay draws the picker centered over background.
func (m Model) Overlay(background string) string {
	box := m.View()
	if background == "" {
		return lipgloss.Place(m.viewportWidth, m.viewportHeight, lipgloss.Center, lipgloss.Center, box)
	}
	return overlay.Place(overlay.Config{
		Width:    m.viewportWidth,
		Height:   m.viewportHeight,
		Position: overlay.Center,
	}, box, background)
}

// FindIndexByValue returns the index of value in options, or 0.
func FindIndexByValue(options []Option, value string) int {
	for i, opt := range options {
		if opt.Value == value {
			return i
		}
	}
	return 0
}
