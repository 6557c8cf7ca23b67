// Package unreachable is the empty state shown when the record service
// cannot be reached at startup.
package unreachable

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/riceinspect/internal/keys"
	"github.com/zjrosen/riceinspect/internal/ui/styles"
)

// RetryMsg asks the app to try the service again.
type RetryMsg struct{}

var retryKey = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry"))

// Model holds the view state.
type Model struct {
	width   int
	height  int
	baseURL string
	reason  string
}

// New creates the view for the service at baseURL. reason is the error text.
func New(baseURL, reason string) Model {
	return Model{baseURL: baseURL, reason: reason}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, retryKey):
			return m, func() tea.Msg { return RetryMsg{} }
		case key.Matches(msg, keys.Common.Quit), key.Matches(msg, keys.Common.Escape):
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the empty state.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.TextPrimaryColor).
		MarginTop(1)

	messageStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondaryColor)

	hintStyle := lipgloss.NewStyle().
		Foreground(styles.TextMutedColor).
		Italic(true).
		MarginTop(2)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Cannot reach the record service"))
	content.WriteString("\n\n")
	content.WriteString(messageStyle.Render("Tried " + m.baseURL))
	if m.reason != "" {
		content.WriteString("\n")
		content.WriteString(styles.MutedStyle.Render(m.reason))
	}
	content.WriteString("\n\n")
	content.WriteString(messageStyle.Render("Try one of these options:"))
	content.WriteString("\n\n")
	content.WriteString(messageStyle.Render("  1. Start the service, or run 'riceinspect devserver' for a local one"))
	content.WriteString("\n")
	content.WriteString(messageStyle.Render("  2. Use the --api flag: riceinspect --api http://host:3000"))
	content.WriteString("\n")
	content.WriteString(messageStyle.Render("  3. Set api.base_url in .riceinspect/config.yaml or RICEINSPECT_API_BASE_URL"))
	content.WriteString("\n\n")
	content.WriteString(hintStyle.Render("Press r to retry, q to quit"))

	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	return containerStyle.Render(content.String())
}

// SetSize updates the view dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}
