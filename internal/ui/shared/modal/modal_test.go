package modal

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultButtonText(t *testing.T) {
	view := New(Config{Title: "Delete?"}).View()
	require.Contains(t, view, "Delete?")
	require.Contains(t, view, "Confirm")
	require.Contains(t, view, "Cancel")
}

func TestUpdate_EnterOnConfirm(t *testing.T) {
	m := New(Config{Title: "t"})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.IsType(t, SubmitMsg{}, cmd())
}

func TestUpdate_TabThenEnterCancels(t *testing.T) {
	m := New(Config{Title: "t"})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.IsType(t, CancelMsg{}, cmd())
}

func TestUpdate_FocusWraps(t *testing.T) {
	m := New(Config{Title: "t"})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, focusConfirm, m.focus)
}

func TestUpdate_EscapeCancels(t *testing.T) {
	_, cmd := New(Config{Title: "t"}).Update(tea.KeyMsg{Type: tea.KeyEscape})
	require.IsType(t, CancelMsg{}, cmd())
}

func TestUpdate_IgnoresOtherMessages(t *testing.T) {
	_, cmd := New(Config{Title: "t"}).Update(tea.WindowSizeMsg{Width: 10})
	require.Nil(t, cmd)
}

func TestOverlay_ContainsMessage(t *testing.T) {
	m := New(Config{Title: "Delete records", Message: "2 selected", ConfirmText: "Delete"})
	m.SetSize(80, 20)
	out := m.Overlay("bg")
	require.Contains(t, out, "2 selected")
	require.Contains(t, out, "Delete")
}
