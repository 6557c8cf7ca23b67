package app

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/riceinspect/internal/config"
	"github.com/zjrosen/riceinspect/internal/inspection"
	"github.com/zjrosen/riceinspect/internal/mode"
	"github.com/zjrosen/riceinspect/internal/recordapi"
	"github.com/zjrosen/riceinspect/internal/recordapi/recordapitest"
	"github.com/zjrosen/riceinspect/internal/ui/shared/modal"
	"github.com/zjrosen/riceinspect/internal/ui/shared/recall"
	"github.com/zjrosen/riceinspect/internal/ui/shared/toaster"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newServices(t *testing.T, url string) mode.Services {
	t.Helper()
	cfg := config.Defaults()
	cfg.API.BaseURL = url
	cfg.Export.Dir = t.TempDir()
	return mode.Services{
		Config: &cfg,
		Client: recordapi.New(url),
		Recall: recall.New(recall.DefaultSize),
		Ctx:    context.Background(),
		Loc:    time.UTC,
	}
}

func startService(t *testing.T) (*recordapitest.Service, string) {
	t.Helper()
	svc := recordapitest.New()
	srv := recordapitest.Start(t, svc)
	return svc, srv.URL
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(Model)
	require.True(t, ok)
	return am, cmd
}

func sized(t *testing.T, services mode.Services) Model {
	t.Helper()
	m, _ := update(t, New(services), tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestNew_StartsOnCreate(t *testing.T) {
	_, url := startService(t)
	m := sized(t, newServices(t, url))

	require.Equal(t, PageCreate, m.Page())
	require.False(t, m.Offline())
	view := m.View()
	require.Contains(t, view, "Create Inspection")
	require.Contains(t, view, "History")
}

func TestSwitchPage(t *testing.T) {
	_, url := startService(t)
	m := sized(t, newServices(t, url))

	m, cmd := update(t, m, keyMsg("ctrl+t"))
	require.Equal(t, PageHistory, m.Page())
	require.NotNil(t, cmd)
	require.Contains(t, m.View(), "Inspection History")

	m, _ = update(t, m, keyMsg("ctrl+t"))
	require.Equal(t, PageCreate, m.Page())
}

func TestNavigationMessages(t *testing.T) {
	_, url := startService(t)
	m := sized(t, newServices(t, url))

	m, _ = update(t, m, mode.OpenResultMsg{ID: "rec-1"})
	require.Equal(t, PageResult, m.Page())

	m, _ = update(t, m, mode.OpenEditMsg{ID: "rec-1"})
	require.Equal(t, PageEdit, m.Page())
	require.Contains(t, m.View(), "Edit Inspection rec-1")

	m, _ = update(t, m, mode.OpenHistoryMsg{})
	require.Equal(t, PageHistory, m.Page())

	m, _ = update(t, m, mode.OpenCreateMsg{})
	require.Equal(t, PageCreate, m.Page())
}

func TestToast(t *testing.T) {
	_, url := startService(t)
	m := sized(t, newServices(t, url))

	m, cmd := update(t, m, mode.ShowToastMsg{Message: "Deleted successfully", Style: toaster.StyleSuccess})
	require.NotNil(t, cmd)
	require.Contains(t, m.View(), "Deleted successfully")
}

func TestQuitConfirm(t *testing.T) {
	_, url := startService(t)
	m := sized(t, newServices(t, url))

	m, _ = update(t, m, keyMsg("ctrl+c"))
	require.Contains(t, m.View(), "Quit riceinspect?")

	m, cmd := update(t, m, keyMsg("enter"))
	require.NotNil(t, cmd)
	require.Equal(t, modal.SubmitMsg{}, cmd())

	_, cmd = update(t, m, modal.SubmitMsg{})
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestQuitConfirm_Cancel(t *testing.T) {
	_, url := startService(t)
	m := sized(t, newServices(t, url))

	m, _ = update(t, m, keyMsg("ctrl+c"))
	m, cmd := update(t, m, keyMsg("esc"))
	require.Nil(t, cmd)
	require.NotContains(t, m.View(), "Quit riceinspect?")
}

func TestQuitKeyIgnoredWhileTyping(t *testing.T) {
	_, url := startService(t)
	m := sized(t, newServices(t, url))

	// The create form takes q as text.
	m, _ = update(t, m, keyMsg("q"))
	require.NotContains(t, m.View(), "Quit riceinspect?")

	m, _ = update(t, m, mode.OpenResultMsg{ID: "rec-1"})
	m, _ = update(t, m, keyMsg("q"))
	require.Contains(t, m.View(), "Quit riceinspect?")
}

func TestServiceUnreachable(t *testing.T) {
	_, url := startService(t)
	m := sized(t, newServices(t, url))

	m, _ = update(t, m, mode.ServiceUnreachableMsg{Err: errors.New("connection refused")})
	require.True(t, m.Offline())
	view := m.View()
	require.Contains(t, view, "Cannot reach the record service")
	require.Contains(t, view, url)

	// Page switching is disabled while offline.
	m, _ = update(t, m, keyMsg("ctrl+t"))
	require.Equal(t, PageCreate, m.Page())

	_, cmd := update(t, m, keyMsg("r"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	require.False(t, m.Offline())
}

func waitFor(t *testing.T, tm *teatest.TestModel, text string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte(text))
	}, teatest.WithDuration(5*time.Second), teatest.WithCheckInterval(20*time.Millisecond))
}

func TestProgram_HistoryToResultAndQuit(t *testing.T) {
	svc, url := startService(t)
	ids := svc.Seed(inspection.Record{Name: "Lot Alpha", StandardID: "1", StandardName: "Standard 1"})

	tm := teatest.NewTestModel(t, New(newServices(t, url)), teatest.WithInitialTermSize(140, 40))
	waitFor(t, tm, "Create Inspection")

	tm.Send(keyMsg("ctrl+t"))
	waitFor(t, tm, "Lot Alpha")

	tm.Send(keyMsg("enter"))
	waitFor(t, tm, "Basic Information")

	tm.Send(keyMsg("ctrl+c"))
	waitFor(t, tm, "Quit riceinspect?")
	tm.Send(keyMsg("enter"))

	tm.WaitFinished(t, teatest.WithFinalTimeout(5*time.Second))
	final, ok := tm.FinalModel(t).(Model)
	require.True(t, ok)
	require.Equal(t, PageResult, final.Page())
	rec, ok := final.result.Record()
	require.True(t, ok)
	require.Equal(t, ids[0], rec.ID)
}

func TestProgram_Unreachable(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	tm := teatest.NewTestModel(t, New(newServices(t, url)), teatest.WithInitialTermSize(120, 40))
	waitFor(t, tm, "Cannot reach the record service")

	tm.Send(keyMsg("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(5*time.Second))
	final, ok := tm.FinalModel(t).(Model)
	require.True(t, ok)
	require.True(t, final.Offline())
}
