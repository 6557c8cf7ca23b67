// Package modetest drives page models synchronously in tests: commands are
// executed inline and their messages routed back into Update, so a test can
// press keys and assert on the settled state without a running program.
package modetest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/riceinspect/internal/mode"
	"github.com/zjrosen/riceinspect/internal/ui/shared/formmodal"
	"github.com/zjrosen/riceinspect/internal/ui/shared/modal"
	"github.com/zjrosen/riceinspect/internal/ui/shared/picker"
)

// Updater is a page model.
type Updater[M any] interface {
	Update(tea.Msg) (M, tea.Cmd)
}

// Driver owns a model and the messages it has produced.
type Driver[M Updater[M]] struct {
	tb       testing.TB
	Model    M
	Toasts   []mode.ShowToastMsg
	Sent     []tea.Msg
	feedback func(tea.Msg) bool
}

// New wraps m. feedback selects the page's own messages that must be routed
// back into Update; widget messages are always routed back.
func New[M Updater[M]](tb testing.TB, m M, feedback func(tea.Msg) bool) *Driver[M] {
	tb.Helper()
	if feedback == nil {
		feedback = func(tea.Msg) bool { return false }
	}
	return &Driver[M]{tb: tb, Model: m, feedback: feedback}
}

// Send delivers msg and settles every resulting command.
func (d *Driver[M]) Send(msg tea.Msg) {
	d.tb.Helper()
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.Run(cmd)
}

// Run executes cmd and routes its messages.
func (d *Driver[M]) Run(cmd tea.Cmd) {
	d.tb.Helper()
	if cmd == nil {
		return
	}
	d.route(cmd())
}

func (d *Driver[M]) route(msg tea.Msg) {
	switch msg := msg.(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			d.Run(c)
		}
	case mode.ShowToastMsg:
		d.Toasts = append(d.Toasts, msg)
	case mode.OpenResultMsg, mode.OpenEditMsg, mode.OpenCreateMsg, mode.OpenHistoryMsg,
		mode.ServiceUnreachableMsg:
		d.Sent = append(d.Sent, msg)
	case modal.SubmitMsg, modal.CancelMsg,
		picker.SelectMsg, picker.CancelMsg,
		formmodal.SubmitMsg, formmodal.CancelMsg:
		d.Send(msg)
	default:
		if d.feedback(msg) {
			d.Send(msg)
		}
	}
}

// Key presses a single key such as "enter", "ctrl+s" or "x".
func (d *Driver[M]) Key(k string) {
	d.tb.Helper()
	d.Send(KeyMsg(k))
}

// Type sends text as one runes key press.
func (d *Driver[M]) Type(text string) {
	d.tb.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// LastToast returns the newest toast, or the zero value when none was shown.
func (d *Driver[M]) LastToast() mode.ShowToastMsg {
	if len(d.Toasts) == 0 {
		return mode.ShowToastMsg{}
	}
	return d.Toasts[len(d.Toasts)-1]
}

// LastSent returns the newest navigation message, or nil.
func (d *Driver[M]) LastSent() tea.Msg {
	if len(d.Sent) == 0 {
		return nil
	}
	return d.Sent[len(d.Sent)-1]
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEscape,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"backspace": tea.KeyBackspace,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+r":    tea.KeyCtrlR,
	"ctrl+s":    tea.KeyCtrlS,
	"ctrl+t":    tea.KeyCtrlT,
	" ":         tea.KeySpace,
}

// KeyMsg builds the key message whose String() is k.
func KeyMsg(k string) tea.KeyMsg {
	if t, ok := namedKeys[k]; ok {
		if t == tea.KeySpace {
			return tea.KeyMsg{Type: t, Runes: []rune{' '}}
		}
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}
