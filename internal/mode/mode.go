// Package mode holds what the TUI pages share: the services they are built
// with and the messages they send to the app shell.
package mode

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/riceinspect/internal/config"
	"github.com/zjrosen/riceinspect/internal/history"
	"github.com/zjrosen/riceinspect/internal/inspection"
	"github.com/zjrosen/riceinspect/internal/ui/shared/recall"
	"github.com/zjrosen/riceinspect/internal/ui/shared/toaster"
)

// RecordClient is the record service as the pages use it.
type RecordClient interface {
	history.Service
	ListStandards(ctx context.Context) ([]inspection.Standard, error)
	CreateHistory(ctx context.Context, p inspection.CreatePayload) (string, error)
	UpdateHistory(ctx context.Context, id string, p inspection.UpdatePayload) error
}

// Services are the dependencies handed to every page.
type Services struct {
	Config     *config.Config
	ConfigPath string
	Client     RecordClient

	// Recall holds searched ids; RecallPath is empty when not persisted.
	Recall     *recall.List
	RecallPath string

	// Ctx is cancelled when the program exits.
	Ctx context.Context
	// Loc is the zone typed dates are read in. nil means time.Local.
	Loc *time.Location
	// Now stamps export file names. nil means time.Now.
	Now func() time.Time
}

// Context returns Ctx, or context.Background when unset.
func (s Services) Context() context.Context {
	if s.Ctx == nil {
		return context.Background()
	}
	return s.Ctx
}

// Location returns Loc, or time.Local when unset.
func (s Services) Location() *time.Location {
	if s.Loc == nil {
		return time.Local
	}
	return s.Loc
}

// Clock returns the current time from Now.
func (s Services) Clock() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// ShowToastMsg asks the app to show a toast.
type ShowToastMsg struct {
	Message string
	Style   toaster.Style
}

// Toast returns a command that sends ShowToastMsg.
func Toast(message string, style toaster.Style) tea.Cmd {
	return func() tea.Msg { return ShowToastMsg{Message: message, Style: style} }
}

// OpenResultMsg navigates to the result page of ID. A non-empty Notice is
// shown as a success toast once the page is open.
type OpenResultMsg struct {
	ID     string
	Notice string
}

// OpenEditMsg navigates to the edit form of ID.
type OpenEditMsg struct {
	ID string
}

// OpenCreateMsg navigates to the create form.
type OpenCreateMsg struct{}

// OpenHistoryMsg navigates to the history page.
type OpenHistoryMsg struct{}

// ServiceUnreachableMsg reports that the record service could not be reached
// at all, as opposed to answering with an error.
type ServiceUnreachableMsg struct {
	Err error
}
