package result

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/riceinspect/internal/config"
	"github.com/zjrosen/riceinspect/internal/history"
	"github.com/zjrosen/riceinspect/internal/inspection"
	"github.com/zjrosen/riceinspect/internal/mode"
	"github.com/zjrosen/riceinspect/internal/mode/modetest"
	"github.com/zjrosen/riceinspect/internal/recordapi"
	"github.com/zjrosen/riceinspect/internal/recordapi/recordapitest"
	"github.com/zjrosen/riceinspect/internal/ui/shared/toaster"
)

var created = time.Date(2024, 1, 31, 13, 45, 0, 0, time.UTC)

func isOwn(msg tea.Msg) bool {
	switch msg.(type) {
	case loadedMsg, reportMsg:
		return true
	}
	return false
}

func sampleRecord() inspection.Record {
	return inspection.Record{
		ID:            "rec-1",
		Name:          "Lot A",
		StandardID:    "1",
		StandardName:  "Standard 1",
		Note:          "dry season",
		Price:         1234.5,
		SamplingPoint: []inspection.SamplingPoint{inspection.SamplingFrontEnd},
		CreatedAt:     created,
		Result: inspection.Result{
			Composition: []inspection.CompositionRow{
				{Name: "Whole grain", Length: ">= 7", Actual: "60.25"},
				{Name: "Broken", Length: "< 7", Actual: "39.75%"},
			},
		},
	}
}

func mount(t *testing.T, svc *recordapitest.Service, id, notice string) (*modetest.Driver[Model], *config.Config) {
	t.Helper()
	srv := recordapitest.Start(t, svc)
	cfg := config.Defaults()
	cfg.Export.Dir = t.TempDir()
	services := mode.Services{
		Config: &cfg,
		Client: recordapi.New(srv.URL),
		Ctx:    context.Background(),
		Now:    func() time.Time { return created },
	}
	m, cmd := New(services, id, notice).SetSize(100, 40).Mount()
	d := modetest.New(t, m, isOwn)
	d.Run(cmd)
	return d, &cfg
}

func TestLoad(t *testing.T) {
	svc := recordapitest.New()
	svc.Seed(sampleRecord())
	d, _ := mount(t, svc, "rec-1", "")

	rec, ok := d.Model.Record()
	require.True(t, ok)
	require.Equal(t, "Lot A", rec.Name)
	require.Empty(t, d.Toasts)

	view := d.Model.View()
	require.Contains(t, view, "Basic Information")
	require.Contains(t, view, "Composition")
	require.Contains(t, view, "Defect Rice")
	require.Contains(t, view, "100.00")
}

func TestLoad_ShowsNotice(t *testing.T) {
	svc := recordapitest.New()
	svc.Seed(sampleRecord())
	d, _ := mount(t, svc, "rec-1", "Updated successfully")

	require.Equal(t, mode.ShowToastMsg{Message: "Updated successfully", Style: toaster.StyleSuccess}, d.LastToast())
}

func TestLoad_NotFound(t *testing.T) {
	d, _ := mount(t, recordapitest.New(), "missing", "")

	require.Equal(t, history.NoticeNotFound, d.Model.Error())
	require.Contains(t, d.Model.View(), history.NoticeNotFound)
	require.Equal(t, toaster.StyleError, d.LastToast().Style)
}

func TestLoad_Failure(t *testing.T) {
	svc := recordapitest.New()
	svc.Seed(sampleRecord())
	svc.Fail(recordapitest.Fault{Method: "GET", Path: "/history/{id}", Status: 500, Body: `{}`})
	d, _ := mount(t, svc, "rec-1", "")

	require.Equal(t, history.NoticeFetchFailed, d.Model.Error())

	d.Key("ctrl+r")
	require.Empty(t, d.Model.Error())
	_, ok := d.Model.Record()
	require.True(t, ok)
}

func TestNavigation(t *testing.T) {
	svc := recordapitest.New()
	svc.Seed(sampleRecord())
	d, _ := mount(t, svc, "rec-1", "")

	d.Key("e")
	require.Equal(t, mode.OpenEditMsg{ID: "rec-1"}, d.LastSent())

	d.Key("esc")
	require.Equal(t, mode.OpenHistoryMsg{}, d.LastSent())
}

func TestEditNeedsRecord(t *testing.T) {
	d, _ := mount(t, recordapitest.New(), "missing", "")
	d.Key("e")
	require.Nil(t, d.LastSent())
}

func TestReport(t *testing.T) {
	svc := recordapitest.New()
	svc.Seed(sampleRecord())
	d, cfg := mount(t, svc, "rec-1", "")

	d.Key("p")

	path := filepath.Join(cfg.Export.Dir, "report-rec-20240131-134500.pdf")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "%PDF-"))
	require.Equal(t, mode.ShowToastMsg{Message: "Report saved to " + path, Style: toaster.StyleSuccess}, d.LastToast())
}

func TestPlainText(t *testing.T) {
	out := PlainText(sampleRecord())

	require.Contains(t, out, "Inspection ID   rec-1")
	require.Contains(t, out, "Standard        Standard 1")
	require.Contains(t, out, "Total Sample    100.00")
	require.Contains(t, out, "Create Date     "+inspection.FormatTime(created))
	require.Contains(t, out, "60.25 %")
	require.Contains(t, out, "No data")
	require.NotContains(t, out, "\x1b[")
}
