package recordapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/riceinspect/internal/inspection"
	"github.com/zjrosen/riceinspect/internal/recordapi"
	"github.com/zjrosen/riceinspect/internal/recordapi/recordapitest"
)

func newClient(t *testing.T, opts ...recordapi.Option) (*recordapi.Client, *recordapitest.Service) {
	t.Helper()
	svc := recordapitest.New()
	srv := recordapitest.Start(t, svc)
	return recordapi.New(srv.URL, opts...), svc
}

func seedRecords(svc *recordapitest.Service, n int) []string {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := make([]inspection.Record, n)
	for i := range records {
		records[i] = inspection.Record{
			Name:         "lot",
			StandardID:   "1",
			StandardName: "Standard 1",
			Price:        123.456,
			CreatedAt:    base.Add(time.Duration(i) * time.Hour),
			Result: inspection.Result{
				Composition: []inspection.CompositionRow{{Name: "Whole", Length: "7 - 99", Actual: "80"}},
			},
		}
	}
	return svc.Seed(records...)
}

func TestListStandards(t *testing.T) {
	c, _ := newClient(t)
	standards, err := c.ListStandards(context.Background())
	require.NoError(t, err)
	require.Len(t, standards, 2)
	require.Equal(t, "1", standards[0].ID)
	require.NotEmpty(t, standards[0].StandardData)
}

func TestListHistory_NormalizesListShape(t *testing.T) {
	c, svc := newClient(t)
	seedRecords(svc, 25)

	page, err := c.ListHistory(context.Background(), inspection.ListParams{Page: 2, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 25, page.Total)
	require.Len(t, page.Items, 10)

	first := page.Items[0]
	require.Equal(t, 123.456, first.Price)
	require.Equal(t, "123.46", first.PriceLabel())
	require.Equal(t, "Standard 1", first.StandardName)
	require.Len(t, first.Result.Composition, 1)
	require.NotNil(t, first.Result.DefectRice)

	req, ok := svc.LastRequest()
	require.True(t, ok)
	require.Equal(t, []string{"2"}, req.Query["page"])
	require.Equal(t, []string{"10"}, req.Query["limit"])
	require.NotEmpty(t, req.ID)
}

func TestListHistory_IDDropsRangeAndPaging(t *testing.T) {
	c, svc := newClient(t)
	ids := seedRecords(svc, 3)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(time.Hour)

	page, err := c.ListHistory(context.Background(), inspection.ListParams{
		ID: ids[1], FromDate: &from, ToDate: &to, Page: 3, Limit: 50,
	})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)

	req, _ := svc.LastRequest()
	require.Equal(t, []string{ids[1]}, req.Query["id"])
	require.NotContains(t, req.Query, "fromDate")
	require.NotContains(t, req.Query, "toDate")
	require.NotContains(t, req.Query, "page")
	require.NotContains(t, req.Query, "limit")
}

func TestListHistory_DateRangeInclusive(t *testing.T) {
	c, svc := newClient(t)
	seedRecords(svc, 5)
	from := time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)

	page, err := c.ListHistory(context.Background(), inspection.ListParams{FromDate: &from, ToDate: &to, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)

	req, _ := svc.LastRequest()
	require.Equal(t, []string{"2024-01-01 01:00:00"}, req.Query["fromDate"])
	require.Equal(t, []string{"2024-01-01 03:00:00"}, req.Query["toDate"])
}

func TestGetHistory_DetailShapeMatchesList(t *testing.T) {
	c, svc := newClient(t)
	ids := seedRecords(svc, 1)

	rec, err := c.GetHistory(context.Background(), ids[0])
	require.NoError(t, err)
	page, err := c.ListHistory(context.Background(), inspection.ListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	require.Equal(t, page.Items[0].Result, rec.Result)
	require.Equal(t, page.Items[0].StandardName, rec.StandardName)
	require.Equal(t, page.Items[0].Price, rec.Price)
}

func TestGetHistory_NotFound(t *testing.T) {
	c, _ := newClient(t)
	_, err := c.GetHistory(context.Background(), "missing")
	require.ErrorIs(t, err, inspection.ErrNotFound)

	var rerr *recordapi.RemoteError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, http.StatusNotFound, rerr.Status)
	require.Equal(t, "History not found", rerr.Message())
}

func TestCreateHistory(t *testing.T) {
	c, svc := newClient(t)
	payload, err := inspection.CreateForm{
		Name:          "new lot",
		StandardID:    "2",
		Price:         "100000",
		SamplingPoint: []string{"Back End"},
	}.Payload(time.UTC)
	require.NoError(t, err)

	id, err := c.CreateHistory(context.Background(), payload)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	rec, ok := svc.Record(id)
	require.True(t, ok)
	require.Equal(t, "new lot", rec.Name)
	require.Equal(t, 100000.0, rec.Price)
	require.Len(t, rec.Result.Composition, 2)
}

func TestCreateHistory_RemoteValidation(t *testing.T) {
	c, _ := newClient(t)
	_, err := c.CreateHistory(context.Background(), inspection.CreatePayload{Name: "x", StandardID: "nope"})

	var verr *inspection.RemoteValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"standardId: standardId must reference an existing standard"}, verr.Lines())
	require.NotErrorIs(t, err, inspection.ErrNotFound)
}

func TestUpdateHistory(t *testing.T) {
	c, svc := newClient(t)
	ids := seedRecords(svc, 1)
	note := "rechecked"
	price := 42.0

	require.NoError(t, c.UpdateHistory(context.Background(), ids[0], inspection.UpdatePayload{Note: &note, Price: &price}))

	rec, _ := svc.Record(ids[0])
	require.Equal(t, "rechecked", rec.Note)
	require.Equal(t, 42.0, rec.Price)
}

func TestDeleteHistory(t *testing.T) {
	c, svc := newClient(t)
	ids := seedRecords(svc, 3)

	require.NoError(t, c.DeleteHistory(context.Background(), ids[:2]))
	require.Equal(t, 1, svc.Len())

	req, _ := svc.LastRequest()
	require.Equal(t, http.MethodDelete, req.Method)
	require.JSONEq(t, `{"ids":["`+ids[0]+`","`+ids[1]+`"]}`, req.Body)
}

func TestRemoteError_ServerFailure(t *testing.T) {
	c, svc := newClient(t)
	svc.Fail(recordapitest.Fault{Method: http.MethodGet, Path: "/history", Status: 500, Body: `{"message":"db down"}`})

	_, err := c.ListHistory(context.Background(), inspection.ListParams{Page: 1, Limit: 10})
	var rerr *recordapi.RemoteError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, 500, rerr.Status)
	require.Equal(t, "db down", rerr.Message())
	require.False(t, recordapi.IsNetwork(err))

	_, err = c.ListHistory(context.Background(), inspection.ListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
}

func TestNetworkError(t *testing.T) {
	c := recordapi.New("http://127.0.0.1:1", recordapi.WithTimeout(time.Second))
	_, err := c.ListStandards(context.Background())

	var nerr *recordapi.NetworkError
	require.ErrorAs(t, err, &nerr)
	require.True(t, recordapi.IsNetwork(err))
}

func TestNetworkError_Timeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	srv := httptest.NewServer(slow)
	t.Cleanup(srv.Close)

	c := recordapi.New(srv.URL, recordapi.WithTimeout(50*time.Millisecond))
	_, err := c.ListStandards(context.Background())

	var nerr *recordapi.NetworkError
	require.ErrorAs(t, err, &nerr)
	require.True(t, nerr.Timeout())
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, _ := newClient(t, recordapi.WithRegisterer(reg))

	_, err := c.ListStandards(context.Background())
	require.NoError(t, err)
	_, err = c.GetHistory(context.Background(), "missing")
	require.Error(t, err)

	// A second client on the same registry shares the collectors.
	c2 := recordapi.New(c.BaseURL(), recordapi.WithRegisterer(reg))
	_, err = c2.ListStandards(context.Background())
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "riceinspect_recordapi_requests_total")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	families, err := reg.Gather()
	require.NoError(t, err)
	var standardsHits float64
	for _, mf := range families {
		if mf.GetName() != "riceinspect_recordapi_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "route" && l.GetValue() == "/standard" {
					standardsHits += m.GetCounter().GetValue()
				}
			}
		}
	}
	require.Equal(t, 2.0, standardsHits)
}

func TestRemoteError_Unclassified(t *testing.T) {
	err := &recordapi.RemoteError{Method: "GET", Path: "/x", Status: 502, Body: []byte("bad gateway")}
	require.False(t, errors.Is(err, inspection.ErrNotFound))
	require.Empty(t, err.Message())
	require.Contains(t, err.Error(), "502")
}
