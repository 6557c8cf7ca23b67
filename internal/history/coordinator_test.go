package history

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/riceinspect/internal/inspection"
	"github.com/zjrosen/riceinspect/internal/mocks"
)

func records(ids ...string) []inspection.Record {
	out := make([]inspection.Record, len(ids))
	for i, id := range ids {
		out[i] = inspection.Record{ID: id, Name: "lot " + id, Result: inspection.EmptyResult()}
	}
	return out
}

func pageOf(total int, ids ...string) inspection.Page {
	return inspection.Page{Items: records(ids...), Total: total}
}

// loaded returns a coordinator showing ids on page 1 of total.
func loaded(t *testing.T, total int, ids ...string) Coordinator {
	t.Helper()
	c, req := New(0).Load()
	require.NotNil(t, req)
	c, next := c.Apply(Response{Request: *req, Page: pageOf(total, ids...)})
	require.Nil(t, next)
	return c
}

func TestLoad_UnfilteredFirstPage(t *testing.T) {
	c, req := New(0).Load()
	require.NotNil(t, req)
	require.Equal(t, KindList, req.Kind)
	require.Equal(t, inspection.ListParams{Page: 1, Limit: DefaultPageSize}, req.Params)
	require.True(t, c.Loading())
	require.Equal(t, "0-0 of 0 items", c.Summary())
	require.Equal(t, 1, c.PageCount())
}

func TestSearch_IDWinsOverDateRange(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	c := New(0).SetSearchID("  abc  ").SetDateRange(&DateRange{From: from, To: to})

	c, req := c.Search()
	require.NotNil(t, req)
	require.Equal(t, KindGet, req.Kind)
	require.Equal(t, "abc", req.ID)
	require.Nil(t, req.Params.FromDate)
	require.Nil(t, req.Params.ToDate)
	require.Zero(t, req.Params.Page)
	require.Equal(t, FilterByID, req.Filter.Kind())
	require.Equal(t, FilterUnfiltered, c.State().Filter.Kind())
}

func TestSearch_DateRange(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	c := loaded(t, 30, "a", "b")
	c, req := c.PageChange(3, 10)
	c, _ = c.Apply(Response{Request: *req, Page: pageOf(30, "c")})
	require.Equal(t, 3, c.State().Page)

	c, req = c.SetDateRange(&DateRange{From: from, To: to}).Search()
	require.Equal(t, KindList, req.Kind)
	require.Equal(t, 1, req.Params.Page)
	require.Equal(t, 10, req.Params.Limit)
	require.Equal(t, from, *req.Params.FromDate)
	require.Equal(t, to, *req.Params.ToDate)

	c, _ = c.Apply(Response{Request: *req, Page: pageOf(2, "d", "e")})
	require.Equal(t, 1, c.State().Page)
	require.Equal(t, 2, c.State().Total)
	require.Equal(t, "1-2 of 2 items", c.Summary())
}

func TestSearch_EmptyIDListsUnfiltered(t *testing.T) {
	_, req := New(0).SetSearchID("   ").Search()
	require.Equal(t, KindList, req.Kind)
	require.Equal(t, inspection.ListParams{Page: 1, Limit: 10}, req.Params)
}

func TestGetByID_Found(t *testing.T) {
	c, req := loaded(t, 25, "a", "b").SetSearchID("x").Search()
	c, _ = c.Apply(Response{Request: *req, Record: records("x")[0]})

	s := c.State()
	require.Len(t, s.Items, 1)
	require.Equal(t, "x", s.Items[0].ID)
	require.Equal(t, 1, s.Total)
	require.Equal(t, 1, s.Page)
	require.Equal(t, "1-1 of 1 items", c.Summary())
	require.Equal(t, NoticeNone, c.Notice().Level)
}

func TestGetByID_NotFound(t *testing.T) {
	c, req := loaded(t, 25, "a", "b").SetSearchID("X").Search()
	resp := Response{Request: *req, Err: fmt.Errorf("getting history X: %w", inspection.ErrNotFound)}
	require.True(t, IsNotFound(resp))

	c, next := c.Apply(resp)
	require.Nil(t, next)
	require.Empty(t, c.State().Items)
	require.Equal(t, 0, c.State().Total)
	require.Equal(t, Notice{Level: NoticeError, Text: "History not found"}, c.Notice())
}

func TestGetByID_OtherFailureAlsoNotFound(t *testing.T) {
	c, req := loaded(t, 25, "a").SetSearchID("X").Search()
	c, _ = c.Apply(Response{Request: *req, Err: errors.New("connection refused")})
	require.Empty(t, c.State().Items)
	require.Equal(t, "History not found", c.Notice().Text)
}

func TestClear_ResetsButKeepsPageSize(t *testing.T) {
	c := loaded(t, 100, "a", "b", "c")
	c, req := c.PageChange(2, 20)
	c, _ = c.Apply(Response{Request: *req, Page: pageOf(100, "d", "e")})
	c = c.Toggle("d").SetSearchID("zzz").SetDateRange(&DateRange{From: time.Now(), To: time.Now()})
	require.Equal(t, []string{"d"}, c.Selected())

	c, req = c.Clear()
	require.NotNil(t, req)
	require.Equal(t, KindList, req.Kind)
	require.Equal(t, inspection.ListParams{Page: 1, Limit: 20}, req.Params)
	require.Empty(t, c.Selected())
	require.Empty(t, c.State().SearchID)
	require.Nil(t, c.State().DateRange)
	require.Equal(t, FilterUnfiltered, req.Filter.Kind())
	require.Equal(t, 1, c.State().Page)
}

func TestClear_DefaultPageSize(t *testing.T) {
	_, req := New(0).Clear()
	require.Equal(t, 10, req.Params.Limit)
}

func TestPageChange_Summary(t *testing.T) {
	c := loaded(t, 25, "1", "2", "3", "4", "5", "6", "7", "8", "9", "10")
	c, req := c.PageChange(2, 10)
	require.Equal(t, inspection.ListParams{Page: 2, Limit: 10}, req.Params)

	// Page is only committed when the response arrives.
	require.Equal(t, 1, c.State().Page)

	c, _ = c.Apply(Response{Request: *req, Page: pageOf(25, "11", "12", "13", "14", "15", "16", "17", "18", "19", "20")})
	require.Equal(t, "11-20 of 25 items", c.Summary())
	require.Equal(t, 3, c.PageCount())
}

func TestPageChange_IgnoredForIDFilter(t *testing.T) {
	c, req := loaded(t, 25, "a").SetSearchID("a").Search()
	c, _ = c.Apply(Response{Request: *req, Record: records("a")[0]})

	_, req = c.PageChange(2, 10)
	require.Nil(t, req)
	_, req = c.NextPage()
	require.Nil(t, req)
}

func TestPageChange_KeepsActiveRangeNotDraft(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(time.Hour)
	c, req := New(0).SetDateRange(&DateRange{From: from, To: to}).Search()
	c, _ = c.Apply(Response{Request: *req, Page: pageOf(30, "a")})

	// A new draft that has not been searched does not leak into paging.
	c = c.SetDateRange(nil)
	_, req = c.PageChange(2, 10)
	require.NotNil(t, req.Params.FromDate)
	require.Equal(t, from, *req.Params.FromDate)
}

func TestNextPrevPage(t *testing.T) {
	c := loaded(t, 25, "a")
	_, req := c.PrevPage()
	require.Nil(t, req)

	c, req = c.NextPage()
	require.Equal(t, 2, req.Params.Page)
	c, _ = c.Apply(Response{Request: *req, Page: pageOf(25, "b")})
	c, req = c.NextPage()
	c, _ = c.Apply(Response{Request: *req, Page: pageOf(25, "c")})
	require.Equal(t, 3, c.State().Page)
	_, req = c.NextPage()
	require.Nil(t, req)
}

func TestCyclePageSize(t *testing.T) {
	c := loaded(t, 500, "a")
	for _, want := range []int{20, 50, 100, 10} {
		var req *Request
		c, req = c.CyclePageSize()
		require.Equal(t, want, req.Params.Limit)
		require.Equal(t, 1, req.Params.Page)
		c, _ = c.Apply(Response{Request: *req, Page: pageOf(500, "a")})
		require.Equal(t, want, c.State().PageSize)
	}
}

func TestStaleResponsesDiscarded(t *testing.T) {
	c := loaded(t, 50, "a")
	c, slow := c.PageChange(2, 10)
	c, fast := c.PageChange(3, 10)
	require.Greater(t, fast.Seq, slow.Seq)

	c, _ = c.Apply(Response{Request: *fast, Page: pageOf(50, "page3")})
	require.False(t, c.Loading())

	c, _ = c.Apply(Response{Request: *slow, Page: pageOf(50, "page2")})
	require.Equal(t, 3, c.State().Page)
	require.Equal(t, "page3", c.State().Items[0].ID)
}

func TestStaleIDLookupDiscardedAfterClear(t *testing.T) {
	c := loaded(t, 50, "a")
	c, lookup := c.SetSearchID("x").Search()
	c, clear := c.Clear()

	c, _ = c.Apply(Response{Request: *lookup, Err: inspection.ErrNotFound})
	require.True(t, c.Loading())
	require.Equal(t, NoticeNone, c.Notice().Level)
	require.Equal(t, "a", c.State().Items[0].ID)

	c, _ = c.Apply(Response{Request: *clear, Page: pageOf(2, "b", "c")})
	require.Equal(t, 2, c.State().Total)
}

func TestListFailureKeepsItems(t *testing.T) {
	c := loaded(t, 25, "a", "b")
	c, req := c.PageChange(2, 10)
	c, _ = c.Apply(Response{Request: *req, Err: errors.New("boom")})

	require.Equal(t, Notice{Level: NoticeError, Text: "Failed to fetch history"}, c.Notice())
	require.Len(t, c.State().Items, 2)
	require.Equal(t, 25, c.State().Total)
	require.Equal(t, 1, c.State().Page)
}

func TestListFailureKeepsActiveFilter(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := loaded(t, 25, "a", "b")
	c, req := c.SetDateRange(&DateRange{From: from, To: from.Add(time.Hour)}).Search()
	require.Equal(t, FilterByRange, req.Filter.Kind())

	c, _ = c.Apply(Response{Request: *req, Err: errors.New("boom")})
	require.Equal(t, FilterUnfiltered, c.State().Filter.Kind())
	require.Equal(t, []string{"a", "b"}, itemIDs(c.State().Items))

	_, req = c.PageChange(2, 10)
	require.Equal(t, FilterUnfiltered, req.Filter.Kind())
	require.Nil(t, req.Params.FromDate)
}

func TestSelection(t *testing.T) {
	c := loaded(t, 3, "a", "b", "c")

	c = c.Toggle("b").Toggle("zzz")
	require.Equal(t, []string{"b"}, c.Selected())
	require.False(t, c.AllSelected())

	c = c.SelectAll()
	require.Equal(t, []string{"a", "b", "c"}, c.Selected())
	require.True(t, c.AllSelected())

	c = c.Toggle("a")
	require.Equal(t, []string{"b", "c"}, c.Selected())

	c = c.ClearSelection()
	require.Empty(t, c.Selected())
}

func TestSelection_ValueSemantics(t *testing.T) {
	before := loaded(t, 2, "a", "b")
	after := before.Toggle("a")
	require.False(t, before.IsSelected("a"))
	require.True(t, after.IsSelected("a"))
}

func TestDeleteSelected_EmptyIssuesNothing(t *testing.T) {
	c := loaded(t, 2, "a", "b")
	_, req := c.DeleteSelected()
	require.Nil(t, req)
}

func TestDeleteSelected_SuccessRefetchesCurrentPage(t *testing.T) {
	c := loaded(t, 25, "a")
	c, req := c.PageChange(2, 10)
	c, _ = c.Apply(Response{Request: *req, Page: pageOf(25, "k", "l", "m")})
	c = c.Toggle("m").Toggle("k")

	c, del := c.DeleteSelected()
	require.NotNil(t, del)
	require.Equal(t, KindDelete, del.Kind)
	require.Equal(t, []string{"k", "m"}, del.IDs)
	require.True(t, c.Deleting())

	_, again := c.DeleteSelected()
	require.Nil(t, again)

	c, refetch := c.Apply(Response{Request: *del})
	require.NotNil(t, refetch)
	require.Equal(t, KindList, refetch.Kind)
	require.Equal(t, inspection.ListParams{Page: 2, Limit: 10}, refetch.Params)
	require.Equal(t, Notice{Level: NoticeSuccess, Text: "Deleted successfully"}, c.Notice())
	require.Empty(t, c.Selected())
	require.Equal(t, 2, c.LastDeleted())
	require.False(t, c.Deleting())

	c, _ = c.Apply(Response{Request: *refetch, Page: pageOf(23, "l")})
	require.Equal(t, "11-20 of 23 items", c.Summary())
}

func TestDeleteSelected_WholeLastPageMovesBack(t *testing.T) {
	c := loaded(t, 25, "a")
	c, req := c.PageChange(3, 10)
	c, _ = c.Apply(Response{Request: *req, Page: pageOf(25, "u", "v", "w", "x", "y")})
	require.Equal(t, "21-25 of 25 items", c.Summary())

	c, del := c.SelectAll().DeleteSelected()
	c, refetch := c.Apply(Response{Request: *del})
	require.Equal(t, 3, refetch.Page)

	c, last := c.Apply(Response{Request: *refetch, Page: pageOf(20)})
	require.NotNil(t, last)
	require.Equal(t, KindList, last.Kind)
	require.Equal(t, inspection.ListParams{Page: 2, Limit: 10}, last.Params)
	require.True(t, c.Loading())

	c, next := c.Apply(Response{Request: *last, Page: pageOf(20, "k", "l")})
	require.Nil(t, next)
	require.False(t, c.Loading())
	require.Equal(t, 2, c.State().Page)
	require.Equal(t, 2, c.PageCount())
	require.Equal(t, "11-20 of 20 items", c.Summary())
}

func TestApply_EmptyResultPastEndResetsToFirstPage(t *testing.T) {
	c, req := loaded(t, 25, "a").PageChange(3, 10)
	c, next := c.Apply(Response{Request: *req, Page: pageOf(0)})
	require.Nil(t, next)
	require.Equal(t, 1, c.State().Page)
	require.Equal(t, "0-0 of 0 items", c.Summary())
}

func TestDeleteSelected_IDFilterRefetchesLookup(t *testing.T) {
	c, req := loaded(t, 25, "a").SetSearchID("x").Search()
	c, _ = c.Apply(Response{Request: *req, Record: records("x")[0]})
	c = c.Toggle("x")

	c, del := c.DeleteSelected()
	_, refetch := c.Apply(Response{Request: *del})
	require.Equal(t, KindGet, refetch.Kind)
	require.Equal(t, "x", refetch.ID)
}

func TestDeleteSelected_Failure(t *testing.T) {
	c := loaded(t, 2, "a", "b").Toggle("a")
	c, del := c.DeleteSelected()

	c, next := c.Apply(Response{Request: *del, Err: errors.New("nope")})
	require.Nil(t, next)
	require.Equal(t, Notice{Level: NoticeError, Text: "Failed to delete"}, c.Notice())
	require.Equal(t, []string{"a"}, c.Selected())
	require.Len(t, c.State().Items, 2)
}

func TestDeleteResponseNotDiscardedByNewerFetch(t *testing.T) {
	c := loaded(t, 2, "a", "b").Toggle("a")
	c, del := c.DeleteSelected()
	c, _ = c.Refresh()

	c, refetch := c.Apply(Response{Request: *del})
	require.NotNil(t, refetch)
	require.Equal(t, "Deleted successfully", c.Notice().Text)
}

func TestRun_DispatchesToService(t *testing.T) {
	ctx := context.Background()
	svc := mocks.NewMockHistoryService(t)

	_, list := New(20).Load()
	svc.EXPECT().ListHistory(mock.Anything, inspection.ListParams{Page: 1, Limit: 20}).
		Return(pageOf(1, "a"), nil).Once()
	resp := list.Run(ctx, svc)
	require.NoError(t, resp.Err)
	require.Equal(t, 1, resp.Page.Total)

	_, get := New(0).SetSearchID("a").Search()
	svc.EXPECT().GetHistory(mock.Anything, "a").Return(inspection.Record{}, inspection.ErrNotFound).Once()
	resp = get.Run(ctx, svc)
	require.True(t, IsNotFound(resp))

	del := Request{Kind: KindDelete, IDs: []string{"a", "b"}}
	svc.EXPECT().DeleteHistory(mock.Anything, []string{"a", "b"}).Return(nil).Once()
	require.NoError(t, del.Run(ctx, svc).Err)
}
