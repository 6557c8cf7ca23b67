// Package history coordinates the inspection history query: which filter is
// active, which page is shown, which rows are selected, and which of the
// responses in flight may still update the view.
//
// The Coordinator is a value type with no I/O. Every event returns the next
// coordinator and, when the event needs the network, a Request describing the
// single call to make. The caller runs the request and feeds the Response back
// through Apply.
package history

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/zjrosen/riceinspect/internal/inspection"
)

// DefaultPageSize is the page size of a freshly mounted history page.
const DefaultPageSize = 10

// PageSizes are the selectable page sizes.
var PageSizes = []int{10, 20, 50, 100}

// Notice texts shown after a response is applied.
const (
	NoticeNotFound     = "History not found"
	NoticeFetchFailed  = "Failed to fetch history"
	NoticeDeleted      = "Deleted successfully"
	NoticeDeleteFailed = "Failed to delete"
)

const summaryFormat = "%d-%d of %d items"

// NoticeLevel classifies a Notice for display.
type NoticeLevel int

const (
	NoticeNone NoticeLevel = iota
	NoticeSuccess
	NoticeError
)

// Notice is a transient message produced by Apply.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// State is the query state visible to the page.
type State struct {
	// Draft inputs; they take effect on Search.
	SearchID  string
	DateRange *DateRange

	// Filter is the filter the visible rows were fetched with. A new filter
	// replaces it only once its response lands.
	Filter   Filter
	Page     int
	PageSize int
	Items    []inspection.Record
	Total    int
}

// Coordinator owns the history query state.
type Coordinator struct {
	state     State
	selection map[string]struct{}

	seq        uint64 // last sequence number issued
	latest     uint64 // sequence of the newest fetch; older fetches are stale
	fetching   bool
	deleting   bool
	notice     Notice
	lastDelete int
}

// New returns a coordinator for a freshly mounted page: page 1, no filters.
// pageSize falls back to DefaultPageSize when it is not positive.
func New(pageSize int) Coordinator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Coordinator{
		state: State{
			Filter:   Unfiltered(),
			Page:     1,
			PageSize: pageSize,
		},
		selection: map[string]struct{}{},
	}
}

// State returns a snapshot of the query state.
func (c Coordinator) State() State { return c.state }

// Loading reports whether the newest fetch has not been applied yet.
func (c Coordinator) Loading() bool { return c.fetching }

// Deleting reports whether a delete is in flight.
func (c Coordinator) Deleting() bool { return c.deleting }

// Notice returns the notice produced by the last Apply, if any.
func (c Coordinator) Notice() Notice { return c.notice }

// LastDeleted returns how many records the last successful delete removed.
func (c Coordinator) LastDeleted() int { return c.lastDelete }

// Load issues the initial unfiltered fetch.
func (c Coordinator) Load() (Coordinator, *Request) {
	return c.fetch(c.state.Filter, 1, c.state.PageSize)
}

// SetSearchID updates the draft search id.
func (c Coordinator) SetSearchID(id string) Coordinator {
	c.state.SearchID = id
	return c
}

// SetDateRange updates the draft date range. nil clears it.
func (c Coordinator) SetDateRange(r *DateRange) Coordinator {
	if r != nil {
		cp := *r
		r = &cp
	}
	c.state.DateRange = r
	return c
}

// Search activates the draft filters. A non-empty search id wins over the
// date range.
func (c Coordinator) Search() (Coordinator, *Request) {
	if id := strings.TrimSpace(c.state.SearchID); id != "" {
		return c.fetch(ByID(id), 1, c.state.PageSize)
	}
	f := Unfiltered()
	if r := c.state.DateRange; r != nil {
		f = ByRange(r.From, r.To)
	}
	return c.fetch(f, 1, c.state.PageSize)
}

// Clear resets every filter and the selection, keeping the page size, and
// fetches the first unfiltered page.
func (c Coordinator) Clear() (Coordinator, *Request) {
	c.state.SearchID = ""
	c.state.DateRange = nil
	c.selection = map[string]struct{}{}
	c.state.Page = 1
	return c.fetch(Unfiltered(), 1, c.state.PageSize)
}

// PageChange fetches another page or page size under the active filter. It
// is ignored while an id lookup is active. A page past the end lands on the
// last page.
func (c Coordinator) PageChange(page, pageSize int) (Coordinator, *Request) {
	if c.state.Filter.Kind() == FilterByID {
		return c, nil
	}
	if pageSize <= 0 {
		pageSize = c.state.PageSize
	}
	if page < 1 {
		page = 1
	}
	return c.fetch(c.state.Filter, page, pageSize)
}

// NextPage moves forward one page when there is one.
func (c Coordinator) NextPage() (Coordinator, *Request) {
	if c.state.Page >= c.PageCount() {
		return c, nil
	}
	return c.PageChange(c.state.Page+1, c.state.PageSize)
}

// PrevPage moves back one page when there is one.
func (c Coordinator) PrevPage() (Coordinator, *Request) {
	if c.state.Page <= 1 {
		return c, nil
	}
	return c.PageChange(c.state.Page-1, c.state.PageSize)
}

// CyclePageSize switches to the next entry of PageSizes and returns to page 1.
func (c Coordinator) CyclePageSize() (Coordinator, *Request) {
	next := PageSizes[0]
	for i, size := range PageSizes {
		if size == c.state.PageSize && i+1 < len(PageSizes) {
			next = PageSizes[i+1]
			break
		}
	}
	return c.PageChange(1, next)
}

// Refresh re-issues the active fetch at the current page.
func (c Coordinator) Refresh() (Coordinator, *Request) {
	return c.refetch()
}

// DeleteSelected issues one delete for every selected record. Nothing is
// issued when the selection is empty.
func (c Coordinator) DeleteSelected() (Coordinator, *Request) {
	ids := c.Selected()
	if len(ids) == 0 || c.deleting {
		return c, nil
	}
	c.seq++
	c.deleting = true
	return c, &Request{
		Kind:     KindDelete,
		Seq:      c.seq,
		Filter:   c.state.Filter,
		Page:     c.state.Page,
		PageSize: c.state.PageSize,
		IDs:      ids,
	}
}

// Toggle flips the selection of id. Ids not on the current page are ignored.
func (c Coordinator) Toggle(id string) Coordinator {
	if !c.onPage(id) {
		return c
	}
	c.selection = maps.Clone(c.selection)
	if c.selection == nil {
		c.selection = map[string]struct{}{}
	}
	if _, ok := c.selection[id]; ok {
		delete(c.selection, id)
	} else {
		c.selection[id] = struct{}{}
	}
	return c
}

// SelectAll selects every record on the current page.
func (c Coordinator) SelectAll() Coordinator {
	c.selection = make(map[string]struct{}, len(c.state.Items))
	for _, r := range c.state.Items {
		c.selection[r.ID] = struct{}{}
	}
	return c
}

// ClearSelection deselects everything.
func (c Coordinator) ClearSelection() Coordinator {
	c.selection = map[string]struct{}{}
	return c
}

// IsSelected reports whether id is selected.
func (c Coordinator) IsSelected(id string) bool {
	_, ok := c.selection[id]
	return ok
}

// AllSelected reports whether every row on a non-empty page is selected.
func (c Coordinator) AllSelected() bool {
	if len(c.state.Items) == 0 {
		return false
	}
	for _, r := range c.state.Items {
		if !c.IsSelected(r.ID) {
			return false
		}
	}
	return true
}

// Selected returns the selected ids in page order.
func (c Coordinator) Selected() []string {
	var ids []string
	for _, r := range c.state.Items {
		if c.IsSelected(r.ID) {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// Apply folds a response into the state. Fetch responses older than the
// newest fetch are discarded. A successful delete returns the refetch request,
// and an empty page past the end of a non-empty result returns a fetch of the
// last page.
func (c Coordinator) Apply(resp Response) (Coordinator, *Request) {
	c.notice = Notice{}
	req := resp.Request

	if req.Kind == KindDelete {
		c.deleting = false
		if resp.Err != nil {
			c.notice = Notice{Level: NoticeError, Text: NoticeDeleteFailed}
			return c, nil
		}
		c.lastDelete = len(req.IDs)
		c.selection = map[string]struct{}{}
		c.notice = Notice{Level: NoticeSuccess, Text: NoticeDeleted}
		return c.refetch()
	}

	if req.Seq != c.latest {
		return c, nil
	}
	c.fetching = false

	switch req.Kind {
	case KindGet:
		if resp.Err != nil {
			c.state.Items = nil
			c.state.Total = 0
			c.notice = Notice{Level: NoticeError, Text: NoticeNotFound}
		} else {
			c.state.Items = []inspection.Record{resp.Record}
			c.state.Total = 1
		}
		c.state.Filter = req.Filter
		c.state.Page = 1
		c.state.PageSize = req.PageSize
	case KindList:
		if resp.Err != nil {
			c.notice = Notice{Level: NoticeError, Text: NoticeFetchFailed}
			return c, nil
		}
		if last := pageCount(resp.Page.Total, req.PageSize); len(resp.Page.Items) == 0 && req.Page > last {
			if resp.Page.Total > 0 {
				return c.fetch(req.Filter, last, req.PageSize)
			}
			req.Page = 1
		}
		c.state.Filter = req.Filter
		c.state.Items = resp.Page.Items
		c.state.Total = resp.Page.Total
		c.state.Page = req.Page
		c.state.PageSize = req.PageSize
	}
	c.pruneSelection()
	return c, nil
}

// IsNotFound reports whether a failed response was a missing id.
func IsNotFound(resp Response) bool {
	return errors.Is(resp.Err, inspection.ErrNotFound)
}

// PageCount is the number of pages for the current total, at least 1.
func (c Coordinator) PageCount() int {
	return pageCount(c.state.Total, c.state.PageSize)
}

func pageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Summary renders the visible range, e.g. "11-20 of 25 items".
func (c Coordinator) Summary() string {
	total := c.state.Total
	if total <= 0 {
		return fmt.Sprintf(summaryFormat, 0, 0, 0)
	}
	start := (c.state.Page-1)*c.state.PageSize + 1
	end := c.state.Page * c.state.PageSize
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}
	return fmt.Sprintf(summaryFormat, start, end, total)
}

func (c Coordinator) fetch(f Filter, page, pageSize int) (Coordinator, *Request) {
	c.seq++
	c.latest = c.seq
	c.fetching = true

	req := &Request{
		Seq:      c.seq,
		Filter:   f,
		Page:     page,
		PageSize: pageSize,
	}
	if f.Kind() == FilterByID {
		req.Kind = KindGet
		req.ID = f.ID()
		req.Page = 1
	} else {
		req.Kind = KindList
		req.Params = f.Params(page, pageSize)
	}
	return c, req
}

func (c Coordinator) refetch() (Coordinator, *Request) {
	return c.fetch(c.state.Filter, c.state.Page, c.state.PageSize)
}

func (c Coordinator) onPage(id string) bool {
	for _, r := range c.state.Items {
		if r.ID == id {
			return true
		}
	}
	return false
}

// pruneSelection drops selected ids that are no longer on the page.
func (c *Coordinator) pruneSelection() {
	if len(c.selection) == 0 {
		return
	}
	kept := make(map[string]struct{}, len(c.selection))
	for _, r := range c.state.Items {
		if _, ok := c.selection[r.ID]; ok {
			kept[r.ID] = struct{}{}
		}
	}
	c.selection = kept
}
