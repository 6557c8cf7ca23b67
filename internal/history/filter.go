package history

import (
	"time"

	"github.com/zjrosen/riceinspect/internal/inspection"
)

// FilterKind identifies which query a Filter produces.
type FilterKind int

const (
	// FilterUnfiltered lists every record page by page.
	FilterUnfiltered FilterKind = iota
	// FilterByID looks up a single record; paging does not apply.
	FilterByID
	// FilterByRange lists records created within an inclusive date range.
	FilterByRange
)

func (k FilterKind) String() string {
	switch k {
	case FilterByID:
		return "id"
	case FilterByRange:
		return "range"
	default:
		return "all"
	}
}

// Filter is the active query mode. Exactly one kind is in effect at a time,
// so an id lookup can never carry date bounds.
type Filter struct {
	kind     FilterKind
	id       string
	from, to time.Time
}

// Unfiltered returns the filter that lists everything.
func Unfiltered() Filter { return Filter{} }

// ByID returns a filter that looks up id.
func ByID(id string) Filter { return Filter{kind: FilterByID, id: id} }

// ByRange returns a filter over [from, to].
func ByRange(from, to time.Time) Filter {
	return Filter{kind: FilterByRange, from: from, to: to}
}

// Kind returns the filter kind.
func (f Filter) Kind() FilterKind { return f.kind }

// ID returns the looked-up id for FilterByID, empty otherwise.
func (f Filter) ID() string { return f.id }

// Range returns the bounds for FilterByRange. ok is false for other kinds.
func (f Filter) Range() (from, to time.Time, ok bool) {
	if f.kind != FilterByRange {
		return time.Time{}, time.Time{}, false
	}
	return f.from, f.to, true
}

// Params builds list parameters for one page under f.
func (f Filter) Params(page, pageSize int) inspection.ListParams {
	switch f.kind {
	case FilterByID:
		return inspection.ListParams{ID: f.id}
	case FilterByRange:
		from, to := f.from, f.to
		return inspection.ListParams{FromDate: &from, ToDate: &to, Page: page, Limit: pageSize}
	default:
		return inspection.ListParams{Page: page, Limit: pageSize}
	}
}

// Label is a short human description of the filter.
func (f Filter) Label() string {
	switch f.kind {
	case FilterByID:
		return "ID " + f.id
	case FilterByRange:
		return f.from.Format(inspection.DateTimeLayout) + " to " + f.to.Format(inspection.DateTimeLayout)
	default:
		return "All"
	}
}

// DateRange is a draft inclusive date range typed into the filter inputs.
type DateRange struct {
	From time.Time
	To   time.Time
}
