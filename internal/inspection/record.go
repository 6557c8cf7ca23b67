// Package inspection defines the rice inspection domain types shared by the
// record service client, the history coordinator and the TUI pages.
package inspection

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// SamplingPoint is a collection location tag attached to a record.
type SamplingPoint string

const (
	SamplingFrontEnd SamplingPoint = "Front End"
	SamplingBackEnd  SamplingPoint = "Back End"
	SamplingOther    SamplingPoint = "Other"
)

// SamplingPoints lists every valid tag in display order.
func SamplingPoints() []SamplingPoint {
	return []SamplingPoint{SamplingFrontEnd, SamplingBackEnd, SamplingOther}
}

// Valid reports whether p is one of the known tags.
func (p SamplingPoint) Valid() bool {
	for _, known := range SamplingPoints() {
		if p == known {
			return true
		}
	}
	return false
}

// MaxPrice is the largest accepted price. The bound is inclusive.
const MaxPrice = 100000

// DateTimeLayout is the wire and input format for date filters and form
// date/time fields (YYYY-MM-DD HH:mm:ss).
const DateTimeLayout = "2006-01-02 15:04:05"

// DisplayLayout is how timestamps are rendered in tables (DD/MM/YYYY HH:mm:ss).
const DisplayLayout = "02/01/2006 15:04:05"

// CompositionRow is a grain-length category with its measured percentage.
type CompositionRow struct {
	Name   string `json:"name"`
	Length string `json:"length"`
	Actual string `json:"actual"`
}

// DefectRow is a defect category with its measured percentage.
type DefectRow struct {
	Name   string `json:"name"`
	Actual string `json:"actual"`
}

// Result is the structured inspection outcome. Composition and DefectRice are
// never nil after normalization.
type Result struct {
	Composition []CompositionRow `json:"composition"`
	DefectRice  []DefectRow      `json:"defectRice"`
	TotalSample *float64         `json:"totalSample,omitempty"`
}

// EmptyResult returns a Result with empty, non-nil row slices.
func EmptyResult() Result {
	return Result{
		Composition: []CompositionRow{},
		DefectRice:  []DefectRow{},
	}
}

// Record is one inspection history entry as shown by the client.
type Record struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	StandardID       string          `json:"standardId,omitempty"`
	StandardName     string          `json:"standardName,omitempty"`
	Note             string          `json:"note,omitempty"`
	Price            float64         `json:"price"`
	SamplingPoint    []SamplingPoint `json:"samplingPoint,omitempty"`
	SamplingDateTime *time.Time      `json:"samplingDateTime,omitempty"`
	ImageURL         string          `json:"imageURL,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	Result           Result          `json:"inspectionResult"`
}

// StandardLabel returns the standard name, or "-" when unknown.
func (r Record) StandardLabel() string {
	return orDash(r.StandardName)
}

// NoteLabel returns the note, or "-" when empty.
func (r Record) NoteLabel() string {
	return orDash(r.Note)
}

// PriceLabel renders the price with two decimals, or "-" when zero.
func (r Record) PriceLabel() string {
	if r.Price == 0 {
		return "-"
	}
	return FormatPrice(r.Price)
}

// SamplingLabel joins the sampling tags, or "-" when none are set.
func (r Record) SamplingLabel() string {
	if len(r.SamplingPoint) == 0 {
		return "-"
	}
	parts := make([]string, len(r.SamplingPoint))
	for i, p := range r.SamplingPoint {
		parts[i] = string(p)
	}
	return strings.Join(parts, ", ")
}

// TotalSample sums the composition percentages. ok is false when there are no
// composition rows.
func (r Record) TotalSample() (total float64, ok bool) {
	if len(r.Result.Composition) == 0 {
		return 0, false
	}
	for _, row := range r.Result.Composition {
		total += ParsePercent(row.Actual)
	}
	return total, true
}

// TotalSampleLabel renders TotalSample with two decimals, or "-".
func (r Record) TotalSampleLabel() string {
	total, ok := r.TotalSample()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.2f", total)
}

// Standard is an inspection standard a record can be graded against.
type Standard struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	StandardData []SubStandard `json:"standardData,omitempty"`
}

// SubStandard is one grain class definition within a Standard.
type SubStandard struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	MaxLength    float64  `json:"maxLength"`
	MinLength    float64  `json:"minLength"`
	ConditionMax string   `json:"conditionMax"`
	ConditionMin string   `json:"conditionMin"`
	Shape        []string `json:"shape"`
}

// Page is one page of list results.
type Page struct {
	Items []Record
	Total int
}

// ListParams are the query parameters of a history list request. Zero values
// are omitted from the request.
type ListParams struct {
	ID       string
	FromDate *time.Time
	ToDate   *time.Time
	Page     int
	Limit    int
}

// FormatPrice renders a price rounded to two decimals.
func FormatPrice(p float64) string {
	return fmt.Sprintf("%.2f", math.Round(p*100)/100)
}

// FormatPercent renders a percentage string as "12.34 %".
func FormatPercent(s string) string {
	return fmt.Sprintf("%.2f %%", ParsePercent(s))
}

// FormatTime renders t in DisplayLayout, or "-" for the zero time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(DisplayLayout)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
