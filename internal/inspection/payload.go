package inspection

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// CreatePayload is the body of POST /history.
type CreatePayload struct {
	Name             string          `json:"name"`
	StandardID       string          `json:"standardId"`
	Note             string          `json:"note,omitempty"`
	Price            float64         `json:"price"`
	SamplingPoint    []SamplingPoint `json:"samplingPoint,omitempty"`
	SamplingDateTime *string         `json:"samplingDateTime"`
	CustomRawData    json.RawMessage `json:"customRawData,omitempty"`
}

// UpdatePayload is the partial body of PUT /history/:id. Nil fields are not
// sent.
type UpdatePayload struct {
	Note             *string         `json:"note,omitempty"`
	Price            *float64        `json:"price,omitempty"`
	SamplingPoint    []SamplingPoint `json:"samplingPoint,omitempty"`
	SamplingDateTime *string         `json:"samplingDateTime,omitempty"`
}

// CreateForm holds raw create-form input as typed by the user.
type CreateForm struct {
	Name          string
	StandardID    string
	Note          string
	Price         string
	SamplingPoint []string
	DateTime      string // DateTimeLayout in loc, optional
	RawJSON       []byte // contents of the uploaded file, optional
}

// Payload validates the form and builds the request body. Dates are read in
// loc and sent as UTC ISO-8601. A *ValidationError lists every bad field.
func (f CreateForm) Payload(loc *time.Location) (CreatePayload, error) {
	verr := &ValidationError{}
	p := CreatePayload{
		Name:       strings.TrimSpace(f.Name),
		StandardID: strings.TrimSpace(f.StandardID),
		Note:       strings.TrimSpace(f.Note),
	}

	if p.Name == "" {
		verr.add("name", "Please enter inspection name")
	}
	if p.StandardID == "" {
		verr.add("standardId", "Please select a standard")
	}

	if strings.TrimSpace(f.Price) == "" {
		verr.add("price", "Please enter a price")
	} else if price, msg := parsePriceInput(f.Price); msg != "" {
		verr.add("price", msg)
	} else {
		p.Price = price
	}

	points, msg := parseSamplingPoints(f.SamplingPoint)
	if msg != "" {
		verr.add("samplingPoint", msg)
	}
	p.SamplingPoint = points

	if ts, msg := parseDateTimeInput(f.DateTime, loc); msg != "" {
		verr.add("dateTime", msg)
	} else {
		p.SamplingDateTime = ts
	}

	if len(strings.TrimSpace(string(f.RawJSON))) > 0 {
		if !json.Valid(f.RawJSON) {
			verr.add("rawJson", "Uploaded file is not valid JSON")
		} else {
			p.CustomRawData = json.RawMessage(f.RawJSON)
		}
	}

	if err := verr.orNil(); err != nil {
		return CreatePayload{}, err
	}
	return p, nil
}

// UpdateForm holds raw edit-form input.
type UpdateForm struct {
	Note          string
	Price         string
	SamplingPoint []string
	DateTime      string
}

// FormFromRecord pre-fills an edit form from an existing record.
func FormFromRecord(r Record) UpdateForm {
	f := UpdateForm{Note: r.Note}
	if r.Price != 0 {
		f.Price = strconv.FormatFloat(r.Price, 'f', -1, 64)
	}
	for _, p := range r.SamplingPoint {
		f.SamplingPoint = append(f.SamplingPoint, string(p))
	}
	if r.SamplingDateTime != nil {
		f.DateTime = r.SamplingDateTime.Local().Format(DateTimeLayout)
	}
	return f
}

// Payload validates the edit form and builds a partial update. Empty price
// and date are omitted; empty sampling entries are dropped.
func (f UpdateForm) Payload(loc *time.Location) (UpdatePayload, error) {
	verr := &ValidationError{}
	note := f.Note
	p := UpdatePayload{Note: &note}

	if strings.TrimSpace(f.Price) != "" {
		price, msg := parsePriceInput(f.Price)
		if msg != "" {
			verr.add("price", msg)
		} else if price != 0 {
			p.Price = &price
		}
	}

	points, msg := parseSamplingPoints(f.SamplingPoint)
	if msg != "" {
		verr.add("samplingPoint", msg)
	}
	p.SamplingPoint = points

	if ts, msg := parseDateTimeInput(f.DateTime, loc); msg != "" {
		verr.add("dateTime", msg)
	} else {
		p.SamplingDateTime = ts
	}

	if err := verr.orNil(); err != nil {
		return UpdatePayload{}, err
	}
	return p, nil
}

// ValidatePrice checks a price against the accepted range [0, MaxPrice].
func ValidatePrice(price float64) error {
	if price > MaxPrice {
		return fmt.Errorf("Price must not be greater than %d", MaxPrice)
	}
	if price < 0 {
		return errors.New("Price must not be less than 0")
	}
	return nil
}

func parsePriceInput(s string) (float64, string) {
	price, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, "Price must be a number"
	}
	if err := ValidatePrice(price); err != nil {
		return 0, err.Error()
	}
	return price, ""
}

func parseSamplingPoints(raw []string) ([]SamplingPoint, string) {
	var out []SamplingPoint
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		p := SamplingPoint(s)
		if !p.Valid() {
			return nil, fmt.Sprintf("Unknown sampling point %q", s)
		}
		out = append(out, p)
	}
	return out, ""
}

func parseDateTimeInput(s string, loc *time.Location) (*string, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ""
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateTimeLayout, s, loc)
	if err != nil {
		return nil, "Date/Time must look like 2024-01-31 13:45:00"
	}
	iso := t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	return &iso, ""
}

// ParseRange parses an inclusive date range typed as two DateTimeLayout
// strings in loc. Both empty means no range.
func ParseRange(from, to string, loc *time.Location) (start, end *time.Time, err error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" && to == "" {
		return nil, nil, nil
	}
	if from == "" || to == "" {
		return nil, nil, &ValidationError{Fields: []FieldError{{Field: "dateRange", Message: "Both From and To are required"}}}
	}
	if loc == nil {
		loc = time.Local
	}
	f, ferr := time.ParseInLocation(DateTimeLayout, from, loc)
	t, terr := time.ParseInLocation(DateTimeLayout, to, loc)
	if ferr != nil || terr != nil {
		return nil, nil, &ValidationError{Fields: []FieldError{{Field: "dateRange", Message: "Dates must look like 2024-01-31 13:45:00"}}}
	}
	if t.Before(f) {
		return nil, nil, &ValidationError{Fields: []FieldError{{Field: "dateRange", Message: "To must not be before From"}}}
	}
	return &f, &t, nil
}
