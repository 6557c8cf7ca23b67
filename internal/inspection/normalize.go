package inspection

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// WireRecord is a record exactly as the record service sends it. Price may be
// a number or a numeric string, and inspectionResult is usually a JSON document
// encoded as a string.
type WireRecord struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	StandardID       string          `json:"standardId"`
	StandardName     string          `json:"standardName"`
	Standard         *standardRef    `json:"standard"`
	Note             *string         `json:"note"`
	Price            json.RawMessage `json:"price"`
	SamplingPoint    []string        `json:"samplingPoint"`
	SamplingDateTime *string         `json:"samplingDateTime"`
	ImageURL         string          `json:"imageURL"`
	CreatedAt        string          `json:"createdAt"`
	UpdatedAt        string          `json:"updatedAt"`
	InspectionResult json.RawMessage `json:"inspectionResult"`
}

type standardRef struct {
	Name string `json:"name"`
}

// Normalize converts a wire record into a Record. It never fails: malformed
// fields fall back to their zero/default values.
func Normalize(w WireRecord) Record {
	r := Record{
		ID:         w.ID,
		Name:       w.Name,
		StandardID: w.StandardID,
		ImageURL:   w.ImageURL,
		Price:      ParsePrice(w.Price),
		CreatedAt:  parseTimestamp(w.CreatedAt),
		UpdatedAt:  parseTimestamp(w.UpdatedAt),
		Result:     DecodeResult(w.InspectionResult),
	}
	switch {
	case w.StandardName != "":
		r.StandardName = w.StandardName
	case w.Standard != nil:
		r.StandardName = w.Standard.Name
	}
	if w.Note != nil {
		r.Note = *w.Note
	}
	for _, p := range w.SamplingPoint {
		if p == "" {
			continue
		}
		r.SamplingPoint = append(r.SamplingPoint, SamplingPoint(p))
	}
	if w.SamplingDateTime != nil {
		if ts := parseTimestamp(*w.SamplingDateTime); !ts.IsZero() {
			r.SamplingDateTime = &ts
		}
	}
	return r
}

// ParsePrice reads a price that may be encoded as a JSON number or a numeric
// string. Anything unparsable yields 0.
func ParsePrice(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return parseLeadingFloat(s)
	}
	return 0
}

// DecodeResult decodes the inspection result blob. The blob is normally a
// JSON string containing a JSON object, but a bare object is accepted too.
// Absent, null, or unparsable blobs decode to EmptyResult.
func DecodeResult(raw json.RawMessage) Result {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return EmptyResult()
	}
	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return EmptyResult()
		}
		raw = bytes.TrimSpace([]byte(encoded))
		if len(raw) == 0 {
			return EmptyResult()
		}
	}
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return EmptyResult()
	}
	if res.Composition == nil {
		res.Composition = []CompositionRow{}
	}
	if res.DefectRice == nil {
		res.DefectRice = []DefectRow{}
	}
	return res
}

// ParsePercent reads a percentage such as "12.5", "12.5%" or "12.5 %".
// Unparsable input yields 0.
func ParsePercent(s string) float64 {
	return parseLeadingFloat(strings.ReplaceAll(s, "%", ""))
}

// parseLeadingFloat parses the longest numeric prefix of s, exponent
// included, mirroring the lenient number parsing the record service's other
// clients rely on.
func parseLeadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end, i := 0, 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	seenDot := false
	for ; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			end = i + 1
		} else if c == '.' && !seenDot {
			seenDot = true
		} else {
			break
		}
	}
	if end == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '-' || s[j] == '+') {
			j++
		}
		digits := j
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j > digits {
			end = j
		}
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	DateTimeLayout,
	"2006-01-02T15:04:05",
}

func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
