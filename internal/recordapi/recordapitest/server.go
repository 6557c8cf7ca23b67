// Package recordapitest is an in-memory record service used by tests and the
// devserver command. It mirrors the real service's wire quirks: list
// responses carry price as a string and inspectionResult as a JSON-encoded
// string, while single-record reads nest the standard name and send the result
// as an object.
package recordapitest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/zjrosen/riceinspect/internal/inspection"
)

// Fault makes the next matching request fail with Status and Body.
type Fault struct {
	Method string
	Path   string // route template, e.g. "/history/{id}"
	Status int
	Body   string
}

// Request is a request the service received.
type Request struct {
	Method string
	Path   string
	Query  map[string][]string
	Body   string
	ID     string // X-Request-ID header
}

// Service is the fake record service. The zero value is not usable; call New.
type Service struct {
	// Loc is the location fromDate/toDate filters are read in.
	Loc *time.Location

	mu        sync.Mutex
	records   map[string]inspection.Record
	standards []inspection.Standard
	faults    []Fault
	requests  []Request
	now       func() time.Time
}

// New returns an empty service with the default standards loaded.
func New() *Service {
	return &Service{
		Loc:       time.UTC,
		records:   make(map[string]inspection.Record),
		standards: DefaultStandards(),
		now:       time.Now,
	}
}

// Start serves s on a test server that is closed when the test ends.
func Start(tb testing.TB, s *Service) *httptest.Server {
	tb.Helper()
	srv := httptest.NewServer(s.Handler())
	tb.Cleanup(srv.Close)
	return srv
}

// DefaultStandards is the standard catalogue a fresh service serves.
func DefaultStandards() []inspection.Standard {
	return []inspection.Standard{
		{
			ID:   "1",
			Name: "มาตรฐานข้าวชั้น 1",
			StandardData: []inspection.SubStandard{
				{Key: "wholegrain", Name: "ข้าวเต็มเมล็ด", MinLength: 7, MaxLength: 99, ConditionMin: "GT", ConditionMax: "LT", Shape: []string{"wholegrain", "broken"}},
				{Key: "broken_rice1", Name: "ข้าวหักใหญ่", MinLength: 3.5, MaxLength: 7, ConditionMin: "GT", ConditionMax: "LT", Shape: []string{"broken"}},
				{Key: "broken_rice2", Name: "ข้าวหักทั่วไป", MinLength: 0, MaxLength: 3.5, ConditionMin: "GT", ConditionMax: "LT", Shape: []string{"broken"}},
			},
		},
		{
			ID:   "2",
			Name: "มาตรฐานข้าวชั้น 2",
			StandardData: []inspection.SubStandard{
				{Key: "wholegrain", Name: "ข้าวเต็มเมล็ด", MinLength: 6.5, MaxLength: 99, ConditionMin: "GT", ConditionMax: "LT", Shape: []string{"wholegrain", "broken"}},
				{Key: "broken_rice", Name: "ข้าวหัก", MinLength: 0, MaxLength: 6.5, ConditionMin: "GT", ConditionMax: "LT", Shape: []string{"broken"}},
			},
		},
	}
}

// SetClock overrides the time source used to stamp created records.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Seed stores records as-is, assigning ids to records without one. It returns
// the stored ids in order.
func (s *Service) Seed(records ...inspection.Record) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(records))
	for _, r := range records {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = s.now()
		}
		if r.UpdatedAt.IsZero() {
			r.UpdatedAt = r.CreatedAt
		}
		if r.Result.Composition == nil {
			r.Result.Composition = []inspection.CompositionRow{}
		}
		if r.Result.DefectRice == nil {
			r.Result.DefectRice = []inspection.DefectRow{}
		}
		s.records[r.ID] = r
		ids = append(ids, r.ID)
	}
	return ids
}

// Record returns the stored record with id.
func (s *Service) Record(id string) (inspection.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	return r, ok
}

// Len returns the number of stored records.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Fail queues a fault. Faults are consumed in order, once each.
func (s *Service) Fail(f Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, f)
}

// Requests returns every request received so far.
func (s *Service) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, if any.
func (s *Service) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// Handler returns the HTTP routes of the service.
func (s *Service) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.record)
	r.HandleFunc("/standard", s.listStandards).Methods(http.MethodGet)
	r.HandleFunc("/history", s.listHistory).Methods(http.MethodGet)
	r.HandleFunc("/history", s.createHistory).Methods(http.MethodPost)
	r.HandleFunc("/history", s.deleteHistory).Methods(http.MethodDelete)
	r.HandleFunc("/history/{id}", s.getHistory).Methods(http.MethodGet)
	r.HandleFunc("/history/{id}", s.updateHistory).Methods(http.MethodPut)
	return r
}

// record logs the request and applies a queued fault for its route.
func (s *Service) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			_ = r.Body.Close()
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Body:   string(body),
			ID:     r.Header.Get("X-Request-ID"),
		})
		var fault *Fault
		for i, f := range s.faults {
			if f.Method == r.Method && f.Path == route {
				fault = &f
				s.faults = append(s.faults[:i], s.faults[i+1:]...)
				break
			}
		}
		s.mu.Unlock()

		if fault != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(fault.Status)
			_, _ = w.Write([]byte(fault.Body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Service) listStandards(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := s.standards
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Service) listHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []inspection.Record
	if id := q.Get("id"); id != "" {
		if rec, ok := s.records[id]; ok {
			matched = append(matched, rec)
		}
	} else {
		from, ok := s.parseBound(w, q.Get("fromDate"))
		if !ok {
			return
		}
		to, ok := s.parseBound(w, q.Get("toDate"))
		if !ok {
			return
		}
		for _, rec := range s.records {
			if from != nil && rec.CreatedAt.Before(*from) {
				continue
			}
			if to != nil && rec.CreatedAt.After(*to) {
				continue
			}
			matched = append(matched, rec)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	page := atoiDefault(q.Get("page"), 1)
	limit := atoiDefault(q.Get("limit"), 10)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	data := make([]map[string]any, 0, end-start)
	for _, rec := range matched[start:end] {
		data = append(data, listWire(rec))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data, "total": total})
}

func (s *Service) parseBound(w http.ResponseWriter, v string) (*time.Time, bool) {
	if v == "" {
		return nil, true
	}
	t, err := time.ParseInLocation(inspection.DateTimeLayout, v, s.Loc)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"statusCode": http.StatusBadRequest,
			"message":    "Invalid date format, expected YYYY-MM-DD HH:mm:ss",
		})
		return nil, false
	}
	return &t, true
}

func (s *Service) getHistory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	rec, ok := s.records[id]
	s.mu.Unlock()
	if !ok {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, detailWire(rec))
}

type createRequest struct {
	Name             string          `json:"name"`
	StandardID       string          `json:"standardId"`
	Note             string          `json:"note"`
	Price            *float64        `json:"price"`
	SamplingPoint    []string        `json:"samplingPoint"`
	SamplingDateTime *string         `json:"samplingDateTime"`
	CustomRawData    json.RawMessage `json:"customRawData"`
}

func (s *Service) createHistory(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"statusCode": 400, "message": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var violations []violation
	if strings.TrimSpace(req.Name) == "" {
		violations = append(violations, violation{"name", map[string]string{"isNotEmpty": "name should not be empty"}})
	}
	std, found := s.standard(req.StandardID)
	if !found {
		violations = append(violations, violation{"standardId", map[string]string{"isValid": "standardId must reference an existing standard"}})
	}
	if req.Price != nil && *req.Price > inspection.MaxPrice {
		violations = append(violations, violation{"price", map[string]string{"max": fmt.Sprintf("price must not be greater than %d", inspection.MaxPrice)}})
	}
	if req.Price != nil && *req.Price < 0 {
		violations = append(violations, violation{"price", map[string]string{"min": "price must not be less than 0"}})
	}
	for _, p := range req.SamplingPoint {
		if !inspection.SamplingPoint(p).Valid() {
			violations = append(violations, violation{"samplingPoint", map[string]string{"isIn": "each value in samplingPoint must be one of the following values: Front End, Back End, Other"}})
			break
		}
	}
	if len(violations) > 0 {
		writeJSON(w, http.StatusBadRequest, violations)
		return
	}

	now := s.now()
	rec := inspection.Record{
		ID:           uuid.NewString(),
		Name:         req.Name,
		StandardID:   std.ID,
		StandardName: std.Name,
		Note:         req.Note,
		CreatedAt:    now,
		UpdatedAt:    now,
		Result:       resultFor(std),
	}
	if req.Price != nil {
		rec.Price = *req.Price
	}
	for _, p := range req.SamplingPoint {
		rec.SamplingPoint = append(rec.SamplingPoint, inspection.SamplingPoint(p))
	}
	if req.SamplingDateTime != nil {
		if t, err := time.Parse(time.RFC3339Nano, *req.SamplingDateTime); err == nil {
			rec.SamplingDateTime = &t
		}
	}
	if len(req.CustomRawData) > 0 {
		var raw struct {
			ImageURL string `json:"imageURL"`
		}
		if err := json.Unmarshal(req.CustomRawData, &raw); err == nil {
			rec.ImageURL = raw.ImageURL
		}
	}
	s.records[rec.ID] = rec
	writeJSON(w, http.StatusCreated, map[string]string{"id": rec.ID})
}

type updateRequest struct {
	Note             *string  `json:"note"`
	Price            *float64 `json:"price"`
	SamplingPoint    []string `json:"samplingPoint"`
	SamplingDateTime *string  `json:"samplingDateTime"`
}

func (s *Service) updateHistory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"statusCode": 400, "message": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		notFound(w)
		return
	}
	if req.Price != nil && (*req.Price > inspection.MaxPrice || *req.Price < 0) {
		writeJSON(w, http.StatusBadRequest, []violation{{"price", map[string]string{"max": fmt.Sprintf("price must not be greater than %d", inspection.MaxPrice)}}})
		return
	}
	if req.Note != nil {
		rec.Note = *req.Note
	}
	if req.Price != nil {
		rec.Price = *req.Price
	}
	if req.SamplingPoint != nil {
		rec.SamplingPoint = nil
		for _, p := range req.SamplingPoint {
			rec.SamplingPoint = append(rec.SamplingPoint, inspection.SamplingPoint(p))
		}
	}
	if req.SamplingDateTime != nil {
		if t, err := time.Parse(time.RFC3339Nano, *req.SamplingDateTime); err == nil {
			rec.SamplingDateTime = &t
		}
	}
	rec.UpdatedAt = s.now()
	s.records[id] = rec
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Service) deleteHistory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
		writeJSON(w, http.StatusBadRequest, []violation{{"ids", map[string]string{"arrayNotEmpty": "ids should not be empty"}}})
		return
	}
	s.mu.Lock()
	deleted := 0
	for _, id := range req.IDs {
		if _, ok := s.records[id]; ok {
			delete(s.records, id)
			deleted++
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

func (s *Service) standard(id string) (inspection.Standard, bool) {
	for _, std := range s.standards {
		if std.ID == id {
			return std, true
		}
	}
	return inspection.Standard{}, false
}

type violation struct {
	Property    string            `json:"property"`
	Constraints map[string]string `json:"constraints"`
}

// resultFor fabricates a plausible result: composition split evenly across the
// standard's classes and summing to exactly 100, no defects.
func resultFor(std inspection.Standard) inspection.Result {
	res := inspection.EmptyResult()
	n := len(std.StandardData)
	even := math.Round(10000/float64(n)) / 100
	for i, sub := range std.StandardData {
		share := even
		if i == n-1 {
			share = 100 - even*float64(n-1)
		}
		res.Composition = append(res.Composition, inspection.CompositionRow{
			Name:   sub.Name,
			Length: fmt.Sprintf("%g - %g", sub.MinLength, sub.MaxLength),
			Actual: strconv.FormatFloat(share, 'f', 2, 64),
		})
	}
	for _, name := range []string{"yellow", "paddy", "damaged", "glutinous", "chalky", "red"} {
		res.DefectRice = append(res.DefectRice, inspection.DefectRow{Name: name, Actual: "0.00"})
	}
	return res
}

func baseWire(rec inspection.Record) map[string]any {
	m := map[string]any{
		"id":            rec.ID,
		"name":          rec.Name,
		"standardId":    rec.StandardID,
		"note":          rec.Note,
		"samplingPoint": rec.SamplingPoint,
		"imageURL":      rec.ImageURL,
		"createdAt":     rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updatedAt":     rec.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if rec.SamplingDateTime != nil {
		m["samplingDateTime"] = rec.SamplingDateTime.UTC().Format(time.RFC3339Nano)
	}
	return m
}

func listWire(rec inspection.Record) map[string]any {
	m := baseWire(rec)
	m["standardName"] = rec.StandardName
	m["price"] = strconv.FormatFloat(rec.Price, 'f', -1, 64)
	blob, _ := json.Marshal(rec.Result)
	m["inspectionResult"] = string(blob)
	return m
}

func detailWire(rec inspection.Record) map[string]any {
	m := baseWire(rec)
	m["standard"] = map[string]string{"name": rec.StandardName}
	m["price"] = rec.Price
	m["inspectionResult"] = rec.Result
	return m
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"statusCode": http.StatusNotFound,
		"message":    "History not found",
		"error":      "Not Found",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
