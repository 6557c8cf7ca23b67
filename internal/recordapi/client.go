// Package recordapi is the HTTP client for the rice inspection record service.
//
// Every record read through the client is normalized with inspection.Normalize
// before it is returned, so callers never see the service's raw encodings.
package recordapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/zjrosen/riceinspect/internal/inspection"
	"github.com/zjrosen/riceinspect/internal/log"
)

// DefaultBaseURL is where the record service listens in a local setup.
const DefaultBaseURL = "http://localhost:3001"

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 64 << 10

// Client talks to the record service. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	registerer prometheus.Registerer
	metrics    *metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRegisterer records request metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Client) { c.registerer = reg }
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	hc := *c.httpClient
	hc.Timeout = c.timeout
	c.httpClient = &hc
	c.metrics = newMetrics(c.registerer)
	return c
}

// BaseURL returns the service root the client was created with.
func (c *Client) BaseURL() string { return c.baseURL }

// ListStandards fetches every inspection standard.
func (c *Client) ListStandards(ctx context.Context) ([]inspection.Standard, error) {
	var out []inspection.Standard
	if err := c.do(ctx, http.MethodGet, "/standard", "/standard", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("listing standards: %w", err)
	}
	return out, nil
}

type listResponse struct {
	Data  []inspection.WireRecord `json:"data"`
	Total int                     `json:"total"`
}

// ListHistory fetches one page of records. When p.ID is set only the id is
// sent; date bounds and pagination are dropped.
func (c *Client) ListHistory(ctx context.Context, p inspection.ListParams) (inspection.Page, error) {
	var resp listResponse
	if err := c.do(ctx, http.MethodGet, "/history", "/history", listQuery(p), nil, &resp); err != nil {
		return inspection.Page{}, fmt.Errorf("listing history: %w", err)
	}
	page := inspection.Page{
		Items: make([]inspection.Record, 0, len(resp.Data)),
		Total: resp.Total,
	}
	for _, w := range resp.Data {
		page.Items = append(page.Items, inspection.Normalize(w))
	}
	return page, nil
}

func listQuery(p inspection.ListParams) url.Values {
	q := url.Values{}
	if p.ID != "" {
		q.Set("id", p.ID)
		return q
	}
	if p.FromDate != nil {
		q.Set("fromDate", p.FromDate.Format(inspection.DateTimeLayout))
	}
	if p.ToDate != nil {
		q.Set("toDate", p.ToDate.Format(inspection.DateTimeLayout))
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// GetHistory fetches one record. A missing id fails with an error matching
// inspection.ErrNotFound.
func (c *Client) GetHistory(ctx context.Context, id string) (inspection.Record, error) {
	var w inspection.WireRecord
	if err := c.do(ctx, http.MethodGet, "/history/{id}", historyPath(id), nil, nil, &w); err != nil {
		return inspection.Record{}, fmt.Errorf("getting history %s: %w", id, err)
	}
	return inspection.Normalize(w), nil
}

// CreateHistory submits a new inspection and returns its id.
func (c *Client) CreateHistory(ctx context.Context, p inspection.CreatePayload) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/history", "/history", nil, p, &resp); err != nil {
		return "", fmt.Errorf("creating history: %w", err)
	}
	return resp.ID, nil
}

// UpdateHistory applies a partial update to one record.
func (c *Client) UpdateHistory(ctx context.Context, id string, p inspection.UpdatePayload) error {
	if err := c.do(ctx, http.MethodPut, "/history/{id}", historyPath(id), nil, p, nil); err != nil {
		return fmt.Errorf("updating history %s: %w", id, err)
	}
	return nil
}

// DeleteHistory removes every record in ids with one request.
func (c *Client) DeleteHistory(ctx context.Context, ids []string) error {
	body := struct {
		IDs []string `json:"ids"`
	}{IDs: ids}
	if err := c.do(ctx, http.MethodDelete, "/history", "/history", nil, body, nil); err != nil {
		return fmt.Errorf("deleting %d history records: %w", len(ids), err)
	}
	return nil
}

func historyPath(id string) string {
	return "/history/" + url.PathEscape(id)
}

// do sends one request. route is the path template used as a metric label.
// body is JSON-encoded when non-nil; out is decoded from a 2xx body when
// non-nil.
func (c *Client) do(ctx context.Context, method, route, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.observe(method, route, 0, elapsed)
		log.ErrorErr(log.CatAPI, "request failed", err,
			"method", method, "path", path, "request_id", reqID, "duration", elapsed)
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	c.metrics.observe(method, route, resp.StatusCode, elapsed)
	log.Debug(log.CatAPI, "request completed",
		"method", method, "path", path, "status", resp.StatusCode,
		"request_id", reqID, "duration", elapsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &RemoteError{Method: method, Path: path, Status: resp.StatusCode, Body: data}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctx.Err() != nil {
			return &NetworkError{Method: method, Path: path, Err: err}
		}
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}
