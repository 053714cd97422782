package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/tada/internal/model"
)

// DefaultBaseURL is used when no override is configured.
const DefaultBaseURL = "http://localhost:8080/todos"

// maxErrorBody caps how much of a failed reply is kept on the error.
const maxErrorBody = 512

// RequestIDHeader carries a fresh id on every request so a failure can be
// matched with the service's own logs.
const RequestIDHeader = "X-Request-Id"

// Client talks to the remote todo collection. It is the only component that
// performs network I/O. Every call is a single attempt: no retry, no cache.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient builds a Client for the collection at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the collection URL the client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// Ack is the service-defined acknowledgment returned by Delete.
type Ack struct {
	StatusCode int
	Body       json.RawMessage
}

// List fetches one page of the collection.
func (c *Client) List(ctx context.Context, q model.ListQuery) (model.ListResult, error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("sortBy", string(q.SortBy))
	v.Set("sortOrder", string(q.SortOrder))
	v.Set("q", q.Query)

	var res model.ListResult
	if _, err := c.do(ctx, "list", http.MethodGet, c.baseURL+"?"+v.Encode(), nil, &res); err != nil {
		return model.ListResult{}, err
	}
	return res, nil
}

// Get fetches the todo with id.
func (c *Client) Get(ctx context.Context, id string) (model.Todo, error) {
	var t model.Todo
	if _, err := c.do(ctx, "get", http.MethodGet, c.itemURL(id), nil, &t); err != nil {
		return model.Todo{}, err
	}
	return t, nil
}

// Create posts a new todo. The due date must already be normalized.
func (c *Client) Create(ctx context.Context, d model.Draft) (model.Todo, error) {
	var t model.Todo
	if _, err := c.do(ctx, "create", http.MethodPost, c.baseURL, d, &t); err != nil {
		return model.Todo{}, err
	}
	return t, nil
}

// Update replaces title, description and due date of the todo with id.
// Services that acknowledge with a message instead of echoing the record
// get the sent fields back.
func (c *Client) Update(ctx context.Context, id string, d model.Draft) (model.Todo, error) {
	var t model.Todo
	if _, err := c.do(ctx, "update", http.MethodPut, c.itemURL(id), d, &t); err != nil {
		return model.Todo{}, err
	}
	if t.ID == "" {
		t = model.Todo{ID: id, Title: d.Title, Description: d.Description, DueDate: d.DueDate}
	}
	return t, nil
}

// Delete removes the todo with id.
func (c *Client) Delete(ctx context.Context, id string) (Ack, error) {
	var raw json.RawMessage
	status, err := c.do(ctx, "delete", http.MethodDelete, c.itemURL(id), nil, &raw)
	if err != nil {
		return Ack{}, err
	}
	return Ack{StatusCode: status, Body: raw}, nil
}

func (c *Client) itemURL(id string) string {
	return c.baseURL + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, op, method, target string, body, out any) (int, error) {
	requestID := uuid.New().String()
	fail := func(status int, respBody string, err error) (int, error) {
		return status, &TransportError{
			Op: op, Method: method, URL: target, RequestID: requestID,
			StatusCode: status, Body: respBody, Err: err,
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fail(0, "", fmt.Errorf("marshal request: %w", err))
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return fail(0, "", fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(0, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp.StatusCode, trimBody(raw), errors.New(http.StatusText(resp.StatusCode)))
	}
	if out == nil {
		return resp.StatusCode, nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		if _, ok := out.(*json.RawMessage); ok {
			return resp.StatusCode, nil
		}
		return fail(resp.StatusCode, "", errors.New("empty response body"))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fail(resp.StatusCode, trimBody(raw), fmt.Errorf("decode response: %w", err))
	}
	return resp.StatusCode, nil
}

func trimBody(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}
