// Package registry is the HTTP client for the remote trademark registry.
package registry

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

	"github.com/okian/trademarks/internal/domain/model"
	"github.com/okian/trademarks/pkg/logger"
	"github.com/okian/trademarks/pkg/metrics"
)

// Header names understood by the registry.
const (
	HeaderAPIKey    = "X-API-Key"
	HeaderAPISecret = "X-API-Secret"
	HeaderRequestID = "X-Request-ID"
)

// Operation names used for logs and metrics.
const (
	OpCreate = "create"
	OpGet    = "get"
	OpSearch = "search"
	OpUpdate = "update"
	OpDelete = "delete"
)

const trademarksPath = "/trademarks"

// Credentials are the static values attached to every registry call.
type Credentials struct {
	APIKey    string
	APISecret string
}

// Client talks to the registry. It is safe for concurrent use and is
// meant to be shared for the lifetime of the process.
type Client struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
	logger     logger.Logger
}

// New creates a Client rooted at baseURL.
func New(baseURL string, creds Credentials, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		creds:      creds,
		httpClient: &http.Client{},
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Create registers a trademark and returns the registry's record.
func (c *Client) Create(ctx context.Context, req model.CreateRequest) (Record, error) {
	var rec Record
	err := c.do(ctx, OpCreate, http.MethodPost, trademarksPath, nil, req, &rec)
	return rec, err
}

// Get fetches a single trademark.
func (c *Client) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := c.do(ctx, OpGet, http.MethodGet, trademarkPath(id), nil, nil, &rec)
	return rec, err
}

// Search runs a free-text query, optionally narrowed to a registration year.
// Year zero means no filter.
func (c *Client) Search(ctx context.Context, query string, year *int) ([]Record, error) {
	params := url.Values{}
	params.Set("q", query)
	if year != nil && *year != 0 {
		params.Set("year", strconv.Itoa(*year))
	}
	var resp searchResponse
	if err := c.do(ctx, OpSearch, http.MethodGet, trademarksPath+"/search", params, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return nil, missingField("results")
	}
	return resp.Results, nil
}

// Update sends only the fields present in req.
func (c *Client) Update(ctx context.Context, id string, req model.UpdateRequest) (Record, error) {
	var rec Record
	err := c.do(ctx, OpUpdate, http.MethodPut, trademarkPath(id), nil, req, &rec)
	return rec, err
}

// Delete removes a trademark. The response body is ignored.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, OpDelete, http.MethodDelete, trademarkPath(id), nil, nil, nil)
}

func trademarkPath(id string) string {
	return trademarksPath + "/" + url.PathEscape(id)
}

// do performs one registry call. A nil body sends no payload; a nil out
// skips response decoding.
func (c *Client) do(ctx context.Context, op, method, path string, params url.Values, body, out any) error {
	start := time.Now()
	outcome := metrics.OutcomeSuccess
	defer func() {
		metrics.RecordRegistryRequest(op, outcome, float64(time.Since(start).Milliseconds()))
	}()

	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			outcome = metrics.OutcomeTransport
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		outcome = metrics.OutcomeTransport
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set(HeaderAPIKey, c.creds.APIKey)
	req.Header.Set(HeaderAPISecret, c.creds.APISecret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := logger.RequestID(ctx); id != "" {
		req.Header.Set(HeaderRequestID, id)
	}

	c.logger.Debug(ctx, "registry request", logger.String("operation", op), logger.String("method", method), logger.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome = metrics.OutcomeTransport
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = metrics.OutcomeBadStatus
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Status: resp.Status}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		outcome = metrics.OutcomeDecodeError
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}
