package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/natman/internal/common"
	"github.com/dmitrijs2005/natman/internal/logging"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Transport is the subset of Client the services depend on.
type Transport interface {
	PostJSON(ctx context.Context, path string, body, out any, opts ...CallOption) error
	GetJSON(ctx context.Context, path string, out any, opts ...CallOption) error
}

var _ Transport = (*Client)(nil)

// Client talks JSON to the backend.
type Client struct {
	baseURL string
	http    Doer
	log     logging.Logger
	newID   func() string
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient validates baseURL and builds a Client. The base URL cannot be
// changed afterwards.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     logging.Nop(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the fixed backend address.
func (c *Client) BaseURL() string { return c.baseURL }

// CallOption tunes a single request.
type CallOption func(*callConfig)

type callConfig struct {
	timeout time.Duration
}

// WithTimeout bounds one call. Zero means no timeout.
func WithTimeout(d time.Duration) CallOption {
	return func(cc *callConfig) { cc.timeout = d }
}

// PostJSON sends body as JSON and decodes the response into out (if non-nil).
func (c *Client) PostJSON(ctx context.Context, path string, body, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodPost, path, body, out, opts...)
}

// GetJSON performs a GET and decodes the response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts...)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, opts ...CallOption) error {
	var cc callConfig
	for _, opt := range opts {
		opt(&cc)
	}
	if cc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cc.timeout)
		defer cancel()
	}

	op := method + " " + path
	requestID := c.newID()
	log := c.log.With("op", op, "request_id", requestID)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return &common.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	log.Debug(ctx, "response received", "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		serverErr := &common.ServerError{Status: resp.StatusCode, Detail: ParseDetail(raw)}
		log.Warn(ctx, "server rejected request", "status", resp.StatusCode, "detail", serverErr.Detail)
		return serverErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctx.Err() != nil {
			return &common.NetworkError{Op: op, Err: ctx.Err()}
		}
		return &common.ServerError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// ParseDetail extracts the "detail" message of an error body. FastAPI
// reports validation failures as a list of objects; the first "msg" is used
// then. An empty string means no usable detail.
func ParseDetail(raw []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(body.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &items); err == nil && len(items) > 0 {
		return items[0].Msg
	}
	return ""
}
