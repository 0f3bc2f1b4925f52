// Package client calls the comparison HTTP API.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/okian/blindcmp/internal/domain/types"
)

const defaultTimeout = 10 * time.Second

// Result is a completed comparison. A result code other than -1, 0 or 1
// fails to decode.
type Result struct {
	Name     string         `json:"name"`
	Ordering types.Ordering `json:"result"`
}

// Status describes an open or completed comparison.
type Status struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Finalized bool      `json:"finalized"`
}

// Client talks to one server.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a client for baseURL, e.g. "http://localhost:8000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create starts a comparison and returns its identifier.
func (c *Client) Create(ctx context.Context, name string, value float64) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	n, err := wireNumber(value)
	if err != nil {
		return "", err
	}
	req := struct {
		Name  string       `json:"name"`
		Value types.Number `json:"value"`
	}{name, n}
	if err := c.post(ctx, "/api/store", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// Submit sends the responder's value.
func (c *Client) Submit(ctx context.Context, id string, value float64) error {
	n, err := wireNumber(value)
	if err != nil {
		return err
	}
	req := struct {
		ID    string       `json:"id"`
		Value types.Number `json:"value"`
	}{id, n}
	return c.post(ctx, "/api/compare", req, nil)
}

// Result fetches a completed comparison.
func (c *Client) Result(ctx context.Context, id string) (Result, error) {
	var out Result
	err := c.post(ctx, "/api/result", struct {
		ID string `json:"id"`
	}{id}, &out)
	return out, err
}

// Status fetches the summary of a comparison.
func (c *Client) Status(ctx context.Context, id string) (Status, error) {
	var out Status
	err := c.do(ctx, http.MethodGet, "/api/status/"+url.PathEscape(id), nil, &out)
	return out, err
}

// wireNumber rejects values that have no JSON representation.
func wireNumber(value float64) (types.Number, error) {
	if math.IsInf(value, 0) {
		return types.Number{}, fmt.Errorf("%w: %v cannot be sent as JSON", types.ErrInvalidNumber, value)
	}
	return types.NewNumber(value)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, data, out)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var rd io.Reader = http.NoBody
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(data, apiErr)
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
