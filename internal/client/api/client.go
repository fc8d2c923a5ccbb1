// Package api contains HTTP clients for the WhereToGo services. Error
// responses come back as *errors.AppError; a request that never got an
// answer is a SERVICE_UNAVAILABLE error.
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

	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

// DefaultTimeout bounds every request
const DefaultTimeout = 5 * time.Second

// Client is the transport shared by the service clients
type Client struct {
	name    string
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithTimeout bounds each request
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.timeout = d }
}

func newClient(name, baseURL string, opts ...Option) *Client {
	c := &Client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the service name
func (c *Client) Name() string {
	return c.name
}

// HealthURL returns the liveness endpoint of the service
func (c *Client) HealthURL() string {
	return c.baseURL + "/health"
}

type request struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	token  string
}

func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return apperrors.NewInternalError("failed to encode request", err)
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return apperrors.NewInternalError("failed to build request", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return apperrors.NewServiceUnavailableError(c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload)
		return apperrors.FromStatus(resp.StatusCode, payload.Error)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewExternalError(fmt.Sprintf("invalid response from %s service", c.name), err)
	}
	return nil
}

// IsUnreachable reports whether err means the service could not be reached
// or failed on its side, as opposed to rejecting the request.
func IsUnreachable(err error) bool {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeServiceUnavailable, apperrors.ErrorTypeExternal:
		return true
	}
	return false
}
