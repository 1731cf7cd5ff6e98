// Package httpapi is the claims backend adapter. Client wraps net/http
// with the backend's base URL, a fixed timeout, request hooks and a
// single error normalisation; Gateway maps each backend endpoint onto
// driven.ClaimsBackend.
package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
	"github.com/custodia-labs/claims-cli/internal/logger"
)

var log = logger.For("httpapi")

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 1 << 20

// RequestHook runs on every request before it is sent, in order.
// Returning an error aborts the request.
type RequestHook func(req *http.Request) error

// Observer is told how each request ended.
type Observer interface {
	ObserveRequest(operation, outcome string, elapsed time.Duration)
}

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the backend origin (default: http://localhost:8000).
	BaseURL string

	// Timeout bounds every request (default: 5m).
	Timeout time.Duration

	// Transport overrides the HTTP transport. Nil uses the default.
	Transport http.RoundTripper

	// Hooks run after the built-in debug hook.
	Hooks []RequestHook

	// Observer records request outcomes. Optional.
	Observer Observer
}

// Client sends requests to the claims backend.
type Client struct {
	http     *http.Client
	baseURL  string
	hooks    []RequestHook
	observer Observer
}

// NewClient creates a new backend client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = domain.DefaultTimeout
	}

	hooks := append([]RequestHook{debugHook}, cfg.Hooks...)
	return &Client{
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: cfg.Transport,
		},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		hooks:    hooks,
		observer: cfg.Observer,
	}
}

// BaseURL returns the backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func debugHook(req *http.Request) error {
	log.Debug("%s %s", req.Method, req.URL.Redacted())
	return nil
}

// NewRequest builds a request for a backend path such as /api/documents.
func (c *Client) NewRequest(
	ctx context.Context,
	method, path string,
	query url.Values,
	body io.Reader,
) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, unexpected(err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// Do sends a request. Any failure comes back as a *domain.ClientError,
// except caller cancellation, which returns the context's error as is.
// On success the caller owns the response body.
func (c *Client) Do(operation string, req *http.Request) (*http.Response, error) {
	start := time.Now()

	for _, hook := range c.hooks {
		if err := hook(req); err != nil {
			return nil, c.done(operation, start, unexpected(err))
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.done(operation, start, normalizeTransport(req.Context(), err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, c.done(operation, start, normalizeStatus(resp.StatusCode, body))
	}

	c.done(operation, start, nil)
	return resp, nil
}

func (c *Client) done(operation string, start time.Time, err error) error {
	elapsed := time.Since(start)
	outcome := outcomeOf(err)
	if err != nil {
		log.Debug("%s failed after %s: %v", operation, elapsed.Round(time.Millisecond), err)
	}
	if c.observer != nil {
		c.observer.ObserveRequest(operation, outcome, elapsed)
	}
	return err
}
