// Package api is the typed client for the jobdesk backend. Every call attaches
// the caller's identity token, normalises failures into *APIError and, on a
// 401 or 403, hands control to the authenticator before returning.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultUserAgent is the user agent string for backend requests.
const DefaultUserAgent = "jobdesk/1.0"

// Authenticator supplies bearer tokens and reacts to rejected ones.
// *session.Session implements it.
type Authenticator interface {
	IDToken(ctx context.Context) (string, error)
	HandleUnauthorized()
}

// Client executes requests against one backend base URL.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	longClient *http.Client
	auth       Authenticator
	userAgent  string
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the client used for ordinary requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the timeout for ordinary requests. Zero means none.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient = &http.Client{Timeout: d} }
}

// WithLongRequestTimeout sets the timeout for requests marked Long, such as
// ATS analysis, which run on their own transport.
func WithLongRequestTimeout(d time.Duration) Option {
	return func(c *Client) { c.longClient = &http.Client{Timeout: d} }
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger logs one line per request. Nil disables logging.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for baseURL. auth may be nil for anonymous use.
func NewClient(baseURL string, auth Authenticator, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", baseURL)
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{},
		longClient: &http.Client{Timeout: 5 * time.Minute},
		auth:       auth,
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// RequestOptions describes one backend call.
type RequestOptions struct {
	Method  string // defaults to GET
	Body    any    // JSON-encoded when non-nil
	Query   url.Values
	Headers map[string]string
	// SkipAuth sends the request without a bearer token.
	SkipAuth bool
	// Long routes the request through the long-timeout transport.
	Long bool
}

// Request performs a JSON request and decodes the response into out (which may be nil).
func (c *Client) Request(ctx context.Context, endpoint string, opts *RequestOptions, out any) error {
	resp, err := c.do(ctx, endpoint, opts, "application/json")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Message: MsgNetwork, Err: err}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return nil
}

// Do is a typed wrapper over Client.Request.
func Do[T any](ctx context.Context, c *Client, endpoint string, opts *RequestOptions) (T, error) {
	var out T
	err := c.Request(ctx, endpoint, opts, &out)
	return out, err
}

// do sends the request and returns the response only for 2xx statuses.
// On any other outcome the body is consumed and an *APIError is returned.
func (c *Client) do(ctx context.Context, endpoint string, opts *RequestOptions, accept string) (*http.Response, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body for %s: %w", endpoint, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(endpoint, opts.Query), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.New().String())
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	if !opts.SkipAuth && c.auth != nil {
		// A missing token is not fatal here: the backend answers 401 and the
		// unauthorized path below signs the user out.
		if token, err := c.auth.IDToken(ctx); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	hc := c.httpClient
	if opts.Long {
		hc = c.longClient
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.logf("[api] %s %s failed after %v: %v", method, endpoint, time.Since(start), err)
		return nil, &APIError{Message: MsgNetwork, Err: err}
	}
	c.logf("[api] %s %s -> %d in %v", method, endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer func() { _ = resp.Body.Close() }()
	errBody, _ := io.ReadAll(resp.Body)
	apiErr := newHTTPError(resp.StatusCode, errBody)
	if apiErr.IsUnauthorized() && c.auth != nil {
		c.auth.HandleUnauthorized()
	}
	return nil, apiErr
}

// resolve joins endpoint onto the base URL. Ids in endpoint are already escaped.
func (c *Client) resolve(endpoint string, query url.Values) string {
	full := strings.TrimRight(c.baseURL.String(), "/") + "/" + strings.TrimLeft(endpoint, "/")
	if len(query) == 0 {
		return full
	}
	sep := "?"
	if strings.Contains(full, "?") {
		sep = "&"
	}
	return full + sep + query.Encode()
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// pathID escapes an id for use as a path segment.
func pathID(id string) string {
	return url.PathEscape(id)
}
