// SPDX-License-Identifier: MPL-2.0

// Package canvas is a client for the Canvas LMS REST API, covering the
// course-administration surface this tool needs: modules, module items,
// files, assignments, assignment groups, and announcements.
//
// All calls are course-scoped and blocking; the caller supplies a
// context.Context for cancellation. Responses are decoded from JSON into
// exported structs; non-2xx statuses surface as *APIError.
package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// defaultPerPage is the page size requested from list endpoints.
	defaultPerPage = 50

	// maxPages bounds Link-header pagination to avoid runaway requests
	// against misbehaving servers.
	maxPages = 20

	// maxJSONResponseBytes caps JSON response reads (10 MB).
	maxJSONResponseBytes = 10 << 20

	// maxErrorBodyBytes caps how much of an error response body is kept
	// for diagnostics.
	maxErrorBodyBytes = 2 << 10
)

type (
	// Client talks to a single Canvas instance. Construct with NewClient;
	// the zero value is not usable.
	Client struct {
		httpClient *http.Client
		baseURL    string // e.g. "https://canvas.example.edu" (no trailing slash)
		token      string // bearer token for the Authorization header
		userAgent  string
		logger     *log.Logger
	}

	// ClientOption configures a Client during construction.
	ClientOption func(*Client)

	// APIError is returned for non-2xx Canvas responses. It carries enough
	// request context to diagnose the failure without re-running the call.
	APIError struct {
		StatusCode int
		Method     string
		URL        string
		Body       string // response body excerpt
	}
)

// Error formats the failed request as a single diagnostic line.
func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("canvas: %s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("canvas: %s %s: status %d", e.Method, e.URL, e.StatusCode)
}

// WithHTTPClient sets a custom HTTP client, useful for tests or proxies.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithBaseURL sets the Canvas instance URL, e.g. "https://canvas.example.edu".
func WithBaseURL(base string) ClientOption {
	return func(cl *Client) {
		cl.baseURL = strings.TrimRight(base, "/")
	}
}

// WithToken sets the Canvas API bearer token.
func WithToken(token string) ClientOption {
	return func(cl *Client) {
		cl.token = token
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// WithLogger sets the logger used for request-level debug output.
func WithLogger(logger *log.Logger) ClientOption {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// NewClient creates a Client with sensible defaults. A base URL and token
// are required for real use; tests override them via options.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		userAgent:  "canvasctl/dev",
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// courseURL builds an API URL under /api/v1/courses/{courseID}.
func (c *Client) courseURL(courseID int64, parts ...string) string {
	segments := append([]string{fmt.Sprintf("%s/api/v1/courses/%d", c.baseURL, courseID)}, parts...)
	return strings.Join(segments, "/")
}

// getPaged performs a GET request series following Link rel="next" headers,
// decoding each page into a slice of T and concatenating the results.
func getPaged[T any](ctx context.Context, c *Client, reqURL string) ([]T, error) {
	var all []T

	for page := 0; page < maxPages && reqURL != ""; page++ {
		resp, err := c.do(ctx, http.MethodGet, reqURL, "", nil)
		if err != nil {
			return nil, err
		}

		var items []T
		decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(&items)
		resp.Body.Close()
		if decodeErr != nil {
			return nil, fmt.Errorf("decoding response from %s: %w", reqURL, decodeErr)
		}

		all = append(all, items...)
		reqURL = nextPageURL(resp.Header.Get("Link"))
	}

	return all, nil
}

// getOne performs a GET request and decodes the JSON object response into out.
func (c *Client) getOne(ctx context.Context, reqURL string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, reqURL, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", reqURL, err)
	}
	return nil
}

// postForm performs a form-encoded POST and decodes the JSON object response
// into out (when out is non-nil).
func (c *Client) postForm(ctx context.Context, reqURL string, form url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodPost, reqURL,
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", reqURL, err)
	}
	return nil
}

// do executes an HTTP request with common Canvas headers and converts non-2xx
// statuses to *APIError. The caller owns the response body on success.
func (c *Client) do(ctx context.Context, method, reqURL, contentType string, body io.Reader) (*http.Response, error) {
	if body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	// Only attach the token to requests against the configured Canvas host.
	// Upload URLs may point at a third-party storage service that must not
	// see the bearer token.
	if c.token != "" && c.isCanvasHost(req.URL) {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("canvas request", "method", method, "url", redactURL(reqURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes)) //nolint:errcheck // Best-effort diagnostics.
		resp.Body.Close()
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			URL:        redactURL(reqURL),
			Body:       strings.TrimSpace(string(excerpt)),
		}
	}

	return resp, nil
}

// isCanvasHost reports whether reqURL targets the configured Canvas instance.
func (c *Client) isCanvasHost(reqURL *url.URL) bool {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(reqURL.Host, base.Host)
}

// nextPageURL extracts the rel="next" URL from a Canvas Link header, or ""
// when there is no next page.
//
// Example header: <https://canvas.example.edu/...?page=2>; rel="next", <...>; rel="last"
func nextPageURL(header string) string {
	if header == "" {
		return ""
	}

	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if !strings.Contains(part, `rel="next"`) {
			continue
		}

		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start >= 0 && end > start {
			return part[start+1 : end]
		}
	}

	return ""
}

// listQuery builds the common query string for list endpoints: page size
// plus an optional search term.
func listQuery(search string) url.Values {
	q := url.Values{}
	q.Set("per_page", fmt.Sprint(defaultPerPage))
	if search != "" {
		q.Set("search_term", search)
	}
	return q
}

// redactURL strips query parameters and fragments from a URL for safe use in
// logs and error messages.
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid-url>"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
