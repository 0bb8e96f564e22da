// Package transport is the authenticated JSON-over-HTTP client shared by the
// tracker and chat services. It never retries; failures surface as *Error.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"basegraph.app/pulse/common/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const maxErrorBody = 4096

// Error is a non-2xx response.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// DescribeFunc turns an error response into a human readable message.
type DescribeFunc func(statusCode int, body []byte) string

type Request struct {
	Method string
	Path   string // relative to the client's base URL
	Query  url.Values
	Body   any // JSON encoded when non-nil
}

type Client struct {
	name      string
	baseURL   string
	http      *http.Client
	authorize func(*http.Request)
	describe  DescribeFunc
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http = &http.Client{Timeout: d}
	}
}

func WithBasicAuth(username, token string) Option {
	return func(c *Client) {
		c.authorize = func(r *http.Request) {
			r.SetBasicAuth(username, token)
		}
	}
}

func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.authorize = func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

func WithDescriber(fn DescribeFunc) Option {
	return func(c *Client) {
		c.describe = fn
	}
}

// New builds a client for one upstream. name labels logs and spans.
func New(name, baseURL string, opts ...Option) *Client {
	c := &Client{
		name:     name,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		http:     &http.Client{Timeout: 30 * time.Second},
		describe: DescribeBody,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends req and decodes a successful JSON response into out (skipped when
// out is nil).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	sc := logger.StartSpan(ctx, "transport."+c.name+".request", trace.WithSpanKind(trace.SpanKindClient))
	defer sc.End()
	ctx = sc.Context()
	sc.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", req.Path),
	)

	err := c.do(ctx, method, req, out)
	if err != nil {
		sc.RecordError(err)
	}
	return err
}

func (c *Client) do(ctx context.Context, method string, req Request, out any) error {
	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encoding %s request body: %w", c.name, err)
		}
		body = bytes.NewReader(b)
	}

	u := c.baseURL + "/" + strings.TrimPrefix(req.Path, "/")
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("building %s request: %w", c.name, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.authorize != nil {
		c.authorize(httpReq)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s request %s %s: %w", c.name, method, req.Path, err)
	}
	defer resp.Body.Close()

	slog.DebugContext(ctx, "upstream request completed",
		"upstream", c.name,
		"method", method,
		"path", req.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		slog.DebugContext(ctx, "upstream error response",
			"upstream", c.name,
			"status", resp.StatusCode,
			"body", logger.Truncate(string(b), 200))
		return &Error{StatusCode: resp.StatusCode, Message: c.describe(resp.StatusCode, b)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", c.name, err)
	}
	return nil
}

// DescribeBody uses the trimmed response body, or the status text when the
// body is empty.
func DescribeBody(statusCode int, body []byte) string {
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return http.StatusText(statusCode)
}

// DescribeStatus ignores the body and uses the status text.
func DescribeStatus(statusCode int, _ []byte) string {
	return http.StatusText(statusCode)
}
