// Package transport is the HTTP layer shared by the marketplace adapters. It
// applies authentication, optionally spaces requests with a token bucket, and
// classifies failures into the timeout, transport and protocol errors of
// pkg/errors.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/agentstation/stocksync/pkg/constants"
	"github.com/agentstation/stocksync/pkg/errors"
	"github.com/agentstation/stocksync/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// maxErrorBody caps how much of an error response ends up in APIError.Message.
const maxErrorBody = 512

// Client provides HTTP client functionality with authentication.
type Client struct {
	marketplace string
	baseURL     string
	http        *http.Client
	auth        Authenticator
	limiter     *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit spaces requests to at most rps per second. Zero disables the limiter.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// New creates a new transport client for one marketplace API.
func New(marketplace, baseURL string, auth Authenticator, opts ...Option) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	c := &Client{
		marketplace: marketplace,
		baseURL:     strings.TrimRight(baseURL, "/"),
		http:        &http.Client{Timeout: DefaultHTTPTimeout},
		auth:        auth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Marketplace returns the marketplace name used in errors.
func (c *Client) Marketplace() string {
	return c.marketplace
}

// Do sends a JSON request to path and decodes a successful JSON response
// into target. body and target may be nil.
func (c *Client) Do(ctx context.Context, method, path string, body, target any) error {
	endpoint := method + " " + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.NewParseError("json", endpoint, "encoding request body", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &errors.TransportError{Marketplace: c.marketplace, Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.auth.Apply(req)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return c.classify(ctx, endpoint, err)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return c.classify(ctx, endpoint, err)
	}

	logging.FromContext(ctx).Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Marketplace call")

	return c.decode(resp, endpoint, target)
}

// decode reads the response and either fails with an APIError or decodes it.
func (c *Client) decode(resp *http.Response, endpoint string, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Str("endpoint", endpoint).Msg("Failed to close response body")
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errors.TransportError{Marketplace: c.marketplace, Endpoint: endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(data))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody] + "..."
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &errors.APIError{
			Marketplace: c.marketplace,
			StatusCode:  resp.StatusCode,
			Message:     msg,
			Endpoint:    endpoint,
		}
	}

	if target == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return &errors.APIError{
			Marketplace: c.marketplace,
			StatusCode:  resp.StatusCode,
			Message:     fmt.Sprintf("malformed response: %v", err),
			Endpoint:    endpoint,
			Err:         err,
		}
	}
	return nil
}

// classify maps a failed round trip onto the error taxonomy.
func (c *Client) classify(ctx context.Context, endpoint string, err error) error {
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return fmt.Errorf("%s %s: %w: %w", c.marketplace, endpoint, errors.ErrCanceled, err)
	case errors.Is(err, context.DeadlineExceeded) || isTimeout(err):
		return &errors.TimeoutError{
			Operation: c.marketplace + " " + endpoint,
			Duration:  c.http.Timeout.String(),
			Message:   err.Error(),
		}
	default:
		return &errors.TransportError{Marketplace: c.marketplace, Endpoint: endpoint, Err: err}
	}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
