// Package fetch performs single, time-bounded, cancellable JSON requests against the remote catalog service.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/zerr"
)

// DefaultTimeout bounds a request when the caller passes no timeout.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// Client issues GET requests relative to a base address.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the service at baseURL (for example "http://localhost:8000").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tracer:     otel.Tracer("starfolk-client/fetch"),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch issues GET <base><path> and returns the JSON body.
//
// The request fails with ErrTimeout when no complete response arrives within timeout,
// ErrCancelled when ctx is cancelled first, ErrNetwork on transport failure,
// a *StatusError (ErrHTTPStatus) on non-2xx responses and ErrDecode when the body
// is not well-formed JSON. The deadline timer is released on every path.
func (c *Client) Fetch(ctx context.Context, path string, timeout time.Duration) (json.RawMessage, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, span := c.tracer.Start(ctx, "fetch GET", trace.WithAttributes(
		attribute.String("http.path", path),
		attribute.Int64("fetch.timeout_ms", timeout.Milliseconds()),
	))
	defer span.End()

	body, err := c.do(ctx, path, timeout)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, KindOf(err).String())
		if !IsCancelled(err) {
			c.logger.DebugContext(ctx, "fetch failed", "path", path, "kind", KindOf(err).String(), "error", err)
		}
		return nil, err
	}
	return body, nil
}

func (c *Client) do(parent context.Context, path string, timeout time.Duration) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeoutCause(parent, timeout, ErrTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, failure(ErrNetwork, path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(ctx, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, zerr.With(zerr.With(&StatusError{Code: resp.StatusCode}, "path", path), "status", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classify(ctx, path, err)
	}
	if !json.Valid(raw) {
		return nil, failure(ErrDecode, path, nil)
	}
	return json.RawMessage(raw), nil
}

// classify maps a transport error to the failure taxonomy using the request context's cause.
func classify(ctx context.Context, path string, err error) error {
	if ctx.Err() == nil {
		return failure(ErrNetwork, path, err)
	}
	if errors.Is(context.Cause(ctx), ErrTimeout) {
		return failure(ErrTimeout, path, err)
	}
	return failure(ErrCancelled, path, err)
}

func failure(kind error, path string, reason error) error {
	err := zerr.With(zerr.Wrap(kind, "GET "+path), "path", path)
	if reason != nil {
		err = zerr.With(err, "reason", reason.Error())
	}
	return err
}
