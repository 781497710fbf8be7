// Package adapter is the HTTP transport shared by the enrichment clients.
//
// Each call is bounded by its own context deadline and by the http.Client
// timeout. Transport failures and unexpected status codes are classified into
// a ProviderError so capability clients only interpret successful answers.
package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"unibus/internal/enrichment/metrics"
	"unibus/pkg/requestcontext"
)

//go:generate mockgen -source=http.go -destination=mocks/mocks.go -package=mocks HTTPDoer

const (
	DefaultTimeout = 10 * time.Second

	// maxResponseBytes bounds how much of an upstream body is read.
	maxResponseBytes = 1 << 20
)

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures an adapter.
type Config struct {
	ID      string
	BaseURL string
	Timeout time.Duration

	// HTTPClient overrides the default http.Client.
	HTTPClient HTTPDoer

	// PassStatuses lists non-2xx status codes handed back to the caller
	// instead of being classified as failures.
	PassStatuses []int
}

// Response is an upstream answer the caller still has to interpret.
type Response struct {
	StatusCode int
	Body       []byte
}

// DecodeJSON unmarshals the body into v. A malformed body is bad data.
func (r *Response) DecodeJSON(providerID string, v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return NewProviderError(ErrorBadData, providerID, "failed to decode response", err)
	}
	return nil
}

type Adapter struct {
	id           string
	baseURL      string
	timeout      time.Duration
	client       HTTPDoer
	passStatuses []int
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

type Option func(*Adapter)

func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = l
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Adapter) {
		a.metrics = m
	}
}

// New creates an adapter. A zero timeout falls back to DefaultTimeout.
func New(cfg Config, opts ...Option) *Adapter {
	if cfg.ID == "" {
		panic("adapter.New: provider id is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	a := &Adapter{
		id:           cfg.ID,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		timeout:      cfg.Timeout,
		client:       selectHTTPClient(cfg),
		passStatuses: cfg.PassStatuses,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func selectHTTPClient(cfg Config) HTTPDoer {
	if cfg.HTTPClient != nil {
		return cfg.HTTPClient
	}
	return &http.Client{Timeout: cfg.Timeout}
}

// ID returns the provider identifier.
func (a *Adapter) ID() string {
	return a.id
}

// Get issues a GET request for path relative to the base URL.
func (a *Adapter) Get(ctx context.Context, path string) (*Response, error) {
	return a.do(ctx, http.MethodGet, path, nil)
}

// PostJSON issues a POST request with payload encoded as JSON.
func (a *Adapter) PostJSON(ctx context.Context, path string, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, a.fail(ctx, NewProviderError(ErrorInternal, a.id, "failed to marshal request", err))
	}
	return a.do(ctx, http.MethodPost, path, body)
}

func (a *Adapter) do(ctx context.Context, method, path string, body []byte) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if a.metrics != nil {
			a.metrics.ObserveCall(a.id, time.Since(start))
		}
	}()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return nil, a.fail(ctx, NewProviderError(ErrorInternal, a.id, "failed to create request", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) || isTimeout(err) {
			return nil, a.fail(ctx, NewProviderError(ErrorTimeout, a.id, "request timeout", err))
		}
		return nil, a.fail(ctx, NewProviderError(ErrorProviderOutage, a.id, "failed to execute request", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, a.fail(ctx, NewProviderError(ErrorTimeout, a.id, "response read timeout", err))
		}
		return nil, a.fail(ctx, NewProviderError(ErrorBadData, a.id, "failed to read response", err))
	}

	if err := a.classifyStatus(resp.StatusCode); err != nil {
		return nil, a.fail(ctx, err)
	}
	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

func (a *Adapter) classifyStatus(status int) error {
	if status >= 200 && status < 300 {
		return nil
	}
	if slices.Contains(a.passStatuses, status) {
		return nil
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return NewProviderError(ErrorAuthentication, a.id, fmt.Sprintf("authentication failed: %d", status), nil)
	case status == http.StatusNotFound:
		return NewProviderError(ErrorNotFound, a.id, "resource not found", nil)
	case status == http.StatusTooManyRequests:
		return NewProviderError(ErrorRateLimited, a.id, "rate limit exceeded", nil)
	case status == http.StatusGatewayTimeout:
		return NewProviderError(ErrorTimeout, a.id, "upstream gateway timeout", nil)
	case status >= 500:
		return NewProviderError(ErrorProviderOutage, a.id, fmt.Sprintf("provider unavailable: %d", status), nil)
	default:
		return NewProviderError(ErrorContractMismatch, a.id, fmt.Sprintf("unexpected status: %d", status), nil)
	}
}

// Fail records a failure detected by a capability client after a
// successful round trip, such as a body missing required fields.
func (a *Adapter) Fail(ctx context.Context, err error) error {
	return a.fail(ctx, err)
}

func (a *Adapter) fail(ctx context.Context, err error) error {
	category := GetCategory(err)
	if a.metrics != nil {
		a.metrics.IncCallFailure(a.id, string(category))
	}
	a.logger.WarnContext(ctx, "external service call failed",
		"request_id", requestcontext.RequestID(ctx),
		"provider", a.id,
		"category", string(category),
		"error", err,
	)
	return err
}

type timeoutError interface {
	Timeout() bool
}

func isTimeout(err error) bool {
	var te timeoutError
	return errors.As(err, &te) && te.Timeout()
}
