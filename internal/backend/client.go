// Package backend provides a typed HTTP client for the hospital management
// backend. Every response is wrapped in a {success, data, message} envelope;
// the client unwraps it and normalizes failures into *Error.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/medidesk/hospital-admin-bff/pkg/logging"
)

const defaultTimeout = 10 * time.Second

// RequestObserver receives one observation per upstream request. Implemented
// by the metrics package; a nil observer is a no-op.
type RequestObserver interface {
	ObserveRequest(method string, status int, seconds float64)
	ObserveUnauthorized()
}

// Client is the hospital backend API client. It is stateless per call aside
// from reading the bearer token out of the request context.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	logger       *logging.Logger
	observer     RequestObserver
	tracer       trace.Tracer
	unauthorized unauthorizedBus
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithObserver attaches a request metrics observer.
func WithObserver(obs RequestObserver) Option {
	return func(c *Client) {
		c.observer = obs
	}
}

// NewClient creates a backend client rooted at baseURL (e.g. "https://host/api").
func NewClient(baseURL string, logger *logging.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
		tracer: otel.Tracer("hospital-admin-bff/backend"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type contextKey string

const tokenKey contextKey = "backendToken"

// WithToken returns a context carrying the bearer token for outbound requests.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the bearer token stored by WithToken, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}

// envelope is the backend's standard response wrapper.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
	Meta    *Meta               `json:"meta"`
}

// Meta carries pagination metadata on list endpoints. The dashboard's list
// views do not consume it yet.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// do executes one request against the backend, unwraps the envelope into out
// and normalizes every failure into *Error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, span := c.tracer.Start(ctx, method+" "+path)
	defer span.End()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: "An error occurred"}
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Message: "An error occurred"}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		c.observeRequest(method, 0, elapsed)
		c.logger.Error("no response from backend", "method", method, "path", path, "error", err)
		return &Error{Message: "No response from server. Please check your connection."}
	}
	defer resp.Body.Close()

	c.observeRequest(method, resp.StatusCode, elapsed)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: resp.StatusCode, Message: "An error occurred"}
	}

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(ctx, method, path, resp.StatusCode, respBody)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		c.logger.Error("malformed backend response", "method", method, "path", path, "error", err)
		return &Error{Status: resp.StatusCode, Message: "An error occurred"}
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "Request failed"
		}
		return &Error{Status: resp.StatusCode, Message: msg, Errors: env.Errors}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			c.logger.Error("malformed backend payload", "method", method, "path", path, "error", err)
			return &Error{Status: resp.StatusCode, Message: "An error occurred"}
		}
	}
	return nil
}

// errorFromResponse maps an HTTP error status onto the normalized taxonomy.
// A message in the body takes precedence over the per-status default, and 422
// bodies additionally carry a field-level errors map. A 401 emits exactly one
// process-wide unauthorized signal.
func (c *Client) errorFromResponse(ctx context.Context, method, path string, status int, body []byte) error {
	var errBody struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	// A non-JSON error body falls through to the status defaults.
	_ = json.Unmarshal(body, &errBody)

	message := errBody.Message
	if message == "" {
		message = statusMessage(status)
	}

	if status == http.StatusUnauthorized {
		if c.observer != nil {
			c.observer.ObserveUnauthorized()
		}
		c.unauthorized.emit(ctx)
	}

	c.logger.Warn("backend request failed",
		"method", method,
		"path", path,
		"status", status,
	)

	e := &Error{Status: status, Message: message}
	if status == http.StatusUnprocessableEntity {
		e.Errors = errBody.Errors
		if e.Errors == nil {
			e.Errors = map[string][]string{}
		}
	}
	return e
}

func (c *Client) observeRequest(method string, status int, seconds float64) {
	if c.observer != nil {
		c.observer.ObserveRequest(method, status, seconds)
	}
}

// escape makes a path segment safe for interpolation.
func escape(id string) string {
	return url.PathEscape(id)
}
