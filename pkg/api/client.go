// Package api wraps the visualization backend's REST surface with bearer
// token attachment, transparent refresh-on-401, bounded retry for transient
// failures, and error normalization.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Astreocclu/pool-visualizer/pkg/logger"
	"github.com/Astreocclu/pool-visualizer/pkg/metrics"
	"github.com/Astreocclu/pool-visualizer/pkg/tracing"
)

const (
	// DefaultTimeout is the default request timeout
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize is the maximum response body size (10MB)
	MaxResponseSize = 10 * 1024 * 1024

	// DefaultMaxRetries is how many automatic retries transient failures get
	DefaultMaxRetries = 3

	// DefaultRetryBaseDelay is the first retry delay, doubled each attempt
	DefaultRetryBaseDelay = time.Second
)

// IdempotencyKeyHeader marks a POST as safe to retry. The submission
// pipeline attaches it to create calls.
const IdempotencyKeyHeader = "Idempotency-Key"

// TokenStore supplies and receives the auth token pair. The session manager
// implements it; a nil store makes the client anonymous.
type TokenStore interface {
	Tokens() (access string, refresh string)
	SetTokens(access string, refresh string)
	Clear()
}

// Config holds API client configuration.
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	MaxRetries      int
	RetryBaseDelay  time.Duration
	MaxIdleConns    int
	IdleConnTimeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:         "http://127.0.0.1:8000/api",
		Timeout:         DefaultTimeout,
		MaxRetries:      DefaultMaxRetries,
		RetryBaseDelay:  DefaultRetryBaseDelay,
		MaxIdleConns:    100,
		IdleConnTimeout: 90 * time.Second,
	}
}

// Client is the HTTP client for the visualization backend.
type Client struct {
	baseURL        string
	client         *http.Client
	tokens         TokenStore
	logger         logger.Logger
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewClient creates a new API client.
func NewClient(cfg Config, tokens TokenStore, log logger.Logger) *Client {
	transport := &http.Transport{
		MaxIdleConns:    cfg.MaxIdleConns,
		IdleConnTimeout: cfg.IdleConnTimeout,
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	retryBaseDelay := cfg.RetryBaseDelay
	if retryBaseDelay <= 0 {
		retryBaseDelay = DefaultRetryBaseDelay
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		tokens:         tokens,
		logger:         log,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request is a buffered, replayable request description. The body is held
// as bytes so retries and the refresh-then-retry path can rebuild it.
type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	headers     map[string]string
	noAuth      bool
	fallback    string
}

// retryable reports whether the request may be resent automatically.
// Only idempotent methods qualify, plus POSTs carrying an idempotency key.
func (r *request) retryable() bool {
	switch r.method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete:
		return true
	}
	_, ok := r.headers[IdempotencyKeyHeader]
	return ok
}

// do executes a request with auth attachment, one transparent refresh on
// 401, and bounded exponential-backoff retry for network and 5xx failures.
func (c *Client) do(ctx context.Context, req *request) (int, []byte, error) {
	ctx, span := tracing.StartSpan(ctx, fmt.Sprintf("api %s %s", req.method, req.path))
	defer span.End()

	metrics.APIRequestsInFlight.Inc()
	defer metrics.APIRequestsInFlight.Dec()

	start := time.Now()
	defer func() {
		metrics.APIRequestDuration.WithLabelValues(req.method).Observe(time.Since(start).Seconds())
	}()

	refreshed := false
	attempt := 0

	for {
		status, body, err := c.send(ctx, req)
		if err != nil {
			if req.retryable() && attempt < c.maxRetries {
				attempt++
				metrics.APIRetriesTotal.WithLabelValues(req.method).Inc()
				if waitErr := c.backoff(ctx, attempt); waitErr != nil {
					return 0, nil, newTransportError(waitErr, req.fallback)
				}
				continue
			}
			metrics.APIRequestsTotal.WithLabelValues(req.method, "error").Inc()
			c.logger.WithContext(ctx).WithError(err).Errorf("Request failed: %s %s", req.method, req.path)
			return 0, nil, newTransportError(err, req.fallback)
		}

		if status == http.StatusUnauthorized && !req.noAuth && !refreshed {
			refreshed = true
			if refreshErr := c.refreshTokens(ctx); refreshErr == nil {
				continue
			}
			if c.tokens != nil {
				c.tokens.Clear()
			}
			metrics.APIRequestsTotal.WithLabelValues(req.method, strconv.Itoa(status)).Inc()
			return status, body, newResponseError(status, body, req.fallback)
		}

		if status >= 500 && req.retryable() && attempt < c.maxRetries {
			attempt++
			metrics.APIRetriesTotal.WithLabelValues(req.method).Inc()
			if waitErr := c.backoff(ctx, attempt); waitErr != nil {
				return status, body, newTransportError(waitErr, req.fallback)
			}
			continue
		}

		metrics.APIRequestsTotal.WithLabelValues(req.method, strconv.Itoa(status)).Inc()

		if status < 200 || status >= 300 {
			return status, body, newResponseError(status, body, req.fallback)
		}

		return status, body, nil
	}
}

// send issues a single attempt, rebuilding the http.Request from the
// buffered body so the request stays replayable.
func (c *Client) send(ctx context.Context, req *request) (int, []byte, error) {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	for key, value := range req.headers {
		httpReq.Header.Set(key, value)
	}

	if !req.noAuth && c.tokens != nil {
		if access, _ := c.tokens.Tokens(); access != "" {
			httpReq.Header.Set("Authorization", "Bearer "+access)
		}
	}

	if traceparent := tracing.GetTraceParent(ctx); traceparent != "" {
		httpReq.Header.Set("traceparent", traceparent)
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	limitedReader := io.LimitReader(resp.Body, MaxResponseSize+1)
	respBody, err := io.ReadAll(limitedReader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(respBody) > MaxResponseSize {
		return 0, nil, fmt.Errorf("response body too large: %d bytes (max %d)", len(respBody), MaxResponseSize)
	}

	c.logger.WithContext(ctx).Debugf("HTTP %s %s -> %d (%s)",
		req.method, target, resp.StatusCode, time.Since(start))

	return resp.StatusCode, respBody, nil
}

// backoff sleeps for the exponential retry delay, honoring cancellation.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	delay := c.retryBaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// refreshTokens exchanges the stored refresh token for a new access token.
func (c *Client) refreshTokens(ctx context.Context) error {
	if c.tokens == nil {
		return fmt.Errorf("no token store configured")
	}

	_, refresh := c.tokens.Tokens()
	if refresh == "" {
		metrics.TokenRefreshesTotal.WithLabelValues("missing").Inc()
		return fmt.Errorf("no refresh token available")
	}

	payload, err := json.Marshal(map[string]string{"refresh": refresh})
	if err != nil {
		return fmt.Errorf("failed to marshal refresh payload: %w", err)
	}

	status, body, err := c.send(ctx, &request{
		method:      http.MethodPost,
		path:        "/auth/refresh/",
		body:        payload,
		contentType: "application/json",
		noAuth:      true,
	})
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("error").Inc()
		return err
	}
	if status < 200 || status >= 300 {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return fmt.Errorf("token refresh rejected with status %d", status)
	}

	var tokens struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.Unmarshal(body, &tokens); err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if tokens.Access == "" {
		metrics.TokenRefreshesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("refresh response missing access token")
	}

	if tokens.Refresh == "" {
		tokens.Refresh = refresh
	}
	c.tokens.SetTokens(tokens.Access, tokens.Refresh)
	metrics.TokenRefreshesTotal.WithLabelValues("ok").Inc()

	c.logger.WithContext(ctx).Debugf("Access token refreshed")
	return nil
}

// getJSON performs a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any, fallback string) error {
	_, body, err := c.do(ctx, &request{
		method:   http.MethodGet,
		path:     path,
		query:    query,
		fallback: fallback,
	})
	if err != nil {
		return err
	}
	return decode(body, out, fallback)
}

// postJSON performs a POST with a JSON body and decodes the response.
func (c *Client) postJSON(ctx context.Context, path string, in any, out any, fallback string) error {
	return c.sendJSON(ctx, http.MethodPost, path, in, out, false, fallback)
}

// postJSONNoAuth performs an unauthenticated POST, for the auth endpoints.
func (c *Client) postJSONNoAuth(ctx context.Context, path string, in any, out any, fallback string) error {
	return c.sendJSON(ctx, http.MethodPost, path, in, out, true, fallback)
}

// putJSON performs a PUT with a JSON body and decodes the response.
func (c *Client) putJSON(ctx context.Context, path string, in any, out any, fallback string) error {
	return c.sendJSON(ctx, http.MethodPut, path, in, out, false, fallback)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in any, out any, noAuth bool, fallback string) error {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	_, body, err := c.do(ctx, &request{
		method:      method,
		path:        path,
		body:        payload,
		contentType: "application/json",
		noAuth:      noAuth,
		fallback:    fallback,
	})
	if err != nil {
		return err
	}
	return decode(body, out, fallback)
}

// delete performs a DELETE request.
func (c *Client) delete(ctx context.Context, path string, fallback string) error {
	_, _, err := c.do(ctx, &request{
		method:   http.MethodDelete,
		path:     path,
		fallback: fallback,
	})
	return err
}

// postMultipart performs a POST with a prebuilt multipart body. The
// idempotency key, when set, makes the create safe to retry.
func (c *Client) postMultipart(ctx context.Context, path string, body []byte, contentType, idempotencyKey string, out any, fallback string) error {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers[IdempotencyKeyHeader] = idempotencyKey
	}

	_, respBody, err := c.do(ctx, &request{
		method:      http.MethodPost,
		path:        path,
		body:        body,
		contentType: contentType,
		headers:     headers,
		fallback:    fallback,
	})
	if err != nil {
		return err
	}
	return decode(respBody, out, fallback)
}

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

func decode(body []byte, out any, fallback string) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{
			Message: fallback,
			Data:    json.RawMessage(body),
			Err:     fmt.Errorf("failed to decode response: %w", err),
		}
	}
	return nil
}
