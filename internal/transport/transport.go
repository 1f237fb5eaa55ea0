// Package transport is the HTTP capability every store talks to the
// backend through.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	headerRequestID      = "X-Request-ID"
	headerEnterpriseView = "X-Enterprise-View"

	maxBodyBytes = 8 << 20
)

// Response is what the backend answered: its status and raw JSON body.
type Response struct {
	Status int
	Data   json.RawMessage
}

// Get reads a field from the body with a gjson path.
func (r *Response) Get(path string) gjson.Result {
	if r == nil || len(r.Data) == 0 {
		return gjson.Result{}
	}

	return gjson.GetBytes(r.Data, path)
}

// Message returns the server-supplied message field, if any.
func (r *Response) Message() string {
	return r.Get("message").String()
}

//go:generate mockgen -source=transport.go -destination=invoker_mock.go -package=transport
type Invoker interface {
	Invoke(ctx context.Context, method, path string, body any) (*Response, error)
}

// Credentials supplies the session values attached to each request.
type Credentials interface {
	Token() string
	EnterpriseView() string
}

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	RateLimit   float64 // requests per second, 0 disables the limiter
	Burst       int
	Credentials Credentials
	HTTPClient  *http.Client
	Logger      *slog.Logger
}

// Client invokes the backend's REST API over HTTP.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	credentials Credentials
	logger      *slog.Logger
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}

		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := max(cfg.Burst, 1)
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:  httpClient,
		limiter:     limiter,
		credentials: cfg.Credentials,
		logger:      logger,
	}
}

// Invoke sends body as JSON and returns any 2xx response. Other statuses
// come back as *Error carrying the server message; failures to reach the
// server come back as *Error without one.
func (c *Client) Invoke(ctx context.Context, method, path string, body any) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("waiting for rate limiter: %w", err)}
		}
	}

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, Generic(fmt.Errorf("encoding request body: %w", err))
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, Generic(fmt.Errorf("creating request: %w", err))
	}

	requestID := uuid.NewString()

	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.credentials != nil {
		if token := c.credentials.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		if view := c.credentials.EnterpriseView(); view != "" {
			req.Header.Set(headerEnterpriseView, view)
		}
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("executing request: %w", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Status: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	c.logger.Debug("backend call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	out := &Response{Status: resp.StatusCode}
	if gjson.ValidBytes(data) {
		out.Data = data
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, StatusError(out)
	}

	return out, nil
}
