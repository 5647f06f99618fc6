package api

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
	"sync"
	"time"
)

// DefaultTimeout is the fixed client-wide request timeout
const DefaultTimeout = 10 * time.Second

// Client представляет HTTP клиент для взаимодействия с API панели управления.
// Bearer токен читается в момент отправки каждого запроса, а не при его построении.
type Client struct {
	httpClient      *http.Client
	logger          *slog.Logger
	session         SessionHandler
	onLoginRequired func()
	baseURL         string
	bearer          string
	mu              sync.RWMutex
}

// Option настраивает Client
type Option func(*Client)

// WithTimeout overrides the client-wide timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client. Its timeout is kept as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient создает новый API клиент, привязанный к baseURL (например http://localhost:7000/api/v1)
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  slog.Default(),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			// Authorization уходит только на тот же host:port, что и исходный запрос
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				if len(via) > 0 && req.URL.Host != via[0].URL.Host {
					req.Header.Del("Authorization")
				}
				return nil
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the API base URL without trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetBearer sets the default Authorization header to "Bearer <token>"
func (c *Client) SetBearer(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bearer = token
}

// ClearBearer removes the default Authorization header
func (c *Client) ClearBearer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bearer = ""
}

// Bearer returns the current default bearer token, empty if none
func (c *Client) Bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bearer
}

// request is an immutable description of an outgoing call. It can be replayed as is.
type request struct {
	query       url.Values
	method      string
	path        string
	contentType string
	body        []byte
}

func newRequest(method, path string, query url.Values, body any) (request, error) {
	req := request{method: method, path: path, query: query}
	if body == nil {
		return req, nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return request{}, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req.body = data
	req.contentType = "application/json"

	return req, nil
}

func (r request) url(baseURL string) string {
	u := baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	return u
}

// call выполняет запрос через политику повтора с начальным состоянием state
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, result any, state attempt) error {
	req, err := newRequest(method, path, query, body)
	if err != nil {
		return err
	}
	return c.do(ctx, req, state, result)
}

// send выполняет один HTTP запрос без какой-либо логики повтора
func (c *Client) send(ctx context.Context, r request, result any) error {
	var bodyReader io.Reader
	if r.body != nil {
		bodyReader = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.url(c.baseURL), bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	// Токен читаем именно сейчас: после refresh повтор уйдет с новым значением
	if token := c.Bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "request failed", "method", r.method, "path", r.path, "error", err)
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", ErrNetwork, err)
	}

	c.logger.DebugContext(ctx, "request completed",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newHTTPError(resp.StatusCode, respBody)
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
