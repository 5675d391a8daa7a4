package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/ports"
)

// Client is the shared HTTP layer behind every backend surface. It owns
// request construction, bearer injection, per-call timeouts, and error
// classification; the per-surface clients own endpoints and payload shapes.
type Client struct {
	baseURL  string
	http     *http.Client
	settings domain.APISettings
	sessions ports.SessionStore
	logger   ports.Logger
}

func NewClient(settings domain.APISettings, sessions ports.SessionStore, logger ports.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(settings.BaseURL, "/"),
		http:     &http.Client{},
		settings: settings,
		sessions: sessions,
		logger:   logger,
	}
}

// SetHTTPClient replaces the underlying transport. Used by tests.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.http = hc
}

func (c *Client) Settings() domain.APISettings {
	return c.settings
}

// request carries one call's worth of variation through do.
type request struct {
	method  string
	path    string
	query   url.Values
	body    any
	rawBody io.Reader
	header  http.Header
}

// do issues the request and decodes the JSON response into out (when out is
// non-nil). Failures come back as *domain.APIError with the type already
// classified; a 401 additionally clears the stored session.
func (c *Client) do(ctx context.Context, req request, out any, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.rawBody != nil {
		body = req.rawBody
	} else if req.body != nil {
		encoded, err := json.Marshal(req.body)
		if err != nil {
			return &domain.APIError{Type: domain.ErrorValidation, Endpoint: req.path, Message: "encode request body", Err: err}
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return &domain.APIError{Type: domain.ErrorValidation, Endpoint: req.path, Message: err.Error(), Err: err}
	}

	if req.rawBody == nil && req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for key, values := range req.header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	if token, ok := c.sessions.Token(); ok {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return c.classifyTransport(req.path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.classifyTransport(req.path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if clearErr := c.sessions.ClearSession(); clearErr != nil {
			c.logger.Warn("failed to clear rejected session", map[string]interface{}{"error": clearErr.Error()})
		}
		return &domain.APIError{
			Type:     domain.ErrorExecution,
			Status:   resp.StatusCode,
			Endpoint: req.path,
			Message:  errorDetail(payload, resp.Status),
			Err:      domain.ErrUnauthorized,
		}
	}

	if resp.StatusCode >= 400 {
		return &domain.APIError{
			Type:     domain.ErrorExecution,
			Status:   resp.StatusCode,
			Endpoint: req.path,
			Message:  errorDetail(payload, resp.Status),
		}
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &domain.APIError{Type: domain.ErrorExecution, Endpoint: req.path, Message: "decode response", Err: err}
	}
	return nil
}

// classifyTransport separates timeouts from other transport failures.
func (c *Client) classifyTransport(path string, err error) *domain.APIError {
	errType := domain.ErrorNetwork
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		errType = domain.ErrorTimeout
	}
	c.logger.Debug("request failed", map[string]interface{}{
		"endpoint": path,
		"type":     string(errType),
		"error":    err.Error(),
	})
	return &domain.APIError{Type: errType, Endpoint: path, Message: err.Error(), Err: err}
}

// errorDetail pulls a human-readable message out of an error payload,
// falling back to the HTTP status line.
func errorDetail(payload []byte, status string) string {
	var body struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err == nil {
		if len(body.Detail) > 0 {
			var detail string
			if json.Unmarshal(body.Detail, &detail) == nil && detail != "" {
				return detail
			}
			return string(body.Detail)
		}
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return status
}

func (c *Client) get(ctx context.Context, path string, out any, timeout time.Duration) error {
	return c.do(ctx, request{method: http.MethodGet, path: path}, out, timeout)
}

func (c *Client) post(ctx context.Context, path string, body, out any, timeout time.Duration) error {
	return c.do(ctx, request{method: http.MethodPost, path: path, body: body}, out, timeout)
}

func (c *Client) postQuery(ctx context.Context, path string, query url.Values, body, out any, timeout time.Duration) error {
	return c.do(ctx, request{method: http.MethodPost, path: path, query: query, body: body}, out, timeout)
}
