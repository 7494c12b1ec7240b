// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transport provides the HTTP client for the chat backend.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

const (
	// DefaultBaseURL is the backend address used when none is configured.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds a single chat exchange.
	DefaultTimeout = 60 * time.Second

	// DefaultHealthTimeout bounds a single health probe.
	DefaultHealthTimeout = 5 * time.Second

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 1 << 20
)

// ErrEmptyMessage is returned by Send when called with an empty message.
var ErrEmptyMessage = errors.New("transport: message is empty")

// ErrMissingResponse is the cause when a success body has no response field.
var ErrMissingResponse = errors.New("transport: reply has no response field")

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend root (default: http://localhost:8000)
	BaseURL string

	// Timeout for chat requests (default: 60s)
	Timeout time.Duration

	// HealthTimeout for health probes (default: 5s)
	HealthTimeout time.Duration

	// UserAgent sent with every request
	UserAgent string
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:       DefaultBaseURL,
		Timeout:       DefaultTimeout,
		HealthTimeout: DefaultHealthTimeout,
		UserAgent:     "chatterm",
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client performs request/response exchanges with the chat backend.
//
// The Client is safe for concurrent use.
type Client struct {
	mu         sync.RWMutex
	config     *ClientConfig
	httpClient *http.Client
}

// NewClientWithConfig creates a new client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.HealthTimeout == 0 {
		config.HealthTimeout = DefaultHealthTimeout
	}
	if config.UserAgent == "" {
		config.UserAgent = "chatterm"
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// BaseURL returns the backend root currently in use.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config.BaseURL
}

// SetBaseURL points the client at a different backend.
// Requests already in flight keep their original target.
func (c *Client) SetBaseURL(url string) {
	url = strings.TrimRight(url, "/")
	if url == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.BaseURL = url
}

func (c *Client) endpoint(path string) string {
	return c.BaseURL() + path
}

// =============================================================================
// CHAT
// =============================================================================

// Send posts message to /chat and returns the backend's reply verbatim.
// The caller is responsible for trimming and validating the message.
func (c *Client) Send(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", ErrEmptyMessage
	}

	body, err := json.Marshal(ChatRequest{Message: message})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/chat"), bytes.NewReader(body))
	if err != nil {
		return "", unreachable(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", unreachable(err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", rejected(resp.StatusCode, readDetail(resp.Body))
	}

	var result ChatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&result); err != nil {
		return "", &TransportError{
			Kind:   KindRejected,
			Detail: GenericDetail,
			Status: resp.StatusCode,
			Cause:  err,
		}
	}
	if result.Response == nil {
		return "", &TransportError{
			Kind:   KindRejected,
			Detail: GenericDetail,
			Status: resp.StatusCode,
			Cause:  ErrMissingResponse,
		}
	}

	return *result.Response, nil
}

// readDetail extracts the detail string from an error body.
// Returns "" when the body is absent, not JSON, or has no string detail.
func readDetail(r io.Reader) string {
	var errResp ErrorResponse
	if err := json.NewDecoder(io.LimitReader(r, maxBodySize)).Decode(&errResp); err != nil {
		return ""
	}
	return strings.TrimSpace(errResp.DetailText())
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckHealth probes GET /health.
// Returns nil for a 2xx status, a KindRejected error for any other status,
// and a KindUnreachable error when no response arrives.
func (c *Client) CheckHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/health"), nil)
	if err != nil {
		return unreachable(err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return unreachable(err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return rejected(resp.StatusCode, "unexpected status from backend: "+resp.Status)
	}

	return nil
}

// Helper to drain response body
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, io.LimitReader(r, maxBodySize))
	r.Close()
}
