// Package api is the HTTP client for the external moderation REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"modboard/domain/core"
	"modboard/internal"
	"modboard/internal/config"
	"modboard/internal/errors"
	"modboard/internal/metrics"
)

// maxErrorBody bounds how much of a failed response is read for its message
const maxErrorBody = 64 << 10

// Client calls the moderation API. It implements ports.ModerationAPI and
// ports.StatsAPI.
type Client struct {
	baseURL    string
	token      string
	timeout    time.Duration
	httpClient *http.Client
	metrics    *metrics.Recorder
	logger     *internal.Logger
}

// NewClient creates a client for cfg.BaseURL (e.g. http://host/api/v1).
// recorder and logger may be nil.
func NewClient(cfg config.APIConfig, recorder *metrics.Recorder, logger *internal.Logger) *Client {
	if logger == nil {
		logger = internal.Discard
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		timeout:    cfg.Timeout,
		httpClient: &http.Client{},
		metrics:    recorder,
		logger:     logger.With("ModerationAPI"),
	}
}

// WithHTTPClient swaps the transport, mainly for tests
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// do performs one request and decodes a 2xx JSON body into out (when
// non-nil). Non-2xx answers become EXTERNAL_SERVICE_ERROR carrying the
// message the API returned.
func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, body interface{}, out interface{}) (err error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	started := time.Now()
	defer func() { c.metrics.ObserveUpstream(endpoint, started, err) }()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", endpoint, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	requestID := core.NewRequestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID.String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("%s %s (request %s)", method, target, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// caller cancellation is not an upstream failure
		if stderrors.Is(ctx.Err(), context.Canceled) {
			return fmt.Errorf("%s: %w", endpoint, context.Canceled)
		}
		c.logger.Warn("%s failed: %v", endpoint, err)
		return errors.ExternalServiceError(errors.GenericAPIMessage, fmt.Errorf("%s: %w", endpoint, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		message := ErrorMessage(raw)
		c.logger.Warn("%s returned %d: %s (request %s)", endpoint, resp.StatusCode, message, requestID)

		cause := fmt.Errorf("%s: status %d", endpoint, resp.StatusCode)
		if resp.StatusCode == http.StatusNotFound {
			cause = fmt.Errorf("%s: status %d: %w", endpoint, resp.StatusCode, core.NewNotFoundError(endpoint, path))
		}
		return errors.ExternalServiceError(message, cause)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.ExternalServiceError(errors.GenericAPIMessage, fmt.Errorf("decode %s response: %w", endpoint, err))
	}
	return nil
}

// ErrorMessage extracts the user-facing text from an error body: "message",
// then "error", then the generic fallback.
func ErrorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return errors.GenericAPIMessage
	}
	for _, path := range []string{"message", "error"} {
		if v := gjson.GetBytes(body, path); v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
			return v.Str
		}
	}
	return errors.GenericAPIMessage
}
