// Package builtwith provides the upstream client for the BuiltWith
// technology-intelligence API and the error taxonomy shared by dispatch.
package builtwith

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/builtwith/builtwith-mcp/internal/common"
)

// maxResponseSize caps the response body to prevent OOM from unexpectedly large responses.
const maxResponseSize = 50 << 20 // 50MB

// Client issues single outbound requests to the BuiltWith API.
// It is stateless and safe for concurrent use.
type Client struct {
	baseURL     string
	fallbackKey string
	httpClient  *http.Client
	logger      *common.Logger
}

// NewClient creates a client targeting the given API host. The host may
// carry an explicit scheme (used by tests); bare hostnames get https.
// fallbackKey is the process-wide key used when the invocation context
// carries none.
func NewClient(host, fallbackKey string, logger *common.Logger) *Client {
	base := host
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return &Client{
		baseURL:     strings.TrimSuffix(base, "/"),
		fallbackKey: fallbackKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// BaseURL returns the resolved upstream base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Call performs one GET against the given API path with the given query
// parameters plus the resolved KEY. Empty parameter values are omitted,
// not sent as empty strings. Every failure mode comes back as a
// *CallError; no retries are attempted.
func (c *Client) Call(ctx context.Context, path string, params map[string]string) (json.RawMessage, error) {
	key, ok := APIKeyFromContext(ctx)
	if !ok {
		key = c.fallbackKey
	}
	if key == "" {
		return nil, &CallError{Kind: KindAuthMissing, Message: "Missing API key"}
	}

	query := url.Values{}
	query.Set("KEY", key)
	for name, value := range params {
		if value != "" {
			query.Set(name, value)
		}
	}
	endpoint := c.baseURL + "/" + strings.TrimPrefix(path, "/") + "?" + query.Encode()

	c.logger.Debug().Str("path", path).Msg("builtwith request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &CallError{Kind: KindNetworkError, Message: err.Error()}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Error().Str("path", path).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("builtwith request failed")
		return nil, &CallError{Kind: KindNetworkError, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &CallError{Kind: KindNetworkError, Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	c.logger.Debug().Str("path", path).Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("builtwith response")

	if !json.Valid(body) {
		return nil, &CallError{
			Kind:    KindBadUpstreamResponse,
			Message: fmt.Sprintf("upstream returned non-JSON body (status %d)", resp.StatusCode),
			Status:  resp.StatusCode,
		}
	}

	if resp.StatusCode >= 400 {
		return nil, &CallError{
			Kind:    KindUpstreamError,
			Message: fmt.Sprintf("upstream returned status %d", resp.StatusCode),
			Status:  resp.StatusCode,
			Body:    body,
		}
	}

	return body, nil
}
