// Package bridge provides the client for the external device-bridge
// process: a local service that relays messages over the short-range
// wireless link to the physical shower timer.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client posts usernames to the bridge process over local HTTP. The call is
// one-way and fire-and-forget from the caller's perspective: no retries,
// bounded by the configured timeout.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a bridge client for the given endpoint URL.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type notifyRequest struct {
	Message string `json:"message"`
}

// NotifyUsername forwards the given name to the bridge process. A non-2xx
// response is reported as an error.
func (c *Client) NotifyUsername(ctx context.Context, name string) error {
	body, err := json.Marshal(notifyRequest{Message: name})
	if err != nil {
		return fmt.Errorf("failed to encode bridge payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build bridge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach device bridge: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("device bridge returned status %d", resp.StatusCode)
	}

	return nil
}
