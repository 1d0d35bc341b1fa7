// Package workflow provides the HTTP client for the workflow runtime's
// signal endpoint.
package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/crawlsync/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.WorkflowRuntime = (*Client)(nil)

// Client signals the workflow runtime over HTTP. Signals are
// fire-and-confirm: a 2xx response means the runtime accepted the signal.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a workflow signal client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithHTTP creates a workflow signal client with a custom HTTP
// client.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: baseURL,
		http:    hc,
	}
}

// signalRequest is the wire form of a lifecycle signal.
type signalRequest struct {
	ConnectorID string `json:"connectorId"`
}

// Launch starts (or restarts) the crawl workflow of a connector.
func (c *Client) Launch(ctx context.Context, connectorID string) error {
	return c.signal(ctx, "/workflows/launch", connectorID)
}

// Stop terminates the crawl workflow of a connector. The runtime treats
// stopping an already-stopped workflow as success.
func (c *Client) Stop(ctx context.Context, connectorID string) error {
	return c.signal(ctx, "/workflows/stop", connectorID)
}

// signal posts one lifecycle signal and confirms acceptance.
func (c *Client) signal(ctx context.Context, path, connectorID string) error {
	body, err := json.Marshal(signalRequest{ConnectorID: connectorID})
	if err != nil {
		return fmt.Errorf("encoding signal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building signal request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending signal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("workflow runtime returned %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}
