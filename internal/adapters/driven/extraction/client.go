// Package extraction provides the HTTP client for the external
// text-extraction service.
package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/crawlsync/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.TextExtractor = (*Client)(nil)

// supportedMediaTypes are the rich document formats the extraction service
// converts to page text.
var supportedMediaTypes = map[string]struct{}{
	"application/pdf": {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   {},
	"application/msword": {},
}

// defaultTimeout bounds one extraction round trip. Large decks can take a
// while to convert, so this is generous.
const defaultTimeout = 2 * time.Minute

// Client talks to the extraction service over HTTP. Requests are rate
// limited so a large crawl pass cannot overwhelm the shared service.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithRateLimit overrides the request rate limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewClient creates an extraction client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(4), 8),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SupportsMediaType reports whether the extraction service handles the
// declared media type.
func (c *Client) SupportsMediaType(mediaType string) bool {
	_, ok := supportedMediaTypes[mediaType]
	return ok
}

// pageResponse is the wire form of one extracted page.
type pageResponse struct {
	PageNumber int    `json:"pageNumber"`
	Content    string `json:"content"`
}

// ExtractPages sends the raw document to the extraction service and
// returns its ordered pages of text.
func (c *Client) ExtractPages(ctx context.Context, data []byte, mediaType string) ([]driven.ExtractedPage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("building extraction request: %w", err)
	}
	req.Header.Set("Content-Type", mediaType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling extraction service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("extraction service returned %d: %s", resp.StatusCode, string(body))
	}

	var pages []pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&pages); err != nil {
		return nil, fmt.Errorf("decoding extraction response: %w", err)
	}

	out := make([]driven.ExtractedPage, 0, len(pages))
	for _, page := range pages {
		out = append(out, driven.ExtractedPage{
			PageNumber: page.PageNumber,
			Content:    page.Content,
		})
	}
	return out, nil
}
