// Package asset fetches decorative assets that the library can live without.
package asset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultAnimationURL is the sidebar animation shown by the UI
const DefaultAnimationURL = "https://assets.lottielibrary.com/l/books.json"

const maxAnimationBytes = 4 << 20

// Animation is a Lottie document, kept as raw JSON for the UI to render
type Animation struct {
	URL  string
	Data json.RawMessage
}

// Client fetches decorative assets
type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client whose requests give up after timeout
func NewClient(timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchAnimation downloads a Lottie animation. Every failure is returned;
// callers decide to render without it.
func (c *Client) FetchAnimation(ctx context.Context, url string) (*Animation, error) {
	if url == "" {
		return nil, errors.New("animation URL is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch animation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAnimationBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read animation: %w", err)
	}
	if len(body) > maxAnimationBytes {
		return nil, fmt.Errorf("animation larger than %d bytes", maxAnimationBytes)
	}

	// Lottie documents are JSON objects
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode animation: %w", err)
	}

	c.logger.Debug("Fetched animation",
		zap.String("url", url),
		zap.Int("bytes", len(body)),
	)
	return &Animation{URL: url, Data: json.RawMessage(body)}, nil
}
