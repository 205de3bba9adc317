// Package supadata is a thin client for the SupaData YouTube transcript API.
package supadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the production SupaData endpoint.
	DefaultBaseURL = "https://api.supadata.ai/v1"

	transcriptPath = "/youtube/transcript"
)

// Client wraps calls to the transcript provider. It holds no state beyond the
// connection details.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a transcript client. An empty baseURL selects the
// production endpoint.
func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Request names a video and how its transcript should be rendered. Either URL
// or VideoID must be set.
type Request struct {
	URL       string
	VideoID   string
	Lang      string
	Text      bool
	ChunkSize int
}

// Response is the provider's transcript payload. Content holds the plain-text
// transcript when the request asked for text mode.
type Response struct {
	Content        string   `json:"content"`
	Lang           string   `json:"lang,omitempty"`
	AvailableLangs []string `json:"availableLangs,omitempty"`
}

// errorPayload is the provider's error shape; either field may carry the
// human-readable message.
type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Fetch retrieves a transcript from the provider.
func (c *Client) Fetch(ctx context.Context, req Request) (*Response, error) {
	if req.URL == "" && req.VideoID == "" {
		return nil, fmt.Errorf("either url or videoId is required")
	}

	params := url.Values{}
	if req.URL != "" {
		params.Set("url", req.URL)
	}
	if req.VideoID != "" {
		params.Set("videoId", req.VideoID)
	}
	if req.Lang != "" {
		params.Set("lang", req.Lang)
	}
	if req.Text {
		params.Set("text", "true")
	}
	if req.ChunkSize > 0 {
		params.Set("chunkSize", strconv.Itoa(req.ChunkSize))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+transcriptPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("transcript request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload errorPayload
		msg := "failed to fetch transcript"
		if err := json.Unmarshal(body, &payload); err == nil {
			if payload.Error != "" {
				msg = payload.Error
			} else if payload.Message != "" {
				msg = payload.Message
			}
		}
		c.logger.Warn("transcript provider error",
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return nil, fmt.Errorf("transcript provider returned %d: %s", resp.StatusCode, msg)
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("malformed transcript payload: %w", err)
	}
	return &out, nil
}

// Transcript fetches the plain-text transcript for a video. It satisfies the
// engine's TranscriptProvider interface.
func (c *Client) Transcript(ctx context.Context, sourceURL string) (string, error) {
	resp, err := c.Fetch(ctx, Request{URL: sourceURL, Text: true})
	if err != nil {
		return "", err
	}
	if resp.Content == "" {
		return "", fmt.Errorf("transcript provider returned no content")
	}
	return resp.Content, nil
}
