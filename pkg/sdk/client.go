package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client wraps calls to the lectura backend.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewClient creates an API client. accessToken is the caller's Supabase access
// token, sent as a bearer credential on every request.
func NewClient(baseURL, accessToken string) *Client {
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 120 * time.Second},
	}
}

// doJSON is a helper to perform JSON requests to the backend
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("backend '%s %s' failed: %d: %s", method, path, resp.StatusCode, string(b))
	}

	if out == nil {
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	return dec.Decode(out)
}

// Ask sends a question about a video and returns the answer with the updated
// chat log.
func (c *Client) Ask(ctx context.Context, req AskRequest) (*AskResponse, error) {
	var resp ApiResponse[AskResponse]
	if err := c.doJSON(ctx, http.MethodPost, "/api/conversations/ask", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateConversation registers a new learning session.
func (c *Client) CreateConversation(ctx context.Context, req CreateConversationRequest) (*Conversation, error) {
	var resp ApiResponse[Conversation]
	if err := c.doJSON(ctx, http.MethodPost, "/api/conversations", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// GetConversation fetches one conversation with its chat log.
func (c *Client) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	var resp ApiResponse[Conversation]
	if err := c.doJSON(ctx, http.MethodGet, "/api/conversations/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// ListConversations returns the caller's conversations, newest first.
func (c *Client) ListConversations(ctx context.Context) ([]Conversation, error) {
	var resp ApiResponse[[]Conversation]
	if err := c.doJSON(ctx, http.MethodGet, "/api/conversations", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// DeleteConversation removes a conversation and its chat log.
func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/conversations/"+url.PathEscape(id), nil, nil)
}

// Transcribe fetches a video transcript through the backend's provider proxy.
func (c *Client) Transcribe(ctx context.Context, videoURL string) (*TranscribeResponse, error) {
	params := url.Values{}
	params.Set("url", videoURL)
	params.Set("text", "true")

	var resp ApiResponse[TranscribeResponse]
	if err := c.doJSON(ctx, http.MethodGet, "/api/transcribe?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
