package mem

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DefaultBaseURL is the production Mem API endpoint.
const DefaultBaseURL = "https://api.mem.ai"

// Client talks to the Mem v0 API. Notes are created once and appended
// to afterwards; the API offers no replace operation.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
}

func NewClient(httpClient *http.Client, baseURL, token, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      token,
		userAgent:  userAgent,
	}
}

type memRequest struct {
	Content string `json:"content"`
}

type memResponse struct {
	ID string `json:"id"`
}

// CreateMem creates a new note with the given content and returns its id.
func (c *Client) CreateMem(ctx context.Context, content string) (string, error) {
	endpoint := c.baseURL + "/v0/mems"

	id, err := c.post(ctx, endpoint, content)
	if err != nil {
		return "", fmt.Errorf("failed to create mem: %w", err)
	}

	return id, nil
}

// AppendMem appends content to an existing note and returns the note id.
func (c *Client) AppendMem(ctx context.Context, memID, content string) (string, error) {
	endpoint := fmt.Sprintf("%s/v0/mems/%s/append", c.baseURL, memID)

	id, err := c.post(ctx, endpoint, content)
	if err != nil {
		return "", fmt.Errorf("failed to append to mem %s: %w", memID, err)
	}

	return id, nil
}

func (c *Client) post(ctx context.Context, endpoint, content string) (string, error) {
	data, err := json.Marshal(memRequest{Content: content})
	if err != nil {
		return "", fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "ApiAccessToken "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("HTTP error: %d %s: %s", resp.StatusCode, resp.Status, string(snippet))
	}

	var out memResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	return out.ID, nil
}
