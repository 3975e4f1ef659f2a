package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const (
	// DefaultBaseURL is the production Notion API endpoint.
	DefaultBaseURL = "https://api.notion.com"

	apiVersion = "2022-06-28"
)

// Client is a minimal Notion API client covering the four calls the
// exporter needs: database query, block children listing, page update
// and block deletion.
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

type queryRequest struct {
	StartCursor string `json:"start_cursor,omitempty"`
}

type updatePageRequest struct {
	Properties map[string]PropertyValue `json:"properties"`
}

// QueryDatabase fetches one page of rows from a database. An empty
// startCursor fetches the first page.
func (c *Client) QueryDatabase(ctx context.Context, databaseID, startCursor string) (*QueryResponse, error) {
	endpoint := fmt.Sprintf("%s/v1/databases/%s/query", c.baseURL, databaseID)

	var resp QueryResponse
	err := c.do(ctx, http.MethodPost, endpoint, queryRequest{StartCursor: startCursor}, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to query database %s: %w", databaseID, err)
	}

	return &resp, nil
}

// ListBlockChildren fetches one page of child blocks for a block or
// page. An empty startCursor fetches the first page.
func (c *Client) ListBlockChildren(ctx context.Context, blockID, startCursor string) (*BlockChildrenResponse, error) {
	endpoint := fmt.Sprintf("%s/v1/blocks/%s/children", c.baseURL, blockID)
	if startCursor != "" {
		endpoint += "?start_cursor=" + url.QueryEscape(startCursor)
	}

	var resp BlockChildrenResponse
	err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to list children of block %s: %w", blockID, err)
	}

	return &resp, nil
}

// UpdatePage sets the given properties on a page, leaving all others
// untouched.
func (c *Client) UpdatePage(ctx context.Context, pageID string, properties map[string]PropertyValue) error {
	endpoint := fmt.Sprintf("%s/v1/pages/%s", c.baseURL, pageID)

	err := c.do(ctx, http.MethodPatch, endpoint, updatePageRequest{Properties: properties}, nil)
	if err != nil {
		return fmt.Errorf("failed to update page %s: %w", pageID, err)
	}

	return nil
}

// DeleteBlock archives a block.
func (c *Client) DeleteBlock(ctx context.Context, blockID string) error {
	endpoint := fmt.Sprintf("%s/v1/blocks/%s", c.baseURL, blockID)

	err := c.do(ctx, http.MethodDelete, endpoint, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to delete block %s: %w", blockID, err)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("HTTP error: %d %s: %s", resp.StatusCode, resp.Status, string(snippet))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}

	return nil
}
