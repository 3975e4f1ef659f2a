package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   map[string]interface{}
}

func newTestServer(t *testing.T, status int, response string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorded := recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
		}
		if r.Body != nil {
			var body map[string]interface{}
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
				recorded.Body = body
			}
		}
		requests = append(requests, recorded)

		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	return server, &requests
}

func newTestClient(serverURL string) *Client {
	return NewClient(http.DefaultClient, serverURL, "secret-token", "Test Agent/1.0")
}

func TestClient_QueryDatabase(t *testing.T) {
	server, requests := newTestServer(t, http.StatusOK, `{
		"results": [{"id": "page-1", "url": "https://notion.so/page-1", "properties": {}}],
		"has_more": true,
		"next_cursor": "cursor-2"
	}`)
	client := newTestClient(server.URL)

	resp, err := client.QueryDatabase(context.Background(), "db-1", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	req := (*requests)[0]
	if req.Method != http.MethodPost {
		t.Errorf("Expected POST, got %s", req.Method)
	}
	if req.Path != "/v1/databases/db-1/query" {
		t.Errorf("Unexpected path: %s", req.Path)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer secret-token" {
		t.Errorf("Unexpected Authorization header: %s", got)
	}
	if got := req.Header.Get("Notion-Version"); got == "" {
		t.Error("Expected Notion-Version header to be set")
	}
	if _, present := req.Body["start_cursor"]; present {
		t.Error("Empty start cursor must be omitted from the request body")
	}

	if len(resp.Results) != 1 || resp.Results[0].ID != "page-1" {
		t.Errorf("Unexpected results: %+v", resp.Results)
	}
	if !resp.HasMore || resp.NextCursor != "cursor-2" {
		t.Errorf("Unexpected pagination fields: has_more=%v next_cursor=%s", resp.HasMore, resp.NextCursor)
	}
}

func TestClient_QueryDatabase_PassesCursor(t *testing.T) {
	server, requests := newTestServer(t, http.StatusOK, `{"results": [], "has_more": false, "next_cursor": null}`)
	client := newTestClient(server.URL)

	resp, err := client.QueryDatabase(context.Background(), "db-1", "cursor-2")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	req := (*requests)[0]
	if got := req.Body["start_cursor"]; got != "cursor-2" {
		t.Errorf("Expected start_cursor 'cursor-2' in request body, got %v", got)
	}
	if resp.HasMore || resp.NextCursor != "" {
		t.Errorf("Expected final page with null cursor, got has_more=%v next_cursor=%q", resp.HasMore, resp.NextCursor)
	}
}

func TestClient_ListBlockChildren(t *testing.T) {
	server, requests := newTestServer(t, http.StatusOK, `{
		"results": [
			{"id": "b1", "type": "paragraph", "paragraph": {"rich_text": [
				{"plain_text": "hello", "text": {"content": "hello", "link": {"url": "https://x"}}}
			]}},
			{"id": "b2", "type": "image", "image": {"type": "external", "external": {"url": "https://img"}}}
		],
		"has_more": false,
		"next_cursor": null
	}`)
	client := newTestClient(server.URL)

	resp, err := client.ListBlockChildren(context.Background(), "page-1", "cursor-9")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	req := (*requests)[0]
	if req.Method != http.MethodGet {
		t.Errorf("Expected GET, got %s", req.Method)
	}
	if req.Path != "/v1/blocks/page-1/children" {
		t.Errorf("Unexpected path: %s", req.Path)
	}
	if req.Query != "start_cursor=cursor-9" {
		t.Errorf("Expected start cursor in query string, got %q", req.Query)
	}

	if len(resp.Results) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(resp.Results))
	}
	paragraph := resp.Results[0]
	if paragraph.Type != "paragraph" || paragraph.Paragraph == nil {
		t.Fatalf("Unexpected first block: %+v", paragraph)
	}
	run := paragraph.Paragraph.RichText[0]
	if run.Text == nil || run.Text.Content != "hello" || run.Text.Link == nil || run.Text.Link.URL != "https://x" {
		t.Errorf("Unexpected rich text run: %+v", run)
	}
	image := resp.Results[1]
	if image.Type != "image" || image.Image == nil || image.Image.External.URL != "https://img" {
		t.Errorf("Unexpected image block: %+v", image)
	}
}

func TestClient_UpdatePage(t *testing.T) {
	server, requests := newTestServer(t, http.StatusOK, `{"id": "page-1"}`)
	client := newTestClient(server.URL)

	properties := map[string]PropertyValue{
		"memai-sync-id":     NewRichTextProperty("mem-1"),
		"memai-sync-status": NewSelectProperty("SYNCED"),
		"memai-last-sync":   NewDateProperty("2026-08-29T12:05:03Z"),
	}

	if err := client.UpdatePage(context.Background(), "page-1", properties); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	req := (*requests)[0]
	if req.Method != http.MethodPatch {
		t.Errorf("Expected PATCH, got %s", req.Method)
	}
	if req.Path != "/v1/pages/page-1" {
		t.Errorf("Unexpected path: %s", req.Path)
	}

	sent, ok := req.Body["properties"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected properties object in body, got %v", req.Body)
	}

	syncID, _ := sent["memai-sync-id"].(map[string]interface{})
	runs, _ := syncID["rich_text"].([]interface{})
	if len(runs) != 1 {
		t.Fatalf("Expected one rich text run, got %v", syncID)
	}
	text, _ := runs[0].(map[string]interface{})["text"].(map[string]interface{})
	if text["content"] != "mem-1" {
		t.Errorf("Expected sync id content 'mem-1', got %v", text)
	}

	status, _ := sent["memai-sync-status"].(map[string]interface{})
	selectValue, _ := status["select"].(map[string]interface{})
	if selectValue["name"] != "SYNCED" {
		t.Errorf("Expected select name 'SYNCED', got %v", status)
	}

	lastSync, _ := sent["memai-last-sync"].(map[string]interface{})
	dateValue, _ := lastSync["date"].(map[string]interface{})
	if dateValue["start"] != "2026-08-29T12:05:03Z" {
		t.Errorf("Expected date start in payload, got %v", lastSync)
	}
}

func TestClient_DeleteBlock(t *testing.T) {
	server, requests := newTestServer(t, http.StatusOK, `{"id": "b1"}`)
	client := newTestClient(server.URL)

	if err := client.DeleteBlock(context.Background(), "b1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	req := (*requests)[0]
	if req.Method != http.MethodDelete {
		t.Errorf("Expected DELETE, got %s", req.Method)
	}
	if req.Path != "/v1/blocks/b1" {
		t.Errorf("Unexpected path: %s", req.Path)
	}
}

func TestClient_HTTPErrorSurfaces(t *testing.T) {
	server, _ := newTestServer(t, http.StatusTooManyRequests, `{"message": "rate limited"}`)
	client := newTestClient(server.URL)

	_, err := client.QueryDatabase(context.Background(), "db-1", "")
	if err == nil {
		t.Fatal("Expected an error for a non-2xx response")
	}
}
