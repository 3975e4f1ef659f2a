package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/schnied/notion-mem-sync/app/export"
	"github.com/schnied/notion-mem-sync/app/tasks"
)

type stubScheduler struct {
	running      bool
	triggerOK    bool
	triggerCalls int
}

func (s *stubScheduler) Start() error { return nil }

func (s *stubScheduler) Stop() {}

func (s *stubScheduler) EnqueueTask(task tasks.TaskInterface) error { return nil }

func (s *stubScheduler) ExportRunning() bool { return s.running }

func (s *stubScheduler) TriggerExport() bool {
	s.triggerCalls++
	return s.triggerOK
}

func newTestServer(scheduler *stubScheduler, stats *tasks.Stats, apiAccessKey string) http.Handler {
	handler := NewHandler(scheduler, stats, "test-version")
	return NewServer(handler, apiAccessKey)
}

func TestGetHealth(t *testing.T) {
	server := newTestServer(&stubScheduler{}, tasks.NewStats(), "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status 'ok', got %v", body["status"])
	}
	if body["version"] != "test-version" {
		t.Errorf("Expected version 'test-version', got %v", body["version"])
	}
}

func TestGetStats(t *testing.T) {
	stats := tasks.NewStats()
	stats.RecordExport(&export.Result{Processed: 5, Synced: 3, Skipped: 1, Failed: 1})

	server := newTestServer(&stubScheduler{}, stats, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["passes"] != float64(1) {
		t.Errorf("Expected 1 pass, got %v", body["passes"])
	}

	lastPass, ok := body["last_pass"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected last_pass object, got %v", body)
	}
	if lastPass["total"] != float64(5) || lastPass["synced"] != float64(3) {
		t.Errorf("Unexpected last pass summary: %v", lastPass)
	}
}

func TestAPITriggerExport(t *testing.T) {
	scheduler := &stubScheduler{triggerOK: true}
	server := newTestServer(scheduler, tasks.NewStats(), "secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/export", nil)
	req.Header.Set("X-API-Key", "secret")
	server.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected 202, got %d", w.Code)
	}
	if scheduler.triggerCalls != 1 {
		t.Errorf("Expected one trigger call, got %d", scheduler.triggerCalls)
	}
}

func TestAPITriggerExport_Conflict(t *testing.T) {
	scheduler := &stubScheduler{triggerOK: false}
	server := newTestServer(scheduler, tasks.NewStats(), "secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/export", nil)
	req.Header.Set("X-API-Key", "secret")
	server.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409 while a pass is running, got %d", w.Code)
	}
}

func TestAPITriggerExport_RequiresKey(t *testing.T) {
	scheduler := &stubScheduler{triggerOK: true}
	server := newTestServer(scheduler, tasks.NewStats(), "secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/export", nil)
	server.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without a key, got %d", w.Code)
	}
	if scheduler.triggerCalls != 0 {
		t.Errorf("Expected no trigger without authentication, got %d", scheduler.triggerCalls)
	}
}

func TestAPITriggerExport_WrongKey(t *testing.T) {
	scheduler := &stubScheduler{triggerOK: true}
	server := newTestServer(scheduler, tasks.NewStats(), "secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/export", nil)
	req.Header.Set("X-API-Key", "wrong")
	server.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 for a wrong key, got %d", w.Code)
	}
}

func TestAPIDisabledWithoutKey(t *testing.T) {
	scheduler := &stubScheduler{triggerOK: true}
	server := newTestServer(scheduler, tasks.NewStats(), "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/export", nil)
	server.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 when the API group is disabled, got %d", w.Code)
	}
}
