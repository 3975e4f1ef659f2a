package tasks

import (
	"sync"
	"time"

	"github.com/schnied/notion-mem-sync/app/export"
)

// Stats keeps the outcome of the most recent export pass for the
// operational API.
type Stats struct {
	mu           sync.RWMutex
	lastExport   *export.Result
	lastExportAt *time.Time
	passCount    int
}

func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) RecordExport(result *export.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.lastExport = result
	s.lastExportAt = &now
	s.passCount++
}

func (s *Stats) LastExport() (*export.Result, *time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastExport, s.lastExportAt
}

func (s *Stats) PassCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.passCount
}
