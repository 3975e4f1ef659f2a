package export

import (
	"time"
)

// Row is one source database record with its scalar fields extracted
// from the Notion property map.
type Row struct {
	ID       string
	URL      string
	Title    string
	Category string
	Author   string
	SyncID   string // empty means the row was never exported
}

// PropertyNames holds the configurable names of the three Notion
// properties the exporter writes back to.
type PropertyNames struct {
	SyncID     string
	SyncStatus string
	LastSync   string
}

type Outcome string

const (
	OutcomeSynced  Outcome = "synced"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// RowResult is the outcome of one row's export. A failed row carries
// its cause; the pass continues with the next row.
type RowResult struct {
	PageID  string
	Title   string
	Outcome Outcome
	NoteID  string
	Err     error
}

// Result summarizes one export pass.
type Result struct {
	Processed int
	Synced    int
	Skipped   int
	Failed    int
	Rows      []RowResult
	StartedAt time.Time
	Duration  time.Duration
}
