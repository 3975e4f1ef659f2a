package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/schnied/notion-mem-sync/app/notion"
)

const (
	// Each published row consumes at least this much wall clock time,
	// a defensive throttle against upstream rate limits.
	defaultThrottleFloor = time.Second

	// Pause between block deletions to avoid hammering the source
	// service.
	defaultDeletePause = 10 * time.Millisecond

	statusSynced = "SYNCED"
)

// Exporter runs one full export pass: query the database page by page
// and, for each row, extract blocks, render the document, publish it,
// write back the sync metadata, and delete the exported blocks.
type Exporter struct {
	notionAPI  NotionAPI
	noteAPI    NoteAPI
	renderer   *Renderer
	databaseID string
	props      PropertyNames

	throttleFloor time.Duration
	deletePause   time.Duration
}

func NewExporter(notionAPI NotionAPI, noteAPI NoteAPI, renderer *Renderer,
	databaseID string, props PropertyNames) *Exporter {
	return &Exporter{
		notionAPI:     notionAPI,
		noteAPI:       noteAPI,
		renderer:      renderer,
		databaseID:    databaseID,
		props:         props,
		throttleFloor: defaultThrottleFloor,
		deletePause:   defaultDeletePause,
	}
}

// Run executes one export pass. Row failures are collected in the
// result and do not stop the pass; a database query failure ends the
// pass and returns the partial result alongside the error.
func (e *Exporter) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{StartedAt: start}

	cursor := ""
	for {
		resp, err := e.notionAPI.QueryDatabase(ctx, e.databaseID, cursor)
		if err != nil {
			result.Duration = time.Since(start)
			return result, fmt.Errorf("failed to query database: %w", err)
		}

		slog.Debug("Processing database page", "rows", len(resp.Results))

		for _, page := range resp.Results {
			rowStart := time.Now()

			rowResult := e.exportRow(ctx, page)
			result.Rows = append(result.Rows, rowResult)
			result.Processed++

			switch rowResult.Outcome {
			case OutcomeSynced:
				result.Synced++
				if err := e.throttle(ctx, rowStart); err != nil {
					result.Duration = time.Since(start)
					return result, err
				}
			case OutcomeSkipped:
				result.Skipped++
			case OutcomeFailed:
				result.Failed++
				slog.Error("Row export failed", "page_id", rowResult.PageID,
					"title", rowResult.Title, "error", rowResult.Err)
			}
		}

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	result.Duration = time.Since(start)

	slog.Info("Export pass completed",
		"total", result.Processed,
		"synced", result.Synced,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"duration", result.Duration)

	return result, nil
}

func (e *Exporter) exportRow(ctx context.Context, page notion.Page) RowResult {
	result := RowResult{PageID: page.ID}

	fail := func(err error) RowResult {
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}

	row, err := RowFromPage(page, e.props)
	if err != nil {
		return fail(err)
	}
	result.Title = row.Title

	blocks, err := e.loadBlocks(ctx, row.ID)
	if err != nil {
		return fail(fmt.Errorf("failed to load content blocks: %w", err))
	}

	syncedAt := time.Now()

	document, publish := e.renderer.Run(row, blocks, syncedAt)
	if !publish {
		slog.Debug("No content blocks, nothing to publish", "page_id", row.ID, "title", row.Title)
		result.Outcome = OutcomeSkipped
		return result
	}

	noteID, err := e.publish(ctx, row.SyncID, document)
	if err != nil {
		// The row is left untouched so the next pass re-renders and
		// re-publishes. Appends may be duplicated on the note side.
		return fail(fmt.Errorf("failed to publish note: %w", err))
	}
	result.NoteID = noteID

	// Sync metadata must be acknowledged before any block is deleted:
	// undeleted blocks with a sync record only cause a re-append,
	// deleted blocks without one would lose content.
	if err := e.writeBack(ctx, row.ID, noteID, syncedAt); err != nil {
		return fail(fmt.Errorf("failed to write back sync metadata: %w", err))
	}

	if err := e.deleteBlocks(ctx, blocks); err != nil {
		return fail(fmt.Errorf("failed to delete exported blocks: %w", err))
	}

	result.Outcome = OutcomeSynced
	return result
}

// loadBlocks fetches the complete ordered block sequence for a row,
// following the continuation cursor until the service reports no more
// pages.
func (e *Exporter) loadBlocks(ctx context.Context, pageID string) ([]notion.Block, error) {
	var blocks []notion.Block

	cursor := ""
	for {
		resp, err := e.notionAPI.ListBlockChildren(ctx, pageID, cursor)
		if err != nil {
			return nil, err
		}

		blocks = append(blocks, resp.Results...)

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return blocks, nil
}

func (e *Exporter) publish(ctx context.Context, syncID, document string) (string, error) {
	if syncID == "" {
		slog.Debug("Creating new note")
		return e.noteAPI.CreateMem(ctx, document)
	}

	slog.Debug("Appending to existing note", "note_id", syncID)
	return e.noteAPI.AppendMem(ctx, syncID, document)
}

func (e *Exporter) writeBack(ctx context.Context, pageID, noteID string, syncedAt time.Time) error {
	properties := map[string]notion.PropertyValue{
		e.props.SyncID:     notion.NewRichTextProperty(noteID),
		e.props.SyncStatus: notion.NewSelectProperty(statusSynced),
		e.props.LastSync:   notion.NewDateProperty(syncedAt.UTC().Format(time.RFC3339)),
	}

	return e.notionAPI.UpdatePage(ctx, pageID, properties)
}

func (e *Exporter) deleteBlocks(ctx context.Context, blocks []notion.Block) error {
	for _, block := range blocks {
		if err := e.notionAPI.DeleteBlock(ctx, block.ID); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(e.deletePause):
		}
	}

	return nil
}

func (e *Exporter) throttle(ctx context.Context, rowStart time.Time) error {
	elapsed := time.Since(rowStart)
	if elapsed >= e.throttleFloor {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(e.throttleFloor - elapsed):
		return nil
	}
}
