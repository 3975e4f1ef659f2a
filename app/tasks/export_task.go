package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schnied/notion-mem-sync/app/export"
)

type ExportTask struct {
	Task
	exporter *export.Exporter
	stats    *Stats
}

func NewExportTask(exporter *export.Exporter, stats *Stats) *ExportTask {
	return &ExportTask{
		Task:     NewTask(TaskTypeExport),
		exporter: exporter,
		stats:    stats,
	}
}

func (t *ExportTask) Execute(ctx context.Context) error {
	result, err := t.exporter.Run(ctx)
	if result != nil {
		t.stats.RecordExport(result)
	}
	if err != nil {
		return fmt.Errorf("export pass failed: %w", err)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"total", result.Processed,
		"synced", result.Synced,
		"skipped", result.Skipped,
		"failed", result.Failed)

	return nil
}
