package api

import (
	"github.com/schnied/notion-mem-sync/app/tasks"
)

type Handler struct {
	scheduler tasks.TaskSchedulerInterface
	stats     *tasks.Stats
	version   string
}

func NewHandler(scheduler tasks.TaskSchedulerInterface, stats *tasks.Stats, version string) *Handler {
	return &Handler{
		scheduler: scheduler,
		stats:     stats,
		version:   version,
	}
}
