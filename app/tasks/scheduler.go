package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/schnied/notion-mem-sync/app/cfg"
	"github.com/schnied/notion-mem-sync/app/export"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

const (
	workerCount = 2

	// A pass over a large database spends at least a second per
	// published row, so the task budget is generous.
	taskTimeout = 30 * time.Minute
)

// Scheduler triggers export passes and daily notes on their cron
// schedules and runs them through a small worker pool. Export passes
// are single-flight: a trigger that fires while a pass is still
// running is skipped, never run concurrently.
type Scheduler struct {
	exporter          *export.Exporter
	noteAPI           export.NoteAPI
	stats             *Stats
	exportSchedule    string
	dailyNoteSchedule string

	cron           *cron.Cron
	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	taskQueue      chan TaskInterface
	exportInFlight atomic.Bool
}

func NewScheduler(exporter *export.Exporter, noteAPI export.NoteAPI, stats *Stats) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		exporter:          exporter,
		noteAPI:           noteAPI,
		stats:             stats,
		exportSchedule:    cfg.ExportSchedule,
		dailyNoteSchedule: cfg.DailyNoteSchedule,
		cron:              cron.New(),
		ctx:               ctx,
		cancel:            cancel,
		taskQueue:         make(chan TaskInterface, 16),
	}
}

func (s *Scheduler) Start() error {
	for i := 0; i < workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	// Startup pass, before any schedule fires.
	s.TriggerExport()

	_, err := s.cron.AddFunc(s.exportSchedule, func() {
		if !s.TriggerExport() {
			slog.Warn("Export pass still running, skipping scheduled trigger")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid export schedule %q: %w", s.exportSchedule, err)
	}
	slog.Info("Export schedule registered", "schedule", s.exportSchedule)

	if s.dailyNoteSchedule != "" {
		_, err := s.cron.AddFunc(s.dailyNoteSchedule, func() {
			task := NewDailyNoteTask(s.noteAPI)
			if err := s.EnqueueTask(task); err != nil {
				slog.Warn("Failed to enqueue DailyNoteTask", "error", err)
			}
		})
		if err != nil {
			return fmt.Errorf("invalid daily note schedule %q: %w", s.dailyNoteSchedule, err)
		}
		slog.Info("Daily note schedule registered", "schedule", s.dailyNoteSchedule)
	}

	s.cron.Start()

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// TriggerExport enqueues an export task unless one is already queued
// or running. Reports whether the task was accepted.
func (s *Scheduler) TriggerExport() bool {
	if !s.exportInFlight.CompareAndSwap(false, true) {
		return false
	}

	task := NewExportTask(s.exporter, s.stats)
	if err := s.EnqueueTask(task); err != nil {
		s.exportInFlight.Store(false)
		slog.Warn("Failed to enqueue ExportTask", "error", err)
		return false
	}

	return true
}

func (s *Scheduler) ExportRunning() bool {
	return s.exportInFlight.Load()
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, taskTimeout)
	defer cancel()

	err := task.Execute(taskCtx)

	if task.GetType() == TaskTypeExport {
		s.exportInFlight.Store(false)
	}

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID,
			"type", string(task.GetType()), "id", task.GetID(), "error", err)
	}
}
