package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schnied/notion-mem-sync/app/api"
	"github.com/schnied/notion-mem-sync/app/cfg"
	"github.com/schnied/notion-mem-sync/app/export"
	"github.com/schnied/notion-mem-sync/app/mem"
	"github.com/schnied/notion-mem-sync/app/notion"
	"github.com/schnied/notion-mem-sync/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Notion Mem Sync", "version", appCfg.Version)

	httpClient := &http.Client{Timeout: 30 * time.Second}

	notionClient := notion.NewClient(httpClient, notion.DefaultBaseURL, appCfg.NotionToken, appCfg.UserAgent)
	memClient := mem.NewClient(httpClient, mem.DefaultBaseURL, appCfg.MemToken, appCfg.UserAgent)

	categories := export.NewCategoryMapper(appCfg.MappingArticles, appCfg.MappingBooks,
		appCfg.MappingTweets, appCfg.MappingPodcasts)
	renderer := export.NewRenderer(appCfg.DefaultTags, categories, export.ImageMode(appCfg.ImageMode))

	exporter := export.NewExporter(notionClient, memClient, renderer,
		appCfg.NotionDatabaseID, export.PropertyNames{
			SyncID:     appCfg.SyncIDProperty,
			SyncStatus: appCfg.SyncStatusProperty,
			LastSync:   appCfg.LastSyncProperty,
		})

	stats := tasks.NewStats()

	scheduler := tasks.NewScheduler(exporter, memClient, stats)
	if err := scheduler.Start(); err != nil {
		slog.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	apiHandler := api.NewHandler(scheduler, stats, appCfg.Version)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("Notion Mem Sync started", "export_schedule", appCfg.ExportSchedule,
		"daily_note_schedule", appCfg.DailyNoteSchedule)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
