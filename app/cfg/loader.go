package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Notion configuration
	NotionToken      string `long:"notion-token" env:"NOTION_TOKEN" description:"Notion integration token (required)" required:"true"`
	NotionDatabaseID string `long:"notion-database-id" env:"NOTION_DATABASE_ID" description:"Notion database to export from (required)" required:"true"`

	// Mem configuration
	MemToken string `long:"mem-token" env:"MEM_TOKEN" description:"Mem API access token (required)" required:"true"`

	// Notion property names used for sync bookkeeping
	SyncStatusProperty string `long:"sync-status-property" env:"NOTION_SYNC_STATUS" default:"memai-sync-status" description:"Select property holding the sync status"`
	SyncIDProperty     string `long:"sync-id-property" env:"NOTION_SYNC_ID" default:"memai-sync-id" description:"Rich text property holding the Mem note id"`
	LastSyncProperty   string `long:"last-sync-property" env:"NOTION_LAST_SYNC" default:"memai-last-sync" description:"Date property holding the last sync timestamp"`

	// Category tag mapping
	MappingArticles string `long:"mapping-articles" env:"MAPPING_ARTICLES" default:"article" description:"Tag for the Articles category"`
	MappingBooks    string `long:"mapping-books" env:"MAPPING_BOOKS" default:"book" description:"Tag for the Books category"`
	MappingTweets   string `long:"mapping-tweets" env:"MAPPING_TWEETS" default:"tweet" description:"Tag for the Tweets category"`
	MappingPodcasts string `long:"mapping-podcasts" env:"MAPPING_PODCASTS" default:"podcast" description:"Tag for the Podcasts category"`
	DefaultTags     string `long:"default-tags" env:"DEFAULT_TAGS" default:"#readwise-import" description:"Tag token prepended to every new note header"`

	// Rendering
	ImageMode string `long:"image-mode" env:"IMAGE_MODE" default:"url" choice:"url" choice:"placeholder" description:"How image blocks are rendered"`

	// Schedules
	ExportSchedule    string `long:"cron-schedule" env:"CRON_SCHEDULE" default:"*/15 * * * *" description:"Cron expression for the recurring export pass"`
	DailyNoteSchedule string `long:"daily-note-cron" env:"DAILY_NOTE_CRON" description:"Cron expression for the daily note (disabled when empty)"`

	// Application configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Notion Mem Sync/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Europe/Berlin)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		NotionToken:        raw.NotionToken,
		NotionDatabaseID:   raw.NotionDatabaseID,
		MemToken:           raw.MemToken,
		SyncStatusProperty: raw.SyncStatusProperty,
		SyncIDProperty:     raw.SyncIDProperty,
		LastSyncProperty:   raw.LastSyncProperty,
		MappingArticles:    raw.MappingArticles,
		MappingBooks:       raw.MappingBooks,
		MappingTweets:      raw.MappingTweets,
		MappingPodcasts:    raw.MappingPodcasts,
		DefaultTags:        raw.DefaultTags,
		ImageMode:          raw.ImageMode,
		ExportSchedule:     raw.ExportSchedule,
		DailyNoteSchedule:  raw.DailyNoteSchedule,
		Port:               raw.Port,
		APIAccessKey:       raw.APIAccessKey,
		UserAgent:          raw.UserAgent,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
