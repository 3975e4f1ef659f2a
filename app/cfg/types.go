package cfg

type Cfg struct {
	// Notion configuration
	NotionToken      string
	NotionDatabaseID string

	// Mem configuration
	MemToken string

	// Notion property names used for sync bookkeeping
	SyncStatusProperty string
	SyncIDProperty     string
	LastSyncProperty   string

	// Category tag mapping
	MappingArticles string
	MappingBooks    string
	MappingTweets   string
	MappingPodcasts string
	DefaultTags     string

	// Rendering
	ImageMode string

	// Schedules (cron expressions)
	ExportSchedule    string
	DailyNoteSchedule string

	// Application configuration
	Port         string
	APIAccessKey string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
