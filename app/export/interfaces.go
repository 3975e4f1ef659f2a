package export

import (
	"context"

	"github.com/schnied/notion-mem-sync/app/mem"
	"github.com/schnied/notion-mem-sync/app/notion"
)

// NotionAPI covers the Notion calls the exporter makes. Satisfied by
// notion.Client; mocked in tests.
type NotionAPI interface {
	QueryDatabase(ctx context.Context, databaseID, startCursor string) (*notion.QueryResponse, error)
	ListBlockChildren(ctx context.Context, blockID, startCursor string) (*notion.BlockChildrenResponse, error)
	UpdatePage(ctx context.Context, pageID string, properties map[string]notion.PropertyValue) error
	DeleteBlock(ctx context.Context, blockID string) error
}

var _ NotionAPI = (*notion.Client)(nil)

// NoteAPI covers the Mem calls the exporter and the daily note task
// make. Satisfied by mem.Client; mocked in tests.
type NoteAPI interface {
	CreateMem(ctx context.Context, content string) (string, error)
	AppendMem(ctx context.Context, memID, content string) (string, error)
}

var _ NoteAPI = (*mem.Client)(nil)
