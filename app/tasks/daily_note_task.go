package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/schnied/notion-mem-sync/app/export"
)

type DailyNoteTask struct {
	Task
	noteAPI export.NoteAPI
}

func NewDailyNoteTask(noteAPI export.NoteAPI) *DailyNoteTask {
	return &DailyNoteTask{
		Task:    NewTask(TaskTypeDailyNote),
		noteAPI: noteAPI,
	}
}

func (t *DailyNoteTask) Execute(ctx context.Context) error {
	noteID, err := t.noteAPI.CreateMem(ctx, DailyNoteContent(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to create daily note: %w", err)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"note_id", noteID,
		"duration", t.GetDuration())

	return nil
}

// DailyNoteContent is the fixed daily note template, dated with the
// German short date format the notes historically used.
func DailyNoteContent(now time.Time) string {
	return fmt.Sprintf(`# Daily note %s
#notiz #daily

## Aufgaben für heute

##Notizen
`, now.Format("2.1.2006"))
}
