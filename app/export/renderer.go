package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/schnied/notion-mem-sync/app/notion"
)

type ImageMode string

const (
	// ImageModeURL renders an image block as its external URL.
	ImageModeURL ImageMode = "url"
	// ImageModePlaceholder renders an image block as a fixed label
	// linking to the external URL.
	ImageModePlaceholder ImageMode = "placeholder"
)

const imagePlaceholderText = "External Image"

// Bare hashtags would be interpreted as tags by the note service, so
// they are wrapped in quotes.
var hashtagPattern = regexp.MustCompile(`#(\w+)`)

// syncTimeLayout matches the German locale output of the date the
// notes historically carried, e.g. "29.8.2026, 14:05:03".
const syncTimeLayout = "2.1.2006, 15:04:05"

// Renderer turns a row and its content blocks into one flat markdown
// document for the note service.
type Renderer struct {
	defaultTags string
	categories  *CategoryMapper
	imageMode   ImageMode
}

func NewRenderer(defaultTags string, categories *CategoryMapper, imageMode ImageMode) *Renderer {
	return &Renderer{
		defaultTags: defaultTags,
		categories:  categories,
		imageMode:   imageMode,
	}
}

// Run renders the document. The second return value reports whether
// there is anything to publish: a row without content blocks renders
// to nothing and must not be published, written back, or deleted from.
func (r *Renderer) Run(row Row, blocks []notion.Block, syncedAt time.Time) (string, bool) {
	if len(blocks) == 0 {
		return "", false
	}

	var parts []string

	if row.SyncID == "" {
		parts = append(parts, r.header(row)...)
	} else {
		// Appending to an existing note, separate from prior content.
		parts = append(parts, "\n---\n")
	}

	for _, block := range blocks {
		parts = append(parts, "\n")

		switch block.Type {
		case "paragraph":
			if block.Paragraph == nil {
				continue
			}
			for _, run := range block.Paragraph.RichText {
				if run.Text == nil {
					continue
				}
				link := ""
				if run.Text.Link != nil {
					link = run.Text.Link.URL
				}
				parts = append(parts, renderTextItem(run.Text.Content, link))
			}
		case "image":
			url := ""
			if block.Image != nil && block.Image.External != nil {
				url = block.Image.External.URL
			}
			if r.imageMode == ImageModePlaceholder {
				parts = append(parts, renderTextItem(imagePlaceholderText, url))
			} else {
				parts = append(parts, renderTextItem(url, ""))
			}
		}
	}

	parts = append(parts, fmt.Sprintf("\n**Synced on** %s\n\n", syncedAt.Format(syncTimeLayout)))

	return strings.Join(parts, ""), true
}

func (r *Renderer) header(row Row) []string {
	parts := []string{
		fmt.Sprintf("# %s\n", row.Title),
		r.defaultTags + " ",
	}

	if tag, ok := r.categories.Map(row.Category); ok {
		parts = append(parts, "#"+tag+"\n")
	} else {
		parts = append(parts, "\n")
	}

	parts = append(parts,
		fmt.Sprintf("**Author:** @%s\n", row.Author),
		fmt.Sprintf("**URL:** %s\n\n", row.URL),
		"---\n",
	)

	return parts
}

func renderTextItem(content, link string) string {
	text := hashtagPattern.ReplaceAllString(content, `"#$1"`)
	text = strings.Replace(text, "•   ", "- ", 1)
	if link != "" {
		return fmt.Sprintf("[%s](%s)", text, link)
	}
	return text
}
