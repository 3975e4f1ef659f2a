package export

import (
	"fmt"

	"github.com/schnied/notion-mem-sync/app/notion"
)

// Fixed property names of the source database. Only the three sync
// bookkeeping properties are configurable.
const (
	titleProperty    = "Full Title"
	categoryProperty = "Category"
	authorProperty   = "Author"
	urlProperty      = "URL"
)

// RowFromPage extracts the scalar row fields from a Notion page. A
// missing or wrong-typed property fails the row, not the pass.
func RowFromPage(page notion.Page, props PropertyNames) (Row, error) {
	row := Row{ID: page.ID}

	title, err := richTextProperty(page, titleProperty, " ")
	if err != nil {
		return Row{}, err
	}
	row.Title = title

	author, err := richTextProperty(page, authorProperty, " ")
	if err != nil {
		return Row{}, err
	}
	row.Author = author

	syncID, err := richTextProperty(page, props.SyncID, ", ")
	if err != nil {
		return Row{}, err
	}
	row.SyncID = syncID

	category, ok := page.Properties[categoryProperty]
	if !ok || category.Select == nil {
		return Row{}, fmt.Errorf("page %s is missing select property %q", page.ID, categoryProperty)
	}
	row.Category = category.Select.Name

	url, ok := page.Properties[urlProperty]
	if !ok {
		return Row{}, fmt.Errorf("page %s is missing property %q", page.ID, urlProperty)
	}
	row.URL = url.URL

	return row, nil
}

func richTextProperty(page notion.Page, name, sep string) (string, error) {
	prop, ok := page.Properties[name]
	if !ok {
		return "", fmt.Errorf("page %s is missing property %q", page.ID, name)
	}
	return notion.JoinPlainText(prop.RichText, sep), nil
}
