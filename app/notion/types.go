package notion

import (
	"strings"
)

// Subset of the Notion API object model used by the exporter.
// Block types other than paragraph and image are carried but ignored
// downstream.

type QueryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

type Page struct {
	ID         string                   `json:"id"`
	URL        string                   `json:"url"`
	Properties map[string]PropertyValue `json:"properties"`
}

type PropertyValue struct {
	Type     string        `json:"type,omitempty"`
	RichText []RichText    `json:"rich_text,omitempty"`
	Select   *SelectOption `json:"select,omitempty"`
	URL      string        `json:"url,omitempty"`
	Date     *DateValue    `json:"date,omitempty"`
}

type SelectOption struct {
	Name string `json:"name"`
}

type DateValue struct {
	Start string `json:"start"`
}

type RichText struct {
	PlainText string       `json:"plain_text,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

type Link struct {
	URL string `json:"url"`
}

type BlockChildrenResponse struct {
	Results    []Block `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor string  `json:"next_cursor"`
}

type Block struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Paragraph *Paragraph `json:"paragraph,omitempty"`
	Image     *Image     `json:"image,omitempty"`
}

type Paragraph struct {
	RichText []RichText `json:"rich_text"`
}

type Image struct {
	Type     string        `json:"type,omitempty"`
	External *ExternalFile `json:"external,omitempty"`
}

type ExternalFile struct {
	URL string `json:"url"`
}

// JoinPlainText concatenates the plain text of a rich text sequence
// with the given separator. An empty sequence yields "".
func JoinPlainText(runs []RichText, sep string) string {
	parts := make([]string, 0, len(runs))
	for _, run := range runs {
		parts = append(parts, run.PlainText)
	}
	return strings.Join(parts, sep)
}

// Property constructors for page update payloads.

func NewRichTextProperty(content string) PropertyValue {
	return PropertyValue{
		RichText: []RichText{
			{Text: &TextContent{Content: content}},
		},
	}
}

func NewSelectProperty(name string) PropertyValue {
	return PropertyValue{
		Select: &SelectOption{Name: name},
	}
}

func NewDateProperty(start string) PropertyValue {
	return PropertyValue{
		Date: &DateValue{Start: start},
	}
}
