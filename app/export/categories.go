package export

// CategoryMapper maps the closed set of source category labels to the
// configured output tags. Labels outside the set map to nothing; the
// renderer treats that as a data-quality gap, not an error.
type CategoryMapper struct {
	tags map[string]string
}

func NewCategoryMapper(articles, books, tweets, podcasts string) *CategoryMapper {
	return &CategoryMapper{
		tags: map[string]string{
			"Articles": articles,
			"Books":    books,
			"Tweets":   tweets,
			"Podcasts": podcasts,
		},
	}
}

func (m *CategoryMapper) Map(category string) (string, bool) {
	tag, ok := m.tags[category]
	return tag, ok
}
