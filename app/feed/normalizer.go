package feed

import (
	"net/mail"
)

// UnknownDate is substituted when an item's publication date cannot be
// determined from the source feed.
const UnknownDate = "Unknown date"

// Normalizer deduplicates items by exact title, keeping the first
// occurrence in fetch order, and truncates the result to a maximum count.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

func (n *Normalizer) Run(items []Item, maxArticles int) []NormalizedItem {
	seen := make(map[string]bool, len(items))
	unique := make([]NormalizedItem, 0, len(items))

	for _, item := range items {
		if seen[item.Title] {
			continue
		}
		seen[item.Title] = true

		unique = append(unique, NormalizedItem{
			Item:          item,
			PublishedDate: n.formatDate(item),
		})
	}

	if maxArticles > 0 && len(unique) > maxArticles {
		unique = unique[:maxArticles]
	}

	return unique
}

// formatDate resolves an item's publication date to YYYY-MM-DD. Feed dates
// are RFC 2822 style email date strings; anything unparseable degrades to
// the UnknownDate sentinel rather than an error.
func (n *Normalizer) formatDate(item Item) string {
	if item.PublishedAt != nil {
		return item.PublishedAt.Format("2006-01-02")
	}

	if item.PublishedRaw == "" {
		return UnknownDate
	}

	t, err := mail.ParseDate(item.PublishedRaw)
	if err != nil {
		return UnknownDate
	}

	return t.Format("2006-01-02")
}
