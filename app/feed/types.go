package feed

import (
	"time"
)

// Item is a raw feed entry as fetched. Items with an empty title never
// leave the fetcher.
type Item struct {
	Title        string
	Description  string
	Link         string
	PublishedRaw string     // source-native date text, may be empty
	PublishedAt  *time.Time // set when the feed parser could parse the date
}

// NormalizedItem is an Item with its publication date resolved to a
// calendar date string, or the UnknownDate sentinel.
type NormalizedItem struct {
	Item
	PublishedDate string
}
