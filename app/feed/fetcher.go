package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Fetcher retrieves and parses syndication feeds. Each feed is fetched
// independently: a failing feed is logged and skipped, never aborting
// the remaining feeds.
type Fetcher struct {
	httpClient   *http.Client
	gofeedParser *gofeed.Parser
	timeout      time.Duration
	userAgent    string
}

func NewFetcher(httpClient *http.Client, timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		httpClient:   httpClient,
		gofeedParser: gofeed.NewParser(),
		timeout:      timeout,
		userAgent:    userAgent,
	}
}

// Run fetches all feeds in order and returns a flat item slice in
// feed-list order, then item order within each feed.
func (f *Fetcher) Run(ctx context.Context, feedURLs []string) []Item {
	var items []Item

	for _, feedURL := range feedURLs {
		feedItems, err := f.fetchFeed(ctx, feedURL)
		if err != nil {
			slog.Warn("Failed to fetch feed, skipping", "feed", feedURL, "error", err)
			continue
		}
		items = append(items, feedItems...)
	}

	return items
}

func (f *Fetcher) fetchFeed(ctx context.Context, url string) ([]Item, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	parsed, err := f.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}

		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}

		items = append(items, Item{
			Title:        title,
			Description:  strings.TrimSpace(item.Description),
			Link:         strings.TrimSpace(item.Link),
			PublishedRaw: strings.TrimSpace(item.Published),
			PublishedAt:  item.PublishedParsed,
		})
	}

	return items, nil
}
