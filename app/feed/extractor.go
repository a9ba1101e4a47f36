package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const maxExcerptLen = 300

// Extractor fills in empty item descriptions by fetching the linked
// article and extracting a readable text excerpt. Extraction is best
// effort: any failure leaves the description empty and moves on.
type Extractor struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

func NewExtractor(httpClient *http.Client, timeout time.Duration, userAgent string) *Extractor {
	return &Extractor{
		httpClient: httpClient,
		timeout:    timeout,
		userAgent:  userAgent,
	}
}

func (e *Extractor) Run(ctx context.Context, items []NormalizedItem) []NormalizedItem {
	for i := range items {
		if items[i].Description != "" || items[i].Link == "" {
			continue
		}

		excerpt, err := e.extractExcerpt(ctx, items[i].Link)
		if err != nil {
			slog.Debug("Content extraction failed", "link", items[i].Link, "error", err)
			continue
		}

		items[i].Description = excerpt
	}

	return items
}

func (e *Extractor) extractExcerpt(ctx context.Context, link string) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", link, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	pageURL, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("failed to parse link: %w", err)
	}

	article, err := readability.FromReader(strings.NewReader(string(data)), pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	excerpt := Excerpt(article.TextContent, maxExcerptLen)
	if excerpt == "" {
		return "", fmt.Errorf("no content extracted from page")
	}

	return excerpt, nil
}

// Excerpt collapses whitespace and cuts text at the last word boundary
// before maxLen, appending an ellipsis when anything was cut.
func Excerpt(text string, maxLen int) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	if len(collapsed) <= maxLen {
		return collapsed
	}

	cut := collapsed[:maxLen]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}

	return cut + "…"
}
