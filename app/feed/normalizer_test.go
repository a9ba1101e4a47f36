package feed

import (
	"testing"
	"time"
)

func TestNormalizer_DeduplicatesByTitleKeepingFirst(t *testing.T) {
	normalizer := NewNormalizer()

	items := []Item{
		{Title: "A", Link: "https://first.example/a"},
		{Title: "B", Link: "https://first.example/b"},
		{Title: "A", Link: "https://second.example/a"},
	}

	result := normalizer.Run(items, 0)

	if len(result) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(result))
	}
	if result[0].Title != "A" || result[1].Title != "B" {
		t.Errorf("Expected titles [A B], got [%s %s]", result[0].Title, result[1].Title)
	}
	if result[0].Link != "https://first.example/a" {
		t.Errorf("Expected first occurrence to survive, got link %s", result[0].Link)
	}
}

func TestNormalizer_TitleMatchIsCaseSensitive(t *testing.T) {
	normalizer := NewNormalizer()

	items := []Item{
		{Title: "Economy"},
		{Title: "economy"},
	}

	result := normalizer.Run(items, 0)

	if len(result) != 2 {
		t.Errorf("Expected 2 items for case-differing titles, got %d", len(result))
	}
}

func TestNormalizer_TruncatesToMaxArticles(t *testing.T) {
	normalizer := NewNormalizer()

	items := []Item{
		{Title: "One"},
		{Title: "Two"},
		{Title: "Three"},
		{Title: "Four"},
	}

	result := normalizer.Run(items, 2)

	if len(result) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(result))
	}
	// Prefix truncation, not priority selection
	if result[0].Title != "One" || result[1].Title != "Two" {
		t.Errorf("Expected prefix [One Two], got [%s %s]", result[0].Title, result[1].Title)
	}
}

func TestNormalizer_DedupeThenTruncate(t *testing.T) {
	normalizer := NewNormalizer()

	// Second feed repeats "A"; with a maximum of 2 the batch is exactly [A B]
	items := []Item{
		{Title: "A"},
		{Title: "B"},
		{Title: "A"},
	}

	result := normalizer.Run(items, 2)

	if len(result) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(result))
	}
	if result[0].Title != "A" || result[1].Title != "B" {
		t.Errorf("Expected [A B], got [%s %s]", result[0].Title, result[1].Title)
	}
}

func TestNormalizer_FormatDate_ParsedTimePreferred(t *testing.T) {
	normalizer := NewNormalizer()

	parsed := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)
	items := []Item{
		{Title: "A", PublishedAt: &parsed, PublishedRaw: "garbage"},
	}

	result := normalizer.Run(items, 0)

	if result[0].PublishedDate != "2024-03-15" {
		t.Errorf("Expected 2024-03-15, got %s", result[0].PublishedDate)
	}
}

func TestNormalizer_FormatDate_RFC2822Raw(t *testing.T) {
	normalizer := NewNormalizer()

	items := []Item{
		{Title: "A", PublishedRaw: "Fri, 15 Mar 2024 18:30:00 +0000"},
	}

	result := normalizer.Run(items, 0)

	if result[0].PublishedDate != "2024-03-15" {
		t.Errorf("Expected 2024-03-15, got %s", result[0].PublishedDate)
	}
}

func TestNormalizer_FormatDate_Sentinel(t *testing.T) {
	normalizer := NewNormalizer()

	items := []Item{
		{Title: "Empty"},
		{Title: "Garbage", PublishedRaw: "yesterday-ish"},
	}

	result := normalizer.Run(items, 0)

	for _, item := range result {
		if item.PublishedDate != UnknownDate {
			t.Errorf("Expected sentinel %q for %s, got %q", UnknownDate, item.Title, item.PublishedDate)
		}
	}
}
