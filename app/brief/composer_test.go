package brief

import (
	"strings"
	"testing"

	"github.com/alittlebirdy/briefgen/app/config"
	"github.com/alittlebirdy/briefgen/app/feed"
)

func testPrompt() config.Prompt {
	return config.Prompt{
		Topic:     "gaming",
		WordRange: "350-600",
		Scope:     []string{"Video games", "Esports"},
		Rules:     []string{"No spoilers"},
	}
}

func testItems() []feed.NormalizedItem {
	return []feed.NormalizedItem{
		{Item: feed.Item{Title: "Big Patch", Description: "A patch shipped", Link: "https://example.com/patch"}, PublishedDate: "2024-03-15"},
		{Item: feed.Item{Title: "Studio News", Description: "", Link: "https://example.com/studio"}, PublishedDate: feed.UnknownDate},
	}
}

func TestComposer_NumbersItemsInOrder(t *testing.T) {
	composer := NewComposer()

	prompt := composer.Run(testItems(), testPrompt())

	first := strings.Index(prompt, "1. Big Patch")
	second := strings.Index(prompt, "2. Studio News")

	if first == -1 || second == -1 {
		t.Fatalf("Expected numbered items in prompt:\n%s", prompt)
	}
	if first > second {
		t.Errorf("Expected item order preserved")
	}

	if !strings.Contains(prompt, "Date: 2024-03-15") {
		t.Errorf("Expected normalized date in prompt")
	}
	if !strings.Contains(prompt, "Date: "+feed.UnknownDate) {
		t.Errorf("Expected sentinel date in prompt")
	}
	if !strings.Contains(prompt, "Link: https://example.com/patch") {
		t.Errorf("Expected link in prompt")
	}
}

func TestComposer_CarriesVerticalConfiguration(t *testing.T) {
	composer := NewComposer()

	prompt := composer.Run(testItems(), testPrompt())

	if !strings.Contains(prompt, "GAMING news") {
		t.Errorf("Expected upper-cased topic in prompt")
	}
	if !strings.Contains(prompt, "- Video games") || !strings.Contains(prompt, "- Esports") {
		t.Errorf("Expected scope lines in prompt")
	}
	if !strings.Contains(prompt, "- 350-600 words") {
		t.Errorf("Expected word range in prompt")
	}
	if !strings.Contains(prompt, "- No spoilers") {
		t.Errorf("Expected extra rule in prompt")
	}
	if !strings.Contains(prompt, "starting with ###") {
		t.Errorf("Expected the heading marker instruction in prompt")
	}
}

func TestComposer_Deterministic(t *testing.T) {
	composer := NewComposer()

	a := composer.Run(testItems(), testPrompt())
	b := composer.Run(testItems(), testPrompt())

	if a != b {
		t.Errorf("Expected identical output for identical input")
	}
}

func TestComposer_OutputNotIndented(t *testing.T) {
	composer := NewComposer()

	prompt := composer.Run(testItems(), testPrompt())

	if strings.HasPrefix(prompt, " ") || strings.HasPrefix(prompt, "\t") || strings.HasPrefix(prompt, "\n") {
		t.Errorf("Expected prompt to start unindented, got %q", prompt[:20])
	}
}

func TestDedent(t *testing.T) {
	text := "\n\tfirst line\n\tsecond line\n\t\tindented\n"

	got := Dedent(text)
	want := "first line\nsecond line\n\tindented"

	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestDedent_NoCommonMargin(t *testing.T) {
	text := "plain\n  indented"

	if got := Dedent(text); got != text {
		t.Errorf("Expected text unchanged, got %q", got)
	}
}
