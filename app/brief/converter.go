package brief

import (
	"strings"
)

// Converter parses the model's quasi-markdown output into an ordered
// sequence of heading and paragraph blocks. It tolerates deviation from
// the requested format: unmarked sections simply come through as
// paragraphs.
type Converter struct{}

func NewConverter() *Converter {
	return &Converter{}
}

// Run splits the summary on blank-line boundaries and classifies each
// block. When headingKeywords is non-empty, heading blocks whose
// lower-cased text contains none of the keywords are dropped. Filtering
// is header-only: the paragraphs following a dropped heading are kept.
func (c *Converter) Run(summary string, headingKeywords []string) []ContentBlock {
	summary = stripTimestampLines(summary)

	var blocks []ContentBlock
	for _, raw := range strings.Split(summary, "\n\n") {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}

		if heading, ok := classifyHeading(text); ok {
			if len(headingKeywords) > 0 && !matchesAnyKeyword(text, headingKeywords) {
				continue
			}
			blocks = append(blocks, ContentBlock{Kind: BlockHeading, Text: heading})
			continue
		}

		blocks = append(blocks, ContentBlock{Kind: BlockParagraph, Text: text})
	}

	return blocks
}

// classifyHeading recognizes the requested ### marker, and tolerates a
// model that used a single bold pair instead of a heading marker.
func classifyHeading(text string) (string, bool) {
	if strings.HasPrefix(text, "###") {
		return strings.TrimSpace(strings.TrimLeft(text, "#")), true
	}

	if len(text) > 4 && strings.HasPrefix(text, "**") && strings.HasSuffix(text, "**") &&
		strings.Count(text, "**") == 2 {
		return strings.TrimSpace(text[2 : len(text)-2]), true
	}

	return "", false
}

func matchesAnyKeyword(text string, keywords []string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// stripTimestampLines removes any raw line that itself starts with an
// "Updated:" prefix, so the model cannot forge the page's own timestamp
// line.
func stripTimestampLines(summary string) string {
	lines := strings.Split(summary, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "Updated:") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
