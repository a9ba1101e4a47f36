package brief

import (
	"fmt"
	"strings"

	"github.com/alittlebirdy/briefgen/app/config"
	"github.com/alittlebirdy/briefgen/app/feed"
)

// Composer renders the instruction text sent to the summarization model.
// The output is deterministic for a given item sequence and vertical
// configuration.
type Composer struct{}

func NewComposer() *Composer {
	return &Composer{}
}

func (c *Composer) Run(items []feed.NormalizedItem, prompt config.Prompt) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Summarize today's most important %s news into a clear, readable briefing.\n\n",
		strings.ToUpper(prompt.Topic))

	if len(prompt.Scope) > 0 {
		sb.WriteString("Scope:\n")
		for _, line := range prompt.Scope {
			fmt.Fprintf(&sb, "- %s\n", line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Requirements:\n")
	sb.WriteString("- 3-6 sections, each section header on its own line starting with ###\n")
	fmt.Fprintf(&sb, "- %s words\n", prompt.WordRange)
	sb.WriteString("- Plain, neutral tone; no hype, no buzzwords, no futurism\n")
	sb.WriteString("- Explain what happened and why it matters\n")
	sb.WriteString("- Use ONLY the information in the articles below; do not add facts that aren't mentioned\n")
	for _, rule := range prompt.Rules {
		fmt.Fprintf(&sb, "- %s\n", rule)
	}

	sb.WriteString("\nArticles:\n\n")

	blocks := make([]string, 0, len(items))
	for i, item := range items {
		blocks = append(blocks, fmt.Sprintf(
			"%d. %s\n   Date: %s\n   %s\n   Link: %s",
			i+1, item.Title, item.PublishedDate, item.Description, item.Link))
	}
	sb.WriteString(strings.Join(blocks, "\n\n"))

	return Dedent(sb.String())
}

// Dedent strips the longest run of leading whitespace common to all
// non-blank lines, then trims surrounding blank lines. Keeps the emitted
// instruction text from being accidentally indented.
func Dedent(text string) string {
	lines := strings.Split(text, "\n")

	margin := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}

	if margin <= 0 {
		return strings.TrimSpace(text)
	}

	for i, line := range lines {
		if len(line) >= margin {
			lines[i] = line[margin:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
