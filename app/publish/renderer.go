package publish

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"
	"time"

	"github.com/alittlebirdy/briefgen/app/brief"
	"github.com/alittlebirdy/briefgen/app/feed"
)

const displayDateFormat = "January 02, 2006"

// Renderer turns converted briefing blocks into the HTML fragments that
// get spliced into pages, and renders the standalone archive pages.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// ArticleHTML renders the inner markup of the briefing region: the
// timestamp line, one element per content block and an optional sources
// list. Block text is emitted verbatim; the model is trusted not to
// inject the region's close tag.
func (r *Renderer) ArticleHTML(blocks []brief.ContentBlock, sources []feed.NormalizedItem, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(r.TimestampHTML(now))

	for _, block := range blocks {
		switch block.Kind {
		case brief.BlockHeading:
			fmt.Fprintf(&sb, "<h2>%s</h2>\n", block.Text)
		default:
			fmt.Fprintf(&sb, "<p>%s</p>\n", block.Text)
		}
	}

	if len(sources) > 0 {
		sb.WriteString("<h2>Sources</h2>\n")
		sb.WriteString("<ul class=\"sources\">\n")
		for _, item := range sources {
			fmt.Fprintf(&sb, "  <li><a href=\"%s\">%s</a> (%s)</li>\n",
				html.EscapeString(item.Link),
				html.EscapeString(item.Title),
				html.EscapeString(item.PublishedDate))
		}
		sb.WriteString("</ul>\n")
	}

	return sb.String()
}

// TimestampHTML renders the page's "Updated:" line. The instant is
// recorded as an absolute RFC 3339 datetime attribute so display-time
// formatting can be deferred to the viewer.
func (r *Renderer) TimestampHTML(now time.Time) string {
	return fmt.Sprintf("<p class=\"article-date\">Updated: <time datetime=\"%s\">%s</time></p>\n",
		now.UTC().Format(time.RFC3339), now.Format(displayDateFormat))
}

// PlaceholderHTML is published when a vertical with publish_empty fetched
// no items at all.
func (r *Renderer) PlaceholderHTML(now time.Time) string {
	return "\n" + r.TimestampHTML(now) +
		"<p>We couldn't fetch any news today. Please check back later.</p>\n"
}

// ArchiveIndexHTML renders the inner markup of the archive list region.
// Entries are expected newest first.
func (r *Renderer) ArchiveIndexHTML(entries []ArchiveEntry, emptyLabel string) string {
	var sb strings.Builder

	sb.WriteString("\n")

	if len(entries) == 0 {
		fmt.Fprintf(&sb, "<li class=\"archive-empty\">%s</li>\n", html.EscapeString(emptyLabel))
		return sb.String()
	}

	for _, entry := range entries {
		fmt.Fprintf(&sb, "<li><a href=\"%s\">%s</a></li>\n",
			html.EscapeString(entry.Path), html.EscapeString(entry.Display))
	}

	return sb.String()
}

var archivePageTmpl = template.Must(template.New("archive").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>{{.Title}} - {{.DisplayDate}}</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <link rel="icon" type="image/png" href="/favicon.png" />
  <style>
    body {
      margin: 0;
      min-height: 100vh;
      font-family: system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
      background: #020617;
      color: #e5e7eb;
      padding: 1.5rem;
    }
    .page { max-width: 900px; margin: 0 auto; }
    h1 {
      margin-top: 0;
      text-transform: uppercase;
      letter-spacing: 0.08em;
      font-size: 1.4rem;
    }
    .date { color: #9ca3af; font-size: 0.9rem; margin-bottom: 1rem; }
    h2 { margin-top: 1.6rem; margin-bottom: 0.5rem; font-size: 1.2rem; }
    p { line-height: 1.7; font-size: 0.95rem; }
    a { color: #38bdf8; text-decoration: none; }
    a:hover { text-decoration: underline; }
    .back { margin-top: 1.5rem; font-size: 0.9rem; }
  </style>
</head>
<body>
  <div class="page">
    <h1>{{.Title}}</h1>
    <div class="date">{{.DisplayDate}}</div>
    {{.Body}}
    <p class="back"><a href="{{.BackLink}}">&larr; Back to latest digest</a></p>
  </div>
</body>
</html>
`))

type archivePageData struct {
	Title       string
	DisplayDate string
	BackLink    string
	Body        template.HTML
}

// ArchivePageHTML renders a fully self-contained dated page embedding the
// briefing body under a fixed shell, linking back to the main page.
func (r *Renderer) ArchivePageHTML(title, backLink string, date time.Time, body string) (string, error) {
	var buf bytes.Buffer

	err := archivePageTmpl.Execute(&buf, archivePageData{
		Title:       title,
		DisplayDate: date.Format(displayDateFormat),
		BackLink:    backLink,
		Body:        template.HTML(body),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render archive page: %w", err)
	}

	return buf.String(), nil
}
