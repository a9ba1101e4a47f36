package publish

import (
	"fmt"
)

// Region identifies a mutable area of an HTML page by a literal anchor
// pair: the element-opening fragment carrying a known id attribute, and
// the first matching close tag after it. This is a textual contract, not
// a DOM one: the region must not contain a nested element of the same
// tag name, or the close-tag search will truncate early. The page
// templates are kept simple enough to honor that.
type Region struct {
	Tag string
	ID  string
}

func (r Region) StartAnchor() string {
	return fmt.Sprintf(`<%s id="%s">`, r.Tag, r.ID)
}

func (r Region) EndAnchor() string {
	return "</" + r.Tag + ">"
}

// ArticleRegion returns the briefing content region for an anchor id.
func ArticleRegion(id string) Region {
	return Region{Tag: "div", ID: id}
}

// ArchiveListRegion returns the archive index region for an anchor id.
func ArchiveListRegion(id string) Region {
	return Region{Tag: "ul", ID: id}
}

// ArchiveEntry is one dated archive page, discovered by scanning the
// archive directory.
type ArchiveEntry struct {
	Slug    string // YYYY-MM-DD
	Display string
	Path    string // href relative to the site root
}
