package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testPage = `<!DOCTYPE html>
<html>
<body>
<header>untouched header</header>
<div id="article">
old content
</div>
<footer>untouched footer</footer>
</body>
</html>`

func TestMutator_ReplacePreservesOutsideBytes(t *testing.T) {
	mutator := NewMutator()

	updated, err := mutator.Replace(testPage, ArticleRegion("article"), "\nnew content\n")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !strings.Contains(updated, "untouched header") || !strings.Contains(updated, "untouched footer") {
		t.Errorf("Expected bytes outside the region preserved")
	}
	if strings.Contains(updated, "old content") {
		t.Errorf("Expected old inner content replaced")
	}
	if !strings.Contains(updated, `<div id="article">`+"\nnew content\n"+"</div>") {
		t.Errorf("Expected new inner content between the anchors, got:\n%s", updated)
	}

	// Everything before the start tag is byte-identical
	anchorPos := strings.Index(testPage, `<div id="article">`)
	if updated[:anchorPos] != testPage[:anchorPos] {
		t.Errorf("Expected prefix bytes unchanged")
	}
}

func TestMutator_ReplaceIdempotent(t *testing.T) {
	mutator := NewMutator()

	once, err := mutator.Replace(testPage, ArticleRegion("article"), "\nsame content\n")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	twice, err := mutator.Replace(once, ArticleRegion("article"), "\nsame content\n")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if once != twice {
		t.Errorf("Expected mutating twice with the same content to be a no-op")
	}
}

func TestMutator_ReplaceMissingStartAnchor(t *testing.T) {
	mutator := NewMutator()

	_, err := mutator.Replace("<html><body></body></html>", ArticleRegion("article"), "x")
	if err == nil {
		t.Fatalf("Expected an error for a page without the region")
	}
}

func TestMutator_ReplaceMissingEndAnchor(t *testing.T) {
	mutator := NewMutator()

	_, err := mutator.Replace(`<html><body><div id="article">never closed`, ArticleRegion("article"), "x")
	if err == nil {
		t.Fatalf("Expected an error for a region without a close tag")
	}
}

// The end anchor is the first matching close token after the start tag,
// a textual search. A same-tag child would truncate the match; the page
// templates are required not to nest the region's tag.
func TestMutator_ReplaceUsesFirstCloseTag(t *testing.T) {
	mutator := NewMutator()

	doc := `<div id="list"><ul id="archive-list"><li>old</li></ul><ul>other</ul></div>`
	updated, err := mutator.Replace(doc, ArchiveListRegion("archive-list"), "<li>new</li>")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := `<div id="list"><ul id="archive-list"><li>new</li></ul><ul>other</ul></div>`
	if updated != want {
		t.Errorf("Expected %q, got %q", want, updated)
	}
}

func TestMutator_ReplaceOrInjectFallsBackToBody(t *testing.T) {
	mutator := NewMutator()

	doc := "<html><body>\n<p>page</p>\n</body></html>"
	updated, err := mutator.ReplaceOrInject(doc, ArticleRegion("article"), "injected")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !strings.Contains(updated, `<div id="article">injected</div>`) {
		t.Errorf("Expected injected region, got:\n%s", updated)
	}
	if !strings.HasSuffix(updated, "</body></html>") {
		t.Errorf("Expected injection before the closing body tag")
	}
}

func TestMutator_ReplaceOrInjectWithoutBodyFails(t *testing.T) {
	mutator := NewMutator()

	_, err := mutator.ReplaceOrInject("no markup here", ArticleRegion("article"), "x")
	if err == nil {
		t.Fatalf("Expected an error for a document with no body tag")
	}
}

func TestMutator_UpdatePageMissingAnchorLeavesFileUntouched(t *testing.T) {
	mutator := NewMutator()

	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	original := "<html><body><p>no region</p></body></html>"
	if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
		t.Fatalf("Failed to write test page: %v", err)
	}

	err := mutator.UpdatePage(path, ArticleRegion("article"), "new")
	if err == nil {
		t.Fatalf("Expected a configuration error for the missing anchor")
	}

	onDisk, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("Failed to read page back: %v", readErr)
	}
	if string(onDisk) != original {
		t.Errorf("Expected the file's prior content unchanged on disk")
	}
}

func TestMutator_UpdatePageWritesWholeFile(t *testing.T) {
	mutator := NewMutator()

	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	if err := os.WriteFile(path, []byte(testPage), 0o644); err != nil {
		t.Fatalf("Failed to write test page: %v", err)
	}

	if err := mutator.UpdatePage(path, ArticleRegion("article"), "\nfresh\n"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read page back: %v", err)
	}
	if !strings.Contains(string(onDisk), "\nfresh\n") {
		t.Errorf("Expected new content on disk")
	}

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to list dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the page file in the directory, got %d entries", len(entries))
	}
}
