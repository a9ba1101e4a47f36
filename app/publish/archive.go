package publish

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

const slugFormat = "2006-01-02"

// Archive persists dated standalone copies of each briefing and rebuilds
// the chronological index from a full directory scan. The index is never
// patched incrementally, so it self-heals from manual file edits.
type Archive struct {
	siteDir  string
	renderer *Renderer
}

func NewArchive(siteDir string, renderer *Renderer) *Archive {
	return &Archive{siteDir: siteDir, renderer: renderer}
}

// WriteDaily writes the dated archive page for the run. One file per
// calendar day: a same-day rerun overwrites in place.
func (a *Archive) WriteDaily(dir, title, backLink string, date time.Time, body string) (string, error) {
	archiveDir := filepath.Join(a.siteDir, dir)
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	page, err := a.renderer.ArchivePageHTML(title, backLink, date, body)
	if err != nil {
		return "", err
	}

	path := filepath.Join(archiveDir, date.Format(slugFormat)+".html")
	if err := WriteFileAtomic(path, []byte(page)); err != nil {
		return "", fmt.Errorf("failed to write archive page: %w", err)
	}

	return path, nil
}

// Entries scans the archive directory and returns one entry per file
// whose name parses as a date slug, newest first. Non-conforming
// filenames are skipped, not errored. A missing directory yields no
// entries.
func (a *Archive) Entries(dir string) ([]ArchiveEntry, error) {
	archiveDir := filepath.Join(a.siteDir, dir)

	dirEntries, err := os.ReadDir(archiveDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read archive directory: %w", err)
	}

	var entries []ArchiveEntry
	for _, dirEntry := range dirEntries {
		name := dirEntry.Name()
		if dirEntry.IsDir() || !strings.HasSuffix(name, ".html") {
			continue
		}

		slug := strings.TrimSuffix(name, ".html")
		date, err := time.Parse(slugFormat, slug)
		if err != nil {
			slog.Debug("Skipping non-dated archive file", "dir", dir, "file", name)
			continue
		}

		entries = append(entries, ArchiveEntry{
			Slug:    slug,
			Display: date.Format(displayDateFormat),
			Path:    dir + "/" + name,
		})
	}

	// Lexicographic order on the slug equals chronological order
	slices.SortFunc(entries, func(a, b ArchiveEntry) int {
		return strings.Compare(b.Slug, a.Slug)
	})

	return entries, nil
}

// RebuildIndex re-renders the archive list region content from the
// current directory state.
func (a *Archive) RebuildIndex(dir, emptyLabel string) (string, error) {
	entries, err := a.Entries(dir)
	if err != nil {
		return "", err
	}

	return a.renderer.ArchiveIndexHTML(entries, emptyLabel), nil
}
