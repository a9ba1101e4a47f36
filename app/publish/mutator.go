package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Mutator performs in-place replacement of anchored regions inside
// existing HTML pages. The whole new document is computed in memory and
// written atomically, so a failed mutation never leaves a partial page
// on disk.
type Mutator struct{}

func NewMutator() *Mutator {
	return &Mutator{}
}

// Replace returns doc with only the region's inner content replaced.
// Every byte before the start tag's closing '>' and every byte from the
// region's close tag onward is preserved. A missing start or end anchor
// is a configuration error: the page does not carry the expected region.
func (m *Mutator) Replace(doc string, region Region, inner string) (string, error) {
	start := strings.Index(doc, region.StartAnchor())
	if start == -1 {
		return "", fmt.Errorf("page missing %s", region.StartAnchor())
	}

	tagEnd := strings.Index(doc[start:], ">")
	if tagEnd == -1 {
		return "", fmt.Errorf("page missing %s", region.StartAnchor())
	}
	tagEnd += start

	end := strings.Index(doc[tagEnd:], region.EndAnchor())
	if end == -1 {
		return "", fmt.Errorf("page missing %s close tag for id %q", region.EndAnchor(), region.ID)
	}
	end += tagEnd

	return doc[:tagEnd+1] + inner + doc[end:], nil
}

// ReplaceOrInject is the tolerant path: when the page does not carry the
// region at all, a freshly constructed region is injected before the
// closing body tag instead of failing. Pages that do carry the region
// behave exactly as Replace.
func (m *Mutator) ReplaceOrInject(doc string, region Region, inner string) (string, error) {
	updated, err := m.Replace(doc, region, inner)
	if err == nil {
		return updated, nil
	}

	bodyEnd := strings.LastIndex(doc, "</body>")
	if bodyEnd == -1 {
		return "", fmt.Errorf("page has neither %s nor a closing body tag", region.StartAnchor())
	}

	block := region.StartAnchor() + inner + region.EndAnchor() + "\n"
	return doc[:bodyEnd] + block + doc[bodyEnd:], nil
}

// UpdatePage reads the page, replaces the region and writes the whole
// file back via a temp file and rename. On any error the previous file
// content is left untouched.
func (m *Mutator) UpdatePage(path string, region Region, inner string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read page: %w", err)
	}

	updated, err := m.Replace(string(data), region, inner)
	if err != nil {
		return err
	}

	if err := WriteFileAtomic(path, []byte(updated)); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}

	return nil
}

// WriteFileAtomic writes data to a temp file in the target directory and
// renames it over path, closing the crash window of a sequential
// overwrite.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".briefgen-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace file: %w", err)
	}

	return nil
}
