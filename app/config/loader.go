package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of vertical configurations
type Loader struct {
	verticalsDir string
}

// NewLoader creates a new configuration loader
func NewLoader(verticalsDir string) *Loader {
	return &Loader{verticalsDir: verticalsDir}
}

// LoadAll loads all YAML configuration files from the verticals directory.
// Verticals are returned in filename order so runs stay deterministic.
func (l *Loader) LoadAll() ([]*Vertical, error) {
	var verticals []*Vertical

	if _, err := os.Stat(l.verticalsDir); os.IsNotExist(err) {
		return verticals, nil
	}

	files, err := filepath.Glob(filepath.Join(l.verticalsDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}

	ymlFiles, err := filepath.Glob(filepath.Join(l.verticalsDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	files = append(files, ymlFiles...)

	for _, file := range files {
		vertical, err := l.loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		if err := l.validate(vertical); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", file, err)
		}

		verticals = append(verticals, vertical)
		slog.Debug("Loaded vertical configuration", "file", file, "vertical", vertical.ID)
	}

	return verticals, nil
}

// loadFile loads a single YAML configuration file
func (l *Loader) loadFile(path string) (*Vertical, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var vertical Vertical
	if err := yaml.Unmarshal(data, &vertical); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Base(path)
	vertical.ID = strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")

	l.setDefaults(&vertical)

	return &vertical, nil
}

// setDefaults applies default values to a vertical configuration
func (l *Loader) setDefaults(vertical *Vertical) {
	if vertical.Name == "" {
		vertical.Name = vertical.ID
	}
	if vertical.Settings.MaxArticles == 0 {
		vertical.Settings.MaxArticles = 10
	}
	if vertical.Settings.RefreshInterval == 0 {
		vertical.Settings.RefreshInterval = 86400 // seconds
	}
	if vertical.Prompt.WordRange == "" {
		vertical.Prompt.WordRange = "350-600"
	}
	if vertical.Anchors.Article == "" {
		vertical.Anchors.Article = "article"
	}
	if vertical.Archive.Dir == "" {
		vertical.Archive.Dir = vertical.ID + "_archives"
	}
	if vertical.Archive.Title == "" {
		vertical.Archive.Title = vertical.Name + " Digest"
	}
	if vertical.Archive.BackLink == "" {
		vertical.Archive.BackLink = "/" + vertical.Page
	}
	if vertical.Archive.EmptyLabel == "" {
		vertical.Archive.EmptyLabel = "No previous digests yet."
	}
}

// validate validates a vertical configuration
func (l *Loader) validate(vertical *Vertical) error {
	if len(vertical.Feeds) == 0 {
		return fmt.Errorf("at least one feed URL is required")
	}
	for i, feed := range vertical.Feeds {
		if !strings.HasPrefix(feed, "http://") && !strings.HasPrefix(feed, "https://") {
			return fmt.Errorf("feed URL at index %d is not an http(s) URL: %s", i, feed)
		}
	}

	if vertical.Page == "" {
		return fmt.Errorf("page is required")
	}
	if vertical.Prompt.Persona == "" {
		return fmt.Errorf("prompt persona is required")
	}

	if vertical.Settings.MaxArticles < 0 {
		return fmt.Errorf("max articles must be non-negative")
	}
	if vertical.Settings.RefreshInterval < 0 {
		return fmt.Errorf("refresh interval must be non-negative")
	}

	return nil
}
