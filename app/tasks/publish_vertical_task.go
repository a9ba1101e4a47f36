package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/alittlebirdy/briefgen/app/brief"
	"github.com/alittlebirdy/briefgen/app/config"
	"github.com/alittlebirdy/briefgen/app/database"
	"github.com/alittlebirdy/briefgen/app/feed"
	"github.com/alittlebirdy/briefgen/app/publish"
)

// Deps bundles the pipeline components shared by all vertical tasks.
// Everything is passed in explicitly; there is no process-wide state.
type Deps struct {
	Fetcher    *feed.Fetcher
	Normalizer *feed.Normalizer
	Extractor  *feed.Extractor
	Composer   *brief.Composer
	Converter  *brief.Converter
	Summarizer Summarizer
	Renderer   *publish.Renderer
	Mutator    *publish.Mutator
	Archive    *publish.Archive
	RunRepo    database.RunRepositoryInterface
	Notifier   Notifier // optional
	SiteDir    string
}

// PublishVerticalTask runs the whole pipeline for one vertical:
// fetch, normalize, summarize, convert, publish, archive.
type PublishVerticalTask struct {
	Task
	vertical *config.Vertical
	deps     Deps
}

func NewPublishVerticalTask(vertical *config.Vertical, deps Deps) *PublishVerticalTask {
	return &PublishVerticalTask{
		Task:     NewTask(TaskTypePublishVertical, vertical.ID),
		vertical: vertical,
		deps:     deps,
	}
}

func (t *PublishVerticalTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	v := t.vertical
	now := time.Now()
	pagePath := filepath.Join(t.deps.SiteDir, v.Page)

	items := t.deps.Fetcher.Run(ctx, v.Feeds)
	if len(items) == 0 {
		return t.handleEmptyFetch(pagePath, now)
	}

	normalized := t.deps.Normalizer.Run(items, v.Settings.MaxArticles)

	if v.Settings.EnrichDescriptions && t.deps.Extractor != nil {
		normalized = t.deps.Extractor.Run(ctx, normalized)
	}

	prompt := t.deps.Composer.Run(normalized, v.Prompt)

	summary, err := t.deps.Summarizer.Summarize(ctx, v.Prompt.Persona, prompt)
	if err != nil {
		// No graceful degradation path for a failed summarization:
		// the run is over for this vertical.
		t.recordRun(database.RunStatusFailed, len(items), len(normalized), 0, err)
		return fmt.Errorf("failed to summarize: %w", err)
	}
	wordCount := len(strings.Fields(summary))

	blocks := t.deps.Converter.Run(summary, v.Filter.HeadingKeywords)

	var sources []feed.NormalizedItem
	if v.Settings.IncludeSources {
		sources = normalized
	}
	body := t.deps.Renderer.ArticleHTML(blocks, sources, now)

	// The archive page is written before the live page is touched, so a
	// later mutation failure cannot lose today's content.
	if _, err := t.deps.Archive.WriteDaily(v.Archive.Dir, v.Archive.Title, v.Archive.BackLink, now, body); err != nil {
		slog.Warn("Failed to write archive page", "vertical", v.ID, "error", err)
	}

	if err := t.deps.Mutator.UpdatePage(pagePath, publish.ArticleRegion(v.Anchors.Article), body); err != nil {
		t.recordRun(database.RunStatusFailed, len(items), len(normalized), wordCount, err)
		return fmt.Errorf("failed to update page %s: %w", v.Page, err)
	}

	if t.indexEnabled() {
		if err := t.updateArchiveIndex(pagePath); err != nil {
			t.recordRun(database.RunStatusFailed, len(items), len(normalized), wordCount, err)
			return fmt.Errorf("failed to update archive index on %s: %w", v.Page, err)
		}
	}

	t.recordRun(database.RunStatusPublished, len(items), len(normalized), wordCount, nil)
	t.notify(fmt.Sprintf("%s brief published for %s (%d articles)",
		v.Name, now.Format("2006-01-02"), len(normalized)))

	slog.Info("Task completed",
		"type", "PublishVertical",
		"vertical", v.ID,
		"duration", t.GetDuration(),
		"fetched", len(items),
		"used", len(normalized),
		"words", wordCount)

	return nil
}

// handleEmptyFetch implements the per-vertical empty-run policy: by
// default nothing is mutated, but a vertical with publish_empty set
// publishes a placeholder and still refreshes its archive index.
func (t *PublishVerticalTask) handleEmptyFetch(pagePath string, now time.Time) error {
	v := t.vertical

	if !v.Settings.PublishEmpty {
		slog.Info("No items fetched, leaving page untouched", "vertical", v.ID)
		t.recordRun(database.RunStatusEmpty, 0, 0, 0, nil)
		return nil
	}

	placeholder := t.deps.Renderer.PlaceholderHTML(now)
	if err := t.deps.Mutator.UpdatePage(pagePath, publish.ArticleRegion(v.Anchors.Article), placeholder); err != nil {
		t.recordRun(database.RunStatusFailed, 0, 0, 0, err)
		return fmt.Errorf("failed to update page %s: %w", v.Page, err)
	}

	if t.indexEnabled() {
		if err := t.updateArchiveIndex(pagePath); err != nil {
			t.recordRun(database.RunStatusFailed, 0, 0, 0, err)
			return fmt.Errorf("failed to update archive index on %s: %w", v.Page, err)
		}
	}

	slog.Info("No items fetched, published placeholder", "vertical", v.ID)
	t.recordRun(database.RunStatusEmpty, 0, 0, 0, nil)
	return nil
}

// indexEnabled reports whether the vertical's main page carries an
// archive-list region. Dated archive pages are written regardless; only
// the index splice needs the anchor.
func (t *PublishVerticalTask) indexEnabled() bool {
	return t.vertical.Anchors.ArchiveList != ""
}

func (t *PublishVerticalTask) updateArchiveIndex(pagePath string) error {
	v := t.vertical

	inner, err := t.deps.Archive.RebuildIndex(v.Archive.Dir, v.Archive.EmptyLabel)
	if err != nil {
		return err
	}

	return t.deps.Mutator.UpdatePage(pagePath, publish.ArchiveListRegion(v.Anchors.ArchiveList), inner)
}

func (t *PublishVerticalTask) recordRun(status database.RunStatus, fetched, used, words int, runErr error) {
	errText := ""
	if runErr != nil {
		errText = runErr.Error()
	}

	_, err := t.deps.RunRepo.RecordRun(database.Run{
		Vertical:     t.vertical.ID,
		RunDate:      time.Now().Format("2006-01-02"),
		Status:       status,
		ItemsFetched: fetched,
		ItemsUsed:    used,
		WordCount:    words,
		Error:        errText,
	})
	if err != nil {
		slog.Warn("Failed to record run", "vertical", t.vertical.ID, "error", err)
	}
}

func (t *PublishVerticalTask) notify(text string) {
	if t.deps.Notifier == nil {
		return
	}
	if err := t.deps.Notifier.Notify(text); err != nil {
		slog.Warn("Failed to send publish notification", "vertical", t.vertical.ID, "error", err)
	}
}
