package database

import (
	"path/filepath"
	"testing"
	"time"
)

func testRepo(t *testing.T) *RunRepository {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return NewRunRepository(db)
}

func TestRunRepository_RecordAndGetLastRun(t *testing.T) {
	repo := testRepo(t)

	older := Run{
		Vertical:     "gaming",
		RunDate:      "2024-03-14",
		Status:       RunStatusPublished,
		ItemsFetched: 12,
		ItemsUsed:    10,
		WordCount:    480,
		CreatedAt:    time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC),
	}
	newer := Run{
		Vertical:  "gaming",
		RunDate:   "2024-03-15",
		Status:    RunStatusFailed,
		Error:     "page missing anchor",
		CreatedAt: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
	}

	for _, run := range []Run{older, newer} {
		if _, err := repo.RecordRun(run); err != nil {
			t.Fatalf("Failed to record run: %v", err)
		}
	}

	last, err := repo.GetLastRun("gaming")
	if err != nil {
		t.Fatalf("Failed to get last run: %v", err)
	}
	if last == nil {
		t.Fatalf("Expected a run, got nil")
	}
	if last.RunDate != "2024-03-15" || last.Status != RunStatusFailed {
		t.Errorf("Expected the newest run, got %+v", last)
	}
	if last.Error != "page missing anchor" {
		t.Errorf("Expected error text preserved, got %q", last.Error)
	}
}

func TestRunRepository_GetLastRunUnknownVertical(t *testing.T) {
	repo := testRepo(t)

	last, err := repo.GetLastRun("never-ran")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if last != nil {
		t.Errorf("Expected nil for a vertical that never ran, got %+v", last)
	}
}

func TestRunRepository_ListRecent(t *testing.T) {
	repo := testRepo(t)

	base := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := Run{
			Vertical:  "tech",
			RunDate:   base.AddDate(0, 0, i).Format("2006-01-02"),
			Status:    RunStatusPublished,
			CreatedAt: base.AddDate(0, 0, i),
		}
		if _, err := repo.RecordRun(run); err != nil {
			t.Fatalf("Failed to record run: %v", err)
		}
	}

	runs, err := repo.ListRecent(3)
	if err != nil {
		t.Fatalf("Failed to list runs: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].RunDate != "2024-03-14" {
		t.Errorf("Expected newest run first, got %s", runs[0].RunDate)
	}
	if !runs[0].CreatedAt.Equal(base.AddDate(0, 0, 4)) {
		t.Errorf("Expected created_at round-tripped, got %v", runs[0].CreatedAt)
	}
}

func TestRunRepository_DefaultsCreatedAt(t *testing.T) {
	repo := testRepo(t)

	if _, err := repo.RecordRun(Run{Vertical: "news", RunDate: "2024-03-15", Status: RunStatusEmpty}); err != nil {
		t.Fatalf("Failed to record run: %v", err)
	}

	last, err := repo.GetLastRun("news")
	if err != nil {
		t.Fatalf("Failed to get last run: %v", err)
	}
	if last.CreatedAt.IsZero() {
		t.Errorf("Expected created_at defaulted, got zero time")
	}
}
