package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/kanbandesk/kanbandesk/models"
	"github.com/kanbandesk/kanbandesk/types"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_TaskRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	task := models.NewTask("Buy milk", "two bottles")
	task.Tags = []string{"errand"}

	created, err := s.CreateTask(ctx, task)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	got, err := s.GetTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}

	if got.Title != "Buy milk" {
		t.Errorf("Title mismatch: got %q, want %q", got.Title, "Buy milk")
	}
	if got.Status != models.StatusTodo {
		t.Errorf("Status mismatch: got %q, want %q", got.Status, models.StatusTodo)
	}
	if !got.CreatedAt.Equal(task.CreatedAt) {
		t.Errorf("CreatedAt mismatch: got %v, want %v", got.CreatedAt, task.CreatedAt)
	}
	if got.StartedAt != nil || got.CompletedAt != nil {
		t.Error("fresh task should have no derived timestamps")
	}
	if len(got.Tags) != 1 || got.Tags[0] != "errand" {
		t.Errorf("Tags mismatch: got %v", got.Tags)
	}
}

func TestSQLiteStore_PutTaskTimestamps(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	task := models.NewTask("Write report", "")
	if _, err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	started := time.Now().UTC()
	task.Status = models.StatusInProgress
	task.StartedAt = &started
	if err := s.PutTask(ctx, task); err != nil {
		t.Fatalf("PutTask failed: %v", err)
	}

	got, err := s.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.StartedAt == nil || !got.StartedAt.Equal(started) {
		t.Errorf("StartedAt mismatch: got %v, want %v", got.StartedAt, started)
	}

	// Clearing a timestamp persists as NULL.
	task.StartedAt = nil
	if err := s.PutTask(ctx, task); err != nil {
		t.Fatalf("PutTask failed: %v", err)
	}
	got, _ = s.GetTask(ctx, task.ID)
	if got.StartedAt != nil {
		t.Errorf("StartedAt should be cleared, got %v", got.StartedAt)
	}
}

func TestSQLiteStore_NotFoundErrors(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if _, err := s.GetTask(ctx, "missing"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("GetTask: expected not-found, got %v", err)
	}
	if err := s.DeleteTask(ctx, "missing"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("DeleteTask: expected not-found, got %v", err)
	}
	if err := s.PutTask(ctx, models.NewTask("ghost", "")); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("PutTask: expected not-found, got %v", err)
	}
	if err := s.DeleteTemplate(ctx, "missing"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("DeleteTemplate: expected not-found, got %v", err)
	}
}

func TestSQLiteStore_ListTasksByStatus(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for i, title := range []string{"a", "b", "c"} {
		task := models.NewTask(title, "")
		if i == 2 {
			task.Status = models.StatusReview
		}
		if _, err := s.CreateTask(ctx, task); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}

	todo, err := s.ListTasksByStatus(ctx, models.StatusTodo)
	if err != nil {
		t.Fatalf("ListTasksByStatus failed: %v", err)
	}
	if len(todo) != 2 {
		t.Errorf("expected 2 todo tasks, got %d", len(todo))
	}

	review, _ := s.ListTasksByStatus(ctx, models.StatusReview)
	if len(review) != 1 || review[0].Title != "c" {
		t.Errorf("unexpected review column: %v", review)
	}
}

func TestSQLiteStore_DeleteTasksByStatus(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"a", "b"} {
		task := models.NewTask(title, "")
		task.Status = models.StatusCancel
		if _, err := s.CreateTask(ctx, task); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}
	keep := models.NewTask("keep", "")
	if _, err := s.CreateTask(ctx, keep); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	n, err := s.DeleteTasksByStatus(ctx, models.StatusCancel)
	if err != nil {
		t.Fatalf("DeleteTasksByStatus failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 deleted, got %d", n)
	}

	// Clearing an empty column is a no-op.
	n, err = s.DeleteTasksByStatus(ctx, models.StatusCancel)
	if err != nil {
		t.Fatalf("DeleteTasksByStatus on empty column failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 deleted from empty column, got %d", n)
	}

	if _, err := s.GetTask(ctx, keep.ID); err != nil {
		t.Errorf("unrelated task should survive: %v", err)
	}
}

func TestSQLiteStore_Templates(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	tmpl := models.NewTaskTemplate("Standup", "Daily sync")
	if _, err := s.CreateTemplate(ctx, tmpl); err != nil {
		t.Fatalf("CreateTemplate failed: %v", err)
	}

	got, err := s.GetTemplate(ctx, tmpl.ID)
	if err != nil {
		t.Fatalf("GetTemplate failed: %v", err)
	}
	if got.Title != "Standup" || got.Description != "Daily sync" {
		t.Errorf("template mismatch: %+v", got)
	}

	all, err := s.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("ListTemplates failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 template, got %d", len(all))
	}

	if err := s.DeleteTemplate(ctx, tmpl.ID); err != nil {
		t.Fatalf("DeleteTemplate failed: %v", err)
	}
	if _, err := s.GetTemplate(ctx, tmpl.ID); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected not-found after delete, got %v", err)
	}
}

func TestSQLiteStore_SettingsSingleton(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	// Absent row reads as the empty shell.
	settings, err := s.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.ID != models.SettingsID {
		t.Errorf("expected default shell, got %+v", settings)
	}
	if settings.HasGitHub() {
		t.Error("empty shell should not report credentials")
	}

	// Upserts always target the fixed key, even with a bogus ID.
	settings.ID = "rogue"
	settings.GitHubOwner = "acme"
	if err := s.PutSettings(ctx, settings); err != nil {
		t.Fatalf("PutSettings failed: %v", err)
	}
	settings.GitHubToken = "ghp_secret"
	settings.GitHubRepo = "board"
	if err := s.PutSettings(ctx, settings); err != nil {
		t.Fatalf("PutSettings failed: %v", err)
	}

	got, err := s.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got.ID != models.SettingsID {
		t.Errorf("settings row key: got %q, want %q", got.ID, models.SettingsID)
	}
	if got.GitHubOwner != "acme" || got.GitHubRepo != "board" {
		t.Errorf("settings not merged: %+v", got)
	}
	if !got.HasGitHub() {
		t.Error("expected full credentials")
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM settings").Scan(&count); err != nil {
		t.Fatalf("count settings rows: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly 1 settings row, got %d", count)
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "board.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	task := models.NewTask("durable", "")
	if _, err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTask after reopen failed: %v", err)
	}
	if got.Title != "durable" {
		t.Errorf("Title mismatch after reopen: got %q", got.Title)
	}

	var version int
	if err := reopened.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("read user_version: %v", err)
	}
	if version != schemaVersion {
		t.Errorf("user_version: got %d, want %d", version, schemaVersion)
	}
}

func TestSQLiteStore_DuplicateIDRejected(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	task := models.NewTask("once", "")
	if _, err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if _, err := s.CreateTask(ctx, task); !errors.Is(err, types.ErrStorage) {
		t.Errorf("expected storage error on duplicate id, got %v", err)
	}
}
