package board

import (
	"context"
	"testing"
	"time"

	"github.com/kanbandesk/kanbandesk/models"
)

func TestWeeklyCompletions(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	ref := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

	complete := func(title string, at time.Time) {
		t.Helper()
		task, err := svc.CreateTask(ctx, title, "")
		if err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
		svc.now = func() time.Time { return at }
		if err := svc.MoveTask(ctx, task.ID, models.StatusDone); err != nil {
			t.Fatalf("MoveTask failed: %v", err)
		}
	}

	complete("today a", ref.Add(-1*time.Hour))
	complete("today b", ref.Add(-2*time.Hour))
	complete("three days ago", ref.AddDate(0, 0, -3))
	complete("too old", ref.AddDate(0, 0, -10)) // outside the window

	days, err := svc.WeeklyCompletions(ctx, ref)
	if err != nil {
		t.Fatalf("WeeklyCompletions failed: %v", err)
	}
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}

	if last := days[6]; last.Count != 2 {
		t.Errorf("today: got %d completions, want 2", last.Count)
	}
	if days[3].Count != 1 {
		t.Errorf("three days ago: got %d completions, want 1", days[3].Count)
	}

	total := 0
	for _, d := range days {
		total += d.Count
	}
	if total != 3 {
		t.Errorf("window total: got %d, want 3", total)
	}
}

func TestHistory_OrderAndMembership(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	early, _ := svc.CreateTask(ctx, "early done", "")
	svc.now = func() time.Time { return base }
	if err := svc.MoveTask(ctx, early.ID, models.StatusDone); err != nil {
		t.Fatalf("MoveTask failed: %v", err)
	}

	late, _ := svc.CreateTask(ctx, "late done", "")
	svc.now = func() time.Time { return base.Add(time.Hour) }
	if err := svc.MoveTask(ctx, late.ID, models.StatusDone); err != nil {
		t.Fatalf("MoveTask failed: %v", err)
	}

	cancelled, _ := svc.CreateTask(ctx, "cancelled", "")
	if err := svc.MoveTask(ctx, cancelled.ID, models.StatusCancel); err != nil {
		t.Fatalf("MoveTask failed: %v", err)
	}

	if _, err := svc.CreateTask(ctx, "still open", ""); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	history, err := svc.History(ctx)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 finished tasks, got %d", len(history))
	}
	if history[0].Title != "late done" || history[1].Title != "early done" {
		t.Errorf("history not sorted by completion desc: %v, %v", history[0].Title, history[1].Title)
	}
	// Cancelled task has no CompletedAt and sorts last.
	if history[2].Title != "cancelled" {
		t.Errorf("cancelled task should sort last, got %q", history[2].Title)
	}
}

func TestColumnCounts(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	for range 3 {
		if _, err := svc.CreateTask(ctx, "t", ""); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}
	task, _ := svc.CreateTask(ctx, "moving", "")
	if err := svc.MoveTask(ctx, task.ID, models.StatusReview); err != nil {
		t.Fatalf("MoveTask failed: %v", err)
	}

	counts, err := svc.ColumnCounts(ctx)
	if err != nil {
		t.Fatalf("ColumnCounts failed: %v", err)
	}
	if counts[models.StatusTodo] != 3 || counts[models.StatusReview] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}
