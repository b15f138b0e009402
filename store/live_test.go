package store

import (
	"context"
	"testing"

	"github.com/kanbandesk/kanbandesk/models"
)

// doneTitles is a live query over the titles in the done column.
func doneTitles(s *SQLiteStore) func(ctx context.Context) ([]string, error) {
	return func(ctx context.Context) ([]string, error) {
		tasks, err := s.ListTasksByStatus(ctx, models.StatusDone)
		if err != nil {
			return nil, err
		}
		titles := []string{}
		for _, t := range tasks {
			titles = append(titles, t.Title)
		}
		return titles, nil
	}
}

func TestSubscribe_InitialDelivery(t *testing.T) {
	s := setupTestStore(t)

	var deliveries [][]string
	sub, err := Subscribe(s.Live(), "done-titles", []Collection{CollectionTasks},
		doneTitles(s), func(titles []string) { deliveries = append(deliveries, titles) })
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Cancel()

	if len(deliveries) != 1 {
		t.Fatalf("expected initial delivery, got %d deliveries", len(deliveries))
	}
	if len(deliveries[0]) != 0 {
		t.Errorf("initial result should be empty, got %v", deliveries[0])
	}
}

func TestSubscribe_RedeliversOnRelevantWrite(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	task := models.NewTask("Ship release", "")
	if _, err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	var deliveries [][]string
	sub, err := Subscribe(s.Live(), "done-titles", []Collection{CollectionTasks},
		doneTitles(s), func(titles []string) { deliveries = append(deliveries, titles) })
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Cancel()

	// Membership change in the done set: one redelivery.
	now := task.CreatedAt
	task.Status = models.StatusDone
	task.CompletedAt = &now
	if err := s.PutTask(ctx, task); err != nil {
		t.Fatalf("PutTask failed: %v", err)
	}

	if len(deliveries) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(deliveries))
	}
	if len(deliveries[1]) != 1 || deliveries[1][0] != "Ship release" {
		t.Errorf("unexpected redelivery: %v", deliveries[1])
	}
}

func TestSubscribe_SuppressesEqualResults(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	task := models.NewTask("Tidy desk", "")
	if _, err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	var deliveries int
	sub, err := Subscribe(s.Live(), "done-titles", []Collection{CollectionTasks},
		doneTitles(s), func([]string) { deliveries++ })
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Cancel()

	// A tasks write that does not change the done set: announced, re-run,
	// but suppressed by value equality.
	task.Status = models.StatusReview
	if err := s.PutTask(ctx, task); err != nil {
		t.Fatalf("PutTask failed: %v", err)
	}

	if deliveries != 1 {
		t.Errorf("expected only the initial delivery, got %d", deliveries)
	}
}

func TestSubscribe_IgnoresOtherCollections(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	var deliveries int
	sub, err := Subscribe(s.Live(), "done-titles", []Collection{CollectionTasks},
		doneTitles(s), func([]string) { deliveries++ })
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Cancel()

	if err := s.PutSettings(ctx, models.AppSettings{GitHubOwner: "acme"}); err != nil {
		t.Fatalf("PutSettings failed: %v", err)
	}
	if _, err := s.CreateTemplate(ctx, models.NewTaskTemplate("Standup", "")); err != nil {
		t.Fatalf("CreateTemplate failed: %v", err)
	}

	if deliveries != 1 {
		t.Errorf("writes to other collections should not redeliver, got %d deliveries", deliveries)
	}
}

func TestSubscription_CancelStopsDelivery(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	var deliveries int
	sub, err := Subscribe(s.Live(), "done-titles", []Collection{CollectionTasks},
		doneTitles(s), func([]string) { deliveries++ })
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	sub.Cancel()
	sub.Cancel() // idempotent

	task := models.NewTask("After cancel", "")
	task.Status = models.StatusDone
	if _, err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if deliveries != 1 {
		t.Errorf("cancelled subscription must not deliver, got %d deliveries", deliveries)
	}
}

func TestHub_MultipleSubscribers(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	var taskDeliveries, templateDeliveries int
	subA, err := Subscribe(s.Live(), "all-tasks", []Collection{CollectionTasks},
		func(ctx context.Context) ([]models.Task, error) { return s.ListTasks(ctx) },
		func([]models.Task) { taskDeliveries++ })
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer subA.Cancel()

	subB, err := Subscribe(s.Live(), "all-templates", []Collection{CollectionTemplates},
		func(ctx context.Context) ([]models.TaskTemplate, error) { return s.ListTemplates(ctx) },
		func([]models.TaskTemplate) { templateDeliveries++ })
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer subB.Cancel()

	if _, err := s.CreateTask(ctx, models.NewTask("one", "")); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if _, err := s.CreateTemplate(ctx, models.NewTaskTemplate("tmpl", "")); err != nil {
		t.Fatalf("CreateTemplate failed: %v", err)
	}

	if taskDeliveries != 2 {
		t.Errorf("task subscriber: expected 2 deliveries, got %d", taskDeliveries)
	}
	if templateDeliveries != 2 {
		t.Errorf("template subscriber: expected 2 deliveries, got %d", templateDeliveries)
	}
}
