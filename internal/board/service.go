// Package board implements the task lifecycle engine and template
// registry on top of a BoardStore. It is the sole authority for the
// derived timestamp fields: callers change a task's column only through
// MoveTask, never by patching status directly.
package board

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kanbandesk/kanbandesk/models"
	"github.com/kanbandesk/kanbandesk/store"
	"github.com/kanbandesk/kanbandesk/types"
)

// Service exposes the board operations the UI and CLI call into.
type Service struct {
	store store.BoardStore
	now   func() time.Time
}

// NewService creates a board service over the given store.
func NewService(s store.BoardStore) *Service {
	return &Service{store: s, now: func() time.Time { return time.Now().UTC() }}
}

// CreateTask validates the title, builds a fresh task in the To Do
// column and persists it.
func (s *Service) CreateTask(ctx context.Context, title, description string) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, types.NewValidationError("task title must not be blank", nil)
	}

	task := models.NewTask(title, strings.TrimSpace(description))
	task.CreatedAt = s.now()
	if err := models.ValidateStruct(task); err != nil {
		return models.Task{}, types.NewValidationError("invalid task", err)
	}

	return s.store.CreateTask(ctx, task)
}

// MoveTask applies the column-transition rules, in order:
//
//  1. entering in-progress stamps StartedAt if it was never set
//  2. entering done stamps CompletedAt if it is currently unset
//  3. leaving done (to any other column) clears CompletedAt
//  4. the status itself changes unconditionally
//
// Any column may move to any other column; the only gate is that
// newStatus names one of the five columns. A move to the current column
// re-runs the rules idempotently. The write is a single atomic update.
func (s *Service) MoveTask(ctx context.Context, id string, newStatus models.TaskStatus) error {
	if !newStatus.IsValid() {
		return types.NewValidationError(fmt.Sprintf("unknown status %q", newStatus), nil)
	}

	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return err
	}

	now := s.now()
	if newStatus == models.StatusInProgress && task.StartedAt == nil {
		task.StartedAt = &now
	}
	if newStatus == models.StatusDone && task.CompletedAt == nil {
		task.CompletedAt = &now
	}
	if newStatus != models.StatusDone && task.CompletedAt != nil {
		task.CompletedAt = nil
	}
	task.Status = newStatus

	return s.store.PutTask(ctx, task)
}

// UpdateTask patches editable fields only. Recognized keys are "title",
// "description" and "tags"; patching status or the derived timestamps
// through here is rejected so the transition rules cannot be bypassed.
func (s *Service) UpdateTask(ctx context.Context, id string, updates map[string]interface{}) error {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return err
	}

	for key, value := range updates {
		switch key {
		case "title":
			title, ok := value.(string)
			if !ok || strings.TrimSpace(title) == "" {
				return types.NewValidationError("task title must not be blank", nil)
			}
			task.Title = strings.TrimSpace(title)
		case "description":
			desc, ok := value.(string)
			if !ok {
				return types.NewValidationError("description must be a string", nil)
			}
			task.Description = desc
		case "tags":
			tags, ok := value.([]string)
			if !ok {
				return types.NewValidationError("tags must be a string list", nil)
			}
			task.Tags = tags
		default:
			return types.NewValidationError(fmt.Sprintf("field %q is not editable", key), nil)
		}
	}

	if err := models.ValidateStruct(task); err != nil {
		return types.NewValidationError("invalid task after update", err)
	}
	return s.store.PutTask(ctx, task)
}

// DeleteTask removes a task. Deleting an id that does not exist is an
// error, consistent with DeleteTemplate.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	return s.store.DeleteTask(ctx, id)
}

// ClearColumn deletes every task currently in the given column and
// returns the number removed. An empty column returns 0 with no error.
func (s *Service) ClearColumn(ctx context.Context, status models.TaskStatus) (int, error) {
	if !status.IsValid() {
		return 0, types.NewValidationError(fmt.Sprintf("unknown status %q", status), nil)
	}
	return s.store.DeleteTasksByStatus(ctx, status)
}

// ListTasks returns every task on the board.
func (s *Service) ListTasks(ctx context.Context) ([]models.Task, error) {
	return s.store.ListTasks(ctx)
}

// ListColumn returns the tasks in one column.
func (s *Service) ListColumn(ctx context.Context, status models.TaskStatus) ([]models.Task, error) {
	if !status.IsValid() {
		return nil, types.NewValidationError(fmt.Sprintf("unknown status %q", status), nil)
	}
	return s.store.ListTasksByStatus(ctx, status)
}

// GetTask returns one task by id.
func (s *Service) GetTask(ctx context.Context, id string) (models.Task, error) {
	return s.store.GetTask(ctx, id)
}

// AddTemplate validates and stores a reusable task skeleton.
func (s *Service) AddTemplate(ctx context.Context, title, description string) (models.TaskTemplate, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.TaskTemplate{}, types.NewValidationError("template title must not be blank", nil)
	}

	tmpl := models.NewTaskTemplate(title, strings.TrimSpace(description))
	if err := models.ValidateStruct(tmpl); err != nil {
		return models.TaskTemplate{}, types.NewValidationError("invalid template", err)
	}
	return s.store.CreateTemplate(ctx, tmpl)
}

// DeleteTemplate removes a template; a missing id is an error.
func (s *Service) DeleteTemplate(ctx context.Context, id string) error {
	return s.store.DeleteTemplate(ctx, id)
}

// ListTemplates returns every saved template.
func (s *Service) ListTemplates(ctx context.Context) ([]models.TaskTemplate, error) {
	return s.store.ListTemplates(ctx)
}

// InstantiateTemplate creates a new task pre-filled from a template.
// Pure sugar over CreateTask: the task keeps no link to the template,
// and deleting the template later leaves the task untouched.
func (s *Service) InstantiateTemplate(ctx context.Context, templateID string) (models.Task, error) {
	tmpl, err := s.store.GetTemplate(ctx, templateID)
	if err != nil {
		return models.Task{}, err
	}
	return s.CreateTask(ctx, tmpl.Title, tmpl.Description)
}
