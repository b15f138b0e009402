package store

import (
	"context"

	"github.com/kanbandesk/kanbandesk/models"
)

// BoardStore defines the interface for board persistence.
// It outlines the contract for the three record collections (tasks,
// templates, settings): point get, point upsert, point delete, filtered
// scans, and batch delete by column. All operations on a given id are
// serialized by the implementation; a failed write leaves no partial
// state. Mutations announce the touched collections on the Live hub
// only after they commit.
type BoardStore interface {
	// CreateTask inserts a new task. It returns the stored task or an
	// error if a task with the same id already exists.
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)

	// GetTask retrieves a task by its unique identifier.
	GetTask(ctx context.Context, id string) (models.Task, error)

	// PutTask replaces an existing task in a single atomic write.
	// It returns a not-found error if the id is absent.
	PutTask(ctx context.Context, task models.Task) error

	// DeleteTask removes a task by id, erroring if it is absent.
	DeleteTask(ctx context.Context, id string) error

	// ListTasks returns every task ordered by creation time.
	ListTasks(ctx context.Context) ([]models.Task, error)

	// ListTasksByStatus returns the tasks in one column, using the
	// status index rather than a full scan.
	ListTasksByStatus(ctx context.Context, status models.TaskStatus) ([]models.Task, error)

	// DeleteTasksByStatus removes every task in one column as a single
	// batch and returns the number removed. An empty column is a no-op.
	DeleteTasksByStatus(ctx context.Context, status models.TaskStatus) (int, error)

	// CreateTemplate inserts a new task template.
	CreateTemplate(ctx context.Context, tmpl models.TaskTemplate) (models.TaskTemplate, error)

	// GetTemplate retrieves a template by id.
	GetTemplate(ctx context.Context, id string) (models.TaskTemplate, error)

	// ListTemplates returns every template ordered by title.
	ListTemplates(ctx context.Context) ([]models.TaskTemplate, error)

	// DeleteTemplate removes a template by id, erroring if it is absent.
	DeleteTemplate(ctx context.Context, id string) error

	// GetSettings reads the singleton settings row, returning the empty
	// shell when the row has never been written.
	GetSettings(ctx context.Context) (models.AppSettings, error)

	// PutSettings upserts the singleton settings row against its fixed
	// key. A second row can never be created through this API.
	PutSettings(ctx context.Context, settings models.AppSettings) error

	// Live returns the hub that live queries subscribe on.
	Live() *Hub

	// Close releases the underlying database handle.
	Close() error
}
