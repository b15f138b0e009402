package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kanbandesk/kanbandesk/models"
	"github.com/kanbandesk/kanbandesk/types"
)

// schemaVersion is the current PRAGMA user_version. Migrations are
// additive: version 1 created tasks and templates, version 2 added the
// settings collection.
const schemaVersion = 2

// SQLiteStore implements BoardStore using SQLite for persistence.
type SQLiteStore struct {
	db  *sql.DB
	hub *Hub
}

// NewSQLiteStore opens (or creates) the board database at dbPath and
// applies pending schema migrations. Pass ":memory:" for an ephemeral
// store, used by tests and throwaway boards.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection serializes all writers and keeps :memory:
	// databases from evaporating between pooled connections.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db, hub: NewHub()}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return s, nil
}

// migrate brings the database up to schemaVersion, one version at a time.
func (s *SQLiteStore) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL,
			started_at TEXT,
			completed_at TEXT
		);

		CREATE TABLE IF NOT EXISTS templates (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
		CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at);
		CREATE INDEX IF NOT EXISTS idx_templates_title ON templates(title);
		`
		if _, err := s.db.Exec(schema); err != nil {
			return fmt.Errorf("apply schema v1: %w", err)
		}
	}

	if version < 2 {
		schema := `
		CREATE TABLE IF NOT EXISTS settings (
			id TEXT PRIMARY KEY,
			github_token TEXT NOT NULL DEFAULT '',
			github_owner TEXT NOT NULL DEFAULT '',
			github_repo TEXT NOT NULL DEFAULT ''
		);
		`
		if _, err := s.db.Exec(schema); err != nil {
			return fmt.Errorf("apply schema v2: %w", err)
		}
	}

	if version != schemaVersion {
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}
	return nil
}

// Live returns the hub that live queries subscribe on.
func (s *SQLiteStore) Live() *Hub { return s.hub }

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// nullTimeString returns nil for a nil time, RFC3339Nano string otherwise.
func nullTimeString(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// parseNullTime is the inverse of nullTimeString for scanned columns.
func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// scanTask reads one task row.
func scanTask(row interface {
	Scan(dest ...any) error
}) (models.Task, error) {
	var t models.Task
	var tagsJSON, createdAt string
	var startedAt, completedAt sql.NullString

	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &tagsJSON, &createdAt, &startedAt, &completedAt); err != nil {
		return models.Task{}, err
	}

	var err error
	if t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return models.Task{}, fmt.Errorf("parse created_at: %w", err)
	}
	if t.StartedAt, err = parseNullTime(startedAt); err != nil {
		return models.Task{}, fmt.Errorf("parse started_at: %w", err)
	}
	if t.CompletedAt, err = parseNullTime(completedAt); err != nil {
		return models.Task{}, fmt.Errorf("parse completed_at: %w", err)
	}
	if tagsJSON != "" && tagsJSON != "[]" {
		if err := json.Unmarshal([]byte(tagsJSON), &t.Tags); err != nil {
			return models.Task{}, fmt.Errorf("parse tags: %w", err)
		}
	}
	return t, nil
}

const taskColumns = "id, title, description, status, tags, created_at, started_at, completed_at"

// CreateTask inserts a new task and announces the tasks collection.
func (s *SQLiteStore) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	tagsJSON, _ := json.Marshal(task.Tags)
	if task.Tags == nil {
		tagsJSON = []byte("[]")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, task.ID, task.Title, task.Description, task.Status, string(tagsJSON),
		task.CreatedAt.UTC().Format(time.RFC3339Nano),
		nullTimeString(task.StartedAt), nullTimeString(task.CompletedAt))
	if err != nil {
		return models.Task{}, types.NewStorageError(fmt.Sprintf("insert task %s", task.ID), err)
	}

	s.hub.Notify(ctx, CollectionTasks)
	return task, nil
}

// GetTask retrieves a task by id.
func (s *SQLiteStore) GetTask(ctx context.Context, id string) (models.Task, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, types.NewNotFoundError(fmt.Sprintf("task %s not found", id))
	}
	if err != nil {
		return models.Task{}, types.NewStorageError(fmt.Sprintf("query task %s", id), err)
	}
	return task, nil
}

// PutTask replaces an existing task in one atomic UPDATE.
func (s *SQLiteStore) PutTask(ctx context.Context, task models.Task) error {
	tagsJSON, _ := json.Marshal(task.Tags)
	if task.Tags == nil {
		tagsJSON = []byte("[]")
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, tags = ?,
		    created_at = ?, started_at = ?, completed_at = ?
		WHERE id = ?
	`, task.Title, task.Description, task.Status, string(tagsJSON),
		task.CreatedAt.UTC().Format(time.RFC3339Nano),
		nullTimeString(task.StartedAt), nullTimeString(task.CompletedAt), task.ID)
	if err != nil {
		return types.NewStorageError(fmt.Sprintf("update task %s", task.ID), err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return types.NewNotFoundError(fmt.Sprintf("task %s not found", task.ID))
	}

	s.hub.Notify(ctx, CollectionTasks)
	return nil
}

// DeleteTask removes a task by id.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return types.NewStorageError(fmt.Sprintf("delete task %s", id), err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return types.NewNotFoundError(fmt.Sprintf("task %s not found", id))
	}

	s.hub.Notify(ctx, CollectionTasks)
	return nil
}

// ListTasks returns every task ordered by creation time.
func (s *SQLiteStore) ListTasks(ctx context.Context) ([]models.Task, error) {
	return s.queryTasks(ctx, "SELECT "+taskColumns+" FROM tasks ORDER BY created_at")
}

// ListTasksByStatus returns the tasks in one column via the status index.
func (s *SQLiteStore) ListTasksByStatus(ctx context.Context, status models.TaskStatus) ([]models.Task, error) {
	return s.queryTasks(ctx, "SELECT "+taskColumns+" FROM tasks WHERE status = ? ORDER BY created_at", status)
}

func (s *SQLiteStore) queryTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, types.NewStorageError("query tasks", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, types.NewStorageError("scan task row", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewStorageError("iterate task rows", err)
	}
	return tasks, nil
}

// DeleteTasksByStatus removes every task in one column as a single batch.
func (s *SQLiteStore) DeleteTasksByStatus(ctx context.Context, status models.TaskStatus) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE status = ?", status)
	if err != nil {
		return 0, types.NewStorageError(fmt.Sprintf("clear column %s", status), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, types.NewStorageError("count cleared tasks", err)
	}

	if n > 0 {
		s.hub.Notify(ctx, CollectionTasks)
	}
	return int(n), nil
}

// CreateTemplate inserts a new task template.
func (s *SQLiteStore) CreateTemplate(ctx context.Context, tmpl models.TaskTemplate) (models.TaskTemplate, error) {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO templates (id, title, description) VALUES (?, ?, ?)",
		tmpl.ID, tmpl.Title, tmpl.Description)
	if err != nil {
		return models.TaskTemplate{}, types.NewStorageError(fmt.Sprintf("insert template %s", tmpl.ID), err)
	}

	s.hub.Notify(ctx, CollectionTemplates)
	return tmpl, nil
}

// GetTemplate retrieves a template by id.
func (s *SQLiteStore) GetTemplate(ctx context.Context, id string) (models.TaskTemplate, error) {
	var tmpl models.TaskTemplate
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, description FROM templates WHERE id = ?", id).
		Scan(&tmpl.ID, &tmpl.Title, &tmpl.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TaskTemplate{}, types.NewNotFoundError(fmt.Sprintf("template %s not found", id))
	}
	if err != nil {
		return models.TaskTemplate{}, types.NewStorageError(fmt.Sprintf("query template %s", id), err)
	}
	return tmpl, nil
}

// ListTemplates returns every template ordered by title.
func (s *SQLiteStore) ListTemplates(ctx context.Context) ([]models.TaskTemplate, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, title, description FROM templates ORDER BY title")
	if err != nil {
		return nil, types.NewStorageError("query templates", err)
	}
	defer func() { _ = rows.Close() }()

	templates := []models.TaskTemplate{}
	for rows.Next() {
		var tmpl models.TaskTemplate
		if err := rows.Scan(&tmpl.ID, &tmpl.Title, &tmpl.Description); err != nil {
			return nil, types.NewStorageError("scan template row", err)
		}
		templates = append(templates, tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewStorageError("iterate template rows", err)
	}
	return templates, nil
}

// DeleteTemplate removes a template by id.
func (s *SQLiteStore) DeleteTemplate(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM templates WHERE id = ?", id)
	if err != nil {
		return types.NewStorageError(fmt.Sprintf("delete template %s", id), err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return types.NewNotFoundError(fmt.Sprintf("template %s not found", id))
	}

	s.hub.Notify(ctx, CollectionTemplates)
	return nil
}

// GetSettings reads the singleton settings row. A missing row is not an
// error: callers get the empty shell, matching first-run behavior.
func (s *SQLiteStore) GetSettings(ctx context.Context) (models.AppSettings, error) {
	var settings models.AppSettings
	err := s.db.QueryRowContext(ctx, `
		SELECT id, github_token, github_owner, github_repo
		FROM settings WHERE id = ?
	`, models.SettingsID).Scan(&settings.ID, &settings.GitHubToken, &settings.GitHubOwner, &settings.GitHubRepo)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.AppSettings{}, types.NewStorageError("query settings", err)
	}
	return settings, nil
}

// PutSettings upserts the singleton row. The fixed key is forced here so
// no caller can ever create a second settings row.
func (s *SQLiteStore) PutSettings(ctx context.Context, settings models.AppSettings) error {
	settings.ID = models.SettingsID

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (id, github_token, github_owner, github_repo)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			github_token = excluded.github_token,
			github_owner = excluded.github_owner,
			github_repo = excluded.github_repo
	`, settings.ID, settings.GitHubToken, settings.GitHubOwner, settings.GitHubRepo)
	if err != nil {
		return types.NewStorageError("upsert settings", err)
	}

	s.hub.Notify(ctx, CollectionSettings)
	return nil
}
