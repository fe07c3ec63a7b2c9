package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hancomics/prodboard/internal/domain/task"
	"github.com/hancomics/prodboard/internal/repository"
)

// TaskRepository implements task.Repository for SQLite
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a daily task.
func (r *TaskRepository) Create(ctx context.Context, t *task.DailyTask) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_tasks (id, project_id, process_id, episode, date, note, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.ProjectID, t.ProcessID, t.Episode, t.Date, t.Note, boolToInt(t.Completed))
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// Get retrieves a task by ID.
func (r *TaskRepository) Get(ctx context.Context, id string) (*task.DailyTask, error) {
	var t task.DailyTask
	var completed int
	err := r.db.QueryRowContext(ctx, `
		SELECT id, project_id, process_id, episode, date, note, completed
		FROM daily_tasks WHERE id = ?
	`, id).Scan(&t.ID, &t.ProjectID, &t.ProcessID, &t.Episode, &t.Date, &t.Note, &completed)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	t.Completed = completed != 0
	return &t, nil
}

// ListByDate returns all tasks for one calendar day.
func (r *TaskRepository) ListByDate(ctx context.Context, date string) ([]task.DailyTask, error) {
	return r.queryTasks(ctx, `
		SELECT id, project_id, process_id, episode, date, note, completed
		FROM daily_tasks WHERE date = ?
		ORDER BY project_id, process_id, episode
	`, date)
}

// ListMatching returns every task for the exact tuple and date. Duplicates
// are possible and all are returned.
func (r *TaskRepository) ListMatching(ctx context.Context, projectID string, processID, episode int, date string) ([]task.DailyTask, error) {
	return r.queryTasks(ctx, `
		SELECT id, project_id, process_id, episode, date, note, completed
		FROM daily_tasks
		WHERE project_id = ? AND process_id = ? AND episode = ? AND date = ?
	`, projectID, processID, episode, date)
}

// SetCompleted flips a task's completed flag.
func (r *TaskRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE daily_tasks SET completed = ? WHERE id = ?`, boolToInt(completed), id)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireRow(result)
}

// Delete removes a task.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM daily_tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireRow(result)
}

func (r *TaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]task.DailyTask, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var out []task.DailyTask
	for rows.Next() {
		var t task.DailyTask
		var completed int
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.ProcessID, &t.Episode, &t.Date, &t.Note, &completed); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		t.Completed = completed != 0
		out = append(out, t)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
