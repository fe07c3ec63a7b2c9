package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hancomics/prodboard/internal/domain/worker"
	"github.com/hancomics/prodboard/internal/repository"
)

// WorkerRepository implements worker.Repository for SQLite
type WorkerRepository struct {
	db *DB
}

// NewWorkerRepository creates a new WorkerRepository
func NewWorkerRepository(db *DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

// Create inserts a worker.
func (r *WorkerRepository) Create(ctx context.Context, w *worker.Worker) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO workers (id, name, team) VALUES (?, ?, ?)`, w.ID, w.Name, w.Team)
	if err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}
	return nil
}

// Get retrieves a worker by ID.
func (r *WorkerRepository) Get(ctx context.Context, id string) (*worker.Worker, error) {
	var w worker.Worker
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, team FROM workers WHERE id = ?`, id).Scan(&w.ID, &w.Name, &w.Team)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	return &w, nil
}

// List returns all workers ordered by name.
func (r *WorkerRepository) List(ctx context.Context) ([]worker.Worker, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, team FROM workers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var out []worker.Worker
	for rows.Next() {
		var w worker.Worker
		if err := rows.Scan(&w.ID, &w.Name, &w.Team); err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Update changes a worker's name or team.
func (r *WorkerRepository) Update(ctx context.Context, w *worker.Worker) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE workers SET name = ?, team = ? WHERE id = ?`, w.Name, w.Team, w.ID)
	if err != nil {
		return fmt.Errorf("failed to update worker: %w", err)
	}
	return requireRow(result)
}

// Delete removes a worker.
func (r *WorkerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM workers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete worker: %w", err)
	}
	return requireRow(result)
}
