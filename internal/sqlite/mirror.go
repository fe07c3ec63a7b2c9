package sqlite

import (
	"context"
	"fmt"

	"github.com/hancomics/prodboard/internal/domain/launch"
	"github.com/hancomics/prodboard/internal/repository"
)

// MirrorQueueRepository implements launch.MirrorQueue for SQLite
type MirrorQueueRepository struct {
	db *DB
}

// NewMirrorQueueRepository creates a new MirrorQueueRepository
func NewMirrorQueueRepository(db *DB) *MirrorQueueRepository {
	return &MirrorQueueRepository{db: db}
}

// Enqueue stores a batch of mirror operations.
func (r *MirrorQueueRepository) Enqueue(ctx context.Context, ops []launch.MirrorOp) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, op := range ops {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO mirror_queue (id, kind, key, scheme, project_id, title, platform_id, category, status, ts, enqueued_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			op.ID, string(op.Kind), op.Record.Key, string(op.Record.Scheme),
			op.Record.ProjectID, op.Record.Title, op.Record.PlatformID,
			string(op.Record.Category), string(op.Record.Status),
			op.Record.Timestamp, op.EnqueuedAt,
		); err != nil {
			if isUniqueViolation(err) {
				return repository.ErrConflict
			}
			return fmt.Errorf("failed to enqueue mirror op: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListPending returns the oldest undone operations, up to limit.
func (r *MirrorQueueRepository) ListPending(ctx context.Context, limit int) ([]launch.MirrorOp, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, key, scheme, project_id, title, platform_id, category, status, ts, attempts, last_error, enqueued_at
		FROM mirror_queue
		WHERE done = 0
		ORDER BY enqueued_at ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending ops: %w", err)
	}
	defer rows.Close()

	var ops []launch.MirrorOp
	for rows.Next() {
		var op launch.MirrorOp
		var kind, scheme, category, status string
		if err := rows.Scan(
			&op.ID, &kind, &op.Record.Key, &scheme, &op.Record.ProjectID,
			&op.Record.Title, &op.Record.PlatformID, &category, &status,
			&op.Record.Timestamp, &op.Attempts, &op.LastError, &op.EnqueuedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan mirror op: %w", err)
		}
		op.Kind = launch.MirrorOpKind(kind)
		op.Record.Scheme = launch.KeyScheme(scheme)
		op.Record.Category = launch.Category(category)
		op.Record.Status = launch.Status(status)
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

// MarkDone flags an operation as applied.
func (r *MirrorQueueRepository) MarkDone(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE mirror_queue SET done = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to mark op done: %w", err)
	}
	return nil
}

// MarkFailed records a failed attempt so the next sweep retries it.
func (r *MirrorQueueRepository) MarkFailed(ctx context.Context, id string, attempts int, errMsg string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE mirror_queue SET attempts = ?, last_error = ? WHERE id = ?`,
		attempts, errMsg, id); err != nil {
		return fmt.Errorf("failed to mark op failed: %w", err)
	}
	return nil
}
