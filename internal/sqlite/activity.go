package sqlite

import (
	"context"
	"fmt"

	"github.com/hancomics/prodboard/internal/domain/activity"
)

// ActivityRepository implements activity.Repository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Log appends an audit entry.
func (r *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_log (project_id, title, activity_type, summary, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ProjectID, entry.Title, string(entry.ActivityType), entry.Summary, entry.Details, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}
	return nil
}

// List returns audit entries, newest first, with filtering.
func (r *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	query := `
		SELECT id, project_id, title, activity_type, summary, COALESCE(details, ''), created_at
		FROM activity_log WHERE 1=1
	`
	var args []any
	if opts.ProjectID != nil {
		query += ` AND project_id = ?`
		args = append(args, *opts.ProjectID)
	}
	if opts.Title != nil {
		query += ` AND title = ?`
		args = append(args, *opts.Title)
	}
	if opts.ActivityType != nil {
		query += ` AND activity_type = ?`
		args = append(args, string(*opts.ActivityType))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	query += ` LIMIT ? OFFSET ?`
	args = append(args, limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var out []activity.ActivityEntry
	for rows.Next() {
		var entry activity.ActivityEntry
		var activityType string
		if err := rows.Scan(&entry.ID, &entry.ProjectID, &entry.Title, &activityType, &entry.Summary, &entry.Details, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entry.ActivityType = activity.ActivityType(activityType)
		out = append(out, entry)
	}
	return out, rows.Err()
}
