package sqlite

import (
	"context"
	"fmt"

	"github.com/hancomics/prodboard/internal/domain/launch"
)

// LaunchRepository implements launch.Repository for SQLite
type LaunchRepository struct {
	db *DB
}

// NewLaunchRepository creates a new LaunchRepository
func NewLaunchRepository(db *DB) *LaunchRepository {
	return &LaunchRepository{db: db}
}

// Upsert writes a status row, idempotent by key.
func (r *LaunchRepository) Upsert(ctx context.Context, rec launch.StatusRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO launch_statuses (key, scheme, project_id, title, platform_id, category, status, ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			scheme = excluded.scheme,
			project_id = excluded.project_id,
			title = excluded.title,
			platform_id = excluded.platform_id,
			category = excluded.category,
			status = excluded.status,
			ts = excluded.ts
	`,
		rec.Key, string(rec.Scheme), rec.ProjectID, rec.Title,
		rec.PlatformID, string(rec.Category), string(rec.Status), rec.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert status: %w", err)
	}
	return nil
}

// Delete removes a status row. Deleting a missing key is not an error; the
// mirror queue replays deletes.
func (r *LaunchRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM launch_statuses WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete status: %w", err)
	}
	return nil
}

// ListByCategory returns every status row in a category.
func (r *LaunchRepository) ListByCategory(ctx context.Context, category launch.Category) ([]launch.StatusRecord, error) {
	return r.queryRecords(ctx, `
		SELECT key, scheme, project_id, title, platform_id, category, status, ts
		FROM launch_statuses WHERE category = ?
		ORDER BY key ASC
	`, string(category))
}

// ListForTitle returns every row for a title in a category under any key
// scheme, matched by title string or project id.
func (r *LaunchRepository) ListForTitle(ctx context.Context, category launch.Category, title, projectID string) ([]launch.StatusRecord, error) {
	if projectID != "" {
		return r.queryRecords(ctx, `
			SELECT key, scheme, project_id, title, platform_id, category, status, ts
			FROM launch_statuses
			WHERE category = ? AND (title = ? OR project_id = ?)
			ORDER BY key ASC
		`, string(category), title, projectID)
	}
	return r.queryRecords(ctx, `
		SELECT key, scheme, project_id, title, platform_id, category, status, ts
		FROM launch_statuses
		WHERE category = ? AND title = ?
		ORDER BY key ASC
	`, string(category), title)
}

// RenameTitle rewrites the title on every matching row in a category and
// returns how many rows changed. Keys derived from the old title are left in
// place; they keep resolving through the title column.
func (r *LaunchRepository) RenameTitle(ctx context.Context, category launch.Category, oldTitle, newTitle string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE launch_statuses SET title = ? WHERE category = ? AND title = ?
	`, newTitle, string(category), oldTitle)
	if err != nil {
		return 0, fmt.Errorf("failed to rename title: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

// DeleteByProject removes every status row keyed to a project id.
func (r *LaunchRepository) DeleteByProject(ctx context.Context, projectID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM launch_statuses WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("failed to delete project statuses: %w", err)
	}
	return nil
}

// EnsureTitleRow registers a title in a category's registry, idempotently.
func (r *LaunchRepository) EnsureTitleRow(ctx context.Context, category launch.Category, title, projectID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO launch_titles (category, title, project_id) VALUES (?, ?, ?)
		ON CONFLICT(category, title) DO UPDATE SET
			project_id = CASE WHEN excluded.project_id != '' THEN excluded.project_id ELSE launch_titles.project_id END
	`, string(category), title, projectID)
	if err != nil {
		return fmt.Errorf("failed to register title: %w", err)
	}
	return nil
}

// ListTitles returns a category's registered titles mapped to project ids.
func (r *LaunchRepository) ListTitles(ctx context.Context, category launch.Category) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT title, project_id FROM launch_titles WHERE category = ?`, string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var title, projectID string
		if err := rows.Scan(&title, &projectID); err != nil {
			return nil, fmt.Errorf("failed to scan title: %w", err)
		}
		out[title] = projectID
	}
	return out, rows.Err()
}

// RenameTitleRow renames a registry entry, merging into an existing row for
// the new title if one is already registered.
func (r *LaunchRepository) RenameTitleRow(ctx context.Context, category launch.Category, oldTitle, newTitle string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO launch_titles (category, title, project_id)
		SELECT category, ?, project_id FROM launch_titles WHERE category = ? AND title = ?
		ON CONFLICT(category, title) DO NOTHING
	`, newTitle, string(category), oldTitle); err != nil {
		return fmt.Errorf("failed to rename registry row: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM launch_titles WHERE category = ? AND title = ?`,
		string(category), oldTitle); err != nil {
		return fmt.Errorf("failed to drop old registry row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteTitleRows removes a title from every category registry.
func (r *LaunchRepository) DeleteTitleRows(ctx context.Context, title string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM launch_titles WHERE title = ?`, title); err != nil {
		return fmt.Errorf("failed to delete title registry rows: %w", err)
	}
	return nil
}

func (r *LaunchRepository) queryRecords(ctx context.Context, query string, args ...any) ([]launch.StatusRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query statuses: %w", err)
	}
	defer rows.Close()

	var out []launch.StatusRecord
	for rows.Next() {
		var rec launch.StatusRecord
		var scheme, category, status string
		if err := rows.Scan(&rec.Key, &scheme, &rec.ProjectID, &rec.Title, &rec.PlatformID, &category, &status, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan status: %w", err)
		}
		rec.Scheme = launch.KeyScheme(scheme)
		rec.Category = launch.Category(category)
		rec.Status = launch.Status(status)
		out = append(out, rec)
	}
	return out, rows.Err()
}
