package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	// Verify all tables were created
	tables := []string{
		"projects",
		"processes",
		"status_cells",
		"hidden_episodes",
		"launch_statuses",
		"launch_titles",
		"mirror_queue",
		"delivery_records",
		"common_schedules",
		"title_meta",
		"daily_tasks",
		"workers",
		"activity_log",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestStatusCellConstraints verifies grid cell constraints
func TestStatusCellConstraints(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO projects (id, title, episode_count, start_episode, status) VALUES (?, ?, ?, ?, ?)`,
		"p1", "감금연휴", 10, 1, "production")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO status_cells (project_id, cell_key, status, text) VALUES (?, ?, ?, ?)`,
		"p1", "1-3", "done", "")
	require.NoError(t, err)

	// Unknown status values are rejected
	_, err = db.ExecContext(ctx,
		`INSERT INTO status_cells (project_id, cell_key, status, text) VALUES (?, ?, ?, ?)`,
		"p1", "1-4", "finished", "")
	require.Error(t, err, "should fail with invalid status")

	// Cells require an existing project
	_, err = db.ExecContext(ctx,
		`INSERT INTO status_cells (project_id, cell_key, status, text) VALUES (?, ?, ?, ?)`,
		"missing", "1-1", "done", "")
	require.Error(t, err, "should fail with invalid project_id")
}

// TestCellCascadeDelete verifies that deleting a project removes its rows
func TestCellCascadeDelete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO projects (id, title, episode_count, start_episode, status) VALUES (?, ?, ?, ?, ?)`,
		"p1", "Test", 10, 1, "live")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO processes (project_id, id, name, position) VALUES (?, ?, ?, ?)`,
		"p1", 1, "Sketch", 0)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO status_cells (project_id, cell_key, status) VALUES (?, ?, ?)`,
		"p1", "1-1", "done")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, "p1")
	require.NoError(t, err)

	var count int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM status_cells WHERE project_id = ?`, "p1").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM processes WHERE project_id = ?`, "p1").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

// TestLaunchStatusConstraints verifies launch status row constraints
func TestLaunchStatusConstraints(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO launch_statuses (key, scheme, project_id, title, platform_id, category, status, ts)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		"domestic-live|p:p1|toomics", "project", "p1", "감금연휴", "toomics", "domestic-live", "launched", 1)
	require.NoError(t, err)

	// Duplicate key is a conflict
	_, err = db.ExecContext(ctx,
		`INSERT INTO launch_statuses (key, scheme, project_id, title, platform_id, category, status, ts)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		"domestic-live|p:p1|toomics", "project", "p1", "감금연휴", "toomics", "domestic-live", "pending", 2)
	require.Error(t, err, "should fail on duplicate key")

	// Unknown scheme is rejected
	_, err = db.ExecContext(ctx,
		`INSERT INTO launch_statuses (key, scheme, project_id, title, platform_id, category, status, ts)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		"x", "legacy", "", "t", "naver", "domestic-live", "launched", 1)
	require.Error(t, err, "should fail with invalid scheme")
}
