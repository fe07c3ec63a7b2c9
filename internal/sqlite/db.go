package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema.
func (db *DB) RunMigrations() error {
	migration := `
-- Projects
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    episode_count INTEGER NOT NULL DEFAULT 1,
    start_episode INTEGER NOT NULL DEFAULT 1,
    status TEXT NOT NULL CHECK(status IN ('production', 'scheduled', 'live', 'completed')),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    last_modified TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_project_title ON projects(title);
CREATE INDEX IF NOT EXISTS idx_project_status ON projects(status);

-- Per-project process lists
CREATE TABLE IF NOT EXISTS processes (
    project_id TEXT NOT NULL,
    id INTEGER NOT NULL,
    name TEXT NOT NULL,
    assignee TEXT NOT NULL DEFAULT '',
    position INTEGER NOT NULL,
    PRIMARY KEY (project_id, id),
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

-- Status grid cells, keyed "<processId>-<episode>"
CREATE TABLE IF NOT EXISTS status_cells (
    project_id TEXT NOT NULL,
    cell_key TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('none', 'inProgress', 'done', 'final')),
    text TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (project_id, cell_key),
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

-- Hidden-episode overlay
CREATE TABLE IF NOT EXISTS hidden_episodes (
    project_id TEXT NOT NULL,
    episode INTEGER NOT NULL,
    PRIMARY KEY (project_id, episode),
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

-- Distribution status rows. One logical (title, category, platform) fact can
-- exist under several physical keys (current project scheme plus legacy
-- schemes); the reconciler folds them on read.
CREATE TABLE IF NOT EXISTS launch_statuses (
    key TEXT PRIMARY KEY,
    scheme TEXT NOT NULL CHECK(scheme IN ('project', 'title', 'title-doc')),
    project_id TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL,
    platform_id TEXT NOT NULL,
    category TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('none', 'pending', 'launched', 'rejected')),
    ts INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_launch_category ON launch_statuses(category);
CREATE INDEX IF NOT EXISTS idx_launch_title ON launch_statuses(category, title);
CREATE INDEX IF NOT EXISTS idx_launch_project ON launch_statuses(project_id);

-- Per-category title registry, so mirrored rows exist from creation on
CREATE TABLE IF NOT EXISTS launch_titles (
    category TEXT NOT NULL,
    title TEXT NOT NULL,
    project_id TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (category, title)
);

-- Queued legacy-key write-through operations
CREATE TABLE IF NOT EXISTS mirror_queue (
    id TEXT PRIMARY KEY,
    kind TEXT NOT NULL CHECK(kind IN ('upsert', 'delete')),
    key TEXT NOT NULL,
    scheme TEXT NOT NULL,
    project_id TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL,
    platform_id TEXT NOT NULL,
    category TEXT NOT NULL,
    status TEXT NOT NULL,
    ts INTEGER NOT NULL,
    attempts INTEGER NOT NULL DEFAULT 0,
    last_error TEXT NOT NULL DEFAULT '',
    done INTEGER NOT NULL DEFAULT 0,
    enqueued_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_mirror_pending ON mirror_queue(done, enqueued_at);

-- Delivery records: sparse delivered-episode sets as JSON documents
CREATE TABLE IF NOT EXISTS delivery_records (
    title TEXT NOT NULL,
    platform_id TEXT NOT NULL,
    episodes TEXT NOT NULL DEFAULT '{}',
    schedule TEXT NOT NULL DEFAULT '{}',
    PRIMARY KEY (title, platform_id)
);

-- Per-title common open/due schedules
CREATE TABLE IF NOT EXISTS common_schedules (
    title TEXT PRIMARY KEY,
    open TEXT NOT NULL DEFAULT '{}',
    due TEXT NOT NULL DEFAULT '{}'
);

-- Per-title delivery metadata
CREATE TABLE IF NOT EXISTS title_meta (
    title TEXT PRIMARY KEY,
    delivery_day TEXT NOT NULL DEFAULT ''
);

-- Daily tasks
CREATE TABLE IF NOT EXISTS daily_tasks (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    process_id INTEGER NOT NULL,
    episode INTEGER NOT NULL,
    date TEXT NOT NULL,
    note TEXT NOT NULL DEFAULT '',
    completed INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_task_date ON daily_tasks(date);
CREATE INDEX IF NOT EXISTS idx_task_tuple ON daily_tasks(project_id, process_id, episode, date);

-- Worker registry
CREATE TABLE IF NOT EXISTS workers (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    team TEXT NOT NULL DEFAULT ''
);

-- Audit log
CREATE TABLE IF NOT EXISTS activity_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id TEXT,
    title TEXT,
    activity_type TEXT NOT NULL,
    summary TEXT NOT NULL,
    details TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_activity_project ON activity_log(project_id);
CREATE INDEX IF NOT EXISTS idx_activity_created ON activity_log(created_at);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
