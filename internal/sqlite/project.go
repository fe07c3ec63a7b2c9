package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hancomics/prodboard/internal/domain/project"
	"github.com/hancomics/prodboard/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a project document with its process list and any seed cells.
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO projects (id, title, episode_count, start_episode, status, created_at, last_modified)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		proj.ID, proj.Title, proj.EpisodeCount, proj.StartEpisode,
		string(proj.Status), proj.CreatedAt, proj.LastModified,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	if err := replaceProcesses(ctx, tx, proj.ID, proj.Processes); err != nil {
		return err
	}
	for key, cell := range proj.Grid {
		if err := upsertCell(ctx, tx, proj.ID, key, cell); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Get loads a full project document: meta, processes, grid, hidden episodes.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	var proj project.Project
	var status string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, episode_count, start_episode, status, created_at, last_modified
		FROM projects WHERE id = ?
	`, id).Scan(
		&proj.ID, &proj.Title, &proj.EpisodeCount, &proj.StartEpisode,
		&status, &proj.CreatedAt, &proj.LastModified,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	proj.Status = project.Lifecycle(status)

	procs, err := r.loadProcesses(ctx, id)
	if err != nil {
		return nil, err
	}
	proj.Processes = procs

	grid, err := r.loadGrid(ctx, id)
	if err != nil {
		return nil, err
	}
	proj.Grid = grid

	hidden, err := r.loadHidden(ctx, id)
	if err != nil {
		return nil, err
	}
	proj.HiddenEpisodes = hidden

	return &proj, nil
}

// List returns all projects with summary information
func (r *ProjectRepository) List(ctx context.Context) ([]project.ProjectSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			p.id, p.title, p.status, p.episode_count, p.start_episode,
			COUNT(pr.id) as process_count,
			p.last_modified
		FROM projects p
		LEFT JOIN processes pr ON pr.project_id = p.id
		GROUP BY p.id, p.title, p.status, p.episode_count, p.start_episode, p.last_modified
		ORDER BY p.last_modified DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var summaries []project.ProjectSummary
	for rows.Next() {
		var s project.ProjectSummary
		var status string
		if err := rows.Scan(&s.ID, &s.Title, &status, &s.EpisodeCount, &s.StartEpisode, &s.ProcessCount, &s.LastModified); err != nil {
			return nil, fmt.Errorf("failed to scan project summary: %w", err)
		}
		s.Status = project.Lifecycle(status)
		summaries = append(summaries, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return summaries, nil
}

// UpdateMeta patches the project's scalar fields. Grid and process writes go
// through their own methods; this never touches them.
func (r *ProjectRepository) UpdateMeta(ctx context.Context, proj *project.Project) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE projects
		SET title = ?, episode_count = ?, start_episode = ?, status = ?, last_modified = ?
		WHERE id = ?
	`,
		proj.Title, proj.EpisodeCount, proj.StartEpisode,
		string(proj.Status), proj.LastModified, proj.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return requireRow(result)
}

// Delete removes the project and everything hanging off it via cascade.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return requireRow(result)
}

// SetCell patches a single grid cell and bumps last_modified.
func (r *ProjectRepository) SetCell(ctx context.Context, projectID, key string, cell project.CellState, modified time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsertCell(ctx, tx, projectID, key, cell); err != nil {
		return err
	}
	if err := touch(ctx, tx, projectID, modified); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteCells removes grid keys and bumps last_modified.
func (r *ProjectRepository) DeleteCells(ctx context.Context, projectID string, keys []string, modified time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, key := range keys {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM status_cells WHERE project_id = ? AND cell_key = ?`,
			projectID, key,
		); err != nil {
			return fmt.Errorf("failed to delete cell %s: %w", key, err)
		}
	}
	if err := touch(ctx, tx, projectID, modified); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SetProcesses replaces the project's process list.
func (r *ProjectRepository) SetProcesses(ctx context.Context, projectID string, procs []project.Process, modified time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM processes WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("failed to clear processes: %w", err)
	}
	if err := replaceProcesses(ctx, tx, projectID, procs); err != nil {
		return err
	}
	if err := touch(ctx, tx, projectID, modified); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SetHiddenEpisodes replaces the hidden-episode overlay.
func (r *ProjectRepository) SetHiddenEpisodes(ctx context.Context, projectID string, episodes []int, modified time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM hidden_episodes WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("failed to clear hidden episodes: %w", err)
	}
	for _, episode := range episodes {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO hidden_episodes (project_id, episode) VALUES (?, ?)`,
			projectID, episode,
		); err != nil {
			return fmt.Errorf("failed to hide episode %d: %w", episode, err)
		}
	}
	if err := touch(ctx, tx, projectID, modified); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *ProjectRepository) loadProcesses(ctx context.Context, projectID string) ([]project.Process, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, assignee FROM processes
		WHERE project_id = ? ORDER BY position ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load processes: %w", err)
	}
	defer rows.Close()

	var procs []project.Process
	for rows.Next() {
		var p project.Process
		if err := rows.Scan(&p.ID, &p.Name, &p.Assignee); err != nil {
			return nil, fmt.Errorf("failed to scan process: %w", err)
		}
		procs = append(procs, p)
	}
	return procs, rows.Err()
}

func (r *ProjectRepository) loadGrid(ctx context.Context, projectID string) (project.Grid, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT cell_key, status, text FROM status_cells WHERE project_id = ?
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load grid: %w", err)
	}
	defer rows.Close()

	grid := project.Grid{}
	for rows.Next() {
		var key, status, text string
		if err := rows.Scan(&key, &status, &text); err != nil {
			return nil, fmt.Errorf("failed to scan cell: %w", err)
		}
		grid[key] = project.CellState{Status: project.CellStatus(status), Text: text}
	}
	return grid, rows.Err()
}

func (r *ProjectRepository) loadHidden(ctx context.Context, projectID string) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT episode FROM hidden_episodes WHERE project_id = ? ORDER BY episode ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load hidden episodes: %w", err)
	}
	defer rows.Close()

	var hidden []int
	for rows.Next() {
		var episode int
		if err := rows.Scan(&episode); err != nil {
			return nil, fmt.Errorf("failed to scan hidden episode: %w", err)
		}
		hidden = append(hidden, episode)
	}
	return hidden, rows.Err()
}

// LiveTitles returns live projects' titles and episode counts, feeding the
// delivery worklist.
func (r *ProjectRepository) LiveTitles(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT title, episode_count FROM projects WHERE status = 'live'`)
	if err != nil {
		return nil, fmt.Errorf("failed to list live titles: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var title string
		var count int
		if err := rows.Scan(&title, &count); err != nil {
			return nil, fmt.Errorf("failed to scan live title: %w", err)
		}
		// Duplicate titles keep the larger count.
		if count > out[title] {
			out[title] = count
		}
	}
	return out, rows.Err()
}

func replaceProcesses(ctx context.Context, tx *sql.Tx, projectID string, procs []project.Process) error {
	for i, p := range procs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO processes (project_id, id, name, assignee, position)
			VALUES (?, ?, ?, ?, ?)
		`, projectID, p.ID, p.Name, p.Assignee, i); err != nil {
			return fmt.Errorf("failed to insert process %d: %w", p.ID, err)
		}
	}
	return nil
}

func upsertCell(ctx context.Context, tx *sql.Tx, projectID, key string, cell project.CellState) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO status_cells (project_id, cell_key, status, text)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(project_id, cell_key) DO UPDATE SET status = excluded.status, text = excluded.text
	`, projectID, key, string(cell.Status), cell.Text)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to upsert cell %s: %w", key, err)
	}
	return nil
}

func touch(ctx context.Context, tx *sql.Tx, projectID string, modified time.Time) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE projects SET last_modified = ? WHERE id = ?`, modified, projectID)
	if err != nil {
		return fmt.Errorf("failed to touch project: %w", err)
	}
	return requireRow(result)
}
