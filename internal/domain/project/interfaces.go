package project

import (
	"context"
	"time"
)

// Repository manages project persistence. Cell and process writes are
// partial-field patches, not whole-document replacements; the store's
// last-write-wins semantics arbitrate cross-client concurrency.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]ProjectSummary, error)
	UpdateMeta(ctx context.Context, proj *Project) error
	Delete(ctx context.Context, id string) error

	SetCell(ctx context.Context, projectID, key string, cell CellState, modified time.Time) error
	DeleteCells(ctx context.Context, projectID string, keys []string, modified time.Time) error
	SetProcesses(ctx context.Context, projectID string, procs []Process, modified time.Time) error
	SetHiddenEpisodes(ctx context.Context, projectID string, episodes []int, modified time.Time) error
}

// TaskBridge receives grid cell transitions that may affect today's daily
// tasks. Only done and none transitions are forwarded.
type TaskBridge interface {
	CellStatusChanged(ctx context.Context, projectID string, processID, episode int, status CellStatus) error
}

// LaunchMirrors maintains the distribution-side records tied to a project's
// title. All methods are best-effort from the project service's point of
// view: mirror failures never fail the primary project write.
type LaunchMirrors interface {
	EnsureTitle(ctx context.Context, category, title string) error
	RenameTitleEverywhere(ctx context.Context, oldTitle, newTitle string) error
	RemoveProjectRecords(ctx context.Context, projectID, title string) error
}
