package launch

import "context"

// Repository manages distribution status rows and the per-category title
// registry.
type Repository interface {
	Upsert(ctx context.Context, rec StatusRecord) error
	Delete(ctx context.Context, key string) error
	ListByCategory(ctx context.Context, category Category) ([]StatusRecord, error)
	// ListForTitle returns every row for the title in the category under any
	// key scheme, matching by title or, when projectID is non-empty, by
	// project id.
	ListForTitle(ctx context.Context, category Category, title, projectID string) ([]StatusRecord, error)
	RenameTitle(ctx context.Context, category Category, oldTitle, newTitle string) (int64, error)
	DeleteByProject(ctx context.Context, projectID string) error

	EnsureTitleRow(ctx context.Context, category Category, title, projectID string) error
	ListTitles(ctx context.Context, category Category) (map[string]string, error) // title -> project id
	RenameTitleRow(ctx context.Context, category Category, oldTitle, newTitle string) error
	DeleteTitleRows(ctx context.Context, title string) error
}

// MirrorQueue is the durable queue of legacy-key write-through operations.
// The background worker drains it; enqueue failures are logged, never
// surfaced, because the primary write already succeeded.
type MirrorQueue interface {
	Enqueue(ctx context.Context, ops []MirrorOp) error
	ListPending(ctx context.Context, limit int) ([]MirrorOp, error)
	MarkDone(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, attempts int, errMsg string) error
}
