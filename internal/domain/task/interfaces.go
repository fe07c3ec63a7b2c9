package task

import "context"

// Repository manages daily-task persistence.
type Repository interface {
	Create(ctx context.Context, t *DailyTask) error
	Get(ctx context.Context, id string) (*DailyTask, error)
	ListByDate(ctx context.Context, date string) ([]DailyTask, error)
	// ListMatching returns every task for the exact (project, process,
	// episode, date) tuple. Duplicates are possible and all are returned.
	ListMatching(ctx context.Context, projectID string, processID, episode int, date string) ([]DailyTask, error)
	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
}
