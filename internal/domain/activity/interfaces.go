package activity

import "context"

// Repository provides persistence operations for activity entries.
type Repository interface {
	Log(ctx context.Context, entry *ActivityEntry) error
	List(ctx context.Context, opts ListActivityOptions) ([]ActivityEntry, error)
}

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	ProjectID    *string
	Title        *string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
