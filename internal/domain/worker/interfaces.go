package worker

import "context"

// Repository manages worker persistence.
type Repository interface {
	Create(ctx context.Context, w *Worker) error
	Get(ctx context.Context, id string) (*Worker, error)
	List(ctx context.Context) ([]Worker, error)
	Update(ctx context.Context, w *Worker) error
	Delete(ctx context.Context, id string) error
}
