package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/hancomics/prodboard/internal/repository"
)

// Service handles the worker registry. Workers only label assignees; nothing
// in the status engine depends on them.
type Service struct {
	workers Repository
	logger  *slog.Logger
}

// NewService creates a new worker service.
func NewService(workers Repository, logger *slog.Logger) *Service {
	return &Service{workers: workers, logger: logger}
}

// Create registers a worker.
func (s *Service) Create(ctx context.Context, name, team string) (*Worker, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidInput
	}
	w := &Worker{ID: uuid.NewString(), Name: name, Team: team}
	if err := s.workers.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("creating worker: %w", err)
	}
	return w, nil
}

// Get returns a worker by ID.
func (s *Service) Get(ctx context.Context, id string) (*Worker, error) {
	w, err := s.workers.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("getting worker: %w", err)
	}
	return w, nil
}

// List returns all workers.
func (s *Service) List(ctx context.Context) ([]Worker, error) {
	return s.workers.List(ctx)
}

// Update changes a worker's name or team.
func (s *Service) Update(ctx context.Context, w *Worker) error {
	if w == nil || strings.TrimSpace(w.Name) == "" {
		return ErrInvalidInput
	}
	if err := s.workers.Update(ctx, w); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkerNotFound
		}
		return fmt.Errorf("updating worker: %w", err)
	}
	return nil
}

// Delete removes a worker from the registry.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.workers.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkerNotFound
		}
		return fmt.Errorf("deleting worker: %w", err)
	}
	return nil
}
