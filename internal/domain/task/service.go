package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hancomics/prodboard/internal/domain/project"
	"github.com/hancomics/prodboard/internal/repository"
)

// Service handles the daily task list and its bridge to the status grid.
//
// The bridge is bidirectional only at the moment of a user action: a grid
// cell moving to done or none flips today's matching tasks, and a task
// toggle writes the matching grid cell. There is no continuous
// reconciliation pass, and edits never touch past- or future-dated tasks.
type Service struct {
	tasks    Repository
	projects project.Repository
	logger   *slog.Logger
}

// NewService creates a new task service.
func NewService(tasks Repository, projects project.Repository, logger *slog.Logger) *Service {
	return &Service{tasks: tasks, projects: projects, logger: logger}
}

// CreateRequest describes a new daily task.
type CreateRequest struct {
	ProjectID string
	ProcessID int
	Episode   int
	Date      string
	Note      string
}

// Create adds a daily task. An empty date defaults to today.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*DailyTask, error) {
	if req.ProjectID == "" || req.ProcessID < 1 || req.Episode < 1 {
		return nil, ErrInvalidInput
	}
	date := req.Date
	if date == "" {
		date = Today()
	}
	if _, err := time.Parse(DateFormat, date); err != nil {
		return nil, ErrInvalidInput
	}

	t := &DailyTask{
		ID:        uuid.NewString(),
		ProjectID: req.ProjectID,
		ProcessID: req.ProcessID,
		Episode:   req.Episode,
		Date:      date,
		Note:      req.Note,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return t, nil
}

// ListByDate returns the task list for one calendar day.
func (s *Service) ListByDate(ctx context.Context, date string) ([]DailyTask, error) {
	if date == "" {
		date = Today()
	}
	return s.tasks.ListByDate(ctx, date)
}

// Delete removes a daily task.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

// Toggle sets a task's completed flag and pushes the matching update into
// the status grid: completed goes to done, uncompleted goes to none. The
// task write is the primary one; a grid push failure is logged, not
// surfaced.
func (s *Service) Toggle(ctx context.Context, id string, completed bool) (*DailyTask, error) {
	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("loading task: %w", err)
	}

	if err := s.tasks.SetCompleted(ctx, id, completed); err != nil {
		return nil, fmt.Errorf("toggling task: %w", err)
	}
	t.Completed = completed

	status := project.StatusNone
	if completed {
		status = project.StatusDone
	}
	if err := s.pushToGrid(ctx, t, status); err != nil {
		s.logger.Warn("task-to-grid push failed", "task", id, "error", err)
	}
	return t, nil
}

// pushToGrid writes the cell for the task's tuple, preserving text.
func (s *Service) pushToGrid(ctx context.Context, t *DailyTask, status project.CellStatus) error {
	proj, err := s.projects.Get(ctx, t.ProjectID)
	if err != nil {
		return fmt.Errorf("loading project: %w", err)
	}
	cell := proj.Grid.Get(t.ProcessID, t.Episode)
	cell.Status = status
	key := project.CellKey(t.ProcessID, t.Episode)
	if err := s.projects.SetCell(ctx, t.ProjectID, key, cell, time.Now()); err != nil {
		return fmt.Errorf("writing grid cell: %w", err)
	}
	return nil
}

// CellStatusChanged is the grid-to-task direction of the bridge. Only cells
// changed for the current calendar day's tasks are affected; historical
// daily-task records are never retroactively flipped.
func (s *Service) CellStatusChanged(ctx context.Context, projectID string, processID, episode int, status project.CellStatus) error {
	if status != project.StatusDone && status != project.StatusNone {
		return nil
	}
	matches, err := s.tasks.ListMatching(ctx, projectID, processID, episode, Today())
	if err != nil {
		return fmt.Errorf("matching today's tasks: %w", err)
	}
	completed := status == project.StatusDone
	for _, t := range matches {
		if t.Completed == completed {
			continue
		}
		if err := s.tasks.SetCompleted(ctx, t.ID, completed); err != nil {
			return fmt.Errorf("updating task %s: %w", t.ID, err)
		}
	}
	return nil
}
