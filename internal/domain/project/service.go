package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hancomics/prodboard/internal/domain/activity"
	"github.com/hancomics/prodboard/internal/repository"
)

// Service handles project and status-grid business logic.
type Service struct {
	projects   Repository
	activities activity.Repository
	tasks      TaskBridge
	mirrors    LaunchMirrors
	logger     *slog.Logger
}

// NewService creates a new project service. tasks and mirrors may be nil in
// tests that don't exercise the bridge or the distribution fan-out.
func NewService(projects Repository, activities activity.Repository, tasks TaskBridge, mirrors LaunchMirrors, logger *slog.Logger) *Service {
	return &Service{
		projects:   projects,
		activities: activities,
		tasks:      tasks,
		mirrors:    mirrors,
		logger:     logger,
	}
}

// CreateRequest describes a project creation request.
type CreateRequest struct {
	Title          string
	Type           ProjectType
	EpisodeCount   int
	StartEpisode   int
	LaunchCategory string
}

// Create creates a project from its type's template and fans the title out
// into the distribution mirrors for the requested category.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrInvalidInput
	}
	if req.EpisodeCount < 1 {
		return nil, ErrInvalidInput
	}
	if req.StartEpisode < 1 {
		req.StartEpisode = 1
	}

	now := time.Now()
	proj := &Project{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Processes:    Template(req.Type),
		EpisodeCount: req.EpisodeCount,
		StartEpisode: req.StartEpisode,
		Grid:         Grid{},
		Status:       LifecycleProduction,
		CreatedAt:    now,
		LastModified: now,
	}

	if err := s.projects.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	if s.mirrors != nil && req.LaunchCategory != "" {
		if err := s.mirrors.EnsureTitle(ctx, req.LaunchCategory, proj.Title); err != nil {
			s.logger.Warn("mirror fan-out failed", "project", proj.ID, "error", err)
		}
	}

	s.logActivity(ctx, &activity.ActivityEntry{
		ProjectID:    &proj.ID,
		Title:        &proj.Title,
		ActivityType: activity.TypeProjectCreated,
		Summary:      fmt.Sprintf("created project %q", proj.Title),
	})

	return proj, nil
}

// Get returns a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.projects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns project summaries.
func (s *Service) List(ctx context.Context) ([]ProjectSummary, error) {
	return s.projects.List(ctx)
}

// Delete removes a project and all of its mirrored distribution records.
func (s *Service) Delete(ctx context.Context, id string) error {
	proj, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	if s.mirrors != nil {
		if err := s.mirrors.RemoveProjectRecords(ctx, id, proj.Title); err != nil {
			s.logger.Warn("mirror cleanup failed", "project", id, "error", err)
		}
	}

	s.logActivity(ctx, &activity.ActivityEntry{
		ProjectID:    &id,
		Title:        &proj.Title,
		ActivityType: activity.TypeProjectDeleted,
		Summary:      fmt.Sprintf("deleted project %q", proj.Title),
	})

	return nil
}

// Rename changes a project's title and renames matching distribution rows in
// every category so the title-keyed join holds.
func (s *Service) Rename(ctx context.Context, id, newTitle string) (*Project, error) {
	if strings.TrimSpace(newTitle) == "" {
		return nil, ErrInvalidInput
	}
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldTitle := proj.Title
	if oldTitle == newTitle {
		return proj, nil
	}

	proj.Title = newTitle
	proj.LastModified = time.Now()
	if err := s.projects.UpdateMeta(ctx, proj); err != nil {
		return nil, fmt.Errorf("renaming project: %w", err)
	}

	if s.mirrors != nil {
		if err := s.mirrors.RenameTitleEverywhere(ctx, oldTitle, newTitle); err != nil {
			s.logger.Warn("mirror rename failed", "project", id, "error", err)
		}
	}

	s.logActivity(ctx, &activity.ActivityEntry{
		ProjectID:    &id,
		Title:        &newTitle,
		ActivityType: activity.TypeTitleRenamed,
		Summary:      fmt.Sprintf("renamed %q to %q", oldTitle, newTitle),
	})

	return proj, nil
}

// SetLifecycle moves a project between production/scheduled/live/completed.
func (s *Service) SetLifecycle(ctx context.Context, id string, status Lifecycle) (*Project, error) {
	switch status {
	case LifecycleProduction, LifecycleScheduled, LifecycleLive, LifecycleCompleted:
	default:
		return nil, ErrInvalidInput
	}
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	proj.Status = status
	proj.LastModified = time.Now()
	if err := s.projects.UpdateMeta(ctx, proj); err != nil {
		return nil, fmt.Errorf("updating lifecycle: %w", err)
	}
	return proj, nil
}

// SetCell replaces the stored cell state for one (process, episode) key and
// forwards done/none transitions to the daily-task bridge.
func (s *Service) SetCell(ctx context.Context, id string, processID, episode int, cell CellState) (*Project, error) {
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !hasProcess(proj.Processes, processID) {
		return nil, ErrProcessNotFound
	}

	proj.Grid.Set(processID, episode, cell)
	proj.LastModified = time.Now()
	if err := s.projects.SetCell(ctx, id, CellKey(processID, episode), cell, proj.LastModified); err != nil {
		return nil, fmt.Errorf("setting cell: %w", err)
	}

	s.notifyBridge(ctx, id, processID, episode, cell.Status)

	s.logActivity(ctx, &activity.ActivityEntry{
		ProjectID:    &id,
		Title:        &proj.Title,
		ActivityType: activity.TypeCellUpdated,
		Summary:      fmt.Sprintf("process %d episode %d -> %s", processID, episode, cell.Status),
	})

	return proj, nil
}

// AdvanceCell applies the four-state cycle to a cell's status, keeping text.
func (s *Service) AdvanceCell(ctx context.Context, id string, processID, episode int) (*Project, error) {
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cell := proj.Grid.Get(processID, episode)
	cell.Status = Advance(cell.Status)
	return s.SetCell(ctx, id, processID, episode, cell)
}

// ToggleCell applies the quick completion toggle to a cell's status.
func (s *Service) ToggleCell(ctx context.Context, id string, processID, episode int) (*Project, error) {
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cell := proj.Grid.Get(processID, episode)
	cell.Status = Toggle(cell.Status)
	return s.SetCell(ctx, id, processID, episode, cell)
}

// SetCellText edits a cell's annotation without touching its status.
func (s *Service) SetCellText(ctx context.Context, id string, processID, episode int, text string) (*Project, error) {
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !hasProcess(proj.Processes, processID) {
		return nil, ErrProcessNotFound
	}

	cell := proj.Grid.Get(processID, episode)
	cell.Text = text
	proj.Grid.Set(processID, episode, cell)
	proj.LastModified = time.Now()
	if err := s.projects.SetCell(ctx, id, CellKey(processID, episode), cell, proj.LastModified); err != nil {
		return nil, fmt.Errorf("setting cell text: %w", err)
	}
	return proj, nil
}

// SetEpisodeComplete is the whole-episode checkbox: a bulk cell write across
// every current process. Checking marks each cell done; unchecking reverts
// done cells to none and keeps partially worked cells at inProgress.
func (s *Service) SetEpisodeComplete(ctx context.Context, id string, episode int, checked bool) (*Project, error) {
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	proj.LastModified = time.Now()
	for _, proc := range proj.Processes {
		cell := proj.Grid.Get(proc.ID, episode)
		cell.Status = ToggleTo(cell.Status, checked)
		proj.Grid.Set(proc.ID, episode, cell)
		if err := s.projects.SetCell(ctx, id, CellKey(proc.ID, episode), cell, proj.LastModified); err != nil {
			return nil, fmt.Errorf("setting cell: %w", err)
		}
		s.notifyBridge(ctx, id, proc.ID, episode, cell.Status)
	}

	summary := fmt.Sprintf("episode %d unchecked", episode)
	if checked {
		summary = fmt.Sprintf("episode %d completed", episode)
	}
	s.logActivity(ctx, &activity.ActivityEntry{
		ProjectID:    &id,
		Title:        &proj.Title,
		ActivityType: activity.TypeCellUpdated,
		Summary:      summary,
	})

	return proj, nil
}

// IsEpisodeFullyComplete reports whether every current process has a done or
// final cell for the episode.
func (s *Service) IsEpisodeFullyComplete(ctx context.Context, id string, episode int) (bool, error) {
	proj, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return IsEpisodeFullyComplete(proj.Grid, proj.Processes, episode), nil
}

// AddEpisode extends the display range by one episode.
func (s *Service) AddEpisode(ctx context.Context, id string) (*Project, error) {
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	proj.EpisodeCount++
	proj.LastModified = time.Now()
	if err := s.projects.UpdateMeta(ctx, proj); err != nil {
		return nil, fmt.Errorf("adding episode: %w", err)
	}

	s.logActivity(ctx, &activity.ActivityEntry{
		ProjectID:    &id,
		Title:        &proj.Title,
		ActivityType: activity.TypeEpisodeAdded,
		Summary:      fmt.Sprintf("episode %d added", proj.LastEpisode()),
	})

	return proj, nil
}

// RemoveLastEpisode drops the highest episode: its grid keys are deleted
// across all current processes and the count decrements. Destructive and
// irreversible at this layer; removal below one episode is rejected.
func (s *Service) RemoveLastEpisode(ctx context.Context, id string) (*Project, error) {
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if proj.EpisodeCount <= 1 {
		return nil, ErrEpisodeFloor
	}

	removed := proj.LastEpisode()
	keys := make([]string, 0, len(proj.Processes))
	for _, proc := range proj.Processes {
		keys = append(keys, CellKey(proc.ID, removed))
	}

	proj.Grid.DeleteEpisode(removed, proj.Processes)
	proj.EpisodeCount--
	proj.LastModified = time.Now()

	if err := s.projects.DeleteCells(ctx, id, keys, proj.LastModified); err != nil {
		return nil, fmt.Errorf("deleting episode cells: %w", err)
	}
	if err := s.projects.UpdateMeta(ctx, proj); err != nil {
		return nil, fmt.Errorf("removing episode: %w", err)
	}

	s.logActivity(ctx, &activity.ActivityEntry{
		ProjectID:    &id,
		Title:        &proj.Title,
		ActivityType: activity.TypeEpisodeRemoved,
		Summary:      fmt.Sprintf("episode %d removed", removed),
	})

	return proj, nil
}

// HideEpisodes adds the inclusive range [from, to] to the hidden overlay.
// The overlay only suppresses display membership; grid data stays intact.
func (s *Service) HideEpisodes(ctx context.Context, id string, from, to int) (*Project, error) {
	if from > to {
		from, to = to, from
	}
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !proj.InRange(from) || !proj.InRange(to) {
		return nil, ErrEpisodeOutOfRange
	}

	hidden := HiddenSet(proj.HiddenEpisodes)
	for e := from; e <= to; e++ {
		hidden = hidden.Hide(e)
	}
	proj.HiddenEpisodes = hidden
	proj.LastModified = time.Now()
	if err := s.projects.SetHiddenEpisodes(ctx, id, proj.HiddenEpisodes, proj.LastModified); err != nil {
		return nil, fmt.Errorf("hiding episodes: %w", err)
	}
	return proj, nil
}

// ShowAllEpisodes clears the hidden overlay.
func (s *Service) ShowAllEpisodes(ctx context.Context, id string) (*Project, error) {
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	proj.HiddenEpisodes = nil
	proj.LastModified = time.Now()
	if err := s.projects.SetHiddenEpisodes(ctx, id, nil, proj.LastModified); err != nil {
		return nil, fmt.Errorf("clearing hidden episodes: %w", err)
	}
	return proj, nil
}

// AddProcess appends a process with the next free id.
func (s *Service) AddProcess(ctx context.Context, id, name string) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidInput
	}
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := 1
	for _, proc := range proj.Processes {
		if proc.ID >= next {
			next = proc.ID + 1
		}
	}
	proj.Processes = append(proj.Processes, Process{ID: next, Name: name})
	return s.saveProcesses(ctx, proj, fmt.Sprintf("process %q added", name))
}

// RenameProcess changes a process display name.
func (s *Service) RenameProcess(ctx context.Context, id string, processID int, name string) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidInput
	}
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	idx := processIndex(proj.Processes, processID)
	if idx < 0 {
		return nil, ErrProcessNotFound
	}
	proj.Processes[idx].Name = name
	return s.saveProcesses(ctx, proj, fmt.Sprintf("process %d renamed to %q", processID, name))
}

// AssignProcess sets or clears a process assignee.
func (s *Service) AssignProcess(ctx context.Context, id string, processID int, workerID string) (*Project, error) {
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	idx := processIndex(proj.Processes, processID)
	if idx < 0 {
		return nil, ErrProcessNotFound
	}
	proj.Processes[idx].Assignee = workerID
	return s.saveProcesses(ctx, proj, fmt.Sprintf("process %d assigned to %q", processID, workerID))
}

// RemoveProcess drops a process from the list. Its grid cells stay stored
// but stop being displayable or counted toward episode completion.
func (s *Service) RemoveProcess(ctx context.Context, id string, processID int) (*Project, error) {
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	idx := processIndex(proj.Processes, processID)
	if idx < 0 {
		return nil, ErrProcessNotFound
	}
	proj.Processes = append(proj.Processes[:idx], proj.Processes[idx+1:]...)
	return s.saveProcesses(ctx, proj, fmt.Sprintf("process %d removed", processID))
}

func (s *Service) saveProcesses(ctx context.Context, proj *Project, summary string) (*Project, error) {
	proj.LastModified = time.Now()
	if err := s.projects.SetProcesses(ctx, proj.ID, proj.Processes, proj.LastModified); err != nil {
		return nil, fmt.Errorf("saving processes: %w", err)
	}
	s.logActivity(ctx, &activity.ActivityEntry{
		ProjectID:    &proj.ID,
		Title:        &proj.Title,
		ActivityType: activity.TypeProcessChanged,
		Summary:      summary,
	})
	return proj, nil
}

// notifyBridge forwards done/none transitions to the daily-task bridge.
// Bridge failures are logged, never surfaced: the grid write already stuck.
func (s *Service) notifyBridge(ctx context.Context, id string, processID, episode int, status CellStatus) {
	if s.tasks == nil {
		return
	}
	if status != StatusDone && status != StatusNone {
		return
	}
	if err := s.tasks.CellStatusChanged(ctx, id, processID, episode, status); err != nil {
		s.logger.Warn("daily-task bridge failed", "project", id, "process", processID, "episode", episode, "error", err)
	}
}

func (s *Service) logActivity(ctx context.Context, entry *activity.ActivityEntry) {
	if s.activities == nil {
		return
	}
	entry.CreatedAt = time.Now()
	_ = s.activities.Log(ctx, entry)
}

func hasProcess(procs []Process, id int) bool {
	return processIndex(procs, id) >= 0
}

func processIndex(procs []Process, id int) int {
	for i, proc := range procs {
		if proc.ID == id {
			return i
		}
	}
	return -1
}
