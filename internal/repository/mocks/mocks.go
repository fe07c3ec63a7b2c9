package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/hancomics/prodboard/internal/domain/activity"
	"github.com/hancomics/prodboard/internal/domain/delivery"
	"github.com/hancomics/prodboard/internal/domain/launch"
	"github.com/hancomics/prodboard/internal/domain/project"
	"github.com/hancomics/prodboard/internal/domain/task"
	"github.com/hancomics/prodboard/internal/domain/worker"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.ProjectSummary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.ProjectSummary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) UpdateMeta(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProjectRepository) SetCell(ctx context.Context, projectID, key string, cell project.CellState, modified time.Time) error {
	args := m.Called(ctx, projectID, key, cell, modified)
	return args.Error(0)
}

func (m *ProjectRepository) DeleteCells(ctx context.Context, projectID string, keys []string, modified time.Time) error {
	args := m.Called(ctx, projectID, keys, modified)
	return args.Error(0)
}

func (m *ProjectRepository) SetProcesses(ctx context.Context, projectID string, procs []project.Process, modified time.Time) error {
	args := m.Called(ctx, projectID, procs, modified)
	return args.Error(0)
}

func (m *ProjectRepository) SetHiddenEpisodes(ctx context.Context, projectID string, episodes []int, modified time.Time) error {
	args := m.Called(ctx, projectID, episodes, modified)
	return args.Error(0)
}

// TaskBridge is a mock for project.TaskBridge.
type TaskBridge struct {
	mock.Mock
}

func (m *TaskBridge) CellStatusChanged(ctx context.Context, projectID string, processID, episode int, status project.CellStatus) error {
	args := m.Called(ctx, projectID, processID, episode, status)
	return args.Error(0)
}

// LaunchMirrors is a mock for project.LaunchMirrors.
type LaunchMirrors struct {
	mock.Mock
}

func (m *LaunchMirrors) EnsureTitle(ctx context.Context, category, title string) error {
	args := m.Called(ctx, category, title)
	return args.Error(0)
}

func (m *LaunchMirrors) RenameTitleEverywhere(ctx context.Context, oldTitle, newTitle string) error {
	args := m.Called(ctx, oldTitle, newTitle)
	return args.Error(0)
}

func (m *LaunchMirrors) RemoveProjectRecords(ctx context.Context, projectID, title string) error {
	args := m.Called(ctx, projectID, title)
	return args.Error(0)
}

// LaunchRepository is a mock for launch.Repository.
type LaunchRepository struct {
	mock.Mock
}

func (m *LaunchRepository) Upsert(ctx context.Context, rec launch.StatusRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *LaunchRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *LaunchRepository) ListByCategory(ctx context.Context, category launch.Category) ([]launch.StatusRecord, error) {
	args := m.Called(ctx, category)
	if list, ok := args.Get(0).([]launch.StatusRecord); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LaunchRepository) ListForTitle(ctx context.Context, category launch.Category, title, projectID string) ([]launch.StatusRecord, error) {
	args := m.Called(ctx, category, title, projectID)
	if list, ok := args.Get(0).([]launch.StatusRecord); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LaunchRepository) RenameTitle(ctx context.Context, category launch.Category, oldTitle, newTitle string) (int64, error) {
	args := m.Called(ctx, category, oldTitle, newTitle)
	return args.Get(0).(int64), args.Error(1)
}

func (m *LaunchRepository) DeleteByProject(ctx context.Context, projectID string) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

func (m *LaunchRepository) EnsureTitleRow(ctx context.Context, category launch.Category, title, projectID string) error {
	args := m.Called(ctx, category, title, projectID)
	return args.Error(0)
}

func (m *LaunchRepository) ListTitles(ctx context.Context, category launch.Category) (map[string]string, error) {
	args := m.Called(ctx, category)
	if titles, ok := args.Get(0).(map[string]string); ok {
		return titles, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LaunchRepository) RenameTitleRow(ctx context.Context, category launch.Category, oldTitle, newTitle string) error {
	args := m.Called(ctx, category, oldTitle, newTitle)
	return args.Error(0)
}

func (m *LaunchRepository) DeleteTitleRows(ctx context.Context, title string) error {
	args := m.Called(ctx, title)
	return args.Error(0)
}

// MirrorQueue is a mock for launch.MirrorQueue.
type MirrorQueue struct {
	mock.Mock
}

func (m *MirrorQueue) Enqueue(ctx context.Context, ops []launch.MirrorOp) error {
	args := m.Called(ctx, ops)
	return args.Error(0)
}

func (m *MirrorQueue) ListPending(ctx context.Context, limit int) ([]launch.MirrorOp, error) {
	args := m.Called(ctx, limit)
	if ops, ok := args.Get(0).([]launch.MirrorOp); ok {
		return ops, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MirrorQueue) MarkDone(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MirrorQueue) MarkFailed(ctx context.Context, id string, attempts int, errMsg string) error {
	args := m.Called(ctx, id, attempts, errMsg)
	return args.Error(0)
}

// DeliveryRepository is a mock for delivery.Repository.
type DeliveryRepository struct {
	mock.Mock
}

func (m *DeliveryRepository) GetRecord(ctx context.Context, title, platformID string) (delivery.DeliveryRecord, error) {
	args := m.Called(ctx, title, platformID)
	if rec, ok := args.Get(0).(delivery.DeliveryRecord); ok {
		return rec, args.Error(1)
	}
	return delivery.DeliveryRecord{}, args.Error(1)
}

func (m *DeliveryRepository) UpsertRecord(ctx context.Context, rec delivery.DeliveryRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *DeliveryRepository) DeleteRecord(ctx context.Context, title, platformID string) error {
	args := m.Called(ctx, title, platformID)
	return args.Error(0)
}

func (m *DeliveryRepository) GetCommonSchedule(ctx context.Context, title string) (delivery.CommonSchedule, error) {
	args := m.Called(ctx, title)
	if schedule, ok := args.Get(0).(delivery.CommonSchedule); ok {
		return schedule, args.Error(1)
	}
	return delivery.CommonSchedule{}, args.Error(1)
}

func (m *DeliveryRepository) UpsertCommonSchedule(ctx context.Context, schedule delivery.CommonSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *DeliveryRepository) GetTitleMeta(ctx context.Context, title string) (delivery.TitleMeta, error) {
	args := m.Called(ctx, title)
	if meta, ok := args.Get(0).(delivery.TitleMeta); ok {
		return meta, args.Error(1)
	}
	return delivery.TitleMeta{}, args.Error(1)
}

func (m *DeliveryRepository) SetTitleMeta(ctx context.Context, meta delivery.TitleMeta) error {
	args := m.Called(ctx, meta)
	return args.Error(0)
}

func (m *DeliveryRepository) ListTitleMeta(ctx context.Context) ([]delivery.TitleMeta, error) {
	args := m.Called(ctx)
	if metas, ok := args.Get(0).([]delivery.TitleMeta); ok {
		return metas, args.Error(1)
	}
	return nil, args.Error(1)
}

// LaunchSource is a mock for delivery.LaunchSource.
type LaunchSource struct {
	mock.Mock
}

func (m *LaunchSource) LaunchedPlatformsForTitle(ctx context.Context, title string) ([]string, error) {
	args := m.Called(ctx, title)
	if platforms, ok := args.Get(0).([]string); ok {
		return platforms, args.Error(1)
	}
	return nil, args.Error(1)
}

// ProductionSource is a mock for delivery.ProductionSource.
type ProductionSource struct {
	mock.Mock
}

func (m *ProductionSource) LiveTitles(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if titles, ok := args.Get(0).(map[string]int); ok {
		return titles, args.Error(1)
	}
	return nil, args.Error(1)
}

// TaskRepository is a mock for task.Repository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, t *task.DailyTask) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TaskRepository) Get(ctx context.Context, id string) (*task.DailyTask, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*task.DailyTask); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) ListByDate(ctx context.Context, date string) ([]task.DailyTask, error) {
	args := m.Called(ctx, date)
	if tasks, ok := args.Get(0).([]task.DailyTask); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) ListMatching(ctx context.Context, projectID string, processID, episode int, date string) ([]task.DailyTask, error) {
	args := m.Called(ctx, projectID, processID, episode, date)
	if tasks, ok := args.Get(0).([]task.DailyTask); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	args := m.Called(ctx, id, completed)
	return args.Error(0)
}

func (m *TaskRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WorkerRepository is a mock for worker.Repository.
type WorkerRepository struct {
	mock.Mock
}

func (m *WorkerRepository) Create(ctx context.Context, w *worker.Worker) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *WorkerRepository) Get(ctx context.Context, id string) (*worker.Worker, error) {
	args := m.Called(ctx, id)
	if w, ok := args.Get(0).(*worker.Worker); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *WorkerRepository) List(ctx context.Context) ([]worker.Worker, error) {
	args := m.Called(ctx)
	if workers, ok := args.Get(0).([]worker.Worker); ok {
		return workers, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *WorkerRepository) Update(ctx context.Context, w *worker.Worker) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *WorkerRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if entries, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}
