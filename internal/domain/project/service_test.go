package project_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hancomics/prodboard/internal/domain/project"
	"github.com/hancomics/prodboard/internal/repository"
	"github.com/hancomics/prodboard/internal/repository/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testProject(id string) *project.Project {
	return &project.Project{
		ID:           id,
		Title:        "감금연휴",
		Processes:    project.Template(project.TypeGeneral),
		EpisodeCount: 10,
		StartEpisode: 1,
		Grid:         project.Grid{},
		Status:       project.LifecycleProduction,
	}
}

func TestProjectService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := project.NewService(&mocks.ProjectRepository{}, nil, nil, nil, testLogger())

	_, err := svc.Create(ctx, project.CreateRequest{Title: "  ", EpisodeCount: 10})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.Create(ctx, project.CreateRequest{Title: "New Title", EpisodeCount: 0})
	require.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestProjectService_CreateSeedsTemplateAndMirrors(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	mirrors := &mocks.LaunchMirrors{}
	mirrors.On("EnsureTitle", ctx, "domestic-live", "감금연휴").Return(nil)

	svc := project.NewService(repo, nil, nil, mirrors, testLogger())
	proj, err := svc.Create(ctx, project.CreateRequest{
		Title:          "감금연휴",
		Type:           project.TypeAdultRomance,
		EpisodeCount:   10,
		LaunchCategory: "domestic-live",
	})
	require.NoError(t, err)
	require.NotEmpty(t, proj.ID)
	require.Len(t, proj.Processes, 8)
	require.Equal(t, project.LifecycleProduction, proj.Status)
	require.Equal(t, 1, proj.StartEpisode)
	mirrors.AssertExpectations(t)
}

func TestProjectService_CreateSurvivesMirrorFailure(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	mirrors := &mocks.LaunchMirrors{}
	mirrors.On("EnsureTitle", ctx, "domestic-live", "New Title").Return(repository.ErrConflict)

	svc := project.NewService(repo, nil, nil, mirrors, testLogger())
	_, err := svc.Create(ctx, project.CreateRequest{
		Title:          "New Title",
		EpisodeCount:   5,
		LaunchCategory: "domestic-live",
	})
	require.NoError(t, err, "mirror failure must not fail the primary write")
}

func TestProjectService_GetNotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	svc := project.NewService(repo, nil, nil, nil, testLogger())
	_, err := svc.Get(ctx, "missing")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestProjectService_SetCellUnknownProcess(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(testProject("p1"), nil)

	svc := project.NewService(repo, nil, nil, nil, testLogger())
	_, err := svc.SetCell(ctx, "p1", 99, 1, project.CellState{Status: project.StatusDone})
	require.ErrorIs(t, err, project.ErrProcessNotFound)
}

func TestProjectService_SetCellForwardsDoneToBridge(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(testProject("p1"), nil)
	repo.On("SetCell", ctx, "p1", "2-3", mock.Anything, mock.Anything).Return(nil)

	bridge := &mocks.TaskBridge{}
	bridge.On("CellStatusChanged", ctx, "p1", 2, 3, project.StatusDone).Return(nil)

	svc := project.NewService(repo, nil, bridge, nil, testLogger())
	proj, err := svc.SetCell(ctx, "p1", 2, 3, project.CellState{Status: project.StatusDone})
	require.NoError(t, err)
	require.Equal(t, project.StatusDone, proj.Grid.Get(2, 3).Status)
	bridge.AssertExpectations(t)
}

func TestProjectService_SetCellSkipsBridgeForInProgress(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(testProject("p1"), nil)
	repo.On("SetCell", ctx, "p1", "1-1", mock.Anything, mock.Anything).Return(nil)

	bridge := &mocks.TaskBridge{}

	svc := project.NewService(repo, nil, bridge, nil, testLogger())
	_, err := svc.SetCell(ctx, "p1", 1, 1, project.CellState{Status: project.StatusInProgress})
	require.NoError(t, err)
	bridge.AssertNotCalled(t, "CellStatusChanged", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectService_AdvanceCellCycles(t *testing.T) {
	ctx := context.Background()

	proj := testProject("p1")
	proj.Grid.Set(1, 2, project.CellState{Status: project.StatusDone, Text: "note"})

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(proj, nil)
	repo.On("SetCell", ctx, "p1", "1-2", project.CellState{Status: project.StatusFinal, Text: "note"}, mock.Anything).Return(nil)

	svc := project.NewService(repo, nil, nil, nil, testLogger())
	got, err := svc.AdvanceCell(ctx, "p1", 1, 2)
	require.NoError(t, err)
	require.Equal(t, project.StatusFinal, got.Grid.Get(1, 2).Status)
	require.Equal(t, "note", got.Grid.Get(1, 2).Text, "advance must not touch the annotation")
}

func TestProjectService_SetCellTextPreservesStatus(t *testing.T) {
	ctx := context.Background()

	proj := testProject("p1")
	proj.Grid.Set(1, 1, project.CellState{Status: project.StatusFinal})

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(proj, nil)
	repo.On("SetCell", ctx, "p1", "1-1", project.CellState{Status: project.StatusFinal, Text: "fix lettering"}, mock.Anything).Return(nil)

	svc := project.NewService(repo, nil, nil, nil, testLogger())
	got, err := svc.SetCellText(ctx, "p1", 1, 1, "fix lettering")
	require.NoError(t, err)
	require.Equal(t, project.StatusFinal, got.Grid.Get(1, 1).Status)
}

func TestProjectService_SetEpisodeCompleteBulkWrite(t *testing.T) {
	ctx := context.Background()

	proj := testProject("p1")

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(proj, nil)
	repo.On("SetCell", ctx, "p1", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	bridge := &mocks.TaskBridge{}
	bridge.On("CellStatusChanged", ctx, "p1", mock.Anything, 4, project.StatusDone).Return(nil)

	svc := project.NewService(repo, nil, bridge, nil, testLogger())
	got, err := svc.SetEpisodeComplete(ctx, "p1", 4, true)
	require.NoError(t, err)

	for _, proc := range got.Processes {
		require.Equal(t, project.StatusDone, got.Grid.Get(proc.ID, 4).Status)
	}
	repo.AssertNumberOfCalls(t, "SetCell", len(proj.Processes))
	bridge.AssertNumberOfCalls(t, "CellStatusChanged", len(proj.Processes))
}

func TestProjectService_SetEpisodeCompleteUncheckKeepsPartialProgress(t *testing.T) {
	ctx := context.Background()

	proj := testProject("p1")
	proj.Grid.Set(1, 4, project.CellState{Status: project.StatusDone})
	proj.Grid.Set(2, 4, project.CellState{Status: project.StatusFinal})
	proj.Grid.Set(3, 4, project.CellState{Status: project.StatusInProgress})

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(proj, nil)
	repo.On("SetCell", ctx, "p1", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	bridge := &mocks.TaskBridge{}
	bridge.On("CellStatusChanged", ctx, "p1", mock.Anything, 4, project.StatusNone).Return(nil)

	svc := project.NewService(repo, nil, bridge, nil, testLogger())
	got, err := svc.SetEpisodeComplete(ctx, "p1", 4, false)
	require.NoError(t, err)

	require.Equal(t, project.StatusNone, got.Grid.Get(1, 4).Status)
	require.Equal(t, project.StatusInProgress, got.Grid.Get(2, 4).Status)
	require.Equal(t, project.StatusInProgress, got.Grid.Get(3, 4).Status)

	// Only cells landing on done or none cross the task bridge; the untouched
	// processes went none to none, the in-progress ones stayed off it
	repo.AssertNumberOfCalls(t, "SetCell", len(proj.Processes))
	bridge.AssertNumberOfCalls(t, "CellStatusChanged", len(proj.Processes)-2)
}

func TestProjectService_RemoveLastEpisodeFloor(t *testing.T) {
	ctx := context.Background()

	proj := testProject("p1")
	proj.EpisodeCount = 1

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(proj, nil)

	svc := project.NewService(repo, nil, nil, nil, testLogger())
	_, err := svc.RemoveLastEpisode(ctx, "p1")
	require.ErrorIs(t, err, project.ErrEpisodeFloor)
}

func TestProjectService_RemoveLastEpisodeDeletesExactKeys(t *testing.T) {
	ctx := context.Background()

	proj := testProject("p1")
	proj.Processes = []project.Process{{ID: 1, Name: "Sketch"}, {ID: 3, Name: "Ink"}}
	proj.Grid.Set(1, 10, project.CellState{Status: project.StatusDone})
	proj.Grid.Set(3, 10, project.CellState{Status: project.StatusFinal})

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(proj, nil)
	repo.On("DeleteCells", ctx, "p1", []string{"1-10", "3-10"}, mock.Anything).Return(nil)
	repo.On("UpdateMeta", ctx, mock.Anything).Return(nil)

	svc := project.NewService(repo, nil, nil, nil, testLogger())
	got, err := svc.RemoveLastEpisode(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, 9, got.EpisodeCount)
	require.Equal(t, project.StatusNone, got.Grid.Get(1, 10).Status)
	repo.AssertExpectations(t)
}

func TestProjectService_RenamePropagatesToMirrors(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(testProject("p1"), nil)
	repo.On("UpdateMeta", ctx, mock.Anything).Return(nil)

	mirrors := &mocks.LaunchMirrors{}
	mirrors.On("RenameTitleEverywhere", ctx, "감금연휴", "새 제목").Return(nil)

	svc := project.NewService(repo, nil, nil, mirrors, testLogger())
	got, err := svc.Rename(ctx, "p1", "새 제목")
	require.NoError(t, err)
	require.Equal(t, "새 제목", got.Title)
	mirrors.AssertExpectations(t)
}

func TestProjectService_RenameNoOpOnSameTitle(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(testProject("p1"), nil)

	mirrors := &mocks.LaunchMirrors{}

	svc := project.NewService(repo, nil, nil, mirrors, testLogger())
	_, err := svc.Rename(ctx, "p1", "감금연휴")
	require.NoError(t, err)
	repo.AssertNotCalled(t, "UpdateMeta", mock.Anything, mock.Anything)
	mirrors.AssertNotCalled(t, "RenameTitleEverywhere", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectService_HideEpisodesRangeCheck(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(testProject("p1"), nil)

	svc := project.NewService(repo, nil, nil, nil, testLogger())
	_, err := svc.HideEpisodes(ctx, "p1", 5, 11)
	require.ErrorIs(t, err, project.ErrEpisodeOutOfRange)
}

func TestProjectService_HideEpisodesUnion(t *testing.T) {
	ctx := context.Background()

	proj := testProject("p1")
	proj.HiddenEpisodes = []int{2}

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(proj, nil)
	repo.On("SetHiddenEpisodes", ctx, "p1", []int{2, 3, 4}, mock.Anything).Return(nil)

	svc := project.NewService(repo, nil, nil, nil, testLogger())
	got, err := svc.HideEpisodes(ctx, "p1", 2, 4)
	require.NoError(t, err)
	require.Equal(t, []int{2, 3, 4}, got.HiddenEpisodes)
	repo.AssertExpectations(t)
}

func TestProjectService_DeleteRemovesMirrorRecords(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(testProject("p1"), nil)
	repo.On("Delete", ctx, "p1").Return(nil)

	mirrors := &mocks.LaunchMirrors{}
	mirrors.On("RemoveProjectRecords", ctx, "p1", "감금연휴").Return(nil)

	svc := project.NewService(repo, nil, nil, mirrors, testLogger())
	require.NoError(t, svc.Delete(ctx, "p1"))
	mirrors.AssertExpectations(t)
}

func TestProjectService_AddProcessPicksNextFreeID(t *testing.T) {
	ctx := context.Background()

	proj := testProject("p1")
	proj.Processes = []project.Process{{ID: 1, Name: "Sketch"}, {ID: 5, Name: "Ink"}}

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(proj, nil)
	repo.On("SetProcesses", ctx, "p1", mock.Anything, mock.Anything).Return(nil)

	svc := project.NewService(repo, nil, nil, nil, testLogger())
	got, err := svc.AddProcess(ctx, "p1", "Color")
	require.NoError(t, err)
	require.Len(t, got.Processes, 3)
	require.Equal(t, 6, got.Processes[2].ID)
}

func TestProjectService_RemoveProcessKeepsGridData(t *testing.T) {
	ctx := context.Background()

	proj := testProject("p1")
	proj.Processes = []project.Process{{ID: 1, Name: "Sketch"}, {ID: 2, Name: "Ink"}}
	proj.Grid.Set(2, 1, project.CellState{Status: project.StatusDone})

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(proj, nil)
	repo.On("SetProcesses", ctx, "p1", mock.Anything, mock.Anything).Return(nil)

	svc := project.NewService(repo, nil, nil, nil, testLogger())
	got, err := svc.RemoveProcess(ctx, "p1", 2)
	require.NoError(t, err)
	require.Len(t, got.Processes, 1)
	require.Equal(t, project.StatusDone, got.Grid.Get(2, 1).Status, "orphaned cells stay stored")
}
