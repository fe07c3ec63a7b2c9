package integration_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hancomics/prodboard/internal/domain/delivery"
	"github.com/hancomics/prodboard/internal/domain/launch"
	"github.com/hancomics/prodboard/internal/domain/project"
	"github.com/hancomics/prodboard/internal/domain/task"
	"github.com/hancomics/prodboard/internal/mirror"
	"github.com/hancomics/prodboard/internal/sqlite"
)

var platforms = []string{"naver", "kakao", "lezhin", "toomics"}

type testEnv struct {
	db         *sqlite.DB
	launchRepo *sqlite.LaunchRepository
	queueRepo  *sqlite.MirrorQueueRepository

	projectSvc  *project.Service
	launchSvc   *launch.Service
	deliverySvc *delivery.Service
	taskSvc     *task.Service
	worker      *mirror.Worker
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	projectRepo := sqlite.NewProjectRepository(db)
	launchRepo := sqlite.NewLaunchRepository(db)
	queueRepo := sqlite.NewMirrorQueueRepository(db)
	deliveryRepo := sqlite.NewDeliveryRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	taskSvc := task.NewService(taskRepo, projectRepo, logger)
	launchSvc := launch.NewService(launchRepo, queueRepo, activityRepo, platforms, logger)
	projectSvc := project.NewService(projectRepo, activityRepo, taskSvc, launchSvc, logger)
	deliverySvc := delivery.NewService(deliveryRepo, launchSvc, projectRepo, activityRepo, logger)

	return &testEnv{
		db:          db,
		launchRepo:  launchRepo,
		queueRepo:   queueRepo,
		projectSvc:  projectSvc,
		launchSvc:   launchSvc,
		deliverySvc: deliverySvc,
		taskSvc:     taskSvc,
		worker:      mirror.New(queueRepo, launchRepo, time.Second, 50, 3, logger),
	}
}

func TestIntegration_GridCompletion(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	proj, err := env.projectSvc.Create(ctx, project.CreateRequest{
		Title:        "감금연휴",
		Type:         project.TypeGeneral,
		EpisodeCount: 10,
	})
	require.NoError(t, err)
	require.Len(t, proj.Processes, 6)

	proj, err = env.projectSvc.SetCell(ctx, proj.ID, 1, 5, project.CellState{Status: project.StatusDone})
	require.NoError(t, err)

	// One done process out of six is not a complete episode
	complete, err := env.projectSvc.IsEpisodeFullyComplete(ctx, proj.ID, 5)
	require.NoError(t, err)
	require.False(t, complete)

	proj, err = env.projectSvc.SetEpisodeComplete(ctx, proj.ID, 5, true)
	require.NoError(t, err)
	complete, err = env.projectSvc.IsEpisodeFullyComplete(ctx, proj.ID, 5)
	require.NoError(t, err)
	require.True(t, complete)

	// A project stripped down to a single process is complete once that
	// process is done
	for _, p := range proj.Processes[1:] {
		proj, err = env.projectSvc.RemoveProcess(ctx, proj.ID, p.ID)
		require.NoError(t, err)
	}
	complete, err = env.projectSvc.IsEpisodeFullyComplete(ctx, proj.ID, 5)
	require.NoError(t, err)
	require.True(t, complete)
}

func TestIntegration_LaunchToDeliveryWorklist(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	proj, err := env.projectSvc.Create(ctx, project.CreateRequest{
		Title:          "감금연휴",
		Type:           project.TypeGeneral,
		EpisodeCount:   10,
		LaunchCategory: "domestic-live",
	})
	require.NoError(t, err)
	_, err = env.projectSvc.SetLifecycle(ctx, proj.ID, project.LifecycleLive)
	require.NoError(t, err)

	require.NoError(t, env.launchSvc.SetStatus(ctx, launch.SetStatusRequest{
		Category:   launch.CategoryDomesticLive,
		Title:      "감금연휴",
		ProjectID:  proj.ID,
		PlatformID: "toomics",
		Status:     launch.StatusLaunched,
	}))
	require.NoError(t, env.deliverySvc.SetDeliveryDay(ctx, "감금연휴", delivery.DayMonday))

	views, err := env.deliverySvc.Worklist(ctx, delivery.DayMonday)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "감금연휴", views[0].Title)
	require.Len(t, views[0].Platforms, 1)
	require.Equal(t, "toomics", views[0].Platforms[0].PlatformID)
	require.Zero(t, views[0].Platforms[0].Count)
	require.Len(t, views[0].Platforms[0].Episodes, 10)

	// The legacy-key mirror lands on the next worker sweep, not inline
	pending, err := env.queueRepo.ListPending(ctx, 50)
	require.NoError(t, err)
	require.NotEmpty(t, pending)

	require.NoError(t, env.worker.Sweep(ctx))

	pending, err = env.queueRepo.ListPending(ctx, 50)
	require.NoError(t, err)
	require.Empty(t, pending)

	rows, err := env.launchRepo.ListForTitle(ctx, launch.CategoryDomesticLive, "감금연휴", proj.ID)
	require.NoError(t, err)
	schemes := make(map[launch.KeyScheme]bool, len(rows))
	for _, rec := range rows {
		schemes[rec.Scheme] = true
	}
	require.True(t, schemes[launch.SchemeProject])
	require.True(t, schemes[launch.SchemeTitle])
}

func TestIntegration_RenamePropagatesAcrossSyncGroup(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.NoError(t, env.launchSvc.SetStatus(ctx, launch.SetStatusRequest{
		Category:   launch.CategoryDomesticLive,
		Title:      "옛제목",
		PlatformID: "naver",
		Status:     launch.StatusPending,
	}))
	require.NoError(t, env.launchSvc.SetStatus(ctx, launch.SetStatusRequest{
		Category:   launch.CategoryOverseasLive,
		Title:      "옛제목",
		PlatformID: "lezhin",
		Status:     launch.StatusLaunched,
	}))

	require.NoError(t, env.launchSvc.RenameTitle(ctx, launch.CategoryDomesticLive, "옛제목", "새제목"))

	for _, category := range []launch.Category{launch.CategoryDomesticLive, launch.CategoryOverseasLive} {
		rows, err := env.launchRepo.ListForTitle(ctx, category, "새제목", "")
		require.NoError(t, err, "category %s", category)
		require.NotEmpty(t, rows, "category %s", category)
		for _, rec := range rows {
			require.Equal(t, "새제목", rec.Title)
		}
	}
}

func TestIntegration_TaskBridgeRoundTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	proj, err := env.projectSvc.Create(ctx, project.CreateRequest{
		Title:        "감금연휴",
		Type:         project.TypeGeneral,
		EpisodeCount: 10,
	})
	require.NoError(t, err)

	created, err := env.taskSvc.Create(ctx, task.CreateRequest{
		ProjectID: proj.ID,
		ProcessID: 2,
		Episode:   5,
		Note:      "펜선 마감",
	})
	require.NoError(t, err)

	// Task toggle pushes into the grid
	_, err = env.taskSvc.Toggle(ctx, created.ID, true)
	require.NoError(t, err)
	got, err := env.projectSvc.Get(ctx, proj.ID)
	require.NoError(t, err)
	require.Equal(t, project.StatusDone, got.Grid.Get(2, 5).Status)

	// Grid edit flips the task back
	_, err = env.projectSvc.SetCell(ctx, proj.ID, 2, 5, project.CellState{Status: project.StatusNone})
	require.NoError(t, err)
	tasks, err := env.taskSvc.ListByDate(ctx, task.Today())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.False(t, tasks[0].Completed)
}
