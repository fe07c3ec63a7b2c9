package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hancomics/prodboard/internal/domain/task"
	"github.com/hancomics/prodboard/internal/repository"
)

func seedTask(t *testing.T, repo *TaskRepository, id, projectID string, processID, episode int, date string) *task.DailyTask {
	t.Helper()
	dt := &task.DailyTask{
		ID:        id,
		ProjectID: projectID,
		ProcessID: processID,
		Episode:   episode,
		Date:      date,
		Note:      "콘티 마감",
	}
	require.NoError(t, repo.Create(context.Background(), dt))
	return dt
}

func TestTaskRepository_CreateRequiresProject(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)

	err := repo.Create(context.Background(), &task.DailyTask{
		ID:        "t1",
		ProjectID: "ghost",
		ProcessID: 1,
		Episode:   1,
		Date:      "2026-09-01",
	})
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}

func TestTaskRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	seedProject(t, NewProjectRepository(db), "p1", "감금연휴")
	repo := NewTaskRepository(db)

	created := seedTask(t, repo, "t1", "p1", 2, 5, "2026-09-01")

	got, err := repo.Get(context.Background(), "t1")
	require.NoError(t, err)
	require.Equal(t, created, got)

	_, err = repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskRepository_ListByDate(t *testing.T) {
	db := NewTestDB(t)
	seedProject(t, NewProjectRepository(db), "p1", "감금연휴")
	repo := NewTaskRepository(db)

	seedTask(t, repo, "t1", "p1", 2, 5, "2026-09-01")
	seedTask(t, repo, "t2", "p1", 1, 3, "2026-09-01")
	seedTask(t, repo, "t3", "p1", 1, 3, "2026-09-02")

	tasks, err := repo.ListByDate(context.Background(), "2026-09-01")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	// Ordered by process then episode
	require.Equal(t, "t2", tasks[0].ID)
	require.Equal(t, "t1", tasks[1].ID)
}

func TestTaskRepository_ListMatchingReturnsDuplicates(t *testing.T) {
	db := NewTestDB(t)
	seedProject(t, NewProjectRepository(db), "p1", "감금연휴")
	repo := NewTaskRepository(db)

	seedTask(t, repo, "t1", "p1", 2, 5, "2026-09-01")
	seedTask(t, repo, "t2", "p1", 2, 5, "2026-09-01")
	seedTask(t, repo, "t3", "p1", 2, 6, "2026-09-01")

	tasks, err := repo.ListMatching(context.Background(), "p1", 2, 5, "2026-09-01")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
}

func TestTaskRepository_SetCompleted(t *testing.T) {
	db := NewTestDB(t)
	seedProject(t, NewProjectRepository(db), "p1", "감금연휴")
	repo := NewTaskRepository(db)
	ctx := context.Background()

	seedTask(t, repo, "t1", "p1", 2, 5, "2026-09-01")

	require.NoError(t, repo.SetCompleted(ctx, "t1", true))
	got, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.True(t, got.Completed)

	require.ErrorIs(t, repo.SetCompleted(ctx, "missing", true), repository.ErrNotFound)
}

func TestTaskRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	seedProject(t, NewProjectRepository(db), "p1", "감금연휴")
	repo := NewTaskRepository(db)
	ctx := context.Background()

	seedTask(t, repo, "t1", "p1", 2, 5, "2026-09-01")
	require.NoError(t, repo.Delete(ctx, "t1"))
	require.ErrorIs(t, repo.Delete(ctx, "t1"), repository.ErrNotFound)
}
