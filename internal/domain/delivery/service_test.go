package delivery_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hancomics/prodboard/internal/domain/delivery"
	"github.com/hancomics/prodboard/internal/repository"
	"github.com/hancomics/prodboard/internal/repository/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDeliveryService_WorklistRejectsBadFilters(t *testing.T) {
	ctx := context.Background()
	svc := delivery.NewService(&mocks.DeliveryRepository{}, &mocks.LaunchSource{}, &mocks.ProductionSource{}, nil, testLogger())

	_, err := svc.Worklist(ctx, delivery.DayUnset)
	require.ErrorIs(t, err, delivery.ErrInvalidDay)

	_, err = svc.Worklist(ctx, delivery.DayEvery)
	require.ErrorIs(t, err, delivery.ErrInvalidDay, "every day is an assignment, not a filter")

	_, err = svc.Worklist(ctx, delivery.DeliveryDay("someday"))
	require.ErrorIs(t, err, delivery.ErrInvalidDay)
}

func TestDeliveryService_WorklistFiltersLiveAndWeekday(t *testing.T) {
	ctx := context.Background()

	records := &mocks.DeliveryRepository{}
	records.On("ListTitleMeta", ctx).Return([]delivery.TitleMeta{
		{Title: "감금연휴", DeliveryDay: delivery.DayMonday},
		{Title: "다른 요일", DeliveryDay: delivery.DayFriday},
		{Title: "매일 작품", DeliveryDay: delivery.DayEvery},
		{Title: "미배정", DeliveryDay: delivery.DayUnset},
		{Title: "완결작", DeliveryDay: delivery.DayMonday},
	}, nil)
	records.On("GetCommonSchedule", ctx, mock.Anything).Return(delivery.CommonSchedule{}, repository.ErrNotFound)
	records.On("GetRecord", ctx, mock.Anything, mock.Anything).Return(delivery.DeliveryRecord{}, repository.ErrNotFound)

	production := &mocks.ProductionSource{}
	// 완결작 is not live anymore, so it drops out even on its weekday.
	production.On("LiveTitles", ctx).Return(map[string]int{"감금연휴": 10, "매일 작품": 3, "다른 요일": 5}, nil)

	launches := &mocks.LaunchSource{}
	launches.On("LaunchedPlatformsForTitle", ctx, "감금연휴").Return([]string{"toomics"}, nil)
	launches.On("LaunchedPlatformsForTitle", ctx, "매일 작품").Return([]string{"naver", "ridi"}, nil)

	svc := delivery.NewService(records, launches, production, nil, testLogger())
	views, err := svc.Worklist(ctx, delivery.DayMonday)
	require.NoError(t, err)
	require.Len(t, views, 2)

	byTitle := map[string]delivery.TitleView{}
	for _, v := range views {
		byTitle[v.Title] = v
	}
	require.Contains(t, byTitle, "감금연휴")
	require.Contains(t, byTitle, "매일 작품", "every-day titles appear on every weekday")
	require.NotContains(t, byTitle, "다른 요일")
	require.NotContains(t, byTitle, "완결작")
	require.Len(t, byTitle["매일 작품"].Platforms, 2)
}

func TestDeliveryService_WorklistEmptyStateRow(t *testing.T) {
	ctx := context.Background()

	records := &mocks.DeliveryRepository{}
	records.On("ListTitleMeta", ctx).Return([]delivery.TitleMeta{
		{Title: "감금연휴", DeliveryDay: delivery.DayMonday},
	}, nil)

	production := &mocks.ProductionSource{}
	production.On("LiveTitles", ctx).Return(map[string]int{"감금연휴": 10}, nil)

	launches := &mocks.LaunchSource{}
	launches.On("LaunchedPlatformsForTitle", ctx, "감금연휴").Return([]string{}, nil)

	svc := delivery.NewService(records, launches, production, nil, testLogger())
	views, err := svc.Worklist(ctx, delivery.DayMonday)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.True(t, views[0].NoLaunches)
	require.Empty(t, views[0].Platforms)
	require.Equal(t, delivery.DayMonday, views[0].DeliveryDay, "weekday stays visible and editable")
}

func TestDeliveryService_WorklistNewLaunchHasZeroCount(t *testing.T) {
	ctx := context.Background()

	records := &mocks.DeliveryRepository{}
	records.On("ListTitleMeta", ctx).Return([]delivery.TitleMeta{
		{Title: "감금연휴", DeliveryDay: delivery.DayMonday},
	}, nil)
	records.On("GetCommonSchedule", ctx, "감금연휴").Return(delivery.CommonSchedule{}, repository.ErrNotFound)
	records.On("GetRecord", ctx, "감금연휴", "toomics").Return(delivery.DeliveryRecord{}, repository.ErrNotFound)

	production := &mocks.ProductionSource{}
	production.On("LiveTitles", ctx).Return(map[string]int{"감금연휴": 10}, nil)

	launches := &mocks.LaunchSource{}
	launches.On("LaunchedPlatformsForTitle", ctx, "감금연휴").Return([]string{"toomics"}, nil)

	svc := delivery.NewService(records, launches, production, nil, testLogger())
	views, err := svc.Worklist(ctx, delivery.DayMonday)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Platforms, 1)
	require.Equal(t, "toomics", views[0].Platforms[0].PlatformID)
	require.Equal(t, 0, views[0].Platforms[0].Count)
	require.Len(t, views[0].Platforms[0].Episodes, 10)
}

func TestDeliveryService_ToggleEpisode(t *testing.T) {
	ctx := context.Background()

	records := &mocks.DeliveryRepository{}
	records.On("GetRecord", ctx, "감금연휴", "toomics").Return(delivery.DeliveryRecord{
		Title:      "감금연휴",
		PlatformID: "toomics",
		Episodes:   map[int]bool{1: true},
	}, nil)
	records.On("UpsertRecord", ctx, mock.MatchedBy(func(rec delivery.DeliveryRecord) bool {
		return rec.Episodes[1] && rec.Episodes[3]
	})).Return(nil)

	svc := delivery.NewService(records, nil, nil, nil, testLogger())
	rec, err := svc.ToggleEpisode(ctx, "감금연휴", "toomics", 3, true)
	require.NoError(t, err)
	require.Equal(t, 2, rec.Count())
}

func TestDeliveryService_ToggleEpisodeOffRemovesKey(t *testing.T) {
	ctx := context.Background()

	records := &mocks.DeliveryRepository{}
	records.On("GetRecord", ctx, "감금연휴", "toomics").Return(delivery.DeliveryRecord{
		Title:      "감금연휴",
		PlatformID: "toomics",
		Episodes:   map[int]bool{1: true, 3: true},
	}, nil)
	records.On("UpsertRecord", ctx, mock.MatchedBy(func(rec delivery.DeliveryRecord) bool {
		_, present := rec.Episodes[3]
		return !present
	})).Return(nil)

	svc := delivery.NewService(records, nil, nil, nil, testLogger())
	rec, err := svc.ToggleEpisode(ctx, "감금연휴", "toomics", 3, false)
	require.NoError(t, err)
	require.Equal(t, 1, rec.Count())
}

func TestDeliveryService_ToggleEpisodeValidation(t *testing.T) {
	ctx := context.Background()
	svc := delivery.NewService(&mocks.DeliveryRepository{}, nil, nil, nil, testLogger())

	_, err := svc.ToggleEpisode(ctx, "", "toomics", 1, true)
	require.ErrorIs(t, err, delivery.ErrInvalidInput)
	_, err = svc.ToggleEpisode(ctx, "감금연휴", "toomics", 0, true)
	require.ErrorIs(t, err, delivery.ErrInvalidInput)
}

func TestDeliveryService_SetScheduleDate(t *testing.T) {
	ctx := context.Background()

	records := &mocks.DeliveryRepository{}
	records.On("GetCommonSchedule", ctx, "감금연휴").Return(delivery.CommonSchedule{}, repository.ErrNotFound)
	records.On("UpsertCommonSchedule", ctx, mock.MatchedBy(func(s delivery.CommonSchedule) bool {
		return s.Open[4] == "2026-09-07" && s.Due[4] == "2026-09-10"
	})).Return(nil)

	svc := delivery.NewService(records, nil, nil, nil, testLogger())
	schedule, err := svc.SetScheduleDate(ctx, "감금연휴", 4, "2026-09-07", "2026-09-10")
	require.NoError(t, err)
	require.Equal(t, 4, schedule.MaxEpisode())
}

func TestDeliveryService_SetScheduleDateEmptyClears(t *testing.T) {
	ctx := context.Background()

	records := &mocks.DeliveryRepository{}
	records.On("GetCommonSchedule", ctx, "감금연휴").Return(delivery.CommonSchedule{
		Title: "감금연휴",
		Open:  map[int]string{4: "2026-09-07", 5: "2026-09-14"},
		Due:   map[int]string{4: "2026-09-10"},
	}, nil)
	records.On("UpsertCommonSchedule", ctx, mock.MatchedBy(func(s delivery.CommonSchedule) bool {
		_, hasOpen := s.Open[4]
		return !hasOpen && s.Due[4] == "2026-09-12" && s.Open[5] == "2026-09-14"
	})).Return(nil)

	svc := delivery.NewService(records, nil, nil, nil, testLogger())
	schedule, err := svc.SetScheduleDate(ctx, "감금연휴", 4, "", "2026-09-12")
	require.NoError(t, err)
	require.NotContains(t, schedule.Open, 4)
	require.Equal(t, "2026-09-12", schedule.Due[4])
}

func TestDeliveryService_SetDeliveryDay(t *testing.T) {
	ctx := context.Background()

	records := &mocks.DeliveryRepository{}
	records.On("SetTitleMeta", ctx, delivery.TitleMeta{Title: "감금연휴", DeliveryDay: delivery.DayEvery}).Return(nil)

	svc := delivery.NewService(records, nil, nil, nil, testLogger())
	require.NoError(t, svc.SetDeliveryDay(ctx, "감금연휴", delivery.DayEvery))

	require.ErrorIs(t, svc.SetDeliveryDay(ctx, "감금연휴", delivery.DeliveryDay("noday")), delivery.ErrInvalidDay)
}
