package delivery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hancomics/prodboard/internal/collate"
	"github.com/hancomics/prodboard/internal/domain/activity"
	"github.com/hancomics/prodboard/internal/repository"
)

// Service builds the delivery worklist and handles episode/schedule edits.
type Service struct {
	records    Repository
	launches   LaunchSource
	production ProductionSource
	activities activity.Repository
	logger     *slog.Logger
}

// NewService creates a new delivery service.
func NewService(records Repository, launches LaunchSource, production ProductionSource, activities activity.Repository, logger *slog.Logger) *Service {
	return &Service{
		records:    records,
		launches:   launches,
		production: production,
		activities: activities,
		logger:     logger,
	}
}

// Worklist builds the per-title delivery rows for a weekday. Titles whose
// delivery-day assignment matches the filter (or is "every day") are
// selected; each launched platform gets an episode grid, and a title with
// zero launched platforms gets an explicit empty-state row.
func (s *Service) Worklist(ctx context.Context, weekday DeliveryDay) ([]TitleView, error) {
	if !weekday.Valid() || weekday == DayUnset || weekday == DayEvery {
		return nil, ErrInvalidDay
	}

	metas, err := s.records.ListTitleMeta(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading title metadata: %w", err)
	}

	liveTitles := map[string]int{}
	if s.production != nil {
		liveTitles, err = s.production.LiveTitles(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading live titles: %w", err)
		}
	}

	var selected []TitleMeta
	for _, meta := range metas {
		if _, live := liveTitles[meta.Title]; !live {
			continue
		}
		if meta.DeliveryDay.Matches(weekday) {
			selected = append(selected, meta)
		}
	}

	titles := make([]string, 0, len(selected))
	metaByTitle := make(map[string]TitleMeta, len(selected))
	for _, meta := range selected {
		titles = append(titles, meta.Title)
		metaByTitle[meta.Title] = meta
	}
	collate.SortTitles(titles)

	out := make([]TitleView, 0, len(titles))
	for _, title := range titles {
		view, err := s.buildTitleView(ctx, metaByTitle[title], liveTitles[title])
		if err != nil {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}

func (s *Service) buildTitleView(ctx context.Context, meta TitleMeta, totalEpisodes int) (TitleView, error) {
	view := TitleView{Title: meta.Title, DeliveryDay: meta.DeliveryDay}

	launched, err := s.launches.LaunchedPlatformsForTitle(ctx, meta.Title)
	if err != nil {
		return TitleView{}, fmt.Errorf("loading launched platforms: %w", err)
	}
	if len(launched) == 0 {
		view.NoLaunches = true
		return view, nil
	}

	schedule, err := s.commonSchedule(ctx, meta.Title)
	if err != nil {
		return TitleView{}, err
	}

	for _, platformID := range launched {
		rec, err := s.record(ctx, meta.Title, platformID)
		if err != nil {
			return TitleView{}, err
		}
		view.Platforms = append(view.Platforms, BuildPlatformView(rec, schedule, totalEpisodes))
	}
	return view, nil
}

// ToggleEpisode flips one episode's delivered flag for a (title, platform)
// pair. The record's count is recomputed as the cardinality of the set on
// every read; it is never independently settable.
func (s *Service) ToggleEpisode(ctx context.Context, title, platformID string, episode int, delivered bool) (DeliveryRecord, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(platformID) == "" || episode < 1 {
		return DeliveryRecord{}, ErrInvalidInput
	}

	rec, err := s.record(ctx, title, platformID)
	if err != nil {
		return DeliveryRecord{}, err
	}
	if rec.Episodes == nil {
		rec.Episodes = map[int]bool{}
	}
	if delivered {
		rec.Episodes[episode] = true
	} else {
		delete(rec.Episodes, episode)
	}

	if err := s.records.UpsertRecord(ctx, rec); err != nil {
		return DeliveryRecord{}, fmt.Errorf("saving delivery record: %w", err)
	}

	if s.activities != nil {
		_ = s.activities.Log(ctx, &activity.ActivityEntry{
			Title:        &rec.Title,
			ActivityType: activity.TypeDeliveryToggled,
			Summary:      fmt.Sprintf("%s / %s episode %d delivered=%t", title, platformID, episode, delivered),
			CreatedAt:    time.Now(),
		})
	}
	return rec, nil
}

// SetScheduleDate sets one episode's open and due dates in the title's
// common schedule, shared by all platforms of the title. The pair is the
// episode's full schedule state: an empty string clears that date.
func (s *Service) SetScheduleDate(ctx context.Context, title string, episode int, open, due string) (CommonSchedule, error) {
	if strings.TrimSpace(title) == "" || episode < 1 {
		return CommonSchedule{}, ErrInvalidInput
	}

	schedule, err := s.commonSchedule(ctx, title)
	if err != nil {
		return CommonSchedule{}, err
	}
	if schedule.Open == nil {
		schedule.Open = map[int]string{}
	}
	if schedule.Due == nil {
		schedule.Due = map[int]string{}
	}
	if open != "" {
		schedule.Open[episode] = open
	} else {
		delete(schedule.Open, episode)
	}
	if due != "" {
		schedule.Due[episode] = due
	} else {
		delete(schedule.Due, episode)
	}

	if err := s.records.UpsertCommonSchedule(ctx, schedule); err != nil {
		return CommonSchedule{}, fmt.Errorf("saving common schedule: %w", err)
	}
	return schedule, nil
}

// SetDeliveryDay assigns a title's worklist weekday.
func (s *Service) SetDeliveryDay(ctx context.Context, title string, day DeliveryDay) error {
	if strings.TrimSpace(title) == "" {
		return ErrInvalidInput
	}
	if !day.Valid() {
		return ErrInvalidDay
	}
	if err := s.records.SetTitleMeta(ctx, TitleMeta{Title: title, DeliveryDay: day}); err != nil {
		return fmt.Errorf("saving title metadata: %w", err)
	}
	return nil
}

// Record returns the delivery record for a (title, platform) pair, empty when
// none is stored yet.
func (s *Service) Record(ctx context.Context, title, platformID string) (DeliveryRecord, error) {
	return s.record(ctx, title, platformID)
}

func (s *Service) record(ctx context.Context, title, platformID string) (DeliveryRecord, error) {
	rec, err := s.records.GetRecord(ctx, title, platformID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return DeliveryRecord{Title: title, PlatformID: platformID, Episodes: map[int]bool{}}, nil
		}
		return DeliveryRecord{}, fmt.Errorf("loading delivery record: %w", err)
	}
	return rec, nil
}

func (s *Service) commonSchedule(ctx context.Context, title string) (CommonSchedule, error) {
	schedule, err := s.records.GetCommonSchedule(ctx, title)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return CommonSchedule{Title: title}, nil
		}
		return CommonSchedule{}, fmt.Errorf("loading common schedule: %w", err)
	}
	return schedule, nil
}
