package launch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hancomics/prodboard/internal/collate"
	"github.com/hancomics/prodboard/internal/domain/activity"
)

// Service handles launch-status business logic: the per-category title grid,
// sync-group mirroring, and reconciliation of duplicate storage keys.
type Service struct {
	statuses   Repository
	queue      MirrorQueue
	activities activity.Repository
	platforms  []string
	logger     *slog.Logger
}

// NewService creates a new launch service. platforms is the configured
// platform id list, authoritative over stored history.
func NewService(statuses Repository, queue MirrorQueue, activities activity.Repository, platforms []string, logger *slog.Logger) *Service {
	return &Service{
		statuses:   statuses,
		queue:      queue,
		activities: activities,
		platforms:  platforms,
		logger:     logger,
	}
}

// Platforms returns the configured platform ids.
func (s *Service) Platforms() []string {
	return s.platforms
}

// SetStatusRequest describes one launch-status edit.
type SetStatusRequest struct {
	Category   Category
	Title      string
	ProjectID  string
	PlatformID string
	Status     Status
}

// SetStatus writes the canonical record for a (title, category, platform)
// tuple and enqueues write-through for any legacy key still carrying the same
// logical fact. A transition to none deletes the canonical record instead of
// storing an empty one, and best-effort deletes the legacy rows.
//
// The edit is considered successful once the canonical write lands; legacy
// consistency rides the mirror queue.
func (s *Service) SetStatus(ctx context.Context, req SetStatusRequest) error {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.PlatformID) == "" {
		return ErrInvalidInput
	}
	if !Known(req.Category) {
		return ErrUnknownCategory
	}
	if !req.Status.Valid() {
		return ErrInvalidStatus
	}
	if !s.platformConfigured(req.PlatformID) {
		return ErrUnknownPlatform
	}

	now := time.Now().UnixMilli()
	canonical := StatusRecord{
		Scheme:     SchemeProject,
		ProjectID:  req.ProjectID,
		Title:      req.Title,
		PlatformID: req.PlatformID,
		Category:   req.Category,
		Status:     req.Status,
		Timestamp:  now,
	}
	if req.ProjectID != "" {
		canonical.Key = ProjectKey(req.Category, req.ProjectID, req.PlatformID)
	} else {
		// No project document for this title yet; the title key is the best
		// canonical home we have.
		canonical.Scheme = SchemeTitle
		canonical.Key = TitleKey(req.Category, req.Title, req.PlatformID)
	}

	legacy, err := s.legacyRows(ctx, req, canonical.Key)
	if err != nil {
		// Legacy discovery failing must not block the edit; the queue sweep
		// can't repair what we didn't see, so just log it.
		s.logger.Warn("legacy row scan failed", "title", req.Title, "error", err)
	}

	if req.Status == StatusNone {
		if err := s.statuses.Delete(ctx, canonical.Key); err != nil {
			return fmt.Errorf("deleting status: %w", err)
		}
		s.enqueueMirrors(ctx, MirrorDelete, legacy, now, req.Status)
	} else {
		if err := s.statuses.Upsert(ctx, canonical); err != nil {
			return fmt.Errorf("writing status: %w", err)
		}
		if err := s.statuses.EnsureTitleRow(ctx, req.Category, req.Title, req.ProjectID); err != nil {
			s.logger.Warn("title registry write failed", "title", req.Title, "error", err)
		}
		s.enqueueMirrors(ctx, MirrorUpsert, legacy, now, req.Status)
	}

	s.logActivity(ctx, req)
	return nil
}

// legacyRows lists the legacy-scheme rows that still carry this tuple, plus
// the plain title key that older readers always look at.
func (s *Service) legacyRows(ctx context.Context, req SetStatusRequest, canonicalKey string) ([]StatusRecord, error) {
	rows, err := s.statuses.ListForTitle(ctx, req.Category, req.Title, req.ProjectID)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{canonicalKey: true}
	var out []StatusRecord
	titleKey := TitleKey(req.Category, req.Title, req.PlatformID)
	if !seen[titleKey] {
		seen[titleKey] = true
		out = append(out, StatusRecord{
			Key:        titleKey,
			Scheme:     SchemeTitle,
			Title:      req.Title,
			PlatformID: req.PlatformID,
			Category:   req.Category,
		})
	}
	for _, row := range rows {
		if row.PlatformID != req.PlatformID || seen[row.Key] {
			continue
		}
		seen[row.Key] = true
		out = append(out, row)
	}
	return out, nil
}

func (s *Service) enqueueMirrors(ctx context.Context, kind MirrorOpKind, targets []StatusRecord, ts int64, status Status) {
	if s.queue == nil || len(targets) == 0 {
		return
	}
	ops := make([]MirrorOp, 0, len(targets))
	for _, target := range targets {
		rec := target
		rec.Status = status
		rec.Timestamp = ts
		ops = append(ops, MirrorOp{
			ID:         uuid.NewString(),
			Kind:       kind,
			Record:     rec,
			EnqueuedAt: time.Now(),
		})
	}
	if err := s.queue.Enqueue(ctx, ops); err != nil {
		s.logger.Warn("mirror enqueue failed", "ops", len(ops), "error", err)
	}
}

// ReconcileTitle produces the authoritative per-platform status for a title
// in a category, optionally honoring a screen snapshot.
func (s *Service) ReconcileTitle(ctx context.Context, category Category, title, projectID string, screen map[string]Status) (map[string]Status, error) {
	if !Known(category) {
		return nil, ErrUnknownCategory
	}
	backend, err := s.statuses.ListForTitle(ctx, category, title, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading status rows: %w", err)
	}
	return Reconcile(ReconcileInput{
		Screen:    screen,
		Backend:   backend,
		Platforms: s.platforms,
	}), nil
}

// LaunchedPlatformsForTitle returns the title's launched platforms across the
// live categories, backend-only, in configured order.
func (s *Service) LaunchedPlatformsForTitle(ctx context.Context, title string) ([]string, error) {
	merged := make(map[string]Status)
	for _, category := range []Category{CategoryDomesticLive, CategoryOverseasLive} {
		reconciled, err := s.ReconcileTitle(ctx, category, title, "", nil)
		if err != nil {
			return nil, err
		}
		for platformID, status := range reconciled {
			if current, ok := merged[platformID]; !ok || status.Rank() > current.Rank() {
				merged[platformID] = status
			}
		}
	}
	return LaunchedPlatforms(merged, s.platforms), nil
}

// Entries builds the per-title rows of one category's distribution grid.
// Titles present in a sync-group sibling but absent here are synthesized with
// an empty platform map so this category always has a row to edit.
func (s *Service) Entries(ctx context.Context, category Category) ([]Entry, error) {
	if !Known(category) {
		return nil, ErrUnknownCategory
	}

	rows, err := s.statuses.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("loading category rows: %w", err)
	}

	byTitle := make(map[string]*Entry)
	ensure := func(title, projectID string) *Entry {
		entry, ok := byTitle[title]
		if !ok {
			entry = &Entry{Title: title, Category: category, Platforms: map[string]Status{}}
			byTitle[title] = entry
		}
		if entry.ProjectID == "" && projectID != "" {
			entry.ProjectID = projectID
		}
		return entry
	}

	backendByTitle := make(map[string][]StatusRecord)
	for _, row := range rows {
		ensure(row.Title, row.ProjectID)
		backendByTitle[row.Title] = append(backendByTitle[row.Title], row)
	}
	for title, backend := range backendByTitle {
		byTitle[title].Platforms = Reconcile(ReconcileInput{
			Backend:   backend,
			Platforms: s.platforms,
		})
	}

	// Registry rows for this category, then sibling titles for the mirrors.
	for _, member := range ResolveSyncGroup(category) {
		titles, err := s.statuses.ListTitles(ctx, member)
		if err != nil {
			return nil, fmt.Errorf("loading title registry: %w", err)
		}
		for title, projectID := range titles {
			ensure(title, projectID)
		}
	}

	titles := make([]string, 0, len(byTitle))
	for title := range byTitle {
		titles = append(titles, title)
	}
	collate.SortTitles(titles)

	out := make([]Entry, 0, len(titles))
	for _, title := range titles {
		out = append(out, *byTitle[title])
	}
	return out, nil
}

// RenameTitle renames a title in the given category and every sync-group
// sibling whose entries currently share the old title. Matching is by exact
// title string; two unrelated entries sharing a title will merge, a known
// ambiguity of the title-keyed join.
func (s *Service) RenameTitle(ctx context.Context, category Category, oldTitle, newTitle string) error {
	if strings.TrimSpace(oldTitle) == "" || strings.TrimSpace(newTitle) == "" {
		return ErrInvalidInput
	}
	if !Known(category) {
		return ErrUnknownCategory
	}

	for _, member := range ResolveSyncGroup(category) {
		if _, err := s.statuses.RenameTitle(ctx, member, oldTitle, newTitle); err != nil {
			return fmt.Errorf("renaming in %s: %w", member, err)
		}
		if err := s.statuses.RenameTitleRow(ctx, member, oldTitle, newTitle); err != nil {
			return fmt.Errorf("renaming registry in %s: %w", member, err)
		}
	}

	if s.activities != nil {
		_ = s.activities.Log(ctx, &activity.ActivityEntry{
			Title:        &newTitle,
			ActivityType: activity.TypeTitleRenamed,
			Summary:      fmt.Sprintf("renamed %q to %q in %s group", oldTitle, newTitle, category),
			CreatedAt:    time.Now(),
		})
	}
	return nil
}

// EnsureTitle registers a title in the category and all of its sync-group
// siblings so every member has a mirrored row from creation on.
func (s *Service) EnsureTitle(ctx context.Context, categoryStr, title string) error {
	category := Category(categoryStr)
	if !Known(category) {
		return ErrUnknownCategory
	}
	for _, member := range ResolveSyncGroup(category) {
		if err := s.statuses.EnsureTitleRow(ctx, member, title, ""); err != nil {
			return fmt.Errorf("registering title in %s: %w", member, err)
		}
	}
	return nil
}

// RenameTitleEverywhere renames a title across all categories. Used when the
// production-side project is renamed, so the title-keyed join keeps holding.
func (s *Service) RenameTitleEverywhere(ctx context.Context, oldTitle, newTitle string) error {
	for _, category := range Categories() {
		if _, err := s.statuses.RenameTitle(ctx, category, oldTitle, newTitle); err != nil {
			return fmt.Errorf("renaming in %s: %w", category, err)
		}
		if err := s.statuses.RenameTitleRow(ctx, category, oldTitle, newTitle); err != nil {
			return fmt.Errorf("renaming registry in %s: %w", category, err)
		}
	}
	return nil
}

// RemoveProjectRecords deletes every status row keyed by the project id and
// the title's registry rows. Called when a project is deleted.
func (s *Service) RemoveProjectRecords(ctx context.Context, projectID, title string) error {
	if err := s.statuses.DeleteByProject(ctx, projectID); err != nil {
		return fmt.Errorf("deleting project status rows: %w", err)
	}
	if err := s.statuses.DeleteTitleRows(ctx, title); err != nil {
		return fmt.Errorf("deleting title registry rows: %w", err)
	}
	return nil
}

func (s *Service) platformConfigured(id string) bool {
	for _, p := range s.platforms {
		if p == id {
			return true
		}
	}
	return false
}

func (s *Service) logActivity(ctx context.Context, req SetStatusRequest) {
	if s.activities == nil {
		return
	}
	title := req.Title
	_ = s.activities.Log(ctx, &activity.ActivityEntry{
		Title:        &title,
		ActivityType: activity.TypeLaunchStatusChanged,
		Summary:      fmt.Sprintf("%s / %s -> %s on %s", req.Title, req.PlatformID, req.Status, req.Category),
		CreatedAt:    time.Now(),
	})
}
