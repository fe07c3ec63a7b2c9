package launch

import (
	"fmt"
	"time"
)

// Category partitions titles by market and lifecycle.
type Category string

const (
	CategoryDomesticLive      Category = "domestic-live"
	CategoryOverseasLive      Category = "overseas-live"
	CategoryDomesticCompleted Category = "domestic-completed"
	CategoryOverseasCompleted Category = "overseas-completed"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryDomesticLive,
		CategoryOverseasLive,
		CategoryDomesticCompleted,
		CategoryOverseasCompleted,
	}
}

// Known reports whether the category is one the system tracks.
func Known(c Category) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Status is one platform's current distribution state for a title.
type Status string

const (
	StatusNone     Status = "none"
	StatusPending  Status = "pending"
	StatusLaunched Status = "launched"
	StatusRejected Status = "rejected"
)

// Rank orders statuses for duplicate resolution:
// launched > pending > rejected > none.
func (s Status) Rank() int {
	switch s {
	case StatusLaunched:
		return 3
	case StatusPending:
		return 2
	case StatusRejected:
		return 1
	default:
		return 0
	}
}

// Valid reports whether the status is one of the four known values.
func (s Status) Valid() bool {
	switch s {
	case StatusNone, StatusPending, StatusLaunched, StatusRejected:
		return true
	}
	return false
}

// KeyScheme identifies which storage-key generation a status row uses. The
// same logical (title, category, platform) fact can exist under all three.
type KeyScheme string

const (
	// SchemeProject is the current scheme, keyed by project id.
	SchemeProject KeyScheme = "project"
	// SchemeTitle is the legacy scheme, keyed by title string.
	SchemeTitle KeyScheme = "title"
	// SchemeTitleDoc is the oldest scheme, keyed by title plus the launch
	// project document id it was recorded under.
	SchemeTitleDoc KeyScheme = "title-doc"
)

// StatusRecord is one physical status row.
type StatusRecord struct {
	Key        string   `json:"key"`
	Scheme     KeyScheme `json:"scheme"`
	ProjectID  string   `json:"project_id,omitempty"`
	Title      string   `json:"title"`
	PlatformID string   `json:"platform_id"`
	Category   Category `json:"category"`
	Status     Status   `json:"status"`
	Timestamp  int64    `json:"timestamp"`
}

// ProjectKey builds the current-scheme storage key.
func ProjectKey(category Category, projectID, platformID string) string {
	return fmt.Sprintf("%s|p:%s|%s", category, projectID, platformID)
}

// TitleKey builds the legacy title-scheme storage key.
func TitleKey(category Category, title, platformID string) string {
	return fmt.Sprintf("%s|t:%s|%s", category, title, platformID)
}

// TitleDocKey builds the oldest compound storage key.
func TitleDocKey(category Category, title, docID, platformID string) string {
	return fmt.Sprintf("%s|t:%s|d:%s|%s", category, title, docID, platformID)
}

// Entry is one per-title row of a category's distribution grid. Synthesized
// mirror rows carry an empty platform map so the sibling category always has
// a row to edit.
type Entry struct {
	Title     string            `json:"title"`
	ProjectID string            `json:"project_id,omitempty"`
	Category  Category          `json:"category"`
	Platforms map[string]Status `json:"platforms"`
}

// MirrorOpKind distinguishes mirror-queue operations.
type MirrorOpKind string

const (
	MirrorUpsert MirrorOpKind = "upsert"
	MirrorDelete MirrorOpKind = "delete"
)

// MirrorOp is one queued legacy-key write-through operation. Ops are
// idempotent: an upsert replays safely and a delete of a missing row is fine.
type MirrorOp struct {
	ID         string       `json:"id"`
	Kind       MirrorOpKind `json:"kind"`
	Record     StatusRecord `json:"record"`
	Attempts   int          `json:"attempts"`
	LastError  string       `json:"last_error,omitempty"`
	EnqueuedAt time.Time    `json:"enqueued_at"`
}
