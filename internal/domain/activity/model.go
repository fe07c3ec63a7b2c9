package activity

import "time"

// ActivityType represents the type of audit event
type ActivityType string

const (
	TypeProjectCreated      ActivityType = "project_created"
	TypeProjectDeleted      ActivityType = "project_deleted"
	TypeCellUpdated         ActivityType = "cell_updated"
	TypeEpisodeAdded        ActivityType = "episode_added"
	TypeEpisodeRemoved      ActivityType = "episode_removed"
	TypeProcessChanged      ActivityType = "process_changed"
	TypeLaunchStatusChanged ActivityType = "launch_status_changed"
	TypeTitleRenamed        ActivityType = "title_renamed"
	TypeDeliveryToggled     ActivityType = "delivery_toggled"
	TypeTaskToggled         ActivityType = "task_toggled"
)

// ActivityEntry represents an event in the audit log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ProjectID    *string      `json:"project_id,omitempty"`
	Title        *string      `json:"title,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
