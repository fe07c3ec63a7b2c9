package project

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CellStatus is the completion state of one (process, episode) cell.
type CellStatus string

const (
	StatusNone       CellStatus = "none"
	StatusInProgress CellStatus = "inProgress"
	StatusDone       CellStatus = "done"
	StatusFinal      CellStatus = "final"
)

// Complete reports whether the status counts toward episode completion.
func (s CellStatus) Complete() bool {
	return s == StatusDone || s == StatusFinal
}

// CellState is the stored value of one grid cell. Status and Text are
// orthogonal: editing one never changes the other. They share a cell only
// for storage convenience.
type CellState struct {
	Status CellStatus `json:"status"`
	Text   string     `json:"text"`
}

// DefaultCell is what a missing grid key reads as.
func DefaultCell() CellState {
	return CellState{Status: StatusNone}
}

// Lifecycle is a project's overall stage.
type Lifecycle string

const (
	LifecycleProduction Lifecycle = "production"
	LifecycleScheduled  Lifecycle = "scheduled"
	LifecycleLive       Lifecycle = "live"
	LifecycleCompleted  Lifecycle = "completed"
)

// Process is one production step of a project. IDs are small integers stable
// within a project, and are not globally unique; downstream views must
// tolerate a partial subset of the canonical 1..8 range.
type Process struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Assignee string `json:"assignee"`
}

// Project is one tracked title in production.
type Project struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Processes      []Process  `json:"processes"`
	EpisodeCount   int        `json:"episode_count"`
	StartEpisode   int        `json:"start_episode"`
	Grid           Grid       `json:"statuses"`
	HiddenEpisodes []int      `json:"hidden_episodes,omitempty"`
	Status         Lifecycle  `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	LastModified   time.Time  `json:"last_modified"`
}

// LastEpisode is the highest episode number in the display range.
func (p *Project) LastEpisode() int {
	return p.StartEpisode + p.EpisodeCount - 1
}

// InRange reports whether an episode falls inside the display range. Grid
// keys outside the range may still exist transiently after an episode-count
// decrease; they are simply not displayable.
func (p *Project) InRange(episode int) bool {
	return episode >= p.StartEpisode && episode <= p.LastEpisode()
}

// ProjectSummary is the list-view shape of a project.
type ProjectSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Status       Lifecycle `json:"status"`
	EpisodeCount int       `json:"episode_count"`
	StartEpisode int       `json:"start_episode"`
	ProcessCount int       `json:"process_count"`
	LastModified time.Time `json:"last_modified"`
}

// CellKey builds the grid key for a (process, episode) pair.
func CellKey(processID, episode int) string {
	return fmt.Sprintf("%d-%d", processID, episode)
}

// ParseCellKey splits a grid key back into its (process, episode) pair.
func ParseCellKey(key string) (processID, episode int, err error) {
	left, right, ok := strings.Cut(key, "-")
	if !ok {
		return 0, 0, fmt.Errorf("malformed cell key %q", key)
	}
	processID, err = strconv.Atoi(left)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed cell key %q: %w", key, err)
	}
	episode, err = strconv.Atoi(right)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed cell key %q: %w", key, err)
	}
	return processID, episode, nil
}
