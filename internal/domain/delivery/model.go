package delivery

import "strings"

// DeliveryRecord tracks which episodes of a title have been sent to one
// platform. Count is always derived from the episode set, never stored, so
// the two cannot drift.
type DeliveryRecord struct {
	Title      string          `json:"title"`
	PlatformID string          `json:"platform_id"`
	Episodes   map[int]bool    `json:"episodes"`
	Schedule   map[int]string  `json:"schedule,omitempty"`
}

// Count is the cardinality of the true-valued episode entries.
func (r DeliveryRecord) Count() int {
	n := 0
	for _, delivered := range r.Episodes {
		if delivered {
			n++
		}
	}
	return n
}

// CommonSchedule holds a title's platform-independent open and due dates per
// episode, shared by every platform of the title.
type CommonSchedule struct {
	Title string         `json:"title"`
	Open  map[int]string `json:"open"`
	Due   map[int]string `json:"due"`
}

// MaxEpisode is the highest episode carrying an open or due date.
func (s CommonSchedule) MaxEpisode() int {
	max := 0
	for e := range s.Open {
		if e > max {
			max = e
		}
	}
	for e := range s.Due {
		if e > max {
			max = e
		}
	}
	return max
}

// DeliveryDay is a title's weekday assignment for the delivery worklist.
type DeliveryDay string

const (
	DayMonday    DeliveryDay = "monday"
	DayTuesday   DeliveryDay = "tuesday"
	DayWednesday DeliveryDay = "wednesday"
	DayThursday  DeliveryDay = "thursday"
	DayFriday    DeliveryDay = "friday"
	DaySaturday  DeliveryDay = "saturday"
	DaySunday    DeliveryDay = "sunday"
	DayEvery     DeliveryDay = "every day"
	DayUnset     DeliveryDay = ""
)

// Valid reports whether the value is a known weekday assignment.
func (d DeliveryDay) Valid() bool {
	switch d {
	case DayMonday, DayTuesday, DayWednesday, DayThursday, DayFriday,
		DaySaturday, DaySunday, DayEvery, DayUnset:
		return true
	}
	return false
}

// Matches reports whether the assignment selects the given weekday filter.
// "every day" matches every filter; unset matches none.
func (d DeliveryDay) Matches(filter DeliveryDay) bool {
	if d == DayUnset {
		return false
	}
	if d == DayEvery {
		return true
	}
	return strings.EqualFold(string(d), string(filter))
}

// TitleMeta is the per-title delivery metadata.
type TitleMeta struct {
	Title       string      `json:"title"`
	DeliveryDay DeliveryDay `json:"delivery_day"`
}

// PlatformView is one platform's slice of a title's delivery worklist row.
type PlatformView struct {
	PlatformID string        `json:"platform_id"`
	Episodes   []EpisodeView `json:"episodes"`
	Count      int           `json:"count"`
}

// EpisodeView is one episode cell of a platform's delivery grid.
type EpisodeView struct {
	Episode   int    `json:"episode"`
	Delivered bool   `json:"delivered"`
	OpenDate  string `json:"open_date,omitempty"`
	DueDate   string `json:"due_date,omitempty"`
}

// TitleView is one title's row in the weekday worklist. A title with zero
// launched platforms still gets a row, with an explicit empty state, so the
// weekday assignment stays visible and editable.
type TitleView struct {
	Title       string         `json:"title"`
	DeliveryDay DeliveryDay    `json:"delivery_day"`
	Platforms   []PlatformView `json:"platforms"`
	NoLaunches  bool           `json:"no_launches,omitempty"`
}
