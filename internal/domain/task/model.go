package task

import "time"

// DateFormat is the canonical yyyy-mm-dd encoding of a task's date.
const DateFormat = "2006-01-02"

// Today returns the current calendar day in canonical form.
func Today() string {
	return time.Now().Format(DateFormat)
}

// DailyTask is one entry of the daily worklist: "do this process for this
// episode today". Multiple entries for the same tuple and date should not
// normally occur but are not prevented; the bridge updates all of them
// identically.
type DailyTask struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	ProcessID int    `json:"process_id"`
	Episode   int    `json:"episode"`
	Date      string `json:"date"` // yyyy-mm-dd
	Note      string `json:"note,omitempty"`
	Completed bool   `json:"completed"`
}
