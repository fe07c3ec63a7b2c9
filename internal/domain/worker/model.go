package worker

// Worker is one studio staff member, used only to label process assignees.
type Worker struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Team string `json:"team,omitempty"`
}
