package project

// ProjectType selects the process template a new project starts from.
type ProjectType string

const (
	TypeGeneral      ProjectType = "general"
	TypeAdultRomance ProjectType = "adult-romance"
	TypeAdultAction  ProjectType = "adult-action"
)

// CanonicalProcessCount is the width of the canonical process-id range.
// Grid views render ids 1..CanonicalProcessCount and show ids a project
// lacks as disabled placeholders.
const CanonicalProcessCount = 8

// Template returns the initial process list for a project type. Unknown
// types fall back to the general template.
func Template(t ProjectType) []Process {
	switch t {
	case TypeAdultRomance:
		return []Process{
			{ID: 1, Name: "Storyboard"},
			{ID: 2, Name: "Sketch"},
			{ID: 3, Name: "Line Art"},
			{ID: 4, Name: "Coloring"},
			{ID: 5, Name: "Background"},
			{ID: 6, Name: "Retouch"},
			{ID: 7, Name: "Lettering"},
			{ID: 8, Name: "Final Check"},
		}
	case TypeAdultAction:
		return []Process{
			{ID: 1, Name: "Storyboard"},
			{ID: 2, Name: "Sketch"},
			{ID: 3, Name: "Line Art"},
			{ID: 4, Name: "Coloring"},
			{ID: 5, Name: "Background"},
			{ID: 6, Name: "Effects"},
			{ID: 7, Name: "Lettering"},
			{ID: 8, Name: "Final Check"},
		}
	default:
		return []Process{
			{ID: 1, Name: "Storyboard"},
			{ID: 2, Name: "Sketch"},
			{ID: 3, Name: "Line Art"},
			{ID: 4, Name: "Coloring"},
			{ID: 5, Name: "Background"},
			{ID: 6, Name: "Final Check"},
		}
	}
}
