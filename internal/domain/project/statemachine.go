package project

// The cell lifecycle is driven by two user actions. Advance is the
// right-click cycle through all four states; Toggle is the left-click quick
// completion mark. Both are total: no transition is ever rejected, and all
// four states stay reachable through the two actions.

// Advance steps the status one position around the cycle
// none → inProgress → done → final → none.
func Advance(s CellStatus) CellStatus {
	switch s {
	case StatusNone:
		return StatusInProgress
	case StatusInProgress:
		return StatusDone
	case StatusDone:
		return StatusFinal
	case StatusFinal:
		return StatusNone
	default:
		return StatusInProgress
	}
}

// Toggle flips the quick completion mark. Turning on always lands on done.
// Turning off is context-sensitive: done goes back to none, but inProgress
// and final drop to inProgress so partial-progress signal is not silently
// discarded.
func Toggle(s CellStatus) CellStatus {
	switch s {
	case StatusNone:
		return StatusDone
	case StatusDone:
		return StatusNone
	default:
		return StatusInProgress
	}
}

// ToggleTo resolves the target status for a checkbox-style edit where the
// caller states the desired checked state rather than the current one.
func ToggleTo(current CellStatus, checked bool) CellStatus {
	if checked {
		return StatusDone
	}
	if current == StatusDone {
		return StatusNone
	}
	if current == StatusNone {
		return StatusNone
	}
	return StatusInProgress
}
