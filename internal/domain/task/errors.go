package task

import "errors"

var (
	// ErrTaskNotFound indicates the daily task doesn't exist.
	ErrTaskNotFound = errors.New("daily task not found")
	// ErrInvalidInput indicates invalid input for task operations.
	ErrInvalidInput = errors.New("invalid task input")
)
