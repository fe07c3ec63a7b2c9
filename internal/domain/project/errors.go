package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrProcessNotFound indicates the process id is not in the project.
	ErrProcessNotFound = errors.New("process not found")
	// ErrEpisodeFloor indicates an episode-count decrease below 1.
	ErrEpisodeFloor = errors.New("episode count cannot drop below 1")
	// ErrEpisodeOutOfRange indicates an episode outside the display range.
	ErrEpisodeOutOfRange = errors.New("episode out of range")
	// ErrInvalidInput indicates invalid input for project operations.
	ErrInvalidInput = errors.New("invalid project input")
)
