package worker

import "errors"

var (
	// ErrWorkerNotFound indicates the worker doesn't exist.
	ErrWorkerNotFound = errors.New("worker not found")
	// ErrInvalidInput indicates invalid input for worker operations.
	ErrInvalidInput = errors.New("invalid worker input")
)
