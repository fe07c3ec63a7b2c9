package delivery

import "errors"

var (
	// ErrInvalidDay indicates an unknown weekday assignment.
	ErrInvalidDay = errors.New("invalid delivery day")
	// ErrInvalidInput indicates invalid input for delivery operations.
	ErrInvalidInput = errors.New("invalid delivery input")
)
