package launch

import "errors"

var (
	// ErrUnknownCategory indicates a category outside the tracked set.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownPlatform indicates a platform not in the configured list.
	ErrUnknownPlatform = errors.New("platform not configured")
	// ErrInvalidStatus indicates a status outside the four known values.
	ErrInvalidStatus = errors.New("invalid launch status")
	// ErrInvalidInput indicates invalid input for launch operations.
	ErrInvalidInput = errors.New("invalid launch input")
)
