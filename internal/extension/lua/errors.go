package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNoFunction is returned when a requested global is missing or not
	// callable.
	ErrNoFunction = errors.New("lua function not found")
)
