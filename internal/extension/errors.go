package extension

import "errors"

// Extension host errors.
var (
	// ErrNoRegister is returned when an extension file defines no global
	// register function.
	ErrNoRegister = errors.New("extension does not define register()")

	// ErrAlreadyLoaded is returned when LoadAll is invoked twice on the
	// same manager. Extensions load once per process.
	ErrAlreadyLoaded = errors.New("extensions already loaded")
)
