package editor

import "errors"

// Errors returned by session operations.
var (
	ErrNoFilePath = errors.New("no file path set")
)
