package task

import "errors"

// Domain-specific errors for the task package.
var (
	ErrUnknownFilter = errors.New("unknown task filter")
	ErrEmptyTag      = errors.New("tag is empty")
	ErrEmptyTaskID   = errors.New("task id is empty")
)
