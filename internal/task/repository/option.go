package repository

import "time"

// UpdateTaskOptions holds the parameters for updating a task.
type UpdateTaskOptions struct {
	ID   string
	Date time.Time // calendar date, midnight in the configured location
}
