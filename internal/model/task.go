package model

import "time"

// Status is the workflow state of a task.
type Status string

const (
	StatusNotStarted Status = "Not started"
	StatusInProgress Status = "In progress"
	StatusDone       Status = "Done"
)

// Task is a read-only snapshot of one database record.
type Task struct {
	ID          string
	Name        string
	Icon        string     // emoji, "Unknown type: <type>" or ""
	Status      Status
	Date        *time.Time // nil when unscheduled; midnight of the calendar date
	CreatedTime time.Time
	Tags        []string
	URL         string
}

// Scheduled reports whether the task has a date.
func (t Task) Scheduled() bool {
	return t.Date != nil
}

// HasTag reports whether the task carries the given tag.
func (t Task) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}
