package task

import (
	"time"

	"github.com/gelugu/judah-bot/internal/model"
)

// Filter selects a subset of tasks.
type Filter string

const (
	FilterAll         Filter = "all"
	FilterToday       Filter = "today"
	FilterUnscheduled Filter = "unscheduled"
	FilterTag         Filter = "tag"
)

// ListInput is the input for listing tasks.
type ListInput struct {
	Filter Filter
	Tag    string // used with FilterTag only
}

// Item is a task together with its rendered document content.
type Item struct {
	Task    model.Task
	Content string
}

// ListOutput is the result of listing tasks.
type ListOutput struct {
	Items []Item
}

// RescheduleInput is the input for moving a task to another day.
type RescheduleInput struct {
	TaskID string
	Date   time.Time
}
