package task

import (
	"context"

	"github.com/gelugu/judah-bot/internal/model"
)

// UseCase defines the business logic interface for the task domain.
type UseCase interface {
	// List returns the tasks selected by input.Filter, each with its rendered content.
	List(ctx context.Context, sc model.Scope, input ListInput) (ListOutput, error)

	// Tags returns the tag options defined by the database schema.
	Tags(ctx context.Context, sc model.Scope) ([]string, error)

	// Content renders the document body of a task. It never fails: upstream
	// errors are logged and yield "".
	Content(ctx context.Context, sc model.Scope, taskID string) string

	// Reschedule moves a task to another calendar day and returns the updated task.
	Reschedule(ctx context.Context, sc model.Scope, input RescheduleInput) (Item, error)
}
