package repository

import (
	"context"

	"github.com/gelugu/judah-bot/internal/model"
	"github.com/gelugu/judah-bot/pkg/blocktext"
)

// TaskRepository is the interface for task data access operations.
type TaskRepository interface {
	// ListTasks returns every task with a non-empty name, ordered by date ascending.
	ListTasks(ctx context.Context) ([]model.Task, error)
	// GetBlocks returns the first page of content blocks of a task.
	GetBlocks(ctx context.Context, taskID string) ([]blocktext.Block, error)
	// UpdateTask applies opt and returns the updated task.
	UpdateTask(ctx context.Context, opt UpdateTaskOptions) (model.Task, error)
	// ListTags returns the tag options defined by the database schema.
	ListTags(ctx context.Context) ([]string, error)
}
