package usecase

import (
	"context"
	"fmt"

	"github.com/gelugu/judah-bot/internal/model"
	"github.com/gelugu/judah-bot/internal/task"
)

// List fetches every task, keeps those matching the filter and renders
// their content. Source order is preserved.
func (uc *implUseCase) List(ctx context.Context, sc model.Scope, input task.ListInput) (task.ListOutput, error) {
	match, err := uc.matcher(input)
	if err != nil {
		return task.ListOutput{}, err
	}

	tasks, err := uc.repo.ListTasks(ctx)
	if err != nil {
		return task.ListOutput{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	items := make([]task.Item, 0, len(tasks))
	for _, t := range tasks {
		if !match(t) {
			continue
		}
		items = append(items, task.Item{
			Task:    t,
			Content: uc.Content(ctx, sc, t.ID),
		})
	}

	uc.l.Infof(ctx, "List: user=%d filter=%s tag=%q matched=%d of %d", sc.UserID, input.Filter, input.Tag, len(items), len(tasks))
	return task.ListOutput{Items: items}, nil
}

func (uc *implUseCase) matcher(input task.ListInput) (func(model.Task) bool, error) {
	switch input.Filter {
	case task.FilterAll:
		return func(model.Task) bool { return true }, nil
	case task.FilterToday:
		now := uc.now()
		return func(t model.Task) bool {
			return t.Date != nil && uc.dateMath.SameDay(*t.Date, now)
		}, nil
	case task.FilterUnscheduled:
		return func(t model.Task) bool { return !t.Scheduled() }, nil
	case task.FilterTag:
		if input.Tag == "" {
			return nil, task.ErrEmptyTag
		}
		return func(t model.Task) bool { return t.HasTag(input.Tag) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", task.ErrUnknownFilter, input.Filter)
	}
}

// Tags returns the schema's tag options.
func (uc *implUseCase) Tags(ctx context.Context, sc model.Scope) ([]string, error) {
	tags, err := uc.repo.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}
