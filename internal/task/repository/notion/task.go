package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"

	"github.com/gelugu/judah-bot/internal/model"
	"github.com/gelugu/judah-bot/internal/task/repository"
	"github.com/gelugu/judah-bot/pkg/blocktext"
)

// ListTasks maps every queried page to a Task. A page that no longer matches
// the expected schema fails the whole list.
func (r *implRepository) ListTasks(ctx context.Context) ([]model.Task, error) {
	records, err := r.client.QueryDatabase(ctx)
	if err != nil {
		r.l.Errorf(ctx, "notion.ListTasks: %v", err)
		return nil, err
	}

	tasks := make([]model.Task, 0, len(records))
	for _, rec := range records {
		task, err := PageToTask(rec, r.loc)
		if err != nil {
			r.l.Errorf(ctx, "notion.ListTasks: %v", err)
			return nil, err
		}
		tasks = append(tasks, task)
	}

	r.l.Debugf(ctx, "notion.ListTasks: %d tasks", len(tasks))
	return tasks, nil
}

func (r *implRepository) GetBlocks(ctx context.Context, taskID string) ([]blocktext.Block, error) {
	raw, err := r.client.FetchBlocks(ctx, taskID)
	if err != nil {
		r.l.Errorf(ctx, "notion.GetBlocks: task=%s: %v", taskID, err)
		return nil, err
	}

	blocks := make([]blocktext.Block, 0, len(raw))
	for _, b := range raw {
		blocks = append(blocks, toBlock(b))
	}
	return blocks, nil
}

// UpdateTask sets the Date property to the calendar day of opt.Date in the
// configured location, as an all-day date.
func (r *implRepository) UpdateTask(ctx context.Context, opt repository.UpdateTaskOptions) (model.Task, error) {
	props := notionapi.Properties{
		PropertyDate: newDayProperty(opt.Date.In(r.loc)),
	}

	rec, err := r.client.UpdatePage(ctx, opt.ID, props)
	if err != nil {
		r.l.Errorf(ctx, "notion.UpdateTask: task=%s: %v", opt.ID, err)
		return model.Task{}, err
	}

	task, err := PageToTask(rec, r.loc)
	if err != nil {
		return model.Task{}, fmt.Errorf("updated page %s: %w", opt.ID, err)
	}
	return task, nil
}

// ListTags returns the option names of the Tags multi-select in schema order.
func (r *implRepository) ListTags(ctx context.Context) ([]string, error) {
	db, err := r.client.GetDatabase(ctx)
	if err != nil {
		r.l.Errorf(ctx, "notion.ListTags: %v", err)
		return nil, err
	}

	cfg, ok := db.Properties[PropertyTags].(*notionapi.MultiSelectPropertyConfig)
	if !ok {
		return nil, fmt.Errorf("%w: database has no multi-select %q property", repository.ErrSchemaDrift, PropertyTags)
	}

	tags := make([]string, 0, len(cfg.MultiSelect.Options))
	for _, o := range cfg.MultiSelect.Options {
		tags = append(tags, o.Name)
	}
	return tags, nil
}
