package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gelugu/judah-bot/internal/model"
	"github.com/gelugu/judah-bot/internal/task"
	"github.com/gelugu/judah-bot/internal/task/repository"
	"github.com/gelugu/judah-bot/pkg/gcalendar"
)

// Reschedule sets the task's date and, when a calendar is configured,
// mirrors it as an all-day event. Mirror failures are only logged.
func (uc *implUseCase) Reschedule(ctx context.Context, sc model.Scope, input task.RescheduleInput) (task.Item, error) {
	if strings.TrimSpace(input.TaskID) == "" {
		return task.Item{}, task.ErrEmptyTaskID
	}

	day := uc.dateMath.StartOfDay(input.Date)
	updated, err := uc.repo.UpdateTask(ctx, repository.UpdateTaskOptions{
		ID:   input.TaskID,
		Date: day,
	})
	if err != nil {
		return task.Item{}, fmt.Errorf("failed to reschedule task %s: %w", input.TaskID, err)
	}

	uc.l.Infof(ctx, "Reschedule: user=%d task=%s date=%s", sc.UserID, updated.ID, day.Format("2006-01-02"))
	uc.mirrorToCalendar(ctx, updated, day)

	return task.Item{
		Task:    updated,
		Content: uc.Content(ctx, sc, updated.ID),
	}, nil
}

func (uc *implUseCase) mirrorToCalendar(ctx context.Context, t model.Task, day time.Time) {
	if uc.calendar == nil {
		return
	}

	summary := strings.TrimSpace(t.Icon + " " + t.Name)
	event, err := uc.calendar.CreateAllDayEvent(ctx, gcalendar.AllDayEventRequest{
		CalendarID:  uc.calendarID,
		Summary:     summary,
		Description: t.URL,
		Date:        day,
	})
	if err != nil {
		uc.l.Warnf(ctx, "Reschedule: calendar mirror failed for task %s: %v", t.ID, err)
		return
	}
	uc.l.Debugf(ctx, "Reschedule: calendar event %s created", event.ID)
}
