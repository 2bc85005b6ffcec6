package usecase

import (
	"context"
	"time"

	"github.com/gelugu/judah-bot/internal/task"
	"github.com/gelugu/judah-bot/internal/task/repository"
	"github.com/gelugu/judah-bot/pkg/datemath"
	"github.com/gelugu/judah-bot/pkg/gcalendar"
	pkgLog "github.com/gelugu/judah-bot/pkg/log"
)

// Calendar mirrors rescheduled tasks as all-day events.
type Calendar interface {
	CreateAllDayEvent(ctx context.Context, req gcalendar.AllDayEventRequest) (*gcalendar.Event, error)
}

type implUseCase struct {
	l          pkgLog.Logger
	repo       repository.TaskRepository
	calendar   Calendar
	calendarID string
	dateMath   *datemath.Parser
	now        func() time.Time
}

var _ task.UseCase = &implUseCase{}

// Option configures optional collaborators of the usecase.
type Option func(*implUseCase)

// WithCalendar enables mirroring rescheduled tasks to calendarID.
func WithCalendar(c Calendar, calendarID string) Option {
	return func(uc *implUseCase) {
		uc.calendar = c
		uc.calendarID = calendarID
	}
}

// WithClock overrides the time source used for "today".
func WithClock(now func() time.Time) Option {
	return func(uc *implUseCase) {
		uc.now = now
	}
}

// New creates a new task UseCase instance.
func New(
	l pkgLog.Logger,
	repo repository.TaskRepository,
	dateMath *datemath.Parser,
	opts ...Option,
) task.UseCase {
	uc := &implUseCase{
		l:        l,
		repo:     repo,
		dateMath: dateMath,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}
