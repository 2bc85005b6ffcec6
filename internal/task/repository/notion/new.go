package notion

import (
	"time"

	"github.com/gelugu/judah-bot/internal/task/repository"
	"github.com/gelugu/judah-bot/pkg/log"
)

type implRepository struct {
	client *Client
	loc    *time.Location
	l      log.Logger
}

var _ repository.TaskRepository = &implRepository{}

// New creates a TaskRepository backed by a Notion database.
// Task dates are interpreted as calendar days in loc.
func New(client *Client, loc *time.Location, l log.Logger) repository.TaskRepository {
	if loc == nil {
		loc = time.Local
	}
	return &implRepository{
		client: client,
		loc:    loc,
		l:      l,
	}
}
