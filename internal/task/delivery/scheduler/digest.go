package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	pkgLog "github.com/gelugu/judah-bot/pkg/log"
)

// Sender delivers today's tasks to the owner.
type Sender interface {
	SendToday(ctx context.Context) error
}

// Digest sends the daily task digest on a cron schedule.
type Digest struct {
	l        pkgLog.Logger
	sender   Sender
	cron     *cron.Cron
	schedule cron.Schedule
	loc      *time.Location
}

// NewDigest parses a standard 5-field cron expression evaluated in loc.
func NewDigest(l pkgLog.Logger, sender Sender, expr string, loc *time.Location) (*Digest, error) {
	if loc == nil {
		loc = time.Local
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parse cron %q: %w", expr, err)
	}

	d := &Digest{
		l:        l,
		sender:   sender,
		cron:     cron.New(cron.WithLocation(loc), cron.WithParser(parser)),
		schedule: schedule,
		loc:      loc,
	}
	d.cron.Schedule(schedule, cron.FuncJob(func() {
		d.Run(context.Background())
	}))
	return d, nil
}

// Start runs the scheduler in its own goroutine.
func (d *Digest) Start() {
	d.cron.Start()
	d.l.Infof(context.Background(), "digest: next run at %s", d.Next(time.Now()).Format(time.RFC3339))
}

// Stop stops the scheduler and waits for a running digest to finish.
func (d *Digest) Stop() {
	<-d.cron.Stop().Done()
}

// Next returns the next activation after t.
func (d *Digest) Next(t time.Time) time.Time {
	return d.schedule.Next(t.In(d.loc))
}

// Run sends the digest once.
func (d *Digest) Run(ctx context.Context) {
	ctx = pkgLog.NewTraceContext(ctx)
	if err := d.sender.SendToday(ctx); err != nil {
		d.l.Errorf(ctx, "digest: failed to send: %v", err)
		return
	}
	d.l.Infof(ctx, "digest: sent")
}
