package telegram

import (
	"context"
	"time"
)

// UpdateHandler processes a single update.
type UpdateHandler func(ctx context.Context, update Update)

// Poller pulls updates with getUpdates and hands them to a handler one at a time.
type Poller struct {
	bot          *Bot
	timeout      int
	retryBackoff time.Duration
	offset       int64
	onError      func(error)
}

// NewPoller creates a long-polling loop. timeoutSeconds is the server side wait.
func NewPoller(bot *Bot, timeoutSeconds int, onError func(error)) *Poller {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}
	if onError == nil {
		onError = func(error) {}
	}
	return &Poller{
		bot:          bot,
		timeout:      timeoutSeconds,
		retryBackoff: 2 * time.Second,
		onError:      onError,
	}
}

// Run polls until ctx is cancelled. Updates are handled sequentially in arrival order.
func (p *Poller) Run(ctx context.Context, handle UpdateHandler) error {
	for {
		if err := p.pollOnce(ctx, handle); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.onError(err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(p.retryBackoff):
			}
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (p *Poller) pollOnce(ctx context.Context, handle UpdateHandler) error {
	updates, err := p.bot.GetUpdates(ctx, GetUpdatesRequest{
		Offset:         p.offset,
		Timeout:        p.timeout,
		AllowedUpdates: []string{"message", "callback_query"},
	})
	if err != nil {
		return err
	}

	for _, upd := range updates {
		if upd.UpdateID >= p.offset {
			p.offset = upd.UpdateID + 1
		}
		handle(ctx, upd)
	}
	return nil
}
