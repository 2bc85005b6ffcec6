package telegram

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gelugu/judah-bot/internal/task"
	pkgTelegram "github.com/gelugu/judah-bot/pkg/telegram"
)

// sendTasks sends one message per item. The sequential policy keeps source
// order and carries on past failures; the parallel policy gives no ordering.
func (h *handler) sendTasks(ctx context.Context, chatID int64, items []task.Item) error {
	if h.cfg.SendPolicy == SendParallel {
		var g errgroup.Group
		for _, it := range items {
			g.Go(func() error {
				return h.sendTask(ctx, chatID, it)
			})
		}
		return g.Wait()
	}

	var errs []error
	for _, it := range items {
		if err := h.sendTask(ctx, chatID, it); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// sendTask sends the task message, then attaches its action row by editing
// it, since the row references the new message id.
func (h *handler) sendTask(ctx context.Context, chatID int64, item task.Item) error {
	msg, err := h.bot.SendMessage(ctx, pkgTelegram.SendMessageRequest{
		ChatID:                chatID,
		Text:                  h.taskText(item),
		ParseMode:             pkgTelegram.ParseModeMarkdown,
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("send task %s: %w", item.Task.ID, err)
	}

	if err := h.bot.EditMessageReplyMarkup(ctx, pkgTelegram.EditMessageReplyMarkupRequest{
		ChatID:      chatID,
		MessageID:   msg.MessageID,
		ReplyMarkup: h.taskActions(item.Task, msg.MessageID),
	}); err != nil {
		return fmt.Errorf("attach actions to task %s: %w", item.Task.ID, err)
	}
	return nil
}
