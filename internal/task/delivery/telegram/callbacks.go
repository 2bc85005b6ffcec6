package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/gelugu/judah-bot/internal/model"
	"github.com/gelugu/judah-bot/internal/task"
	pkgTelegram "github.com/gelugu/judah-bot/pkg/telegram"
)

// handleCallback answers the query, checks the sender and runs the action
// encoded in its data. Unknown actions are ignored.
func (h *handler) handleCallback(ctx context.Context, cq *pkgTelegram.CallbackQuery) error {
	defer func() {
		if err := h.bot.AnswerCallbackQuery(ctx, pkgTelegram.AnswerCallbackQueryRequest{CallbackQueryID: cq.ID}); err != nil {
			h.l.Warnf(ctx, "telegram handler: answer callback %s: %v", cq.ID, err)
		}
	}()

	sc := scopeFromUser(cq.From)
	chatID := sc.UserID
	if cq.Message != nil && cq.Message.Chat != nil {
		chatID = cq.Message.Chat.ID
	}
	if !h.authorize(ctx, sc, chatID) {
		return nil
	}

	action, rest, _ := strings.Cut(cq.Data, ":")
	h.l.Infof(ctx, "telegram handler: callback %s", action)

	switch action {
	case actionSchedule:
		return h.handleSchedule(ctx, chatID, rest)
	case actionSetDate:
		return h.handleSetDate(ctx, sc, chatID, rest)
	case actionTag:
		return h.handleTag(ctx, sc, chatID, rest)
	case actionTask:
		return h.handleTask(ctx, sc, chatID, rest)
	default:
		h.l.Debugf(ctx, "telegram handler: unknown callback %q ignored", cq.Data)
		return nil
	}
}

// handleSchedule swaps the message's action row for the date choices.
// args: <taskId>:<messageId>
func (h *handler) handleSchedule(ctx context.Context, chatID int64, args string) error {
	taskID, rawMsgID, ok := strings.Cut(args, ":")
	if !ok || taskID == "" {
		return fmt.Errorf("%w: schedule %q", ErrMalformedCallback, args)
	}
	messageID, err := parseMessageID(rawMsgID)
	if err != nil {
		return fmt.Errorf("%w: schedule message id %q", ErrMalformedCallback, rawMsgID)
	}

	return h.bot.EditMessageReplyMarkup(ctx, pkgTelegram.EditMessageReplyMarkupRequest{
		ChatID:      chatID,
		MessageID:   messageID,
		ReplyMarkup: h.dateChoices(taskID, messageID),
	})
}

// handleSetDate reschedules the task and edits the original message in place.
// args: <messageId>:<taskId>:<YYYY-MM-DD>
func (h *handler) handleSetDate(ctx context.Context, sc model.Scope, chatID int64, args string) error {
	parts := strings.Split(args, ":")
	if len(parts) != 3 {
		return fmt.Errorf("%w: set_date %q", ErrMalformedCallback, args)
	}
	messageID, err := parseMessageID(parts[0])
	if err != nil {
		return fmt.Errorf("%w: set_date message id %q", ErrMalformedCallback, parts[0])
	}
	date, err := h.dateMath.ParseISO(parts[2])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedCallback, err)
	}

	item, err := h.uc.Reschedule(ctx, sc, task.RescheduleInput{TaskID: parts[1], Date: date})
	if err != nil {
		return err
	}

	return h.bot.EditMessageText(ctx, pkgTelegram.EditMessageTextRequest{
		ChatID:                chatID,
		MessageID:             messageID,
		Text:                  h.taskText(item),
		ParseMode:             pkgTelegram.ParseModeMarkdown,
		DisableWebPagePreview: true,
		ReplyMarkup:           h.taskActions(item.Task, messageID),
	})
}

// handleTag sends every task carrying the tag. The tag may itself contain ':'.
func (h *handler) handleTag(ctx context.Context, sc model.Scope, chatID int64, tag string) error {
	if tag == "" {
		return fmt.Errorf("%w: empty tag", ErrMalformedCallback)
	}
	return h.sendList(ctx, sc, chatID, task.ListInput{Filter: task.FilterTag, Tag: tag}, "")
}

// handleTask sends the task's document content and attaches a reschedule row.
func (h *handler) handleTask(ctx context.Context, sc model.Scope, chatID int64, taskID string) error {
	if taskID == "" {
		return fmt.Errorf("%w: empty task id", ErrMalformedCallback)
	}

	content := h.uc.Content(ctx, sc, taskID)
	if content == "" {
		content = noContentText
	}

	msg, err := h.bot.SendMessage(ctx, pkgTelegram.SendMessageRequest{
		ChatID:                chatID,
		Text:                  content,
		ParseMode:             pkgTelegram.ParseModeMarkdown,
		DisableWebPagePreview: true,
	})
	if err != nil {
		return err
	}

	return h.bot.EditMessageReplyMarkup(ctx, pkgTelegram.EditMessageReplyMarkupRequest{
		ChatID:      chatID,
		MessageID:   msg.MessageID,
		ReplyMarkup: rescheduleRow(taskID, msg.MessageID),
	})
}
