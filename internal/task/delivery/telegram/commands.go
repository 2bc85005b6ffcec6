package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/gelugu/judah-bot/internal/model"
	"github.com/gelugu/judah-bot/internal/task"
	pkgTelegram "github.com/gelugu/judah-bot/pkg/telegram"
)

const (
	startText      = "Type (or press) /all for start"
	startupText    = "I started!"
	tagsText       = "Filter tasks by tag:"
	todayFmt       = "%d tasks for today."
	unscheduledFmt = "%d unscheduled tasks."
	tagsPerRow     = 4
)

type commandFunc func(h *handler, ctx context.Context, sc model.Scope, chatID int64) error

// commandMenu is what setMyCommands publishes and /help prints.
var commandMenu = []pkgTelegram.BotCommand{
	{Command: "start", Description: "Show how to begin"},
	{Command: "all", Description: "All tasks"},
	{Command: "today", Description: "Tasks for today"},
	{Command: "unscheduled", Description: "Tasks without a date"},
	{Command: "tags", Description: "Filter tasks by tag"},
	{Command: "help", Description: "List commands"},
}

var commandHandlers = map[string]commandFunc{
	"start":       (*handler).handleStart,
	"all":         (*handler).handleAll,
	"today":       (*handler).handleToday,
	"unscheduled": (*handler).handleUnscheduled,
	"tags":        (*handler).handleTags,
	"help":        (*handler).handleHelp,
}

// handleMessage runs a known command for the owner. Other text is ignored.
func (h *handler) handleMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	name, ok := parseCommand(msg.Text)
	if !ok {
		return nil
	}

	run, ok := commandHandlers[name]
	if !ok {
		h.l.Debugf(ctx, "telegram handler: unknown command %q ignored", name)
		return nil
	}

	sc := scopeFromUser(msg.From)
	chatID := sc.UserID
	if msg.Chat != nil {
		chatID = msg.Chat.ID
	}
	if !h.authorize(ctx, sc, chatID) {
		return nil
	}

	h.l.Infof(ctx, "telegram handler: /%s", name)
	return run(h, ctx, sc, chatID)
}

// parseCommand extracts "all" from "/all", "/all@judah_bot" or "/all extra".
func parseCommand(text string) (string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", false
	}
	name := strings.TrimPrefix(fields[0], "/")
	name, _, _ = strings.Cut(name, "@")
	if name == "" {
		return "", false
	}
	return strings.ToLower(name), true
}

func (h *handler) handleStart(ctx context.Context, sc model.Scope, chatID int64) error {
	return h.sendText(ctx, chatID, startText)
}

func (h *handler) handleHelp(ctx context.Context, sc model.Scope, chatID int64) error {
	var b strings.Builder
	for _, c := range commandMenu {
		fmt.Fprintf(&b, "/%s - %s\n", c.Command, c.Description)
	}
	return h.sendText(ctx, chatID, strings.TrimRight(b.String(), "\n"))
}

func (h *handler) handleAll(ctx context.Context, sc model.Scope, chatID int64) error {
	return h.sendList(ctx, sc, chatID, task.ListInput{Filter: task.FilterAll}, "")
}

func (h *handler) handleToday(ctx context.Context, sc model.Scope, chatID int64) error {
	return h.sendList(ctx, sc, chatID, task.ListInput{Filter: task.FilterToday}, todayFmt)
}

func (h *handler) handleUnscheduled(ctx context.Context, sc model.Scope, chatID int64) error {
	return h.sendList(ctx, sc, chatID, task.ListInput{Filter: task.FilterUnscheduled}, unscheduledFmt)
}

func (h *handler) handleTags(ctx context.Context, sc model.Scope, chatID int64) error {
	tags, err := h.uc.Tags(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: tags: %v", err)
		tags = nil
	}

	kb := pkgTelegram.NewInlineKeyboard()
	n := 0
	for _, tag := range tags {
		data, ok := tagData(tag)
		if !ok {
			h.l.Warnf(ctx, "telegram handler: tag %q is too long for a button, skipped", tag)
			continue
		}
		if n > 0 && n%tagsPerRow == 0 {
			kb.Row()
		}
		kb.Text(tag, data)
		n++
	}

	_, err = h.bot.SendMessage(ctx, pkgTelegram.SendMessageRequest{
		ChatID:      chatID,
		Text:        tagsText,
		ReplyMarkup: kb.Markup(),
	})
	return err
}

// sendList sends an optional count summary followed by one message per task.
// Upstream failures degrade to an empty list.
func (h *handler) sendList(ctx context.Context, sc model.Scope, chatID int64, input task.ListInput, summaryFmt string) error {
	out, err := h.uc.List(ctx, sc, input)
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: list %s: %v", input.Filter, err)
		out = task.ListOutput{}
	}

	if summaryFmt != "" {
		if err := h.sendText(ctx, chatID, fmt.Sprintf(summaryFmt, len(out.Items))); err != nil {
			return err
		}
	}
	return h.sendTasks(ctx, chatID, out.Items)
}

func (h *handler) sendText(ctx context.Context, chatID int64, text string) error {
	_, err := h.bot.SendMessage(ctx, pkgTelegram.SendMessageRequest{ChatID: chatID, Text: text})
	return err
}
