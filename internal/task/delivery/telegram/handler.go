package telegram

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	pkgLog "github.com/gelugu/judah-bot/pkg/log"
	pkgResponse "github.com/gelugu/judah-bot/pkg/response"
	pkgTelegram "github.com/gelugu/judah-bot/pkg/telegram"
)

// HandleWebhook responds with HTTP 200 immediately and processes the update
// in a background goroutine so Telegram does not time out and redeliver.
//
// @Summary Telegram webhook
// @Description Receives updates from the Telegram Bot API
// @Tags webhook
// @Accept json
// @Produce json
// @Param X-Telegram-Bot-Api-Secret-Token header string false "Webhook secret"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Router /webhook/telegram [post]
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	if update.Message == nil && update.CallbackQuery == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	go func() {
		// Detach from the request context, which is cancelled once we respond.
		bgCtx := context.Background()
		defer func() {
			if r := recover(); r != nil {
				h.l.Errorf(bgCtx, "telegram handler: panic while handling update %d: %v", update.UpdateID, r)
			}
		}()
		h.HandleUpdate(bgCtx, update)
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// HandleUpdate routes one update to the command or callback handlers.
// Redelivered updates are dropped.
func (h *handler) HandleUpdate(ctx context.Context, update pkgTelegram.Update) {
	ctx = pkgLog.NewTraceContext(ctx)

	if h.seen.Contains(update.UpdateID) {
		h.l.Debugf(ctx, "telegram handler: duplicate update %d dropped", update.UpdateID)
		return
	}
	h.seen.Add(update.UpdateID, struct{}{})

	var err error
	switch {
	case update.CallbackQuery != nil:
		err = h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		err = h.handleMessage(ctx, update.Message)
	}
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: update %d: %v", update.UpdateID, err)
	}
}

func (h *handler) RegisterCommands(ctx context.Context) error {
	if err := h.bot.SetMyCommands(ctx, commandMenu); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	return nil
}

func (h *handler) NotifyStartup(ctx context.Context) error {
	_, err := h.bot.SendMessage(ctx, pkgTelegram.SendMessageRequest{
		ChatID: h.cfg.OwnerID,
		Text:   startupText,
		ReplyMarkup: pkgTelegram.NewReplyKeyboard(
			[]string{"/all", "/today"},
			[]string{"/unscheduled", "/tags"},
		),
	})
	if err != nil {
		return fmt.Errorf("failed to send startup notice: %w", err)
	}
	return nil
}

func (h *handler) SendToday(ctx context.Context) error {
	return h.handleToday(ctx, h.ownerScope(), h.cfg.OwnerID)
}
