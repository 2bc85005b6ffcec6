package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gelugu/judah-bot/internal/model"
	pkgTelegram "github.com/gelugu/judah-bot/pkg/telegram"
)

const deniedText = "You are not allowed to use this bot."

// authorize lets the owner through. Anyone else gets one denial reply and
// the owner gets one alert about the attempt.
func (h *handler) authorize(ctx context.Context, sc model.Scope, chatID int64) bool {
	if sc.UserID == h.cfg.OwnerID {
		return true
	}

	h.l.Warnf(ctx, "telegram handler: unauthorized access by %d (%s)", sc.UserID, sc.DisplayName())

	if _, err := h.bot.SendMessage(ctx, pkgTelegram.SendMessageRequest{
		ChatID: chatID,
		Text:   deniedText,
	}); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to send denial: %v", err)
	}

	if _, err := h.bot.SendMessage(ctx, pkgTelegram.SendMessageRequest{
		ChatID: h.cfg.OwnerID,
		Text:   alertText(sc, h.cfg.Now()),
	}); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to alert owner: %v", err)
	}
	return false
}

func alertText(sc model.Scope, at time.Time) string {
	username := "-"
	if sc.Username != "" {
		username = "@" + sc.Username
	}
	return fmt.Sprintf(
		"Unauthorized access attempt\nID: %d\nUsername: %s\nName: %s\nTime: %s",
		sc.UserID, username, strings.TrimSpace(sc.FirstName+" "+sc.LastName), at.Format(time.RFC1123),
	)
}

func scopeFromUser(u *pkgTelegram.User) model.Scope {
	if u == nil {
		return model.Scope{}
	}
	return model.Scope{
		UserID:    u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func (h *handler) ownerScope() model.Scope {
	return model.Scope{UserID: h.cfg.OwnerID}
}
