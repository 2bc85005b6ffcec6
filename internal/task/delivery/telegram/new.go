package telegram

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/gelugu/judah-bot/internal/task"
	"github.com/gelugu/judah-bot/pkg/datemath"
	pkgLog "github.com/gelugu/judah-bot/pkg/log"
	pkgTelegram "github.com/gelugu/judah-bot/pkg/telegram"
)

// Task action row layouts.
const (
	ButtonsSelect     = "select"
	ButtonsReschedule = "reschedule"
)

// Task list send policies.
const (
	SendSequential = "sequential"
	SendParallel   = "parallel"
)

const (
	seenUpdatesSize = 1024
	seenUpdatesTTL  = 10 * time.Minute
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	// HandleWebhook is the gin handler for webhook mode.
	HandleWebhook(c *gin.Context)
	// HandleUpdate processes one update synchronously. Used by the poller.
	HandleUpdate(ctx context.Context, update pkgTelegram.Update)
	// RegisterCommands publishes the command menu.
	RegisterCommands(ctx context.Context) error
	// NotifyStartup tells the owner the bot is up.
	NotifyStartup(ctx context.Context) error
	// SendToday sends the owner today's tasks.
	SendToday(ctx context.Context) error
}

// Config holds the dispatcher options.
type Config struct {
	OwnerID            int64
	TaskButtons        string
	SendPolicy         string
	ContentPlaceholder bool
	Now                func() time.Time
}

type handler struct {
	l        pkgLog.Logger
	uc       task.UseCase
	bot      *pkgTelegram.Bot
	dateMath *datemath.Parser
	cfg      Config
	seen     *expirable.LRU[int64, struct{}]
}

// New creates a new Telegram delivery handler.
func New(
	l pkgLog.Logger,
	uc task.UseCase,
	bot *pkgTelegram.Bot,
	dateMath *datemath.Parser,
	cfg Config,
) Handler {
	if cfg.TaskButtons == "" {
		cfg.TaskButtons = ButtonsSelect
	}
	if cfg.SendPolicy == "" {
		cfg.SendPolicy = SendSequential
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &handler{
		l:        l,
		uc:       uc,
		bot:      bot,
		dateMath: dateMath,
		cfg:      cfg,
		seen:     expirable.NewLRU[int64, struct{}](seenUpdatesSize, nil, seenUpdatesTTL),
	}
}
