package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gelugu/judah-bot/config"
	_ "github.com/gelugu/judah-bot/docs" // Swagger docs
	"github.com/gelugu/judah-bot/internal/httpserver"
	"github.com/gelugu/judah-bot/internal/task/delivery/scheduler"
	tgDelivery "github.com/gelugu/judah-bot/internal/task/delivery/telegram"
	notionRepo "github.com/gelugu/judah-bot/internal/task/repository/notion"
	"github.com/gelugu/judah-bot/internal/task/usecase"
	"github.com/gelugu/judah-bot/internal/webhook"
	"github.com/gelugu/judah-bot/pkg/datemath"
	"github.com/gelugu/judah-bot/pkg/gcalendar"
	"github.com/gelugu/judah-bot/pkg/log"
	"github.com/gelugu/judah-bot/pkg/telegram"
)

const notionTimeout = 30 * time.Second

// @title       Judah Bot API
// @description Personal Notion task notifications over Telegram.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting judah-bot...")
	logger.Infof(ctx, "Environment: %s, updates: %s", cfg.Environment.Name, cfg.Telegram.Mode)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "Bot stopped with error: ", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Bot stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, logger log.Logger) error {
	// 3. Dates
	dateMathParser, err := datemath.NewParser(cfg.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to local time: %v", cfg.Timezone, err)
		dateMathParser = datemath.NewParserIn(time.Local)
	}

	// 4. Notion repository
	notionClient := notionRepo.NewClient(cfg.Notion.Token, cfg.Notion.DatabaseID, &http.Client{Timeout: notionTimeout})
	taskRepo := notionRepo.New(notionClient, dateMathParser.Location(), logger)

	// 5. Google Calendar (optional)
	var ucOpts []usecase.Option
	if cfg.GoogleCalendar.CredentialsPath != "" {
		calendarClient, calErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath, cfg.GoogleCalendar.TokenPath)
		if calErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", calErr)
			logger.Warn(ctx, "Run `go run ./scripts/gcal-auth` to generate token.json")
		} else {
			ucOpts = append(ucOpts, usecase.WithCalendar(calendarClient, cfg.GoogleCalendar.CalendarID))
			logger.Info(ctx, "Google Calendar initialized")
		}
	}

	// 6. Task usecase
	taskUC := usecase.New(logger, taskRepo, dateMathParser, ucOpts...)

	// 7. Telegram
	bot := telegram.NewBot(cfg.Telegram.BotToken)
	telegramHandler := tgDelivery.New(logger, taskUC, bot, dateMathParser, tgDelivery.Config{
		OwnerID:            cfg.Telegram.OwnerID,
		TaskButtons:        cfg.Telegram.TaskButtons,
		SendPolicy:         cfg.Telegram.SendPolicy,
		ContentPlaceholder: cfg.Telegram.ContentPlaceholder,
	})

	if err := telegramHandler.RegisterCommands(ctx); err != nil {
		logger.Warnf(ctx, "Failed to register bot commands: %v", err)
	}
	if err := telegramHandler.NotifyStartup(ctx); err != nil {
		logger.Warnf(ctx, "Failed to notify owner about startup: %v", err)
	}

	// 8. Daily digest
	if cfg.Digest.Cron != "" {
		digest, err := scheduler.NewDigest(logger, telegramHandler, cfg.Digest.Cron, dateMathParser.Location())
		if err != nil {
			return err
		}
		digest.Start()
		defer digest.Stop()
	}

	// 9. Updates
	srvCfg := httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,

		TrustedProxies: cfg.Telegram.TrustedProxies,
	}

	g, gctx := errgroup.WithContext(ctx)

	switch cfg.Telegram.Mode {
	case config.TelegramModeWebhook:
		validator, err := webhook.NewSecurityValidator(webhook.SecurityConfig{
			Secret:     cfg.Telegram.WebhookSecret,
			AllowedIPs: cfg.Telegram.AllowedIPs,
		})
		if err != nil {
			return fmt.Errorf("webhook security: %w", err)
		}
		srvCfg.TelegramHandler = telegramHandler
		srvCfg.WebhookGuard = webhook.Guard(logger, validator)

		if err := registerWebhook(ctx, cfg, bot, logger); err != nil {
			return err
		}
	default:
		if err := bot.DeleteWebhook(ctx); err != nil {
			logger.Warnf(ctx, "Failed to delete webhook before polling: %v", err)
		}
		poller := telegram.NewPoller(bot, cfg.Telegram.PollTimeout, func(err error) {
			logger.Warnf(ctx, "Polling error: %v", err)
		})
		g.Go(func() error {
			logger.Info(gctx, "Polling Telegram for updates")
			return poller.Run(gctx, telegramHandler.HandleUpdate)
		})
	}

	// 10. HTTP server
	httpServer, err := httpserver.New(logger, srvCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}
	g.Go(func() error {
		return httpServer.Run(gctx)
	})

	return g.Wait()
}

// registerWebhook points Telegram at the configured URL, or at a detected ngrok tunnel.
func registerWebhook(ctx context.Context, cfg *config.Config, bot *telegram.Bot, logger log.Logger) error {
	webhookURL := cfg.Telegram.WebhookURL
	if webhookURL == "" {
		ngrokURL, err := detectNgrokURL(ctx, cfg.Ngrok.APIURL)
		if err != nil {
			return fmt.Errorf("no webhook URL configured and ngrok detection failed: %w", err)
		}
		webhookURL = ngrokURL + "/webhook/telegram"
		logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
	}

	err := bot.SetWebhook(ctx, telegram.SetWebhookRequest{
		URL:            webhookURL,
		SecretToken:    cfg.Telegram.WebhookSecret,
		AllowedUpdates: []string{"message", "callback_query"},
	})
	if err != nil {
		return err
	}
	logger.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
	return nil
}
