package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrMissingConfig is returned when a required value is absent.
	ErrMissingConfig = errors.New("missing required configuration")
	// ErrInvalidConfig is returned when a value cannot be used.
	ErrInvalidConfig = errors.New("invalid configuration")
)

const (
	TelegramModePolling = "polling"
	TelegramModeWebhook = "webhook"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig
	Timezone    string

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	Telegram       TelegramConfig
	Notion         NotionConfig
	Digest         DigestConfig
	GoogleCalendar GoogleCalendarConfig
	Ngrok          NgrokConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type TelegramConfig struct {
	BotToken           string
	OwnerID            int64
	Mode               string // polling or webhook
	PollTimeout        int    // seconds
	WebhookURL         string
	WebhookSecret      string
	AllowedIPs         []string
	TrustedProxies     []string
	TaskButtons        string // select or reschedule
	SendPolicy         string // sequential or parallel
	ContentPlaceholder bool
}

type NotionConfig struct {
	Token      string
	DatabaseID string
}

type DigestConfig struct {
	Cron string // empty disables the digest
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	TokenPath       string
	CalendarID      string
}

type NgrokConfig struct {
	APIURL string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, . and /etc/judah-bot/.
// A .env file in the working directory is loaded first without overriding
// variables already set in the environment.
func Load() (*Config, error) {
	return load(viper.New(), []string{"./config", ".", "/etc/judah-bot/"}, ".env")
}

func load(v *viper.Viper, paths []string, dotenvPath string) (*Config, error) {
	if err := loadDotenv(dotenvPath); err != nil {
		return nil, err
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindEnvAliases(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.Timezone = v.GetString("timezone")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Telegram
	cfg.Telegram.BotToken = v.GetString("telegram.bot_token")
	cfg.Telegram.Mode = strings.ToLower(v.GetString("telegram.mode"))
	cfg.Telegram.PollTimeout = v.GetInt("telegram.poll_timeout")
	cfg.Telegram.WebhookURL = v.GetString("telegram.webhook_url")
	cfg.Telegram.WebhookSecret = v.GetString("telegram.webhook_secret")
	cfg.Telegram.AllowedIPs = splitList(v.GetString("telegram.allowed_ips"))
	cfg.Telegram.TrustedProxies = splitList(v.GetString("telegram.trusted_proxies"))
	cfg.Telegram.TaskButtons = strings.ToLower(v.GetString("telegram.task_buttons"))
	cfg.Telegram.SendPolicy = strings.ToLower(v.GetString("telegram.send_policy"))
	cfg.Telegram.ContentPlaceholder = v.GetBool("telegram.content_placeholder")

	// Notion
	cfg.Notion.Token = v.GetString("notion.token")
	cfg.Notion.DatabaseID = v.GetString("notion.database_id")

	cfg.Digest.Cron = v.GetString("digest.cron")

	cfg.GoogleCalendar.CredentialsPath = v.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.TokenPath = v.GetString("google_calendar.token_path")
	cfg.GoogleCalendar.CalendarID = v.GetString("google_calendar.calendar_id")

	cfg.Ngrok.APIURL = v.GetString("ngrok.api_url")

	if err := requireAll(map[string]string{
		"telegram.bot_token (TELEGRAM_BOT_TOKEN)": cfg.Telegram.BotToken,
		"telegram.owner_id (TG_OWNER)":           v.GetString("telegram.owner_id"),
		"notion.database_id (NOTION_DB_ID)":      cfg.Notion.DatabaseID,
		"notion.token (NOTION_TOKEN)":            cfg.Notion.Token,
	}); err != nil {
		return nil, err
	}

	ownerID, err := strconv.ParseInt(strings.TrimSpace(v.GetString("telegram.owner_id")), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: telegram.owner_id must be a numeric chat id", ErrInvalidConfig)
	}
	cfg.Telegram.OwnerID = ownerID

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	switch cfg.Telegram.Mode {
	case TelegramModePolling:
	case TelegramModeWebhook:
		if cfg.Telegram.WebhookSecret == "" {
			return fmt.Errorf("%w: telegram.webhook_secret is required in webhook mode", ErrMissingConfig)
		}
	default:
		return fmt.Errorf("%w: telegram.mode %q", ErrInvalidConfig, cfg.Telegram.Mode)
	}

	if cfg.Telegram.TaskButtons != "select" && cfg.Telegram.TaskButtons != "reschedule" {
		return fmt.Errorf("%w: telegram.task_buttons %q", ErrInvalidConfig, cfg.Telegram.TaskButtons)
	}
	if cfg.Telegram.SendPolicy != "sequential" && cfg.Telegram.SendPolicy != "parallel" {
		return fmt.Errorf("%w: telegram.send_policy %q", ErrInvalidConfig, cfg.Telegram.SendPolicy)
	}
	return nil
}

func requireAll(values map[string]string) error {
	var missing []string
	for name, value := range values {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
}

// bindEnvAliases maps the short variable names used by existing deployments.
func bindEnvAliases(v *viper.Viper) {
	_ = v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN", "TG_BOT_TOKEN")
	_ = v.BindEnv("telegram.owner_id", "TELEGRAM_OWNER_ID", "TG_OWNER")
	_ = v.BindEnv("notion.database_id", "NOTION_DATABASE_ID", "NOTION_DB_ID")
	_ = v.BindEnv("notion.token", "NOTION_TOKEN")
	_ = v.BindEnv("google_calendar.credentials_path", "GOOGLE_CALENDAR_CREDENTIALS_PATH", "GOOGLE_CALENDAR_CREDENTIALS")
}

// loadDotenv exports KEY=VALUE pairs from path unless the variable is already set.
func loadDotenv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	env := viper.New()
	env.SetConfigFile(path)
	env.SetConfigType("env")
	if err := env.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}

	for _, key := range env.AllKeys() {
		name := strings.ToUpper(key)
		if _, ok := os.LookupEnv(name); ok {
			continue
		}
		if err := os.Setenv(name, env.GetString(key)); err != nil {
			return fmt.Errorf("error exporting %s: %w", name, err)
		}
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("timezone", "Local")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("telegram.mode", TelegramModePolling)
	v.SetDefault("telegram.poll_timeout", 30)
	v.SetDefault("telegram.task_buttons", "select")
	v.SetDefault("telegram.send_policy", "sequential")
	v.SetDefault("telegram.content_placeholder", true)

	v.SetDefault("google_calendar.token_path", "token.json")
	v.SetDefault("google_calendar.calendar_id", "primary")
	v.SetDefault("ngrok.api_url", "http://127.0.0.1:4040")
}
