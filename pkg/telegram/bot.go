package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	ParseModeMarkdown = "Markdown"

	defaultAPIRoot = "https://api.telegram.org"
)

// Bot is the Telegram Bot API client.
type Bot struct {
	token      string
	apiURL     string
	httpClient *http.Client
}

// NewBot creates a new Telegram Bot client with the given token.
func NewBot(token string) *Bot {
	return &Bot{
		token:      token,
		apiURL:     fmt.Sprintf("%s/bot%s", defaultAPIRoot, token),
		httpClient: &http.Client{},
	}
}

// SetAPIURL overrides the default Telegram API URL for testing purposes.
func (b *Bot) SetAPIURL(url string) {
	b.apiURL = strings.TrimRight(url, "/")
}

// SetHTTPClient replaces the HTTP client used for API calls.
func (b *Bot) SetHTTPClient(c *http.Client) {
	b.httpClient = c
}

// SetWebhook registers the webhook URL with Telegram.
func (b *Bot) SetWebhook(ctx context.Context, req SetWebhookRequest) error {
	if err := b.call(ctx, "setWebhook", req, nil); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}
	return nil
}

// DeleteWebhook removes the webhook so getUpdates can be used.
func (b *Bot) DeleteWebhook(ctx context.Context) error {
	if err := b.call(ctx, "deleteWebhook", map[string]any{}, nil); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}
	return nil
}

// SetMyCommands publishes the bot's command list.
func (b *Bot) SetMyCommands(ctx context.Context, commands []BotCommand) error {
	payload := map[string]any{"commands": commands}
	if err := b.call(ctx, "setMyCommands", payload, nil); err != nil {
		return fmt.Errorf("failed to set commands: %w", err)
	}
	return nil
}

// SendMessage sends a text message and returns the created message.
func (b *Bot) SendMessage(ctx context.Context, req SendMessageRequest) (Message, error) {
	var out struct {
		Result Message `json:"result"`
	}
	if err := b.call(ctx, "sendMessage", req, &out); err != nil {
		return Message{}, fmt.Errorf("failed to send message: %w", err)
	}
	return out.Result, nil
}

// EditMessageText replaces the text of a previously sent message.
func (b *Bot) EditMessageText(ctx context.Context, req EditMessageTextRequest) error {
	if err := b.call(ctx, "editMessageText", req, nil); err != nil {
		return fmt.Errorf("failed to edit message text: %w", err)
	}
	return nil
}

// EditMessageReplyMarkup replaces the inline keyboard of a previously sent message.
func (b *Bot) EditMessageReplyMarkup(ctx context.Context, req EditMessageReplyMarkupRequest) error {
	if err := b.call(ctx, "editMessageReplyMarkup", req, nil); err != nil {
		return fmt.Errorf("failed to edit reply markup: %w", err)
	}
	return nil
}

// AnswerCallbackQuery acknowledges a callback query.
func (b *Bot) AnswerCallbackQuery(ctx context.Context, req AnswerCallbackQueryRequest) error {
	if err := b.call(ctx, "answerCallbackQuery", req, nil); err != nil {
		return fmt.Errorf("failed to answer callback query: %w", err)
	}
	return nil
}

// GetUpdates long-polls for new updates.
func (b *Bot) GetUpdates(ctx context.Context, req GetUpdatesRequest) ([]Update, error) {
	var out struct {
		Result []Update `json:"result"`
	}
	if err := b.call(ctx, "getUpdates", req, &out); err != nil {
		return nil, fmt.Errorf("failed to get updates: %w", err)
	}
	return out.Result, nil
}

// call posts payload to the given Bot API method and decodes the response into out.
func (b *Bot) call(ctx context.Context, method string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.apiURL+"/"+method, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", method, err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return fmt.Errorf("telegram %s API error %d: %s", method, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram %s failed: %s", method, apiResp.Description)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", method, err)
		}
	}
	return nil
}
