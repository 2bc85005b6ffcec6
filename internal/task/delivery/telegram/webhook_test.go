package telegram_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gelugu/judah-bot/internal/task/delivery/telegram"
)

func postUpdate(engine *gin.Engine, body []byte) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func waitForCalls(tg *fakeTelegram, method string, atLeast int, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) && len(tg.byMethod(method)) < atLeast {
		time.Sleep(20 * time.Millisecond)
	}
}

func TestHandleWebhook(t *testing.T) {
	env := newTestEnv(t, threeTaskRepo(), telegram.Config{})
	engine := gin.New()
	engine.POST("/webhook/telegram", env.h.HandleWebhook)

	t.Run("invalid JSON", func(t *testing.T) {
		if w := postUpdate(engine, []byte("{bad json")); w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("non message update", func(t *testing.T) {
		w := postUpdate(engine, []byte(`{"update_id": 9001}`))
		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("command is processed in background", func(t *testing.T) {
		body, _ := json.Marshal(commandUpdate(ownerID, "/start"))
		if w := postUpdate(engine, body); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		waitForCalls(env.tg, "sendMessage", 1, time.Second)
		assertContains(t, env.tg.texts(), "/all for start")
	})
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("register commands", func(t *testing.T) {
		env := newTestEnv(t, threeTaskRepo(), telegram.Config{})
		if err := env.h.RegisterCommands(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		calls := env.tg.byMethod("setMyCommands")
		if len(calls) != 1 {
			t.Fatalf("expected setMyCommands, got %d calls", len(calls))
		}
		cmds := calls[0].Payload["commands"].([]any)
		if len(cmds) != 6 || cmds[0].(map[string]any)["command"] != "start" {
			t.Errorf("unexpected commands: %v", cmds)
		}
	})

	t.Run("startup notice", func(t *testing.T) {
		env := newTestEnv(t, threeTaskRepo(), telegram.Config{})
		if err := env.h.NotifyStartup(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sent := env.tg.byMethod("sendMessage")
		if len(sent) != 1 || sent[0].Payload["text"] != "I started!" || sent[0].Payload["chat_id"].(float64) != float64(ownerID) {
			t.Fatalf("unexpected notice: %v", sent)
		}
		kb := sent[0].Payload["reply_markup"].(map[string]any)["keyboard"].([]any)
		if len(kb) != 2 {
			t.Errorf("expected 2 keyboard rows, got %v", kb)
		}
	})

	t.Run("send today to owner", func(t *testing.T) {
		env := newTestEnv(t, threeTaskRepo(), telegram.Config{})
		if err := env.h.SendToday(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sent := env.tg.byMethod("sendMessage")
		if len(sent) != 2 || sent[0].Payload["text"] != "1 tasks for today." {
			t.Fatalf("unexpected messages: %v", env.tg.texts())
		}
		for _, s := range sent {
			if s.Payload["chat_id"].(float64) != float64(ownerID) {
				t.Errorf("digest sent to %v", s.Payload["chat_id"])
			}
		}
	})
}
