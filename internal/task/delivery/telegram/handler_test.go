package telegram_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gelugu/judah-bot/internal/model"
	"github.com/gelugu/judah-bot/internal/task/delivery/telegram"
	"github.com/gelugu/judah-bot/internal/task/repository"
	"github.com/gelugu/judah-bot/internal/task/usecase"
	"github.com/gelugu/judah-bot/pkg/blocktext"
	"github.com/gelugu/judah-bot/pkg/datemath"
	pkgTelegram "github.com/gelugu/judah-bot/pkg/telegram"
)

// ── Mocks ──────────────────────────────────────────────────────────────────

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

// memRepo is an in-memory repository.TaskRepository.
type memRepo struct {
	mu      sync.Mutex
	tasks   []model.Task
	tags    []string
	blocks  map[string][]blocktext.Block
	listErr error
	updates []repository.UpdateTaskOptions
}

func (m *memRepo) ListTasks(ctx context.Context) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]model.Task(nil), m.tasks...), nil
}

func (m *memRepo) GetBlocks(ctx context.Context, taskID string) ([]blocktext.Block, error) {
	return m.blocks[taskID], nil
}

func (m *memRepo) UpdateTask(ctx context.Context, opt repository.UpdateTaskOptions) (model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, opt)
	for i := range m.tasks {
		if m.tasks[i].ID == opt.ID {
			d := opt.Date
			m.tasks[i].Date = &d
			return m.tasks[i], nil
		}
	}
	return model.Task{}, errors.New("object_not_found")
}

func (m *memRepo) ListTags(ctx context.Context) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.tags, nil
}

// ── Fake Telegram ──────────────────────────────────────────────────────────

type apiCall struct {
	Method  string
	Payload map[string]any
}

type fakeTelegram struct {
	mu     sync.Mutex
	calls  []apiCall
	nextID int64
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	var payload map[string]any
	json.NewDecoder(r.Body).Decode(&payload)

	f.mu.Lock()
	f.calls = append(f.calls, apiCall{Method: method, Payload: payload})
	f.nextID++
	id := f.nextID
	f.mu.Unlock()

	if method == "sendMessage" {
		json.NewEncoder(w).Encode(map[string]any{
			"ok":     true,
			"result": map[string]any{"message_id": id, "chat": map[string]any{"id": payload["chat_id"], "type": "private"}},
		})
		return
	}
	w.Write([]byte(`{"ok": true, "result": true}`))
}

func (f *fakeTelegram) byMethod(method string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []apiCall
	for _, c := range f.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeTelegram) texts() []string {
	var out []string
	for _, c := range f.byMethod("sendMessage") {
		out = append(out, c.Payload["text"].(string))
	}
	return out
}

func (f *fakeTelegram) reset() {
	f.mu.Lock()
	f.calls = nil
	f.mu.Unlock()
}

// buttons flattens an inline keyboard payload into rows of [text, callback_data, url].
func buttons(t *testing.T, markup any) [][][3]string {
	t.Helper()
	m, ok := markup.(map[string]any)
	if !ok {
		t.Fatalf("expected reply_markup object, got %T", markup)
	}
	var rows [][][3]string
	for _, rawRow := range m["inline_keyboard"].([]any) {
		var row [][3]string
		for _, rawBtn := range rawRow.([]any) {
			b := rawBtn.(map[string]any)
			data, _ := b["callback_data"].(string)
			url, _ := b["url"].(string)
			row = append(row, [3]string{b["text"].(string), data, url})
		}
		rows = append(rows, row)
	}
	return rows
}

// ── Test Helpers ───────────────────────────────────────────────────────────

const ownerID int64 = 1001

var now = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func threeTaskRepo() *memRepo {
	return &memRepo{
		tasks: []model.Task{
			{ID: "t1", Name: "Today task", Icon: "📌", Date: date(2026, 10, 15), Tags: []string{"work"}, URL: "https://notion.so/t1"},
			{ID: "t2", Name: "Future task", Date: date(2026, 11, 1), Tags: []string{"home", "a:b"}, URL: "https://notion.so/t2"},
			{ID: "t3", Name: "Someday", URL: "https://notion.so/t3"},
		},
		tags: []string{"work", "home", "idea", "errands", "a:b"},
		blocks: map[string][]blocktext.Block{
			"t1": {{Kind: blocktext.KindParagraph, Runs: []string{"Buy milk"}}},
		},
	}
}

type testEnv struct {
	h    telegram.Handler
	tg   *fakeTelegram
	repo *memRepo
}

func newTestEnv(t *testing.T, repo *memRepo, cfg telegram.Config) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tg := &fakeTelegram{}
	srv := httptest.NewServer(tg)
	t.Cleanup(srv.Close)

	bot := pkgTelegram.NewBot("test-token")
	bot.SetAPIURL(srv.URL)

	parser := datemath.NewParserIn(time.UTC)
	uc := usecase.New(&mockLogger{}, repo, parser, usecase.WithClock(func() time.Time { return now }))

	cfg.OwnerID = ownerID
	cfg.Now = func() time.Time { return now }
	return &testEnv{
		h:    telegram.New(&mockLogger{}, uc, bot, parser, cfg),
		tg:   tg,
		repo: repo,
	}
}

var updateSeq int64

func commandUpdate(from int64, text string) pkgTelegram.Update {
	updateSeq++
	return pkgTelegram.Update{
		UpdateID: updateSeq,
		Message: &pkgTelegram.Message{
			MessageID: 1,
			Chat:      &pkgTelegram.Chat{ID: from, Type: "private"},
			From:      &pkgTelegram.User{ID: from, FirstName: "Eve", Username: "eve"},
			Text:      text,
		},
	}
}

func callbackUpdate(from int64, data string) pkgTelegram.Update {
	updateSeq++
	return pkgTelegram.Update{
		UpdateID: updateSeq,
		CallbackQuery: &pkgTelegram.CallbackQuery{
			ID:      "cb",
			From:    &pkgTelegram.User{ID: from, FirstName: "Eve", LastName: "Stranger", Username: "eve"},
			Message: &pkgTelegram.Message{MessageID: 7, Chat: &pkgTelegram.Chat{ID: from, Type: "private"}},
			Data:    data,
		},
	}
}

func assertContains(t *testing.T, msgs []string, substr string) {
	t.Helper()
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return
		}
	}
	t.Errorf("expected a message containing %q, got: %v", substr, msgs)
}
