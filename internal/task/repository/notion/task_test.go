package notion_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gelugu/judah-bot/internal/task/repository"
	"github.com/gelugu/judah-bot/internal/task/repository/notion"
	"github.com/gelugu/judah-bot/pkg/blocktext"
	"github.com/gelugu/judah-bot/pkg/log"
)

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

const pageJSON = `{
	"object": "page",
	"id": "%s",
	"created_time": "2026-10-01T08:00:00.000Z",
	"last_edited_time": "2026-10-01T08:00:00.000Z",
	"url": "https://www.notion.so/%s",
	"icon": {"type": "emoji", "emoji": "📌"},
	"properties": {
		"Name": {"id": "title", "type": "title", "title": [{"type": "text", "text": {"content": "%s"}, "plain_text": "%s"}]},
		"Tags": {"id": "t", "type": "multi_select", "multi_select": [{"id": "1", "name": "home", "color": "red"}]},
		"Date": {"id": "d", "type": "date", "date": %s},
		"Status": {"id": "s", "type": "status", "status": {"id": "1", "name": "Not started", "color": "default"}}
	}
}`

func sprintfPage(id, name, date string) string {
	d := "null"
	if date != "" {
		d = `{"start": "` + date + `", "end": null}`
	}
	return fmt.Sprintf(pageJSON, id, id, name, name, d)
}

const blocksJSON = `{
	"object": "list",
	"results": [
		{"object": "block", "id": "b1", "type": "heading_1", "heading_1": {"rich_text": [{"type": "text", "text": {"content": "Plan"}, "plain_text": "Plan"}]}},
		{"object": "block", "id": "b2", "type": "to_do", "to_do": {"rich_text": [{"type": "text", "text": {"content": "milk"}, "plain_text": "milk"}], "checked": true}},
		{"object": "block", "id": "b3", "type": "divider", "divider": {}}
	],
	"has_more": false
}`

const databaseJSON = `{
	"object": "database",
	"id": "db1",
	"title": [],
	"properties": {
		"Name": {"id": "title", "type": "title", "title": {}},
		"Tags": {"id": "t", "type": "multi_select", "multi_select": {"options": [
			{"id": "1", "name": "work", "color": "red"},
			{"id": "2", "name": "home", "color": "blue"}
		]}}
	}
}`

type fakeNotion struct {
	t         *testing.T
	fail      bool
	patchBody string
}

func (f *fakeNotion) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if f.fail {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"object": "error", "status": 500, "code": "internal_server_error", "message": "boom"}`))
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/v1/databases/db1/query":
		w.Write([]byte(`{"object": "list", "results": [` +
			sprintfPage("p1", "Today task", "2026-10-15") + `,` +
			sprintfPage("p2", "Later task", "2026-11-01") + `,` +
			sprintfPage("p3", "Someday", "") +
			`], "has_more": false, "next_cursor": null}`))
	case r.Method == http.MethodGet && r.URL.Path == "/v1/blocks/p1/children":
		if r.URL.Query().Get("page_size") != "100" {
			f.t.Errorf("page_size = %q, want 100", r.URL.Query().Get("page_size"))
		}
		w.Write([]byte(blocksJSON))
	case r.Method == http.MethodPatch && r.URL.Path == "/v1/pages/p3":
		body, _ := io.ReadAll(r.Body)
		f.patchBody = string(body)
		w.Write([]byte(sprintfPage("p3", "Someday", "2026-10-20")))
	case r.Method == http.MethodGet && r.URL.Path == "/v1/databases/db1":
		w.Write([]byte(databaseJSON))
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"object": "error", "status": 404, "code": "object_not_found", "message": "not found"}`))
	}
}

func newRepo(t *testing.T, fake *fakeNotion) repository.TaskRepository {
	t.Helper()
	return newRepoIn(t, fake, time.UTC)
}

func newRepoIn(t *testing.T, fake *fakeNotion, loc *time.Location) repository.TaskRepository {
	t.Helper()
	ts := httptest.NewServer(fake)
	t.Cleanup(ts.Close)

	httpClient := ts.Client()
	httpClient.Transport = &rewriteTransport{
		Transport: httpClient.Transport,
		Host:      strings.TrimPrefix(ts.URL, "http://"),
	}
	client := notion.NewClient("secret", "db1", httpClient)
	return notion.New(client, loc, log.NewNop())
}

func TestRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("ListTasks", func(t *testing.T) {
		repo := newRepo(t, &fakeNotion{t: t})
		tasks, err := repo.ListTasks(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tasks) != 3 {
			t.Fatalf("expected 3 tasks, got %d", len(tasks))
		}
		if tasks[0].Name != "Today task" || tasks[0].Icon != "📌" {
			t.Errorf("unexpected first task: %+v", tasks[0])
		}
		if tasks[2].Scheduled() {
			t.Errorf("expected third task to be unscheduled")
		}
	})

	t.Run("ListTasks west of UTC", func(t *testing.T) {
		la := time.FixedZone("PDT", -7*60*60)
		repo := newRepoIn(t, &fakeNotion{t: t}, la)
		tasks, err := repo.ListTasks(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tasks) != 3 {
			t.Fatalf("expected 3 tasks, got %d", len(tasks))
		}
		if got := tasks[0].Date.Format("2006-01-02"); got != "2026-10-15" {
			t.Errorf("date-only task day = %s, want 2026-10-15", got)
		}
		if got := tasks[1].Date.Format("2006-01-02"); got != "2026-10-31" {
			t.Errorf("datetime task day = %s, want 2026-10-31", got)
		}
	})

	t.Run("GetBlocks", func(t *testing.T) {
		repo := newRepo(t, &fakeNotion{t: t})
		blocks, err := repo.GetBlocks(ctx, "p1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(blocks) != 3 {
			t.Fatalf("expected 3 blocks, got %d", len(blocks))
		}
		if got := blocktext.RenderAll(blocks); got != "PLAN\n- \\[x] milk\n" {
			t.Errorf("RenderAll = %q", got)
		}
	})

	t.Run("UpdateTask", func(t *testing.T) {
		fake := &fakeNotion{t: t}
		repo := newRepo(t, fake)
		task, err := repo.UpdateTask(ctx, repository.UpdateTaskOptions{
			ID:   "p3",
			Date: time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(fake.patchBody, `"Date":{"type":"date","date":{"start":"2026-10-20"}}`) {
			t.Errorf("unexpected patch body: %s", fake.patchBody)
		}
		if task.Date == nil || task.Date.Format("2006-01-02") != "2026-10-20" {
			t.Errorf("unexpected returned date: %v", task.Date)
		}
	})

	t.Run("UpdateTask sends the local day", func(t *testing.T) {
		moscow := time.FixedZone("MSK", 3*60*60)
		fake := &fakeNotion{t: t}
		repo := newRepoIn(t, fake, moscow)
		task, err := repo.UpdateTask(ctx, repository.UpdateTaskOptions{
			ID:   "p3",
			Date: time.Date(2026, 10, 20, 0, 0, 0, 0, moscow),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(fake.patchBody, `"date":{"start":"2026-10-20"}`) {
			t.Errorf("unexpected patch body: %s", fake.patchBody)
		}
		want := time.Date(2026, 10, 20, 0, 0, 0, 0, moscow)
		if task.Date == nil || !task.Date.Equal(want) {
			t.Errorf("Date = %v, want %v", task.Date, want)
		}
	})

	t.Run("ListTags", func(t *testing.T) {
		repo := newRepo(t, &fakeNotion{t: t})
		tags, err := repo.ListTags(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tags) != 2 || tags[0] != "work" || tags[1] != "home" {
			t.Errorf("unexpected tags: %v", tags)
		}
	})

	t.Run("Upstream error", func(t *testing.T) {
		repo := newRepo(t, &fakeNotion{t: t, fail: true})
		if _, err := repo.ListTasks(ctx); err == nil {
			t.Error("expected ListTasks error")
		}
		if _, err := repo.GetBlocks(ctx, "p1"); err == nil {
			t.Error("expected GetBlocks error")
		}
		if _, err := repo.ListTags(ctx); err == nil {
			t.Error("expected ListTags error")
		}
	})
}
