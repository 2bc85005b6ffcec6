package notion_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jomei/notionapi"

	"github.com/gelugu/judah-bot/internal/task/repository"
	"github.com/gelugu/judah-bot/internal/task/repository/notion"
)

func page(props notionapi.Properties, icon *notionapi.Icon) notion.Record {
	return notion.Record{Page: notionapi.Page{
		ID:          notionapi.ObjectID("5c6a28216bb14a7eb6e1c50111515c3d"),
		URL:         "https://www.notion.so/task-5c6a28216bb14a7eb6e1c50111515c3d",
		CreatedTime: time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC),
		Icon:        icon,
		Properties:  props,
	}}
}

func dayRecord(props notionapi.Properties) notion.Record {
	rec := page(props, nil)
	rec.DateOnly = true
	return rec
}

func fullProps(date *notionapi.DateObject) notionapi.Properties {
	return notionapi.Properties{
		notion.PropertyName: &notionapi.TitleProperty{
			Title: []notionapi.RichText{{PlainText: "Buy"}, {PlainText: "milk"}},
		},
		notion.PropertyTags: &notionapi.MultiSelectProperty{
			MultiSelect: []notionapi.Option{{Name: "home"}, {Name: "errands"}},
		},
		notion.PropertyDate:   &notionapi.DateProperty{Date: date},
		notion.PropertyStatus: &notionapi.StatusProperty{Status: notionapi.Status{Name: "In progress"}},
	}
}

func TestPageToTask(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	losAngeles := time.FixedZone("PDT", -7*60*60)

	t.Run("All fields", func(t *testing.T) {
		emoji := notionapi.Emoji("📌")
		d := notionapi.Date(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC))
		rec := dayRecord(fullProps(&notionapi.DateObject{Start: &d}))
		rec.Icon = &notionapi.Icon{Type: "emoji", Emoji: &emoji}
		got, err := notion.PageToTask(rec, moscow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Name != "Buy milk" {
			t.Errorf("Name = %q", got.Name)
		}
		if got.Icon != "📌" {
			t.Errorf("Icon = %q", got.Icon)
		}
		if got.Status != "In progress" {
			t.Errorf("Status = %q", got.Status)
		}
		if len(got.Tags) != 2 || got.Tags[0] != "home" || got.Tags[1] != "errands" {
			t.Errorf("Tags = %v", got.Tags)
		}
		if got.Date == nil {
			t.Fatal("expected date")
		}
		want := time.Date(2026, 10, 15, 0, 0, 0, 0, moscow)
		if !got.Date.Equal(want) {
			t.Errorf("Date = %v, want %v", got.Date, want)
		}
		if got.ID != "5c6a28216bb14a7eb6e1c50111515c3d" {
			t.Errorf("ID = %q", got.ID)
		}
	})

	t.Run("Datetime keeps local calendar day", func(t *testing.T) {
		// 22:30 UTC on the 14th is the 15th in UTC+3.
		d := notionapi.Date(time.Date(2026, 10, 14, 22, 30, 0, 0, time.UTC))
		got, err := notion.PageToTask(page(fullProps(&notionapi.DateObject{Start: &d}), nil), moscow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Date == nil || got.Date.Day() != 15 {
			t.Errorf("Date = %v, want the 15th", got.Date)
		}
	})

	t.Run("Date-only keeps its day west of UTC", func(t *testing.T) {
		d := notionapi.Date(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC))
		got, err := notion.PageToTask(dayRecord(fullProps(&notionapi.DateObject{Start: &d})), losAngeles)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2026, 10, 15, 0, 0, 0, 0, losAngeles)
		if got.Date == nil || !got.Date.Equal(want) {
			t.Errorf("Date = %v, want %v", got.Date, want)
		}
	})

	t.Run("Datetime at UTC midnight moves to local day", func(t *testing.T) {
		// 00:00 UTC on the 15th is the evening of the 14th in UTC-7.
		d := notionapi.Date(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC))
		got, err := notion.PageToTask(page(fullProps(&notionapi.DateObject{Start: &d}), nil), losAngeles)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2026, 10, 14, 0, 0, 0, 0, losAngeles)
		if got.Date == nil || !got.Date.Equal(want) {
			t.Errorf("Date = %v, want %v", got.Date, want)
		}
	})

	t.Run("Null date is unscheduled", func(t *testing.T) {
		got, err := notion.PageToTask(page(fullProps(nil), nil), moscow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Scheduled() {
			t.Errorf("expected unscheduled task, got %v", got.Date)
		}
		if got.Icon != "" {
			t.Errorf("Icon = %q, want empty", got.Icon)
		}
	})

	t.Run("Non-emoji icon", func(t *testing.T) {
		got, err := notion.PageToTask(page(fullProps(nil), &notionapi.Icon{Type: "external"}), moscow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Icon != "Unknown type: external" {
			t.Errorf("Icon = %q", got.Icon)
		}
	})

	t.Run("Empty title and tags", func(t *testing.T) {
		props := fullProps(nil)
		props[notion.PropertyName] = &notionapi.TitleProperty{}
		props[notion.PropertyTags] = &notionapi.MultiSelectProperty{}
		got, err := notion.PageToTask(page(props, nil), moscow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Name != "" || len(got.Tags) != 0 {
			t.Errorf("got name %q tags %v", got.Name, got.Tags)
		}
	})

	t.Run("Missing property", func(t *testing.T) {
		props := fullProps(nil)
		delete(props, notion.PropertyStatus)
		_, err := notion.PageToTask(page(props, nil), moscow)
		if !errors.Is(err, repository.ErrSchemaDrift) {
			t.Errorf("expected ErrSchemaDrift, got %v", err)
		}
	})

	t.Run("Wrong property type", func(t *testing.T) {
		props := fullProps(nil)
		props[notion.PropertyTags] = &notionapi.SelectProperty{}
		_, err := notion.PageToTask(page(props, nil), moscow)
		if !errors.Is(err, repository.ErrSchemaDrift) {
			t.Errorf("expected ErrSchemaDrift, got %v", err)
		}
	})
}
