package notion

import (
	"fmt"
	"strings"
	"time"

	"github.com/jomei/notionapi"

	"github.com/gelugu/judah-bot/internal/model"
	"github.com/gelugu/judah-bot/internal/task/repository"
)

const dateLayout = "2006-01-02"

// PageToTask maps a database record to a Task. Dates are normalized to midnight
// of their calendar day in loc. A missing or mistyped property is reported as
// repository.ErrSchemaDrift.
func PageToTask(rec Record, loc *time.Location) (model.Task, error) {
	page := rec.Page

	title, err := property[*notionapi.TitleProperty](page, PropertyName)
	if err != nil {
		return model.Task{}, err
	}
	tags, err := property[*notionapi.MultiSelectProperty](page, PropertyTags)
	if err != nil {
		return model.Task{}, err
	}
	date, err := property[*notionapi.DateProperty](page, PropertyDate)
	if err != nil {
		return model.Task{}, err
	}
	status, err := property[*notionapi.StatusProperty](page, PropertyStatus)
	if err != nil {
		return model.Task{}, err
	}

	names := make([]string, 0, len(title.Title))
	for _, rt := range title.Title {
		names = append(names, rt.PlainText)
	}

	tagNames := make([]string, 0, len(tags.MultiSelect))
	for _, o := range tags.MultiSelect {
		tagNames = append(tagNames, o.Name)
	}

	return model.Task{
		ID:          page.ID.String(),
		Name:        strings.Join(names, " "),
		Icon:        iconText(page.Icon),
		Status:      model.Status(status.Status.Name),
		Date:        calendarDate(date.Date, rec.DateOnly, loc),
		CreatedTime: page.CreatedTime,
		Tags:        tagNames,
		URL:         page.URL,
	}, nil
}

func property[T notionapi.Property](page notionapi.Page, name string) (T, error) {
	var zero T
	raw, ok := page.Properties[name]
	if !ok || raw == nil {
		return zero, fmt.Errorf("%w: page %s has no %q property", repository.ErrSchemaDrift, page.ID, name)
	}
	p, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("%w: property %q of page %s has type %s", repository.ErrSchemaDrift, name, page.ID, raw.GetType())
	}
	return p, nil
}

func iconText(icon *notionapi.Icon) string {
	if icon == nil {
		return ""
	}
	if string(icon.Type) == "emoji" && icon.Emoji != nil {
		return string(*icon.Emoji)
	}
	return fmt.Sprintf("Unknown type: %s", icon.Type)
}

// calendarDate keeps the day of a date-only value and converts a date-time
// to its day in loc.
func calendarDate(d *notionapi.DateObject, dateOnly bool, loc *time.Location) *time.Time {
	if d == nil || d.Start == nil {
		return nil
	}
	t := time.Time(*d.Start)
	if t.IsZero() {
		return nil
	}
	if !dateOnly {
		t = t.In(loc)
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return &day
}
