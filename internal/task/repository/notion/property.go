package notion

import (
	"time"

	"github.com/jomei/notionapi"
)

// dayProperty is a date property value without a time of day.
// notionapi.Date always marshals as RFC3339, which Notion stores as a timed date.
type dayProperty struct {
	Type notionapi.PropertyType `json:"type"`
	Date dayValue               `json:"date"`
}

type dayValue struct {
	Start string `json:"start"`
}

var _ notionapi.Property = dayProperty{}

func newDayProperty(day time.Time) dayProperty {
	return dayProperty{
		Type: notionapi.PropertyTypeDate,
		Date: dayValue{Start: day.Format(dateLayout)},
	}
}

func (p dayProperty) GetID() string                   { return "" }
func (p dayProperty) GetType() notionapi.PropertyType { return p.Type }
