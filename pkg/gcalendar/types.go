package gcalendar

import "time"

// DefaultCalendarID is the calendar used when none is configured.
const DefaultCalendarID = "primary"

// AllDayEventRequest is the input for creating an all-day event.
type AllDayEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	Date        time.Time // only the calendar date is used
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID       string
	Summary  string
	HtmlLink string
	Date     time.Time
}
