package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISODate is the calendar date layout used in callback payloads and the Notion API.
const ISODate = "2006-01-02"

var inDurationRe = regexp.MustCompile(`^in (\d+) (day|days|week|weeks|month|months)$`)

// Parser converts relative date strings to calendar dates in one location.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// "" and "Local" both mean the host's local zone.
func NewParser(timezone string) (*Parser, error) {
	if timezone == "" || timezone == "Local" {
		return &Parser{location: time.Local}, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// NewParserIn creates a parser for an already loaded location.
func NewParserIn(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.Local
	}
	return &Parser{location: loc}
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Parse converts a relative date string to midnight of the resulting day.
// The baseTime is used as the reference point (usually time.Now()).
func (p *Parser) Parse(relative string, baseTime time.Time) (time.Time, error) {
	relative = strings.ToLower(strings.TrimSpace(relative))

	switch relative {
	case "today":
		return p.StartOfDay(baseTime), nil
	case "tomorrow":
		return p.StartOfDay(baseTime).AddDate(0, 0, 1), nil
	case "yesterday":
		return p.StartOfDay(baseTime).AddDate(0, 0, -1), nil
	}

	if strings.HasPrefix(relative, "in ") {
		return p.parseInDuration(relative, baseTime)
	}

	return baseTime, fmt.Errorf("unsupported relative date: %q", relative)
}

// ParseISO parses a YYYY-MM-DD date as midnight in the parser's timezone.
func (p *Parser) ParseISO(value string) (time.Time, error) {
	t, err := time.ParseInLocation(ISODate, strings.TrimSpace(value), p.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// SameDay reports whether a and b fall on the same calendar day in the parser's timezone.
func (p *Parser) SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(p.location).Date()
	by, bm, bd := b.In(p.location).Date()
	return ay == by && am == bm && ad == bd
}

// parseInDuration handles patterns like "in 3 days", "in 2 weeks", "in 1 month".
func (p *Parser) parseInDuration(relative string, baseTime time.Time) (time.Time, error) {
	matches := inDurationRe.FindStringSubmatch(relative)
	if len(matches) != 3 {
		return baseTime, fmt.Errorf("invalid duration format: %q", relative)
	}

	amount, _ := strconv.Atoi(matches[1])
	start := p.StartOfDay(baseTime)

	switch unit := matches[2]; {
	case strings.HasPrefix(unit, "day"):
		return start.AddDate(0, 0, amount), nil
	case strings.HasPrefix(unit, "week"):
		return start.AddDate(0, 0, amount*7), nil
	default:
		return addMonthsClamped(start, amount), nil
	}
}

// StartOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) StartOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// addMonthsClamped moves t by n calendar months keeping the day of month,
// clamped to the last day of the target month (Jan 31 + 1 month = Feb 28/29).
func addMonthsClamped(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return first.AddDate(0, 0, day-1)
}
