package datemath

import "time"

// Choice is one quick reschedule option.
type Choice struct {
	Label string
	Date  time.Time
}

// ISO returns the choice's date as YYYY-MM-DD.
func (c Choice) ISO() string {
	return c.Date.Format(ISODate)
}

var choiceExprs = []struct {
	label string
	expr  string
}{
	{"Today", "today"},
	{"Tomorrow", "tomorrow"},
	{"Next week", "in 1 week"},
	{"Next month", "in 1 month"},
}

// Choices returns the quick reschedule options relative to now:
// today, tomorrow, seven days ahead, and the same day next month.
func (p *Parser) Choices(now time.Time) []Choice {
	out := make([]Choice, 0, len(choiceExprs))
	for _, c := range choiceExprs {
		d, err := p.Parse(c.expr, now)
		if err != nil {
			continue
		}
		out = append(out, Choice{Label: c.label, Date: d})
	}
	return out
}
