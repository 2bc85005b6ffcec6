// Package blocktext renders document blocks as Telegram (legacy Markdown) text.
package blocktext

import (
	"fmt"
	"strings"
)

const (
	checkboxChecked   = `- \[x]`
	checkboxUnchecked = `- \[ ]`
)

// Render converts a single block to text. Unknown kinds render as "".
func Render(b Block) string {
	switch b.Kind {
	case KindHeading1, KindHeading2, KindHeading3:
		return mapRuns(b.Runs, strings.ToUpper)
	case KindToDo:
		box := checkboxUnchecked
		if b.Checked {
			box = checkboxChecked
		}
		return mapRuns(b.Runs, func(s string) string { return box + " " + s })
	case KindBulletedListItem:
		return mapRuns(b.Runs, func(s string) string { return "- " + s })
	case KindNumberedListItem:
		lines := make([]string, len(b.Runs))
		for i, r := range b.Runs {
			lines[i] = fmt.Sprintf("%d. %s", i+1, r)
		}
		return strings.Join(lines, "\n")
	case KindQuote:
		return mapRuns(b.Runs, func(s string) string { return "> " + s })
	case KindCallout:
		return mapRuns(b.Runs, func(s string) string { return "`" + s + "`" })
	case KindParagraph, KindToggle, KindSyncedBlock, KindTemplate,
		KindColumn, KindChildPage, KindChildDatabase, KindTable:
		return strings.Join(b.Runs, "\n")
	default:
		return ""
	}
}

// RenderAll renders blocks in order and joins them with newlines.
// Blocks that render empty still take a line.
func RenderAll(blocks []Block) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = Render(b)
	}
	return strings.Join(parts, "\n")
}

func mapRuns(runs []string, fn func(string) string) string {
	out := make([]string, len(runs))
	for i, r := range runs {
		out[i] = fn(r)
	}
	return strings.Join(out, "\n")
}
