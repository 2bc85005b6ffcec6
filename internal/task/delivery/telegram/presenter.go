package telegram

import (
	"fmt"

	"github.com/gelugu/judah-bot/internal/model"
	"github.com/gelugu/judah-bot/internal/task"
	pkgTelegram "github.com/gelugu/judah-bot/pkg/telegram"
)

const (
	dateLineLayout = "Mon Jan 02 2006"
	noContentText  = "No content"
	choicesPerRow  = 2
)

// taskText renders "<icon> *<name>*", a blank line, the content and the date line.
func (h *handler) taskText(item task.Item) string {
	text := fmt.Sprintf("*%s*", item.Task.Name)
	if item.Task.Icon != "" {
		text = item.Task.Icon + " " + text
	}

	content := item.Content
	if content == "" && h.cfg.ContentPlaceholder {
		content = fmt.Sprintf("[Add content](%s)", item.Task.URL)
	}
	text += "\n\n" + content

	if item.Task.Date != nil {
		text += "\n\nDate: " + item.Task.Date.Format(dateLineLayout)
	}
	return text
}

// taskActions builds the action row attached to the task message messageID.
func (h *handler) taskActions(t model.Task, messageID int64) *pkgTelegram.InlineKeyboardMarkup {
	kb := pkgTelegram.NewInlineKeyboard()
	switch h.cfg.TaskButtons {
	case ButtonsReschedule:
		kb.URL("Go to task", t.URL).Text("Reschedule", scheduleData(t.ID, messageID))
	default:
		kb.Text("Open", taskData(t.ID))
	}
	return kb.Markup()
}

// dateChoices builds the [Today][Tomorrow] / [Next week][Next month] grid.
func (h *handler) dateChoices(taskID string, messageID int64) *pkgTelegram.InlineKeyboardMarkup {
	kb := pkgTelegram.NewInlineKeyboard()
	for i, c := range h.dateMath.Choices(h.cfg.Now()) {
		if i > 0 && i%choicesPerRow == 0 {
			kb.Row()
		}
		kb.Text(c.Label, setDateData(messageID, taskID, c.ISO()))
	}
	return kb.Markup()
}

func rescheduleRow(taskID string, messageID int64) *pkgTelegram.InlineKeyboardMarkup {
	return pkgTelegram.NewInlineKeyboard().
		Text("Reschedule", scheduleData(taskID, messageID)).
		Markup()
}
