package telegram

import (
	"strconv"
	"strings"
)

// Callback payloads are "action:arg1:arg2[:arg3]" and must fit in 64 bytes,
// so task ids travel without hyphens.
const (
	actionSchedule = "schedule"
	actionSetDate  = "set_date"
	actionTag      = "tag"
	actionTask     = "task"

	maxCallbackData = 64
)

func compactID(id string) string {
	return strings.ReplaceAll(id, "-", "")
}

func scheduleData(taskID string, messageID int64) string {
	return actionSchedule + ":" + compactID(taskID) + ":" + strconv.FormatInt(messageID, 10)
}

func setDateData(messageID int64, taskID, isoDate string) string {
	return actionSetDate + ":" + strconv.FormatInt(messageID, 10) + ":" + compactID(taskID) + ":" + isoDate
}

// tagData reports false when the tag does not fit in a callback payload.
func tagData(tag string) (string, bool) {
	data := actionTag + ":" + tag
	return data, len(data) <= maxCallbackData
}

func taskData(taskID string) string {
	return actionTask + ":" + compactID(taskID)
}

func parseMessageID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
