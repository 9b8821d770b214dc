package model

import (
	"strings"
	"time"
)

const doneMarker = "✅"

type Task struct {
	ID         int64
	UserID     int64
	Content    string
	ReminderAt *time.Time
}

func (t Task) Done() bool {
	return IsDone(t.Content)
}

func IsDone(content string) bool {
	return strings.HasPrefix(content, doneMarker)
}

func MarkDone(content string) string {
	return strings.TrimSpace(doneMarker + " " + content)
}

func MarkNotDone(content string) string {
	return strings.TrimSpace(strings.TrimPrefix(content, doneMarker+" "))
}
