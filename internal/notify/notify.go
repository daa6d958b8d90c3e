// Package notify decides when a task deserves a reminder. It only
// inspects tasks; acting on a message (or not) is the caller's problem,
// and nothing here is required for the store to work.
package notify

import (
	"fmt"
	"time"

	"taskdeck/internal/task"
)

const dueWindow = 24 * time.Hour

// DueSoon reports whether the due date's end of day falls within the
// next 24 hours, inclusive of now. A task already past its end of day
// is not "soon", it is late.
func DueSoon(dueDate string, now time.Time) bool {
	if dueDate == "" {
		return false
	}
	d, err := time.ParseInLocation(task.DateLayout, dueDate, now.Location())
	if err != nil {
		return false
	}
	endOfDay := d.Add(24*time.Hour - time.Second)
	diff := endOfDay.Sub(now)
	return diff >= 0 && diff <= dueWindow
}

// ReminderForNew returns the immediate reminder for a just-created
// task, if it warrants one.
func ReminderForNew(t task.Task, now time.Time) (string, bool) {
	if !DueSoon(t.DueDate, now) {
		return "", false
	}
	return fmt.Sprintf("Reminder: %s is due within 24 hours", t.Title), true
}

// Upcoming scans the collection in order and returns one summary
// message for the first incomplete task due soon. One message, not one
// per task: this runs at startup and should not spam.
func Upcoming(tasks []task.Task, now time.Time) (string, bool) {
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		if DueSoon(t.DueDate, now) {
			return fmt.Sprintf("Upcoming: %s due by %s", t.Title, t.DueDate), true
		}
	}
	return "", false
}
