package ui

import (
	"strings"

	"taskdeck/internal/task"
)

// formState backs the add/edit form. The whole form is collected before
// anything is submitted to the store, so an edit is all-or-nothing.
type formState struct {
	taskID      int64 // 0 means a new task
	title       string
	description string
	due         string
	priority    string
	index       int
}

func newAddForm() *formState {
	return &formState{priority: string(task.PriorityMedium)}
}

func newEditForm(t task.Task) *formState {
	return &formState{
		taskID:      t.ID,
		title:       t.Title,
		description: t.Description,
		due:         t.DueDate,
		priority:    string(t.Priority),
	}
}

func formFields() []string {
	return []string{"title", "description", "due date (YYYY-MM-DD)", "priority (Low/Medium/High)"}
}

func (fs formState) currentLabel() string {
	return formFields()[fs.index]
}

func (fs formState) currentValue() string {
	switch fs.index {
	case 0:
		return fs.title
	case 1:
		return fs.description
	case 2:
		return fs.due
	case 3:
		return fs.priority
	default:
		return ""
	}
}

func (fs *formState) setCurrentValue(v string) {
	switch fs.index {
	case 0:
		fs.title = v
	case 1:
		fs.description = v
	case 2:
		fs.due = v
	case 3:
		fs.priority = v
	}
}

// normalizedPriority maps case-insensitive input to the enum, keeping
// unknown text as typed so the store can reject it.
func (fs formState) normalizedPriority() task.Priority {
	v := strings.TrimSpace(fs.priority)
	if v == "" {
		return task.PriorityMedium
	}
	for _, p := range []task.Priority{task.PriorityLow, task.PriorityMedium, task.PriorityHigh} {
		if strings.EqualFold(v, string(p)) {
			return p
		}
	}
	return task.Priority(v)
}
