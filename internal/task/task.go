package task

import (
	"fmt"
	"time"
)

// Priority is one of three fixed levels.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

var validPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func ValidatePriority(p Priority) error {
	for _, v := range validPriorities {
		if p == v {
			return nil
		}
	}
	return fmt.Errorf("%w: %q must be one of Low, Medium, High", ErrInvalidPriority, p)
}

// DateLayout is the format for due dates. Due dates carry no time
// component; reminder math treats them as end-of-day.
const DateLayout = "2006-01-02"

func ValidateDueDate(d string) error {
	if d == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, d); err != nil {
		return fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDueDate, d)
	}
	return nil
}

// Task is a single to-do item. JSON tags match the stored wire format.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     string    `json:"dueDate"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}
