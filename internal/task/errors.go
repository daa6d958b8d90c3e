package task

import "errors"

var (
	// ErrEmptyTitle is returned when a title is empty after trimming.
	ErrEmptyTitle = errors.New("title cannot be empty")
	// ErrDuplicateTitle is returned when another task already holds a
	// case-insensitively equal title.
	ErrDuplicateTitle = errors.New("a task with this title already exists")
	// ErrNotFound is returned when an operation references an id that is
	// not in the collection.
	ErrNotFound = errors.New("task not found")
	// ErrInvalidDueDate is returned for due dates not in YYYY-MM-DD form.
	ErrInvalidDueDate = errors.New("invalid due date")
	// ErrInvalidPriority is returned for values outside Low/Medium/High.
	ErrInvalidPriority = errors.New("invalid priority")
)
