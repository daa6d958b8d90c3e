package task

import (
	"strings"
	"time"
)

// Persister receives the full collection after every mutation. There is
// no incremental diffing; collections stay small enough that a full
// write is cheaper than being clever.
type Persister interface {
	SaveTasks([]Task) error
}

// EventKind classifies store events.
type EventKind int

const (
	// EventCompleted fires when a toggle transitions a task to completed.
	// Presentation layers may celebrate; the store does not care.
	EventCompleted EventKind = iota
	// EventPersistFailed fires when a post-mutation write fails. The
	// in-memory state stays authoritative for the session.
	EventPersistFailed
)

type Event struct {
	Kind EventKind
	Task Task
	Err  error
}

// Store owns the authoritative ordered task collection. It is not safe
// for concurrent use; a single event loop issues all mutations.
type Store struct {
	tasks   []Task
	nextID  int64
	persist Persister
	sink    func(Event)
	now     func() time.Time
}

type Option func(*Store)

// WithEventSink registers a callback for store events. Without one,
// events are dropped.
func WithEventSink(fn func(Event)) Option {
	return func(s *Store) { s.sink = fn }
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore wraps an existing collection, typically the one loaded from
// storage. IDs continue from max(existing)+1 so they are never reused.
func NewStore(p Persister, existing []Task, opts ...Option) *Store {
	s := &Store{
		tasks:   append([]Task(nil), existing...),
		nextID:  1,
		persist: p,
		now:     time.Now,
	}
	for _, t := range existing {
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []Task {
	return append([]Task(nil), s.tasks...)
}

func (s *Store) Len() int { return len(s.tasks) }

func (s *Store) Get(id int64) (Task, error) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return Task{}, ErrNotFound
}

// Add validates and appends a new task. An empty priority defaults to
// Medium. Validation failures leave the collection unchanged.
func (s *Store) Add(title, description, dueDate string, priority Priority) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	if s.titleTaken(title, 0) {
		return Task{}, ErrDuplicateTitle
	}
	if err := ValidateDueDate(dueDate); err != nil {
		return Task{}, err
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if err := ValidatePriority(priority); err != nil {
		return Task{}, err
	}

	t := Task{
		ID:          s.nextID,
		Title:       title,
		Description: strings.TrimSpace(description),
		DueDate:     dueDate,
		Priority:    priority,
		Completed:   false,
		CreatedAt:   s.now(),
	}
	s.nextID++
	s.tasks = append(s.tasks, t)
	s.save()
	return t, nil
}

// Update carries the fields an edit wants to change. Nil fields are
// left alone.
type Update struct {
	Title       *string
	Description *string
	DueDate     *string
	Priority    *Priority
}

// Edit applies an update atomically: every provided field is validated
// before any of them is written, so a failure never leaves the task
// half-edited.
func (s *Store) Edit(id int64, upd Update) (Task, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Task{}, ErrNotFound
	}

	var newTitle string
	if upd.Title != nil {
		newTitle = strings.TrimSpace(*upd.Title)
		if newTitle == "" {
			return Task{}, ErrEmptyTitle
		}
		if s.titleTaken(newTitle, id) {
			return Task{}, ErrDuplicateTitle
		}
	}
	if upd.DueDate != nil {
		if err := ValidateDueDate(*upd.DueDate); err != nil {
			return Task{}, err
		}
	}
	if upd.Priority != nil {
		if err := ValidatePriority(*upd.Priority); err != nil {
			return Task{}, err
		}
	}

	t := &s.tasks[idx]
	if upd.Title != nil {
		t.Title = newTitle
	}
	if upd.Description != nil {
		t.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.DueDate != nil {
		t.DueDate = *upd.DueDate
	}
	if upd.Priority != nil {
		t.Priority = *upd.Priority
	}
	s.save()
	return *t, nil
}

// ToggleCompleted flips the completion flag. Completing a task emits
// EventCompleted.
func (s *Store) ToggleCompleted(id int64) (Task, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Task{}, ErrNotFound
	}
	t := &s.tasks[idx]
	t.Completed = !t.Completed
	s.save()
	if t.Completed {
		s.emit(Event{Kind: EventCompleted, Task: *t})
	}
	return *t, nil
}

func (s *Store) Delete(id int64) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	s.save()
	return nil
}

// ClearAll empties the collection. The id counter keeps running so
// later adds never reuse an old id.
func (s *Store) ClearAll() {
	s.tasks = nil
	s.save()
}

func (s *Store) indexOf(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) titleTaken(title string, excludeID int64) bool {
	for _, t := range s.tasks {
		if t.ID != excludeID && strings.EqualFold(t.Title, title) {
			return true
		}
	}
	return false
}

// save writes the whole collection. A write failure is surfaced as an
// event and otherwise ignored: memory stays authoritative.
func (s *Store) save() {
	if s.persist == nil {
		return
	}
	if err := s.persist.SaveTasks(s.Tasks()); err != nil {
		s.emit(Event{Kind: EventPersistFailed, Err: err})
	}
}

func (s *Store) emit(ev Event) {
	if s.sink != nil {
		s.sink(ev)
	}
}
