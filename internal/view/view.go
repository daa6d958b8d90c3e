// Package view derives the filtered, sorted, paginated window that the
// presentation layer renders. Everything here is a pure function of the
// collection plus the current query; nothing in this package mutates a
// task.
package view

import (
	"math"
	"sort"
	"strings"

	"taskdeck/internal/task"
)

type PriorityFilter string

const (
	PriorityAll    PriorityFilter = "All"
	PriorityLow    PriorityFilter = PriorityFilter(task.PriorityLow)
	PriorityMedium PriorityFilter = PriorityFilter(task.PriorityMedium)
	PriorityHigh   PriorityFilter = PriorityFilter(task.PriorityHigh)
)

type CompletionFilter string

const (
	CompletionAll       CompletionFilter = "All"
	CompletionPending   CompletionFilter = "Pending"
	CompletionCompleted CompletionFilter = "Completed"
)

// Matches reports whether a task passes the search text and both
// filter selectors. Search is a case-insensitive substring match over
// title and description; an empty search matches everything.
func Matches(t task.Task, search string, pf PriorityFilter, cf CompletionFilter) bool {
	if search != "" {
		s := strings.ToLower(search)
		if !strings.Contains(strings.ToLower(t.Title), s) &&
			!strings.Contains(strings.ToLower(t.Description), s) {
			return false
		}
	}
	if pf != PriorityAll && t.Priority != task.Priority(pf) {
		return false
	}
	if cf == CompletionPending && t.Completed {
		return false
	}
	if cf == CompletionCompleted && !t.Completed {
		return false
	}
	return true
}

// Filter returns the matching subsequence sorted newest-first. The sort
// is stable so tasks with identical timestamps keep their relative
// order across recomputes.
func Filter(tasks []task.Task, search string, pf PriorityFilter, cf CompletionFilter) []task.Task {
	var out []task.Task
	for _, t := range tasks {
		if Matches(t, search, pf, cf) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Stats are aggregate counters over a filtered sequence.
type Stats struct {
	Total     int
	Completed int
}

func Collect(tasks []task.Task) Stats {
	st := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			st.Completed++
		}
	}
	return st
}

// Percent is the completion percentage, rounded, 0 for an empty set.
func (st Stats) Percent() int {
	if st.Total == 0 {
		return 0
	}
	return int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
}

// DefaultBatch bounds how many rows are materialized per advance.
const DefaultBatch = 30

// View owns the query, the derived filtered sequence, and the
// pagination cursor. Recompute invalidates the cursor because the
// sequence identity changed.
type View struct {
	Search     string
	Priority   PriorityFilter
	Completion CompletionFilter

	batch    int
	filtered []task.Task
	rendered int
}

func New(batch int) *View {
	if batch <= 0 {
		batch = DefaultBatch
	}
	return &View{
		Priority:   PriorityAll,
		Completion: CompletionAll,
		batch:      batch,
	}
}

// Recompute re-derives the filtered sequence from the collection and
// resets the cursor to zero. Call Advance afterwards to materialize the
// first batch.
func (v *View) Recompute(tasks []task.Task) {
	v.filtered = Filter(tasks, v.Search, v.Priority, v.Completion)
	v.rendered = 0
}

// Advance grows the materialized window by one batch and returns the
// newly added slice.
func (v *View) Advance() []task.Task {
	start := v.rendered
	end := start + v.batch
	if end > len(v.filtered) {
		end = len(v.filtered)
	}
	v.rendered = end
	return v.filtered[start:end]
}

// Window is the full materialized prefix of the filtered sequence.
func (v *View) Window() []task.Task {
	return v.filtered[:v.rendered]
}

func (v *View) HasMore() bool { return v.rendered < len(v.filtered) }

func (v *View) Rendered() int { return v.rendered }

func (v *View) TotalFiltered() int { return len(v.filtered) }

// Stats summarizes the filtered sequence, not the whole collection.
func (v *View) Stats() Stats { return Collect(v.filtered) }
