package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/task"
)

var base = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func mk(id int64, title string, p task.Priority, done bool, created time.Time) task.Task {
	return task.Task{ID: id, Title: title, Priority: p, Completed: done, CreatedAt: created}
}

func TestFilter_IsPure(t *testing.T) {
	tasks := []task.Task{
		mk(1, "Buy milk", task.PriorityMedium, false, base),
		mk(2, "Write report", task.PriorityHigh, true, base.Add(time.Hour)),
	}

	first := Filter(tasks, "", PriorityAll, CompletionAll)
	second := Filter(tasks, "", PriorityAll, CompletionAll)
	assert.Equal(t, first, second)
}

func TestFilter_SortsNewestFirst(t *testing.T) {
	tasks := []task.Task{
		mk(1, "oldest", task.PriorityMedium, false, base),
		mk(2, "newest", task.PriorityMedium, false, base.Add(2*time.Hour)),
		mk(3, "middle", task.PriorityMedium, false, base.Add(time.Hour)),
	}

	got := Filter(tasks, "", PriorityAll, CompletionAll)
	require.Len(t, got, 3)
	assert.Equal(t, "newest", got[0].Title)
	assert.Equal(t, "middle", got[1].Title)
	assert.Equal(t, "oldest", got[2].Title)
}

func TestFilter_TiesKeepInsertionOrder(t *testing.T) {
	tasks := []task.Task{
		mk(1, "first", task.PriorityMedium, false, base),
		mk(2, "second", task.PriorityMedium, false, base),
		mk(3, "third", task.PriorityMedium, false, base),
	}

	got := Filter(tasks, "", PriorityAll, CompletionAll)
	require.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, int64(3), got[2].ID)
}

func TestFilter_SearchTitleAndDescription(t *testing.T) {
	tasks := []task.Task{
		{ID: 1, Title: "Buy milk", CreatedAt: base},
		{ID: 2, Title: "Report", Description: "about MILK prices", CreatedAt: base.Add(time.Hour)},
		{ID: 3, Title: "Walk dog", CreatedAt: base.Add(2 * time.Hour)},
	}

	got := Filter(tasks, "milk", PriorityAll, CompletionAll)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
}

func TestFilter_PriorityScenario(t *testing.T) {
	tasks := []task.Task{
		mk(1, "Buy milk", task.PriorityMedium, false, base),
		mk(2, "Write report", task.PriorityHigh, false, base.Add(time.Hour)),
	}

	got := Filter(tasks, "", PriorityHigh, CompletionAll)
	require.Len(t, got, 1)
	assert.Equal(t, "Write report", got[0].Title)
}

func TestFilter_Completion(t *testing.T) {
	tasks := []task.Task{
		mk(1, "done one", task.PriorityLow, true, base),
		mk(2, "open one", task.PriorityLow, false, base.Add(time.Hour)),
	}

	pending := Filter(tasks, "", PriorityAll, CompletionPending)
	require.Len(t, pending, 1)
	assert.Equal(t, "open one", pending[0].Title)

	completed := Filter(tasks, "", PriorityAll, CompletionCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, "done one", completed[0].Title)
}

func TestStats(t *testing.T) {
	assert.Equal(t, 0, Stats{}.Percent())
	assert.Equal(t, 33, Stats{Total: 3, Completed: 1}.Percent())
	assert.Equal(t, 67, Stats{Total: 3, Completed: 2}.Percent())
	assert.Equal(t, 100, Stats{Total: 4, Completed: 4}.Percent())

	st := Collect([]task.Task{
		mk(1, "a", task.PriorityLow, true, base),
		mk(2, "b", task.PriorityLow, false, base),
	})
	assert.Equal(t, Stats{Total: 2, Completed: 1}, st)
}

func manyTasks(n int) []task.Task {
	tasks := make([]task.Task, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, mk(int64(i+1), "task", task.PriorityMedium, false, base.Add(time.Duration(i)*time.Minute)))
	}
	return tasks
}

func TestView_PaginationBatches(t *testing.T) {
	v := New(30)
	v.Recompute(manyTasks(50))
	assert.Equal(t, 0, v.Rendered())
	assert.Equal(t, 50, v.TotalFiltered())

	first := v.Advance()
	assert.Len(t, first, 30)
	assert.Equal(t, 30, v.Rendered())
	assert.True(t, v.HasMore())

	second := v.Advance()
	assert.Len(t, second, 20)
	assert.Equal(t, 50, v.Rendered())
	assert.False(t, v.HasMore())

	third := v.Advance()
	assert.Empty(t, third)
	assert.Equal(t, 50, v.Rendered())
}

func TestView_RecomputeResetsCursor(t *testing.T) {
	v := New(10)
	v.Recompute(manyTasks(25))
	v.Advance()
	v.Advance()
	require.Equal(t, 20, v.Rendered())

	v.Recompute(manyTasks(25))
	assert.Equal(t, 0, v.Rendered())
	assert.Empty(t, v.Window())
}

func TestView_WindowIsPrefixOfFiltered(t *testing.T) {
	v := New(10)
	v.Recompute(manyTasks(15))
	v.Advance()

	window := v.Window()
	require.Len(t, window, 10)
	// newest first: the last-created task leads the window
	assert.Equal(t, int64(15), window[0].ID)
}

func TestNew_DefaultsBatch(t *testing.T) {
	v := New(0)
	v.Recompute(manyTasks(40))
	assert.Len(t, v.Advance(), DefaultBatch)
}
