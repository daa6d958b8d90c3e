package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/task"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "taskdeck.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestGetSet_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("k", "v1"))
	require.NoError(t, s.Set("k", "v2"))

	v, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestTasks_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	in := []task.Task{
		{
			ID:          1,
			Title:       "Buy milk",
			Description: "2 liters",
			DueDate:     "2030-01-02",
			Priority:    task.PriorityHigh,
			Completed:   true,
			CreatedAt:   time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:        2,
			Title:     "Write report",
			Priority:  task.PriorityMedium,
			CreatedAt: time.Date(2025, 3, 11, 9, 30, 0, 0, time.UTC),
		},
	}
	require.NoError(t, s.SaveTasks(in))

	out, err := s.LoadTasks()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadTasks_FreshDatabase(t *testing.T) {
	s := openTestStore(t)

	out, err := s.LoadTasks()
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestLoadTasks_CorruptBlobDegradesToEmpty(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Set(TasksKey, "{not json at all"))

	out, err := s.LoadTasks()
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSaveTasks_NilWritesEmptyArray(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveTasks(nil))

	blob, ok, err := s.Get(TasksKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", blob)
}

func TestTheme_DefaultsToLight(t *testing.T) {
	s := openTestStore(t)
	assert.Equal(t, ThemeLight, s.LoadTheme())
}

func TestTheme_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveTheme(ThemeDark))
	assert.Equal(t, ThemeDark, s.LoadTheme())

	require.NoError(t, s.SaveTheme(ThemeLight))
	assert.Equal(t, ThemeLight, s.LoadTheme())
}

func TestTheme_UnrecognizedValueFallsBack(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Set(ThemeKey, "solarized"))
	assert.Equal(t, ThemeLight, s.LoadTheme())
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskdeck.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveTheme(ThemeDark))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
	assert.Equal(t, ThemeDark, s2.LoadTheme())
}
