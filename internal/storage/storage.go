package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"taskdeck/internal/task"
)

// Storage keys. The task list is persisted as one JSON array blob, the
// theme as a bare string.
const (
	TasksKey = "todo_v2_tasks"
	ThemeKey = "todo_v2_theme"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Store is a key-value blob store backed by a single sqlite file.
type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	dsn := sqliteDSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

// Get returns the stored value and whether the key was present.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?;`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value;`, key, value)
	return err
}

// LoadTasks reads the persisted collection. A missing key or malformed
// blob degrades to an empty collection so startup never fails on bad
// data; corruption is logged and the next save overwrites it.
func (s *Store) LoadTasks() ([]task.Task, error) {
	blob, ok, err := s.Get(TasksKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var tasks []task.Task
	if err := json.Unmarshal([]byte(blob), &tasks); err != nil {
		log.Printf("storage: discarding corrupt task data: %v", err)
		return nil, nil
	}
	return tasks, nil
}

// SaveTasks writes the full collection as one JSON blob. Satisfies
// task.Persister.
func (s *Store) SaveTasks(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	blob, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return s.Set(TasksKey, string(blob))
}

// LoadTheme defaults to light for a missing or unrecognized value.
func (s *Store) LoadTheme() Theme {
	v, ok, err := s.Get(ThemeKey)
	if err != nil || !ok {
		return ThemeLight
	}
	if Theme(v) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

func (s *Store) SaveTheme(t Theme) error {
	return s.Set(ThemeKey, string(t))
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
