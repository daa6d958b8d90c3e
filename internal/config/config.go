package config

import (
	"errors"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskdeck.db"

	DefaultRenderBatch      = 30
	DefaultSearchDebounceMS = 250
)

type Keymap struct {
	Quit           string `toml:"quit"`
	Add            string `toml:"add"`
	Up             string `toml:"up"`
	Down           string `toml:"down"`
	Toggle         string `toml:"toggle"`
	Delete         string `toml:"delete"`
	Edit           string `toml:"edit"`
	Search         string `toml:"search"`
	FilterPriority string `toml:"filter_priority"`
	FilterComplete string `toml:"filter_complete"`
	LoadMore       string `toml:"load_more"`
	Theme          string `toml:"theme"`
	ClearAll       string `toml:"clear_all"`
	Confirm        string `toml:"confirm"`
	Cancel         string `toml:"cancel"`
}

type Config struct {
	DBPath           string `toml:"db_path"`
	DefaultFilter    string `toml:"default_filter"`
	RenderBatch      int    `toml:"render_batch"`
	SearchDebounceMS int    `toml:"search_debounce_ms"`
	Keys             Keymap `toml:"keys"`
}

// LoadOrCreate reads the config file, writing one with defaults on
// first run. Zero or missing tuning values fall back to defaults so an
// older config file keeps working.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.RenderBatch <= 0 {
		cfg.RenderBatch = DefaultRenderBatch
	}
	if cfg.SearchDebounceMS <= 0 {
		cfg.SearchDebounceMS = DefaultSearchDebounceMS
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:           DefaultDBName,
		DefaultFilter:    "all",
		RenderBatch:      DefaultRenderBatch,
		SearchDebounceMS: DefaultSearchDebounceMS,
		Keys: Keymap{
			Quit:           "q",
			Add:            "a",
			Up:             "k",
			Down:           "j",
			Toggle:         " ",
			Delete:         "d",
			Edit:           "e",
			Search:         "/",
			FilterPriority: "p",
			FilterComplete: "f",
			LoadMore:       "m",
			Theme:          "t",
			ClearAll:       "D",
			Confirm:        "enter",
			Cancel:         "esc",
		},
	}
}
