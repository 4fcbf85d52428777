// Package config loads and writes the sitenote TOML configuration.
package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"sitenote/internal/reminder"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "sitenote.db"
)

type Keymap struct {
	Quit    string `toml:"quit"`
	Add     string `toml:"add"`
	Up      string `toml:"up"`
	Down    string `toml:"down"`
	Edit    string `toml:"edit"`
	Delete  string `toml:"delete"`
	Clear   string `toml:"clear"`
	Confirm string `toml:"confirm"`
	Cancel  string `toml:"cancel"`
}

type Config struct {
	DBPath    string `toml:"db_path"`
	MaxLength int    `toml:"max_length"`
	Notify    bool   `toml:"notify"`
	Keys      Keymap `toml:"keys"`
}

// ResolveConfigPath returns the per-user config file location, falling
// back to the working directory when the user config dir is unknown.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "sitenote", DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there
// first if no file exists yet.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(path)
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
		cfg.DBPath = filepath.Join(filepath.Dir(path), DefaultDBName)
	}
	if cfg.MaxLength < reminder.MinLength {
		cfg.MaxLength = reminder.DefaultMaxLength
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig(path string) Config {
	return Config{
		DBPath:    filepath.Join(filepath.Dir(path), DefaultDBName),
		MaxLength: reminder.DefaultMaxLength,
		Notify:    true,
		Keys: Keymap{
			Quit:    "q",
			Add:     "a",
			Up:      "k",
			Down:    "j",
			Edit:    "e",
			Delete:  "d",
			Clear:   "x",
			Confirm: "enter",
			Cancel:  "esc",
		},
	}
}
