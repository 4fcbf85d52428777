// Package cli implements the sitenote CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sitenote/internal/config"
	"sitenote/internal/origin"
	"sitenote/internal/reminder"
	"sitenote/internal/store"
)

var (
	configPath string
	dbPath     string
	rawURL     string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "sitenote",
	Short: "Per-website reminders",
	Long:  "Attach short reminders to websites and see them again when you come back. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: per-user config dir)")
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (overrides config)")
	RootCmd.PersistentFlags().StringVarP(&rawURL, "url", "u", "", "Page URL; reduced to scheme://hostname")
}

func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

// openRepo opens the store and wraps it in a repository. The caller
// closes the returned store.
func openRepo() (*reminder.Repository, *store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return reminder.New(s, reminder.WithMaxLength(cfg.MaxLength)), s, nil
}

// resolveOrigin normalizes the --url flag. Commands that need an origin
// fail up front without one.
func resolveOrigin() (string, error) {
	key, err := origin.Normalize(rawURL)
	if err != nil {
		return "", fmt.Errorf("no usable origin in %q (need --url like https://example.com)", rawURL)
	}
	return key, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
