package cli

import (
	"github.com/spf13/cobra"

	"sitenote/internal/badge"
	"sitenote/internal/reminder"
	"sitenote/internal/store"
	"sitenote/internal/ui"
)

func init() {
	cmd := &cobra.Command{
		Use:   "popup",
		Short: "Open the interactive reminder list for a site",
		Run:   runPopup,
	}
	RootCmd.AddCommand(cmd)
}

func runPopup(cmd *cobra.Command, args []string) {
	key, err := resolveOrigin()
	if err != nil {
		exitErr("popup", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		exitErr("popup", err)
	}
	s, err := store.Open(cfg.DBPath)
	if err != nil {
		exitErr("popup", err)
	}
	defer s.Close()

	repo := reminder.New(s, reminder.WithMaxLength(cfg.MaxLength))
	if err := ui.Run(repo, cfg, badge.NewNotifier(), key); err != nil {
		exitErr("popup", err)
	}
}
