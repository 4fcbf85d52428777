package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all reminders for a site",
		Run:   runClear,
	}
	RootCmd.AddCommand(cmd)
}

func runClear(cmd *cobra.Command, args []string) {
	key, err := resolveOrigin()
	if err != nil {
		exitErr("clear", err)
	}

	repo, s, err := openRepo()
	if err != nil {
		exitErr("clear", err)
	}
	defer s.Close()

	if err := repo.ClearAll(cmd.Context(), key); err != nil {
		exitErr("clear", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"origin":%q}`+"\n", key)
}
