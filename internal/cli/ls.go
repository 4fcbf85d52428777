package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List reminders for a site",
		Run:   runLs,
	}
	RootCmd.AddCommand(cmd)
}

func runLs(cmd *cobra.Command, args []string) {
	key, err := resolveOrigin()
	if err != nil {
		exitErr("ls", err)
	}

	repo, s, err := openRepo()
	if err != nil {
		exitErr("ls", err)
	}
	defer s.Close()

	list := repo.List(cmd.Context(), key)
	if list == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "[]")
		return
	}
	b, _ := json.Marshal(list)
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
