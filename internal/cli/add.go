package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a reminder for a site",
		Args:  cobra.MinimumNArgs(1),
		Run:   runAdd,
	}
	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	key, err := resolveOrigin()
	if err != nil {
		exitErr("add", err)
	}

	repo, s, err := openRepo()
	if err != nil {
		exitErr("add", err)
	}
	defer s.Close()

	rem, err := repo.Add(cmd.Context(), key, strings.Join(args, " "))
	if err != nil {
		exitErr("add", err)
	}

	b, _ := json.Marshal(rem)
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
