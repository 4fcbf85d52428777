package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "badge",
		Short: "Print the reminder count for a site",
		Long:  "Print the reminder count for a site, for status bars and shell prompts. Prints 0 when the origin is unusable.",
		Run:   runBadge,
	}
	RootCmd.AddCommand(cmd)
}

func runBadge(cmd *cobra.Command, args []string) {
	key, err := resolveOrigin()
	if err != nil {
		// No origin means no reminders to count, not a failure.
		fmt.Fprintln(cmd.OutOrStdout(), 0)
		return
	}

	repo, s, err := openRepo()
	if err != nil {
		exitErr("badge", err)
	}
	defer s.Close()

	fmt.Fprintln(cmd.OutOrStdout(), repo.Count(cmd.Context(), key))
}
