package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm [text]",
		Short: "Delete a reminder",
		Long:  "Delete a reminder, addressed by --id or by its exact text.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runRm,
	}
	cmd.Flags().String("id", "", "Reminder ID (from ls)")
	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	key, err := resolveOrigin()
	if err != nil {
		exitErr("rm", err)
	}

	repo, s, err := openRepo()
	if err != nil {
		exitErr("rm", err)
	}
	defer s.Close()

	id, _ := cmd.Flags().GetString("id")
	if id == "" {
		if len(args) == 0 {
			exitErr("rm", fmt.Errorf("pass --id or the exact reminder text"))
		}
		rem, ok := repo.FindByText(cmd.Context(), key, args[0])
		if !ok {
			exitErr("rm", fmt.Errorf("no reminder with text %q", args[0]))
		}
		id = rem.ID
	}

	if err := repo.Remove(cmd.Context(), key, id); err != nil {
		exitErr("rm", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"origin":%q,"id":%q}`+"\n", key, id)
}
