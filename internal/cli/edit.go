package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "edit <new text> | edit <old text> <new text>",
		Short: "Edit a reminder",
		Long:  "Edit a reminder, addressed by --id or by its exact current text.",
		Args:  cobra.RangeArgs(1, 2),
		Run:   runEdit,
	}
	cmd.Flags().String("id", "", "Reminder ID (from ls)")
	RootCmd.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	key, err := resolveOrigin()
	if err != nil {
		exitErr("edit", err)
	}

	repo, s, err := openRepo()
	if err != nil {
		exitErr("edit", err)
	}
	defer s.Close()

	id, _ := cmd.Flags().GetString("id")
	var newText string
	switch {
	case id != "" && len(args) == 1:
		newText = args[0]
	case id == "" && len(args) == 2:
		rem, ok := repo.FindByText(cmd.Context(), key, args[0])
		if !ok {
			exitErr("edit", fmt.Errorf("no reminder with text %q", args[0]))
		}
		id = rem.ID
		newText = args[1]
	default:
		exitErr("edit", fmt.Errorf("pass --id with the new text, or the old and new text"))
	}

	rem, err := repo.Edit(cmd.Context(), key, id, newText)
	if err != nil {
		exitErr("edit", err)
	}

	b, _ := json.Marshal(rem)
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
