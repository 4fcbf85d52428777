package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "origins",
		Short: "List every site that has reminders, with counts",
		Run:   runOrigins,
	}
	RootCmd.AddCommand(cmd)
}

func runOrigins(cmd *cobra.Command, args []string) {
	repo, s, err := openRepo()
	if err != nil {
		exitErr("origins", err)
	}
	defer s.Close()

	origins, err := repo.Origins(cmd.Context())
	if err != nil {
		exitErr("origins", err)
	}
	if len(origins) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "[]")
		return
	}

	b, _ := json.Marshal(origins)
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
