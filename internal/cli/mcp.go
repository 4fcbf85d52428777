package cli

import (
	"github.com/spf13/cobra"

	"sitenote/internal/mcpserver"
)

func init() {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve reminders over MCP on stdio",
		Run:   runMCP,
	}
	RootCmd.AddCommand(cmd)
}

func runMCP(cmd *cobra.Command, args []string) {
	repo, s, err := openRepo()
	if err != nil {
		exitErr("mcp", err)
	}
	defer s.Close()

	if err := mcpserver.New(repo).Start(); err != nil {
		exitErr("mcp", err)
	}
}
