// Package mcpserver exposes the reminder repository over MCP so agents
// can read and manage site reminders for the user.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"sitenote/internal/reminder"
)

const version = "0.1.0"

type Server struct {
	mcpServer *server.MCPServer
	repo      *reminder.Repository
}

// New builds the MCP server with every reminder tool registered.
func New(repo *reminder.Repository) *Server {
	s := server.NewMCPServer(
		"sitenote",
		version,
		server.WithLogging(),
		server.WithRecovery(),
	)

	srv := &Server{mcpServer: s, repo: repo}
	registerListReminders(s, repo)
	registerAddReminder(s, repo)
	registerEditReminder(s, repo)
	registerDeleteReminder(s, repo)
	registerClearReminders(s, repo)
	registerListOrigins(s, repo)
	return srv
}

// Start runs the stdio event loop until the client disconnects.
func (s *Server) Start() error {
	return server.ServeStdio(s.mcpServer)
}
