package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"sitenote/internal/origin"
	"sitenote/internal/reminder"
)

// originArg normalizes the tool's url argument to an origin key.
func originArg(request mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	raw, ok := request.Params.Arguments["url"].(string)
	if !ok || raw == "" {
		return "", mcp.NewToolResultError("'url' parameter is required and must be a non-empty string.")
	}
	key, err := origin.Normalize(raw)
	if err != nil {
		return "", mcp.NewToolResultError(fmt.Sprintf("No usable origin in %q; pass a URL like https://example.com.", raw))
	}
	return key, nil
}

func registerListReminders(s *server.MCPServer, repo *reminder.Repository) {
	tool := mcp.NewTool("list_reminders",
		mcp.WithDescription("Lists the reminders attached to a website."),
		mcp.WithString("url", mcp.Required(), mcp.Description("Page URL; reduced to scheme://hostname.")),
	)
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, errResult := originArg(request)
		if errResult != nil {
			return errResult, nil
		}

		list := repo.List(ctx, key)
		if len(list) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		jsonResult, err := json.Marshal(list)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize reminders: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

func registerAddReminder(s *server.MCPServer, repo *reminder.Repository) {
	tool := mcp.NewTool("add_reminder",
		mcp.WithDescription("Attaches a new text reminder to a website."),
		mcp.WithString("url", mcp.Required(), mcp.Description("Page URL; reduced to scheme://hostname.")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Reminder text, 3 characters minimum.")),
	)
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, errResult := originArg(request)
		if errResult != nil {
			return errResult, nil
		}
		text, ok := request.Params.Arguments["text"].(string)
		if !ok || text == "" {
			return mcp.NewToolResultError("'text' parameter is required and must be a non-empty string."), nil
		}

		rem, err := repo.Add(ctx, key, text)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to add reminder: %v", err)), nil
		}
		jsonResult, err := json.Marshal(rem)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize reminder: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

func registerEditReminder(s *server.MCPServer, repo *reminder.Repository) {
	tool := mcp.NewTool("edit_reminder",
		mcp.WithDescription("Replaces a reminder's text and re-stamps its date."),
		mcp.WithString("url", mcp.Required(), mcp.Description("Page URL; reduced to scheme://hostname.")),
		mcp.WithString("id", mcp.Description("Reminder ID. Either id or text is required.")),
		mcp.WithString("text", mcp.Description("Exact current text, used when no id is given.")),
		mcp.WithString("new_text", mcp.Required(), mcp.Description("Replacement text.")),
	)
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, errResult := originArg(request)
		if errResult != nil {
			return errResult, nil
		}
		newText, ok := request.Params.Arguments["new_text"].(string)
		if !ok || newText == "" {
			return mcp.NewToolResultError("'new_text' parameter is required and must be a non-empty string."), nil
		}
		id, errResult := resolveID(ctx, repo, key, request)
		if errResult != nil {
			return errResult, nil
		}

		rem, err := repo.Edit(ctx, key, id, newText)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to edit reminder: %v", err)), nil
		}
		jsonResult, err := json.Marshal(rem)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize reminder: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

func registerDeleteReminder(s *server.MCPServer, repo *reminder.Repository) {
	tool := mcp.NewTool("delete_reminder",
		mcp.WithDescription("Deletes one reminder from a website."),
		mcp.WithString("url", mcp.Required(), mcp.Description("Page URL; reduced to scheme://hostname.")),
		mcp.WithString("id", mcp.Description("Reminder ID. Either id or text is required.")),
		mcp.WithString("text", mcp.Description("Exact reminder text, used when no id is given.")),
	)
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, errResult := originArg(request)
		if errResult != nil {
			return errResult, nil
		}
		id, errResult := resolveID(ctx, repo, key, request)
		if errResult != nil {
			return errResult, nil
		}

		if err := repo.Remove(ctx, key, id); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete reminder: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Reminder deleted from %s.", key)), nil
	})
}

func registerClearReminders(s *server.MCPServer, repo *reminder.Repository) {
	tool := mcp.NewTool("clear_reminders",
		mcp.WithDescription("Deletes every reminder attached to a website."),
		mcp.WithString("url", mcp.Required(), mcp.Description("Page URL; reduced to scheme://hostname.")),
	)
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, errResult := originArg(request)
		if errResult != nil {
			return errResult, nil
		}

		if err := repo.ClearAll(ctx, key); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to clear reminders: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("All reminders cleared for %s.", key)), nil
	})
}

func registerListOrigins(s *server.MCPServer, repo *reminder.Repository) {
	tool := mcp.NewTool("list_origins",
		mcp.WithDescription("Lists every website that has reminders, with counts."),
	)
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		origins, err := repo.Origins(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list origins: %v", err)), nil
		}
		if len(origins) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		jsonResult, err := json.Marshal(origins)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize origins: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// resolveID picks the reminder ID from the id argument, falling back to
// an exact-text lookup.
func resolveID(ctx context.Context, repo *reminder.Repository, key string, request mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	if id, ok := request.Params.Arguments["id"].(string); ok && id != "" {
		return id, nil
	}
	text, ok := request.Params.Arguments["text"].(string)
	if !ok || text == "" {
		return "", mcp.NewToolResultError("Either 'id' or 'text' must be provided.")
	}
	rem, found := repo.FindByText(ctx, key, text)
	if !found {
		return "", mcp.NewToolResultError(fmt.Sprintf("No reminder with text %q on %s.", text, key))
	}
	return rem.ID, nil
}
