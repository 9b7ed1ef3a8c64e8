package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/santisabra00/finagent/internal/common"
)

// registerMCPTools mirrors the chat tool registry onto the MCP server, plus
// a chat tool that runs a full agent turn. MCP clients see the same tool
// names and schemas the model does.
func (a *App) registerMCPTools() {
	s := a.MCPServer

	s.AddTool(createGetVersionTool(), handleGetVersion())
	s.AddTool(createChatTool(), handleChat(a))
	s.AddTool(createResetTool(), handleReset(a))

	for _, def := range a.Registry.Definitions() {
		tool := mcp.NewToolWithRawSchema(def.Name, def.Description, def.RawSchema())
		s.AddTool(tool, dispatchHandler(a, def.Name))
	}
}

func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the Finagent server version and status. Use this to verify connectivity."),
	)
}

func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("Finagent Server\nVersion: %s\nBuild: %s\nCommit: %s\nStatus: OK",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return mcp.NewToolResultText(result), nil
	}
}

func createChatTool() mcp.Tool {
	return mcp.NewTool("chat",
		mcp.WithDescription("Send a message to the financial assistant and get its reply. The assistant can look up prices, fundamentals, indicators, and manage the watchlist and portfolio."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The user message."),
		),
	)
}

func handleChat(a *App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil || strings.TrimSpace(text) == "" {
			return mcp.NewToolResultError("Error: text parameter is required"), nil
		}

		ctx, cancel := context.WithTimeout(ctx, a.Config.Agent.GetChatTimeout())
		defer cancel()

		reply, err := a.ChatService.Chat(ctx, text)
		if err != nil {
			a.Logger.Error().Err(err).Msg("Chat turn failed")
			return mcp.NewToolResultError(fmt.Sprintf("Chat error: %v", err)), nil
		}
		return mcp.NewToolResultText(reply), nil
	}
}

func createResetTool() mcp.Tool {
	return mcp.NewTool("reset_conversation",
		mcp.WithDescription("Clear the assistant's conversation history."),
	)
}

func handleReset(a *App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := a.ChatService.Reset(ctx); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Reset error: %v", err)), nil
		}
		return mcp.NewToolResultText("Conversation reset."), nil
	}
}

// dispatchHandler adapts a registry tool to the MCP surface. Dispatch never
// fails; handler errors come back as strings, which MCP reports verbatim.
func dispatchHandler(a *App, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out := a.Registry.Dispatch(ctx, name, request.GetArguments())
		if strings.HasPrefix(out, "Error:") {
			return mcp.NewToolResultError(out), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}
