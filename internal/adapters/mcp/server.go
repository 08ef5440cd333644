package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer returns an MCP server exposing every scene tool plus ping.
func NewServer(name, version string, deps Deps) *server.MCPServer {
	s := server.NewMCPServer(name, version, server.WithToolCapabilities(true))
	s.AddTool(mcp.NewTool("ping", mcp.WithDescription("Health check, returns pong")), pingHandler)
	RegisterReadTools(s, deps)
	RegisterWriteTools(s, deps)
	return s
}

func pingHandler(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong"), nil
}
