package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"scenelink/internal/application/commands"
)

// RegisterWriteTools adds the scene writing tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, deps Deps) {
	s.AddTool(buildTool(), buildHandler(deps))
}

// --- build ---

func buildTool() mcp.Tool {
	return mcp.NewTool("build",
		mcp.WithDescription(`Write a scene file from a YAML manifest. The manifest root is the scene root; every node may have name, tags, transforms, bounds, objects, attributes, children, or a link:
  link: {target: spheres.scn, root: /A, time: 1}
  link: {target: spheres.scn, remap: [{outer: 1, inner: 0}, {outer: 2, inner: 1}]}
A link location cannot have children, objects or bounds. Links are only followed in .lscn files.`),
		mcp.WithString("manifest",
			mcp.Description("YAML manifest text"),
			mcp.Required(),
		),
		mcp.WithString("output",
			mcp.Description("Output file relative to the scenes directory (.scn or .lscn)"),
			mcp.Required(),
		),
		mcp.WithBoolean("overwrite",
			mcp.Description("Replace an existing file"),
		),
	)
}

func buildHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		output := req.GetString("output", "")
		if output == "" {
			return toolError(fmt.Errorf("output is required"))
		}
		if !filepath.IsAbs(output) {
			output = filepath.Join(deps.Catalog.Root(), output)
		}

		m, err := commands.ParseManifest([]byte(req.GetString("manifest", "")))
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewBuildCommand(deps.Opener, "", output)
		cmd.Manifest = m
		cmd.Force = req.GetBool("overwrite", false)

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
