package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"scenelink/internal/application/commands"
	"scenelink/internal/cache"
	"scenelink/internal/domain"
	"scenelink/internal/ports"
)

// Deps are the services the scene tools run against
type Deps struct {
	Opener  ports.Opener
	Catalog ports.SceneCatalog
	Results *cache.CachedResult
}

// RegisterReadTools adds all read-only scene tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, deps Deps) {
	s.AddTool(listScenesTool(), listScenesHandler(deps))
	s.AddTool(treeTool(), treeHandler(deps))
	s.AddTool(inspectTool(), inspectHandler(deps))
	s.AddTool(tagsTool(), tagsHandler(deps))
	s.AddTool(linkHashesTool(), linkHashesHandler(deps))
	s.AddTool(samplesTool(), samplesHandler(deps))
	s.AddTool(readObjectTool(), readObjectHandler(deps))
}

func sceneArg() mcp.ToolOption {
	return mcp.WithString("scene",
		mcp.Description("Scene file, relative to the scenes directory or absolute (e.g. shots/shot01.lscn)"),
		mcp.Required(),
	)
}

func nodeArg() mcp.ToolOption {
	return mcp.WithString("path",
		mcp.Description("Virtual node path inside the scene (e.g. /instance0/A). Defaults to the root."),
	)
}

// resolveScene maps the scene argument to a file through the catalog
func resolveScene(deps Deps, req mcp.CallToolRequest) (string, error) {
	name := req.GetString("scene", "")
	if name == "" {
		return "", fmt.Errorf("scene is required")
	}
	return deps.Catalog.Resolve(name)
}

// --- list_scenes ---

func listScenesTool() mcp.Tool {
	return mcp.NewTool("list_scenes",
		mcp.WithDescription("List the scene files in the scenes directory. Linked scenes (.lscn) can reference subtrees of other scenes."),
		mcp.WithBoolean("linked_only",
			mcp.Description("Only list linked scenes"),
		),
	)
}

func listScenesHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewListScenesCommand(deps.Catalog)
		cmd.LinkedOnly = req.GetBool("linked_only", false)
		files, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(files, func(f ports.SceneFile) string {
			kind := "plain"
			if f.Linked {
				kind = "linked"
			}
			return fmt.Sprintf("%s  %s  %d bytes", f.Name, kind, f.Size)
		})
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the virtual scene graph of a scene, following links. Link locations show their link hash."),
		sceneArg(),
		nodeArg(),
		mcp.WithNumber("depth",
			mcp.Description("Maximum depth below the node; 0 for no limit"),
		),
	)
}

func treeHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := resolveScene(deps, req)
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewTreeCommand(deps.Opener, path)
		cmd.NodePath = req.GetString("path", "/")
		cmd.MaxDepth = req.GetInt("depth", 0)
		root, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		var sb strings.Builder
		renderTree(&sb, root, "")
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func renderTree(sb *strings.Builder, node *domain.TreeNode, prefix string) {
	fmt.Fprintf(sb, "%s%s", prefix, node.Name)
	if node.Kind == domain.NodeKindLink {
		fmt.Fprintf(sb, "  -> link %s", node.LinkHash)
	}
	if len(node.Tags) > 0 {
		fmt.Fprintf(sb, "  [%s]", strings.Join(node.Tags, ", "))
	}
	sb.WriteByte('\n')
	for _, child := range node.Children {
		renderTree(sb, child, prefix+"  ")
	}
}

// --- inspect ---

func inspectTool() mcp.Tool {
	return mcp.NewTool("inspect",
		mcp.WithDescription("Show the channels, attributes, tags and link information of one virtual node."),
		sceneArg(),
		nodeArg(),
	)
}

func inspectHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := resolveScene(deps, req)
		if err != nil {
			return toolError(err)
		}
		res, err := commands.NewInspectCommand(deps.Opener, path, req.GetString("path", "/")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(FormatInspect(res)), nil
	}
}

// FormatInspect renders an inspect result as plain text
func FormatInspect(res *commands.InspectResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "path:      %s (%s)\n", res.Path, res.Kind)
	fmt.Fprintf(&sb, "stored at: %s:%s\n", res.TargetFile, res.TargetPath)
	if res.LinkDepth > 0 {
		fmt.Fprintf(&sb, "links:     %d\n", res.LinkDepth)
	}
	if res.LinkHash != "" {
		fmt.Fprintf(&sb, "linkHash:  %s\n", res.LinkHash)
	}
	if len(res.Children) > 0 {
		fmt.Fprintf(&sb, "children:  %s\n", strings.Join(res.Children, ", "))
	}
	if res.Bound != nil {
		fmt.Fprintf(&sb, "bound:     %s\n", domain.FormatValue(domain.Bound(*res.Bound)))
	}
	if res.Transform != nil {
		fmt.Fprintf(&sb, "transform: %s\n", domain.FormatValue(domain.Matrix(*res.Transform)))
	}
	if res.HasObject {
		fmt.Fprintf(&sb, "object:    %s\n", res.ObjectType)
	}
	for _, a := range res.Attributes {
		fmt.Fprintf(&sb, "attr %s (%s, %d samples): %s\n", a.Name, a.Kind, len(a.Times), a.First)
	}
	fmt.Fprintf(&sb, "tags:      %s\n", strings.Join(res.Tags, ", "))
	fmt.Fprintf(&sb, "all tags:  %s\n", strings.Join(res.AllTags, ", "))
	return sb.String()
}

// --- tags ---

func tagsTool() mcp.Tool {
	return mcp.NewTool("tags",
		mcp.WithDescription("Read the tags visible at a node. Tags written at link locations apply to the whole linked subtree, and tags inside a link are visible above it."),
		sceneArg(),
		nodeArg(),
		mcp.WithBoolean("include_children",
			mcp.Description("Include the tags of every descendant"),
			mcp.DefaultBool(true),
		),
	)
}

func tagsHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := resolveScene(deps, req)
		if err != nil {
			return toolError(err)
		}
		tags, err := commands.NewTagsCommand(deps.Opener, path, req.GetString("path", "/"), req.GetBool("include_children", true)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(tags) == 0 {
			return mcp.NewToolResultText("No tags."), nil
		}
		return mcp.NewToolResultText(strings.Join(tags, "\n")), nil
	}
}

// --- link_hashes ---

func linkHashesTool() mcp.Tool {
	return mcp.NewTool("link_hashes",
		mcp.WithDescription("List every link location of a scene grouped by link hash. Locations sharing a hash present identical content."),
		sceneArg(),
	)
}

func linkHashesHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := resolveScene(deps, req)
		if err != nil {
			return toolError(err)
		}
		report, err := commands.NewHashesCommand(deps.Opener, path).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d links, %d unique\n", report.Links, len(report.Groups))
		for _, g := range report.Groups {
			fmt.Fprintf(&sb, "%s\n", g.Hash)
			for _, p := range g.Paths {
				fmt.Fprintf(&sb, "  %s\n", p)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- samples ---

func samplesTool() mcp.Tool {
	return mcp.NewTool("samples",
		mcp.WithDescription("List the sample times of every channel of a node, after time remapping by the links above it."),
		sceneArg(),
		nodeArg(),
	)
}

func samplesHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := resolveScene(deps, req)
		if err != nil {
			return toolError(err)
		}
		res, err := commands.NewSamplesCommand(deps.Opener, path, req.GetString("path", "/")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "bound: %v\ntransform: %v\nobject: %v\n", res.Bound, res.Transform, res.Object)
		for name, times := range res.Attributes {
			fmt.Fprintf(&sb, "attr %s: %v\n", name, times)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- read_object ---

func readObjectTool() mcp.Tool {
	return mcp.NewTool("read_object",
		mcp.WithDescription("Read the object stored at a node at a time. Results are cached by content, so nodes reached through equivalent links share one load."),
		sceneArg(),
		mcp.WithString("path",
			mcp.Description("Virtual node path"),
			mcp.Required(),
		),
		mcp.WithNumber("time",
			mcp.Description("Sample time in the scene's time frame"),
		),
	)
}

func readObjectHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := resolveScene(deps, req)
		if err != nil {
			return toolError(err)
		}
		res, err := commands.NewReadObjectCommand(deps.Opener, deps.Results, path, req.GetString("path", ""), req.GetFloat("time", 0)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("type: %s\nbytes: %d\nhash: %s\ncached: %v\n",
			res.Object.Type, len(res.Object.Data), res.Hash, res.Cached)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}
