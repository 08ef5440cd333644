package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"scenelink/internal/adapters/filesystem"
	"scenelink/internal/cache"
	"scenelink/internal/linked"
	"scenelink/internal/registry"
)

const spheres = `
tags: [spheres]
children:
  - name: A
    tags: [test]
    objects:
      - {time: 0, type: sphere, min: [0, 0, 0], max: [1, 1, 1]}
`

const shot = `
children:
  - name: left
    link: {target: spheres.scn}
  - name: right
    link: {target: spheres.scn}
`

func request(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return tc.Text
}

func setupDeps(t *testing.T) Deps {
	t.Helper()
	root := t.TempDir()
	deps := Deps{
		Opener:  registry.Default(),
		Catalog: filesystem.NewCatalog(root, []string{"scn", linked.Extension}, linked.Extension),
		Results: cache.NewCachedResult(cache.NewObjectCache(1<<20), 0),
	}

	build := buildHandler(deps)
	for _, f := range []struct{ name, manifest string }{{"spheres.scn", spheres}, {"shot.lscn", shot}} {
		name := f.name
		res, err := build(context.Background(), request(map[string]any{"manifest": f.manifest, "output": name}))
		if err != nil {
			t.Fatalf("build %s: %v", name, err)
		}
		if res.IsError {
			t.Fatalf("build %s: %s", name, text(t, res))
		}
	}
	return deps
}

func TestSceneTools(t *testing.T) {
	deps := setupDeps(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		handler server.ToolHandlerFunc
		args    map[string]any
		want    []string
	}{
		{"list", listScenesHandler(deps), nil, []string{"shot.lscn  linked", "spheres.scn  plain"}},
		{"list linked", listScenesHandler(deps), map[string]any{"linked_only": true}, []string{"shot.lscn"}},
		{"tree", treeHandler(deps), map[string]any{"scene": "shot"}, []string{"left  -> link ", "    A  [test]"}},
		{"inspect", inspectHandler(deps), map[string]any{"scene": "shot.lscn", "path": "/left/A"}, []string{"(linked)", "object:    sphere"}},
		{"tags", tagsHandler(deps), map[string]any{"scene": "shot.lscn"}, []string{"spheres", "test"}},
		{"hashes", linkHashesHandler(deps), map[string]any{"scene": "shot.lscn"}, []string{"2 links, 1 unique", "  /left", "  /right"}},
		{"samples", samplesHandler(deps), map[string]any{"scene": "shot.lscn", "path": "/left/A"}, []string{"object: [0]"}},
		{"read object", readObjectHandler(deps), map[string]any{"scene": "shot.lscn", "path": "/right/A"}, []string{"type: sphere", "cached: false"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.handler(ctx, request(tt.args))
			if err != nil {
				t.Fatalf("handler error: %v", err)
			}
			out := text(t, res)
			if res.IsError {
				t.Fatalf("tool error: %s", out)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("expected output to contain %q, got:\n%s", w, out)
				}
			}
		})
	}
}

func TestSceneToolErrors(t *testing.T) {
	deps := setupDeps(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		handler server.ToolHandlerFunc
		args    map[string]any
	}{
		{"missing scene arg", treeHandler(deps), nil},
		{"unknown scene", inspectHandler(deps), map[string]any{"scene": "nope"}},
		{"unknown node", inspectHandler(deps), map[string]any{"scene": "shot.lscn", "path": "/missing"}},
		{"existing output", buildHandler(deps), map[string]any{"manifest": "tags: [x]", "output": "shot.lscn"}},
		{"bad manifest", buildHandler(deps), map[string]any{"manifest": "children: {", "output": "bad.lscn"}},
		{"no object", readObjectHandler(deps), map[string]any{"scene": "shot.lscn", "path": "/left"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.handler(ctx, request(tt.args))
			if err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if !res.IsError {
				t.Errorf("expected tool error, got %q", text(t, res))
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	if NewServer("scene-mcp", "test", setupDeps(t)) == nil {
		t.Fatal("expected a server")
	}
	res, err := pingHandler(context.Background(), request(nil))
	if err != nil {
		t.Fatal(err)
	}
	if got := text(t, res); got != "pong" {
		t.Errorf("ping returned %q", got)
	}
}
