package commands

import (
	"context"
	"testing"

	"scenelink/internal/ports"
)

type fakeCatalog struct {
	files []ports.SceneFile
}

func (c *fakeCatalog) List() ([]ports.SceneFile, error)    { return c.files, nil }
func (c *fakeCatalog) Resolve(name string) (string, error) { return name, nil }
func (c *fakeCatalog) Root() string                        { return "/scenes" }

func TestListScenesCommand(t *testing.T) {
	catalog := &fakeCatalog{files: []ports.SceneFile{
		{Name: "a.scn", Path: "/scenes/a.scn"},
		{Name: "b.lscn", Path: "/scenes/b.lscn", Linked: true},
	}}

	tests := []struct {
		name       string
		linkedOnly bool
		want       int
	}{
		{"all", false, 2},
		{"linked only", true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewListScenesCommand(&fakeCatalog{files: append([]ports.SceneFile(nil), catalog.files...)})
			cmd.LinkedOnly = tt.linkedOnly
			files, err := cmd.Execute(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(files) != tt.want {
				t.Errorf("expected %d files, got %d", tt.want, len(files))
			}
		})
	}
}
