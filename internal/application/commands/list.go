package commands

import (
	"context"

	"scenelink/internal/ports"
)

// ListScenesCommand lists the scene files of a catalog
type ListScenesCommand struct {
	catalog ports.SceneCatalog
	// LinkedOnly keeps files whose links are interpreted
	LinkedOnly bool
}

// NewListScenesCommand creates a new ListScenesCommand
func NewListScenesCommand(catalog ports.SceneCatalog) *ListScenesCommand {
	return &ListScenesCommand{catalog: catalog}
}

// Execute runs the list scenes command
func (c *ListScenesCommand) Execute(ctx context.Context) ([]ports.SceneFile, error) {
	files, err := c.catalog.List()
	if err != nil {
		return nil, err
	}
	if !c.LinkedOnly {
		return files, nil
	}
	out := files[:0]
	for _, f := range files {
		if f.Linked {
			out = append(out, f)
		}
	}
	return out, nil
}
