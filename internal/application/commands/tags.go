package commands

import (
	"context"

	"scenelink/internal/ports"
)

// TagsCommand reads the tags visible at a node
type TagsCommand struct {
	opener          ports.Opener
	ScenePath       string
	NodePath        string
	IncludeChildren bool
}

// NewTagsCommand creates a new TagsCommand
func NewTagsCommand(opener ports.Opener, scenePath, nodePath string, includeChildren bool) *TagsCommand {
	return &TagsCommand{
		opener:          opener,
		ScenePath:       scenePath,
		NodePath:        nodePath,
		IncludeChildren: includeChildren,
	}
}

// Validate checks if the tags operation is valid
func (c *TagsCommand) Validate() error {
	return validateScene(c.ScenePath)
}

// Execute runs the tags command
func (c *TagsCommand) Execute(ctx context.Context) ([]string, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	root, s, err := openNode(c.opener, c.ScenePath, c.NodePath)
	if err != nil {
		return nil, err
	}
	defer root.Close()

	return s.ReadTags(c.IncludeChildren)
}
