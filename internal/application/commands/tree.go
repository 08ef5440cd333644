package commands

import (
	"context"
	"fmt"

	"scenelink/internal/domain"
	"scenelink/internal/logger"
	"scenelink/internal/ports"
)

// TreeCommand snapshots the virtual scene graph of a file
type TreeCommand struct {
	opener    ports.Opener
	ScenePath string
	NodePath  string
	// MaxDepth limits how far below NodePath nodes are loaded; 0 loads everything
	MaxDepth int
}

// NewTreeCommand creates a new TreeCommand
func NewTreeCommand(opener ports.Opener, scenePath string) *TreeCommand {
	return &TreeCommand{
		opener:    opener,
		ScenePath: scenePath,
		NodePath:  "/",
	}
}

// Validate checks if the tree operation is valid
func (c *TreeCommand) Validate() error {
	if err := validateScene(c.ScenePath); err != nil {
		return err
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative: %d", c.MaxDepth)
	}
	return nil
}

// Execute runs the tree command
func (c *TreeCommand) Execute(ctx context.Context) (*domain.TreeNode, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	root, node, err := openNode(c.opener, c.ScenePath, c.NodePath)
	if err != nil {
		return nil, err
	}
	defer root.Close()

	below := false
	for p := node.Path(); !p.IsRoot(); p = p[:len(p)-1] {
		ancestor, err := root.Scene(p[:len(p)-1])
		if err != nil {
			return nil, err
		}
		if ancestor.HasAttribute(domain.LinkHashAttribute) {
			below = true
			break
		}
	}

	tree, err := c.build(ctx, node, nil, below, 0)
	if err != nil {
		return nil, err
	}
	tree.Expand()

	count := 0
	tree.Walk(func(*domain.TreeNode) { count++ })
	logger.Info().Str("scene", c.ScenePath).Int("nodes", count).Msg("tree loaded")
	return tree, nil
}

func (c *TreeCommand) build(ctx context.Context, s ports.Scene, parent *domain.TreeNode, belowLink bool, depth int) (*domain.TreeNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hash, err := linkHash(s)
	if err != nil {
		return nil, err
	}
	tags, err := s.ReadTags(false)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags at %s: %w", s.Path(), err)
	}

	n := &domain.TreeNode{
		Kind:     classify(s, hash, belowLink),
		Name:     s.Name(),
		Path:     s.Path(),
		LinkHash: hash,
		Tags:     tags,
		Parent:   parent,
	}
	if c.MaxDepth > 0 && depth >= c.MaxDepth {
		return n, nil
	}

	names, err := s.ChildNames()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		child, err := s.Child(name)
		if err != nil {
			return nil, err
		}
		cn, err := c.build(ctx, child, n, belowLink || hash != "", depth+1)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, cn)
	}
	return n, nil
}
