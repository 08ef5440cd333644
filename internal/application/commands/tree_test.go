package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenelink/internal/domain"
	"scenelink/internal/registry"
)

func TestTreeCommand(t *testing.T) {
	path := writeFixture(t)

	tree, err := NewTreeCommand(registry.Default(), path).Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, tree.IsExpanded)

	tests := []struct {
		path string
		kind domain.NodeKind
	}{
		{"/", domain.NodeKindRoot},
		{"/i0", domain.NodeKindLink},
		{"/i0/A", domain.NodeKindLinkedIn},
		{"/i2", domain.NodeKindLink},
		{"/group", domain.NodeKindPlain},
		{"/group/x", domain.NodeKindLink},
		{"/plain", domain.NodeKindPlain},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			n := tree.Find(domain.ParsePath(tt.path))
			if n == nil {
				t.Fatalf("node %s not in tree", tt.path)
			}
			if n.Kind != tt.kind {
				t.Errorf("expected %s, got %s", tt.kind, n.Kind)
			}
			if (n.Kind == domain.NodeKindLink) != (n.LinkHash != "") {
				t.Errorf("link hash %q on a %s node", n.LinkHash, n.Kind)
			}
		})
	}

	assert.Equal(t, tree.Find(domain.ParsePath("/i0")).LinkHash, tree.Find(domain.ParsePath("/i1")).LinkHash)
	assert.Equal(t, []string{"own"}, tree.Find(domain.ParsePath("/plain")).Tags)
	assert.Equal(t, 2, tree.Find(domain.ParsePath("/i0/B")).Depth())
}

func TestTreeCommandMaxDepth(t *testing.T) {
	path := writeFixture(t)

	cmd := NewTreeCommand(registry.Default(), path)
	cmd.MaxDepth = 1
	tree, err := cmd.Execute(context.Background())
	require.NoError(t, err)

	assert.Len(t, tree.Children, 5)
	for _, c := range tree.Children {
		assert.Empty(t, c.Children, c.Name)
	}
}

func TestTreeCommandSubtree(t *testing.T) {
	path := writeFixture(t)

	cmd := NewTreeCommand(registry.Default(), path)
	cmd.NodePath = "/i0/A"
	tree, err := cmd.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.NodeKindLinkedIn, tree.Kind)
	assert.Equal(t, domain.ParsePath("/i0/A"), tree.Path)
}

func TestTreeCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     *TreeCommand
		wantErr bool
	}{
		{"valid", &TreeCommand{ScenePath: "a.lscn"}, false},
		{"empty scene", &TreeCommand{}, true},
		{"negative depth", &TreeCommand{ScenePath: "a.lscn", MaxDepth: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
