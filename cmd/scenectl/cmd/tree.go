package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scenelink/internal/application/commands"
	"scenelink/internal/domain"
)

var treeDepth int

var treeCmd = &cobra.Command{
	Use:   "tree <scene> [path]",
	Short: "Display the virtual scene graph",
	Long: `Display the virtual scene graph of a scene, following links.

Link locations show their link hash; nodes reached through a link are
marked with a dot.

Example:
  scenectl tree shots/shot01.lscn
  scenectl tree shots/shot01.lscn /crowd --depth 2`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveScene(args[0])
		if err != nil {
			return err
		}
		treeCmd := commands.NewTreeCommand(GetRuntime().Registry, path)
		treeCmd.NodePath = nodeArg(args, 1)
		treeCmd.MaxDepth = treeDepth
		root, err := treeCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		printTree(root, 0)
		return nil
	},
}

func printTree(node *domain.TreeNode, depth int) {
	if node == nil {
		return
	}

	name := node.Name
	if node.Kind == domain.NodeKindRoot {
		name = node.Path.String()
	}
	line := strings.Repeat("  ", depth) + name
	switch node.Kind {
	case domain.NodeKindLink:
		line += " -> " + node.LinkHash
	case domain.NodeKindLinkedIn:
		line += " ·"
	}
	if len(node.Tags) > 0 {
		line += "  [" + strings.Join(node.Tags, ", ") + "]"
	}
	fmt.Println(line)

	for _, child := range node.Children {
		printTree(child, depth+1)
	}
}

func init() {
	treeCmd.Flags().IntVarP(&treeDepth, "depth", "d", 0, "maximum depth (0 for unlimited)")
	rootCmd.AddCommand(treeCmd)
}
