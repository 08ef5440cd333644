package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scenelink/internal/application/commands"
	"scenelink/internal/domain"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <scene> [path]",
	Short: "Show everything readable at one node",
	Long: `Show the kind, children, bound, transform, object, attributes and tags
of a virtual node, and where it is stored.

Example:
  scenectl inspect shots/shot01.lscn /crowd/agent3/body`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveScene(args[0])
		if err != nil {
			return err
		}
		res, err := commands.NewInspectCommand(GetRuntime().Registry, path, nodeArg(args, 1)).Execute(cmd.Context())
		if err != nil {
			return err
		}

		printField("path", res.Path.String())
		printField("kind", res.Kind.String())
		printField("stored", fmt.Sprintf("%s:%s", res.TargetFile, res.TargetPath))
		if res.LinkHash != "" {
			printField("link hash", res.LinkHash)
		}
		if res.LinkDepth > 0 {
			printField("links", fmt.Sprint(res.LinkDepth))
		}
		printField("children", strings.Join(res.Children, ", "))
		if res.Bound != nil {
			printField("bound", domain.FormatValue(domain.Bound(*res.Bound)))
		}
		if res.Transform != nil {
			printField("transform", domain.FormatValue(domain.Matrix(*res.Transform)))
		}
		if res.HasObject {
			printField("object", res.ObjectType)
		}
		for _, a := range res.Attributes {
			printField(a.Name, fmt.Sprintf("%s (%s, %d samples)", a.First, a.Kind, len(a.Times)))
		}
		printField("tags", strings.Join(res.Tags, ", "))
		printField("all tags", strings.Join(res.AllTags, ", "))
		return nil
	},
}

func printField(label, value string) {
	fmt.Printf("%-12s %s\n", label+":", value)
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
