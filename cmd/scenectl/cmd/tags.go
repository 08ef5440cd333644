package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"scenelink/internal/application/commands"
)

var tagsDirect bool

var tagsCmd = &cobra.Command{
	Use:   "tags <scene> [path]",
	Short: "List the tags visible at a node",
	Long: `List the tags of a node. By default tags of every descendant are
included, as well as the tags a link location contributes to the nodes
below it.

Example:
  scenectl tags shots/shot01.lscn /crowd
  scenectl tags shots/shot01.lscn /crowd --direct`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveScene(args[0])
		if err != nil {
			return err
		}
		tags, err := commands.NewTagsCommand(GetRuntime().Registry, path, nodeArg(args, 1), !tagsDirect).Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, t := range tags {
			fmt.Println(t)
		}
		return nil
	},
}

func init() {
	tagsCmd.Flags().BoolVar(&tagsDirect, "direct", false, "only the node's own tags")
	rootCmd.AddCommand(tagsCmd)
}
