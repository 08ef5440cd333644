package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"scenelink/internal/application/commands"
)

var hashesShared bool

var hashesCmd = &cobra.Command{
	Use:   "hashes <scene>",
	Short: "Group link locations by link hash",
	Long: `Walk the virtual scene graph and group every link location by its
link hash. Locations sharing a hash present identical content and can
share loaded data.

Example:
  scenectl hashes shots/shot01.lscn --shared`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveScene(args[0])
		if err != nil {
			return err
		}
		report, err := commands.NewHashesCommand(GetRuntime().Registry, path).Execute(cmd.Context())
		if err != nil {
			return err
		}

		groups := report.Groups
		if hashesShared {
			groups = report.Shared()
		}
		for _, g := range groups {
			fmt.Println(g.Hash)
			for _, p := range g.Paths {
				fmt.Printf("  %s\n", p)
			}
		}
		fmt.Printf("%d links, %d distinct\n", report.Links, len(report.Groups))
		return nil
	},
}

func init() {
	hashesCmd.Flags().BoolVar(&hashesShared, "shared", false, "only hashes used by more than one link")
	rootCmd.AddCommand(hashesCmd)
}
