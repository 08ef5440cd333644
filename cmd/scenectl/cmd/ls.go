package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"scenelink/internal/application/commands"
)

var lsLinked bool

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the scene files in the scenes directory",
	Long: `List the scene files under the scenes directory ($SCENELINK_SCENES or
scenes_dir in the config file).

Example:
  scenectl ls --linked`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lsCmd := commands.NewListScenesCommand(GetRuntime().Catalog)
		lsCmd.LinkedOnly = lsLinked
		files, err := lsCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, f := range files {
			kind := "plain"
			if f.Linked {
				kind = "linked"
			}
			fmt.Printf("%-6s %8s  %-14s %s\n", kind, humanize.Bytes(uint64(f.Size)), humanize.Time(f.ModTime), f.Name)
		}
		return nil
	},
}

func init() {
	lsCmd.Flags().BoolVar(&lsLinked, "linked", false, "only linked scenes")
	rootCmd.AddCommand(lsCmd)
}
