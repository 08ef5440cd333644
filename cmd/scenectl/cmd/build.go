package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"scenelink/internal/application/commands"
)

var buildForce bool

var buildCmd = &cobra.Command{
	Use:   "build <manifest> <output>",
	Short: "Write a scene file from a YAML manifest",
	Long: `Write a plain or linked scene file described by a YAML manifest.
The output extension selects the format.

Example manifest:
  children:
    - name: crowd
      link: {target: agents.scn, root: /walk}
    - name: slow
      link:
        target: agents.scn
        remap:
          - {outer: 0, inner: 0}
          - {outer: 48, inner: 24}

Example:
  scenectl build shot01.yaml shots/shot01.lscn`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		buildCmd := commands.NewBuildCommand(GetRuntime().Registry, args[0], args[1])
		buildCmd.Force = buildForce
		res, err := buildCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(res.Message)
		return nil
	},
}

func init() {
	buildCmd.Flags().BoolVarP(&buildForce, "force", "f", false, "overwrite an existing output file")
	rootCmd.AddCommand(buildCmd)
}
