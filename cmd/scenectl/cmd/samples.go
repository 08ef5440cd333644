package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"scenelink/internal/application/commands"
)

var samplesCmd = &cobra.Command{
	Use:   "samples <scene> [path]",
	Short: "List sample times of a node",
	Long: `List the sample times of every channel of a node, in the time frame
of the opened scene. Times below a remapping link are remapped.

Example:
  scenectl samples shots/shot01.lscn /crowd/agent3`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveScene(args[0])
		if err != nil {
			return err
		}
		res, err := commands.NewSamplesCommand(GetRuntime().Registry, path, nodeArg(args, 1)).Execute(cmd.Context())
		if err != nil {
			return err
		}

		printTimes("bound", res.Bound)
		printTimes("transform", res.Transform)
		printTimes("object", res.Object)
		names := make([]string, 0, len(res.Attributes))
		for name := range res.Attributes {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			printTimes(name, res.Attributes[name])
		}
		return nil
	},
}

func printTimes(label string, times []float64) {
	parts := make([]string, len(times))
	for i, t := range times {
		parts[i] = fmt.Sprintf("%g", t)
	}
	printField(label, "["+strings.Join(parts, " ")+"]")
}

func init() {
	rootCmd.AddCommand(samplesCmd)
}
