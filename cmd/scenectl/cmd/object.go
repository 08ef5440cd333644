package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"scenelink/internal/application/commands"
)

var (
	objectTime  float64
	objectStats bool
)

var readObjectCmd = &cobra.Command{
	Use:   "read-object <scene> <path>...",
	Short: "Read node objects through the shared object cache",
	Long: `Read the object of one or more nodes at a time. Nodes below link
locations with the same link hash share cache entries, so identical
content linked several times is loaded once.

Example:
  scenectl read-object shots/shot01.lscn /left/body /right/body --stats`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveScene(args[0])
		if err != nil {
			return err
		}
		r := GetRuntime()
		for _, node := range args[1:] {
			res, err := commands.NewReadObjectCommand(r.Registry, r.Results, path, node, objectTime).Execute(cmd.Context())
			if err != nil {
				return err
			}
			state := "loaded"
			if res.Cached {
				state = "cached"
			}
			fmt.Printf("%s  %s %s  %s  %s\n", node, res.Object.Type, humanize.Bytes(uint64(len(res.Object.Data))), res.Hash, state)
		}

		if objectStats {
			m := r.Objects.Metrics()
			fmt.Printf("cache: %d objects, %s of %s, %d hits, %d misses, %d evictions\n",
				r.Objects.Len(),
				humanize.Bytes(r.Objects.MemoryUsage()),
				humanize.Bytes(r.Objects.MaxMemory()),
				m.Hits, m.Misses, m.Evictions)
		}
		return nil
	},
}

func init() {
	readObjectCmd.Flags().Float64VarP(&objectTime, "time", "t", 0, "sample time")
	readObjectCmd.Flags().BoolVar(&objectStats, "stats", false, "print object cache statistics")
	rootCmd.AddCommand(readObjectCmd)
}
