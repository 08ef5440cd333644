package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"scenelink/internal/registry"
)

var (
	configPath string
	rt         *registry.Runtime
)

var rootCmd = &cobra.Command{
	Use:   "scenectl",
	Short: "Inspect and build linked scene files",
	Long: `scenectl reads plain (.scn) and linked (.lscn) scene files.

A linked scene can point any of its nodes at a subtree of another scene
file, optionally remapping time. scenectl shows the resulting virtual
scene graph, its tags, samples and link hashes, and builds scenes from
YAML manifests.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		rt, err = registry.Setup(configPath)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if rt == nil {
			return nil
		}
		return rt.Close()
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $SCENELINK_CONFIG)")
}

// GetRuntime returns the initialized runtime
func GetRuntime() *registry.Runtime {
	return rt
}

// resolveScene accepts a path relative to the working directory, an
// absolute path, or a name relative to the scenes directory
func resolveScene(name string) (string, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return filepath.Abs(name)
	}
	return GetRuntime().Catalog.Resolve(name)
}

func nodeArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return "/"
}
