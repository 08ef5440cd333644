package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var extensionsCmd = &cobra.Command{
	Use:   "extensions",
	Short: "List the registered scene file formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, f := range GetRuntime().Registry.Formats() {
			fmt.Printf("%-6s %-10s %s\n", f.Extension, f.Modes, f.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extensionsCmd)
}
