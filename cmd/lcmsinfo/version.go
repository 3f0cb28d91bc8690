package main

import (
	"fmt"

	"github.com/jrshoare/golcms"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the Little CMS versions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "engine %s (built against %s)\n", golcms.EngineVersion(), golcms.CompiledVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
