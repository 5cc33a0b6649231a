package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command all subcommands attach to.
var rootCmd = &cobra.Command{
	Use:   "ore-monitor",
	Short: "A command-line client for the Sponge Ore plugin registry",
	Long: `ore-monitor talks to the Ore plugin registry (https://ore.spongepowered.org).
It can search for plugins, inspect plugin and version details, install plugin
files, and compare locally installed plugins against the latest promoted
versions for their Sponge API generation.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
