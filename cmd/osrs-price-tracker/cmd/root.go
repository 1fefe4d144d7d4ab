// Package cmd implements the CLI commands for osrs-price-tracker.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "osrs-price-tracker",
	Short: "Track Old School RuneScape prices and gear efficiency",
	Long: "An API-first service that syncs the Grand Exchange catalog and prices,\n" +
		"scrapes equipment and food tables from the wiki, and ranks items by\n" +
		"stat or effect per coin.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Root returns the root command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}
