package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"timesheet/internal/config"
)

// configCmd groups the configuration subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
	Long: `Inspect the effective configuration or create a default config.json.

'config show' prints the configuration the other commands run with,
including environment overrides, and names where it was loaded from.
'config init' writes a default config.json into the user config
directory; it refuses to overwrite an existing file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runConfigShow()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runConfigInit()
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigShow prints the resolved configuration and its source.
func runConfigShow() {
	cfg, ok := loadConfig()
	if !ok {
		return
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Error: Failed to encode the configuration")
		fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	fmt.Fprintf(deps.Stdout, "Source: %s\n", cfg.Source())
	fmt.Fprintln(deps.Stdout, string(data))
}

// runConfigInit writes the default configuration file.
func runConfigInit() {
	path, err := config.Init()
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Error: Failed to write the default configuration")
		fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		fmt.Fprintln(deps.Stderr, "Hint: Use 'timesheet config show' to inspect the current one")
		deps.Exit(1)
		return
	}

	fmt.Fprintf(deps.Stdout, "Wrote default configuration to %s\n", path)
}
