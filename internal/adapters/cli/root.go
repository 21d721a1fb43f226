package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	playerID   int
	playerName string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shipwright",
		Short: "Shipwright - design spacecraft and simulate their resource systems",
		Long: `Shipwright assembles modular spacecraft from the asset catalog and runs
their processing, mining, power, crew and propellant systems tick by tick.

Examples:
  shipwright player register --name Ada
  shipwright spacecraft create --name Pathfinder --edit "insert-compartment 0 hull"
  shipwright spacecraft show <spacecraft-id>
  shipwright simulate <spacecraft-id> --steps 60 --group 0
  shipwright catalog recipes
  shipwright authority serve <spacecraft-id> --group 0`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs/config.yaml, /etc/shipwright/config.yaml)")
	rootCmd.PersistentFlags().IntVar(&playerID, "player-id", 0,
		"Player ID (required if player name not specified)")
	rootCmd.PersistentFlags().StringVar(&playerName, "player", "",
		"Player name (alternative to player-id)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewPlayerCommand())
	rootCmd.AddCommand(NewSpacecraftCommand())
	rootCmd.AddCommand(NewSimulateCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewAuthorityCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
