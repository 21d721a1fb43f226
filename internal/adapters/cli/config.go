package cli

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/player/queries"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage Shipwright configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (SW_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default player) are stored in ~/.shipwright/config.json

Examples:
  shipwright config show
  shipwright config set-player --player Ada
  shipwright config set-player --player-id 1
  shipwright config clear-player`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetPlayerCommand())
	cmd.AddCommand(newConfigClearPlayerCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long: `Display the current configuration settings.

Shows both system configuration and user preferences.

Example:
  shipwright config show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			// Load system config
			cfg, err := loadConfig()
			if err != nil {
				fmt.Fprintf(out, "Warning: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			// Load user config
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			// Display configuration
			fmt.Fprintln(out, "Shipwright Configuration")
			fmt.Fprintln(out, "========================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:      %s\n", userConfigHandler.GetConfigPath())
			if userCfg.DefaultPlayerID != nil {
				fmt.Fprintf(out, "  Default Player:   ID=%d\n", *userCfg.DefaultPlayerID)
			} else if userCfg.DefaultPlayerName != "" {
				fmt.Fprintf(out, "  Default Player:   Name=%s\n", userCfg.DefaultPlayerName)
			} else {
				fmt.Fprintf(out, "  Default Player:   (not set)\n")
			}

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}
			fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Fprintln(out, "\nSimulation:")
			fmt.Fprintf(out, "  Tick Step:        %s\n", cfg.Simulation.TickStep)
			fmt.Fprintf(out, "  Realtime Speed:   %gx\n", cfg.Simulation.Speed)
			fmt.Fprintf(out, "  Strict:           %v\n", cfg.Simulation.StrictInvariants)
			fmt.Fprintf(out, "  Daily Crew Cost:  %s\n", formatCredits(cfg.Simulation.DailyCrewCost))
			fmt.Fprintf(out, "  Start Credits:    %s\n", formatCredits(cfg.Simulation.StartingCredits))
			if cfg.Simulation.JournalDir != "" {
				fmt.Fprintf(out, "  Journal:          %s\n", cfg.Simulation.JournalDir)
			} else {
				fmt.Fprintf(out, "  Journal:          (disabled)\n")
			}

			fmt.Fprintln(out, "\nCatalog:")
			if cfg.Catalog.Path != "" {
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Catalog.Path)
			} else {
				fmt.Fprintf(out, "  Path:             (built-in)\n")
			}

			fmt.Fprintln(out, "\nAuthority:")
			fmt.Fprintf(out, "  Listen:           %s\n", cfg.Authority.Listen)
			fmt.Fprintf(out, "  Address:          %s\n", cfg.Authority.Address)
			fmt.Fprintf(out, "  Timeout:          %s\n", cfg.Authority.Timeout)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %v\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "  Endpoint:         %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}

	return cmd
}

// newConfigSetPlayerCommand creates the config set-player subcommand
func newConfigSetPlayerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-player",
		Short: "Set default player",
		Long: `Set the default player to use for commands.

Specify the player using either --player-id or --player flag.
The default player will be used when no player is specified in commands.

Examples:
  shipwright config set-player --player-id 1
  shipwright config set-player --player Ada`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if playerID == 0 && playerName == "" {
				return fmt.Errorf("either --player-id or --player flag is required")
			}

			// Create user config handler
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			// Verify player exists in database
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ident := &PlayerIdentifier{PlayerID: playerID, Name: playerName}
			response, err := a.mediator.Send(cmd.Context(), &queries.GetPlayerQuery{
				PlayerID:   ident.IDPtr(),
				PlayerName: ident.Name,
			})
			if err != nil {
				return fmt.Errorf("player not found: %w", err)
			}
			verified := response.(*queries.GetPlayerResponse).Player

			if err := userConfigHandler.SetDefaultPlayerName(verified.Name); err != nil {
				return fmt.Errorf("failed to set default player name: %w", err)
			}
			// Also set player ID for convenience
			if err := userConfigHandler.SetDefaultPlayer(verified.ID); err != nil {
				return fmt.Errorf("failed to set default player ID: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "✓ Default player set successfully")
			fmt.Fprintf(out, "  Player ID: %d\n", verified.ID)
			fmt.Fprintf(out, "  Name:      %s\n", verified.Name)
			fmt.Fprintf(out, "\nCommands will now use this player by default.\n")
			fmt.Fprintf(out, "Override with --player-id or --player flags.\n")

			return nil
		},
	}

	return cmd
}

// newConfigClearPlayerCommand creates the config clear-player subcommand
func newConfigClearPlayerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear-player",
		Short: "Clear default player setting",
		Long: `Remove the default player setting.

After clearing, you must explicitly specify --player-id or --player
for all commands that require player context.

Example:
  shipwright config clear-player`,
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.ClearDefaultPlayer(); err != nil {
				return fmt.Errorf("failed to clear default player: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "✓ Default player cleared")
			fmt.Fprintln(out, "\nYou must now specify --player-id or --player for all commands.")

			return nil
		},
	}

	return cmd
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.User == nil {
		return raw
	}
	if _, ok := parsed.User.Password(); !ok {
		return raw
	}
	parsed.User = url.UserPassword(parsed.User.Username(), "xxxxx")
	return parsed.String()
}

// prettyPrint formats JSON for display
func prettyPrint(v interface{}) string {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(bytes)
}
