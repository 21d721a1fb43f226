package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/player/commands"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/player/queries"
)

// NewPlayerCommand creates the player command with subcommands
func NewPlayerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Manage players",
		Long: `Manage players in the local database.

A player owns spacecraft and pays their crew from its credits.

Examples:
  shipwright player register --name Ada
  shipwright player register --name Grace --credits 500
  shipwright player list
  shipwright player show --player Ada`,
	}

	// Add subcommands
	cmd.AddCommand(newPlayerRegisterCommand())
	cmd.AddCommand(newPlayerListCommand())
	cmd.AddCommand(newPlayerShowCommand())

	return cmd
}

// newPlayerRegisterCommand creates the player register subcommand
func newPlayerRegisterCommand() *cobra.Command {
	var (
		name    string
		credits int64
		faction string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new player",
		Long: `Register a new player with its starting credits.

Credits default to simulation.starting_credits from the configuration.

Example:
  shipwright player register --name Ada --faction belt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name flag is required")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if !cmd.Flags().Changed("credits") {
				credits = a.cfg.Simulation.StartingCredits
			}

			// Prepare metadata
			metadata := make(map[string]interface{})
			if faction != "" {
				metadata["faction"] = faction
			}

			response, err := a.mediator.Send(cmd.Context(), &commands.RegisterPlayerCommand{
				Name:     name,
				Credits:  credits,
				Metadata: metadata,
			})
			if err != nil {
				return fmt.Errorf("failed to register player: %w", err)
			}

			result := response.(*commands.RegisterPlayerResponse)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "✓ Player registered successfully")
			fmt.Fprintf(out, "  Name:      %s\n", result.Player.Name)
			fmt.Fprintf(out, "  Player ID: %d\n", result.Player.ID)
			fmt.Fprintf(out, "  Credits:   %s\n", formatCredits(result.Player.Credits))
			if faction != "" {
				fmt.Fprintf(out, "  Faction:   %s\n", faction)
			}
			fmt.Fprintln(out, "\nSet as default player with: shipwright config set-player --player", name)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().Int64Var(&credits, "credits", 0, "Starting credits (default from configuration)")
	cmd.Flags().StringVar(&faction, "faction", "", "Faction (optional)")

	return cmd
}

// newPlayerListCommand creates the player list subcommand
func newPlayerListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all registered players",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			players, err := a.playerRepo.ListAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list players: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(players) == 0 {
				fmt.Fprintln(out, "No players registered.")
				fmt.Fprintln(out, "\nRegister a player with: shipwright player register --name <name>")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCREDITS")
			fmt.Fprintln(w, "--\t----\t-------")
			for _, p := range players {
				fmt.Fprintf(w, "%d\t%s\t%s\n", p.ID, p.Name, formatCredits(p.Credits))
			}

			return w.Flush()
		},
	}

	return cmd
}

// newPlayerShowCommand creates the player show subcommand
func newPlayerShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show detailed player information",
		Long: `Show detailed information about a specific player.

Specify the player using either --player-id or --player flag.

Examples:
  shipwright player show --player-id 1
  shipwright player show --player Ada`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Resolve player from flags or defaults
			ident, err := resolvePlayerIdentifier()
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			response, err := a.mediator.Send(cmd.Context(), &queries.GetPlayerQuery{
				PlayerID:   ident.IDPtr(),
				PlayerName: ident.Name,
			})
			if err != nil {
				return fmt.Errorf("failed to get player: %w", err)
			}
			p := response.(*queries.GetPlayerResponse).Player

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Player Information")
			fmt.Fprintln(out, "==================")
			fmt.Fprintf(out, "Player ID: %d\n", p.ID)
			fmt.Fprintf(out, "Name:      %s\n", p.Name)
			fmt.Fprintf(out, "Credits:   %s\n", formatCredits(p.Credits))
			if len(p.Metadata) > 0 {
				fmt.Fprintln(out, "\nMetadata:")
				fmt.Fprintln(out, prettyPrint(p.Metadata))
			}

			return nil
		},
	}

	return cmd
}
