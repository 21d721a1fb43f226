package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/spacecraft/commands"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/spacecraft/dtos"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/spacecraft/queries"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/spacecraft/types"
)

// NewSpacecraftCommand creates the spacecraft command with subcommands
func NewSpacecraftCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "spacecraft",
		Aliases: []string{"sc"},
		Short:   "Design and inspect spacecraft",
		Long: `Design spacecraft from catalog compartments, modules and equipment.

Edits use a textual form, one per --edit flag or one per line of --edits-file:
  rename <name>
  insert-compartment <index> <compartment>
  remove-compartment <index>
  swap-compartments <index> <index>
  set-module <compartment> <slot> <module>
  clear-module <compartment> <slot>
  set-equipment <compartment> <slot> <equipment>
  clear-equipment <compartment> <slot>
  load-cargo <resource> <tonnes>
  set-propellant <tonnes>
  set-crew <count>

Examples:
  shipwright spacecraft create --name Pathfinder --edits-file pathfinder.txt
  shipwright spacecraft list
  shipwright spacecraft show <spacecraft-id>
  shipwright spacecraft edit <spacecraft-id> --edit "set-module 0 1 refinery"
  shipwright spacecraft validate <spacecraft-id>`,
	}

	// Add subcommands
	cmd.AddCommand(newSpacecraftCreateCommand())
	cmd.AddCommand(newSpacecraftListCommand())
	cmd.AddCommand(newSpacecraftShowCommand())
	cmd.AddCommand(newSpacecraftEditCommand())
	cmd.AddCommand(newSpacecraftValidateCommand())

	return cmd
}

// editFlags collects edits from --edit and --edits-file
type editFlags struct {
	edits     []string
	editsFile string
}

func (e *editFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&e.edits, "edit", nil, "Edit to apply (repeatable)")
	cmd.Flags().StringVar(&e.editsFile, "edits-file", "", "File with one edit per line, '-' for stdin")
}

// parse reads the file edits first, then the flag edits. Blank lines and
// lines starting with '#' are skipped.
func (e *editFlags) parse(stdin io.Reader) ([]types.Edit, error) {
	var values []string
	if e.editsFile != "" {
		reader := stdin
		if e.editsFile != "-" {
			file, err := os.Open(e.editsFile)
			if err != nil {
				return nil, fmt.Errorf("failed to open edits file: %w", err)
			}
			defer file.Close()
			reader = file
		}
		scanner := bufio.NewScanner(reader)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			values = append(values, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read edits file: %w", err)
		}
	}
	values = append(values, e.edits...)
	return types.ParseEdits(values)
}

func parseSpacecraftID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid spacecraft id %q: %w", value, err)
	}
	return id, nil
}

// newSpacecraftCreateCommand creates the spacecraft create subcommand
func newSpacecraftCreateCommand() *cobra.Command {
	var (
		name     string
		strict   bool
		edits    editFlags
		showTree bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a spacecraft from a list of edits",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name flag is required")
			}
			parsed, err := edits.parse(cmd.InOrStdin())
			if err != nil {
				return err
			}

			ident, err := resolvePlayerIdentifier()
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			response, err := a.mediator.Send(cmd.Context(), &commands.CreateSpacecraftCommand{
				PlayerID:           ident.IDPtr(),
				PlayerName:         ident.Name,
				Name:               name,
				Edits:              parsed,
				RequireValidDesign: strict,
			})
			if err != nil {
				return fmt.Errorf("failed to create spacecraft: %w", err)
			}
			view := response.(*commands.CreateSpacecraftResponse).View

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "✓ Spacecraft created")
			fmt.Fprintf(out, "  ID:             %s\n", view.ID)
			fmt.Fprintf(out, "  Name:           %s\n", view.Name)
			fmt.Fprintf(out, "  Classification: %s\n", view.Classification)
			printIssues(out, view)
			if showTree {
				fmt.Fprintln(out)
				fmt.Fprint(out, NewTreeFormatter(false).FormatTree(view))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Spacecraft name (required)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Refuse designs that cannot leave the station")
	cmd.Flags().BoolVar(&showTree, "tree", false, "Print the structure after creation")
	edits.register(cmd)

	return cmd
}

// newSpacecraftListCommand creates the spacecraft list subcommand
func newSpacecraftListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the spacecraft of a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			ident, err := resolvePlayerIdentifier()
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			response, err := a.mediator.Send(cmd.Context(), &queries.ListSpacecraftQuery{
				PlayerID:   ident.IDPtr(),
				PlayerName: ident.Name,
			})
			if err != nil {
				return fmt.Errorf("failed to list spacecraft: %w", err)
			}
			all := response.(*queries.ListSpacecraftResponse).Spacecraft

			out := cmd.OutOrStdout()
			if len(all) == 0 {
				fmt.Fprintln(out, "No spacecraft found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCLASS\tDRY MASS\tDELTA-V\tCREW\tVALID")
			fmt.Fprintln(w, "--\t----\t-----\t--------\t-------\t----\t-----")
			for _, view := range all {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f m/s\t%d/%d\t%v\n",
					view.ID,
					view.Name,
					view.Classification,
					formatMass(view.Metrics.DryMass),
					view.Metrics.MaximumDeltaV,
					view.Crew,
					view.Metrics.CrewCapacity,
					view.Valid,
				)
			}
			return w.Flush()
		},
	}

	return cmd
}

// newSpacecraftShowCommand creates the spacecraft show subcommand
func newSpacecraftShowCommand() *cobra.Command {
	var (
		asJSON    bool
		useColors bool
	)

	cmd := &cobra.Command{
		Use:   "show <spacecraft-id>",
		Short: "Show structure, metrics, groups and validation of a spacecraft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSpacecraftID(args[0])
			if err != nil {
				return err
			}
			ident, err := resolvePlayerIdentifier()
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			response, err := a.mediator.Send(cmd.Context(), &queries.GetSpacecraftQuery{
				SpacecraftID: id,
				PlayerID:     ident.IDPtr(),
				PlayerName:   ident.Name,
			})
			if err != nil {
				return fmt.Errorf("failed to get spacecraft: %w", err)
			}
			view := response.(*queries.GetSpacecraftResponse).View

			out := cmd.OutOrStdout()
			if asJSON {
				fmt.Fprintln(out, prettyPrint(view))
				return nil
			}
			printSpacecraft(out, view, NewTreeFormatter(useColors))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the read model as JSON")
	cmd.Flags().BoolVar(&useColors, "color", false, "Highlight cargo holds")

	return cmd
}

// newSpacecraftEditCommand creates the spacecraft edit subcommand
func newSpacecraftEditCommand() *cobra.Command {
	var (
		edits  editFlags
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "edit <spacecraft-id>",
		Short: "Apply structural or loading edits to a spacecraft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSpacecraftID(args[0])
			if err != nil {
				return err
			}
			parsed, err := edits.parse(cmd.InOrStdin())
			if err != nil {
				return err
			}
			ident, err := resolvePlayerIdentifier()
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			response, err := a.mediator.Send(cmd.Context(), &commands.EditSpacecraftCommand{
				SpacecraftID: id,
				PlayerID:     ident.IDPtr(),
				PlayerName:   ident.Name,
				Edits:        parsed,
				DryRun:       dryRun,
			})
			if err != nil {
				return fmt.Errorf("failed to edit spacecraft: %w", err)
			}
			result := response.(*commands.EditSpacecraftResponse)

			out := cmd.OutOrStdout()
			if result.Saved {
				fmt.Fprintf(out, "✓ Applied %d edits\n", len(parsed))
			} else {
				fmt.Fprintf(out, "Dry run: %d edits applied, nothing saved\n", len(parsed))
			}
			printSpacecraft(out, result.View, NewTreeFormatter(false))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Apply the edits without saving")
	edits.register(cmd)

	return cmd
}

// newSpacecraftValidateCommand creates the spacecraft validate subcommand
func newSpacecraftValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <spacecraft-id>",
		Short: "Check whether a spacecraft can leave the station",
		Long: `Check the departure rules of a spacecraft and list every violated one.

Exits with an error when the design is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSpacecraftID(args[0])
			if err != nil {
				return err
			}
			ident, err := resolvePlayerIdentifier()
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			response, err := a.mediator.Send(cmd.Context(), &queries.GetSpacecraftQuery{
				SpacecraftID: id,
				PlayerID:     ident.IDPtr(),
				PlayerName:   ident.Name,
			})
			if err != nil {
				return fmt.Errorf("failed to get spacecraft: %w", err)
			}
			view := response.(*queries.GetSpacecraftResponse).View

			out := cmd.OutOrStdout()
			if view.Valid {
				fmt.Fprintf(out, "✓ %s is ready to depart\n", view.Name)
				return nil
			}
			printIssues(out, view)
			return fmt.Errorf("%s has %d design issues", view.Name, len(view.Issues))
		},
	}

	return cmd
}

func printIssues(out io.Writer, view dtos.SpacecraftDTO) {
	if view.Valid {
		fmt.Fprintln(out, "  Design:         valid")
		return
	}
	fmt.Fprintln(out, "  Design issues:")
	for _, issue := range view.Issues {
		fmt.Fprintf(out, "    ✗ %s\n", issue)
	}
}

func printSpacecraft(out io.Writer, view dtos.SpacecraftDTO, formatter *TreeFormatter) {
	fmt.Fprintln(out, "Spacecraft Information")
	fmt.Fprintln(out, "======================")
	fmt.Fprintf(out, "ID:             %s\n", view.ID)
	fmt.Fprintf(out, "Name:           %s\n", view.Name)
	fmt.Fprintf(out, "Classification: %s\n", view.Classification)
	fmt.Fprintf(out, "Crew:           %d / %d\n", view.Crew, view.Metrics.CrewCapacity)
	fmt.Fprintf(out, "Propellant:     %s / %s\n", formatMass(view.Propellant), formatMass(view.Metrics.PropellantMassCapacity))

	fmt.Fprintln(out, "\nPropulsion:")
	fmt.Fprintf(out, "  Dry mass:       %s\n", formatMass(view.Metrics.DryMass))
	fmt.Fprintf(out, "  Maximum mass:   %s\n", formatMass(view.Metrics.MaximumMass))
	fmt.Fprintf(out, "  Cargo capacity: %s\n", formatMass(view.Metrics.CargoMassCapacity))
	fmt.Fprintf(out, "  Engine thrust:  %g kN\n", view.Metrics.EngineThrust)
	fmt.Fprintf(out, "  RCS thrust:     %g kN\n", view.Metrics.ThrusterThrust)
	fmt.Fprintf(out, "  Isp:            %g s\n", view.Metrics.SpecificImpulse)
	fmt.Fprintf(out, "  Delta-v:        %.0f m/s\n", view.Metrics.MaximumDeltaV)
	fmt.Fprintf(out, "  Burn time:      %.0f s\n", view.Metrics.MaximumBurnTime)

	fmt.Fprintln(out, "\nPower:")
	fmt.Fprintf(out, "  Production:     %g kW\n", view.Metrics.PowerProduction)
	fmt.Fprintf(out, "  Usage:          %g kW\n", view.Metrics.PowerUsage)
	fmt.Fprintf(out, "  Storage:        %g kWh\n", view.Metrics.EnergyCapacity)

	fmt.Fprintln(out, "\nStructure:")
	fmt.Fprint(out, formatter.FormatTree(view))

	fmt.Fprintln(out, "\nModule groups:")
	fmt.Fprint(out, formatter.FormatGroups(view.Groups))

	fmt.Fprintln(out)
	printIssues(out, view)
}
