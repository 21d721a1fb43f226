package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	catalogAdapter "github.com/strangergwenn/AstralShipwright-sub002/internal/adapters/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the asset catalog",
		Long: `Inspect the asset catalog: resources, modules, equipment and compartments.

The catalog comes from --file, then catalog.path in the configuration, then
the built-in catalog.

Examples:
  shipwright catalog list
  shipwright catalog list --file my-catalog.yaml
  shipwright catalog recipes
  shipwright catalog validate my-catalog.yaml`,
	}

	cmd.PersistentFlags().StringVar(&file, "file", "", "Catalog YAML file")

	// Add subcommands
	cmd.AddCommand(newCatalogListCommand(&file))
	cmd.AddCommand(newCatalogRecipesCommand(&file))
	cmd.AddCommand(newCatalogValidateCommand())

	return cmd
}

// loadCatalog loads the catalog named by --file or the configuration
func loadCatalog(file string) (*catalog.Catalog, error) {
	path := file
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		path = cfg.Catalog.Path
	}
	cat, err := catalogAdapter.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}

// newCatalogListCommand creates the catalog list subcommand
func newCatalogListCommand(file *string) *cobra.Command {
	var section string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(*file)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printers := map[string]func(io.Writer, *catalog.Catalog) error{
				"resources":    printResources,
				"modules":      printModules,
				"equipment":    printEquipment,
				"compartments": printCompartments,
			}

			if section != "" {
				printer, ok := printers[section]
				if !ok {
					return fmt.Errorf("unknown section %q: use resources, modules, equipment or compartments", section)
				}
				return printer(out, cat)
			}

			for i, name := range []string{"resources", "modules", "equipment", "compartments"} {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s:\n", strings.ToUpper(name[:1])+name[1:])
				if err := printers[name](out, cat); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&section, "section", "", "Only list resources, modules, equipment or compartments")

	return cmd
}

func printResources(out io.Writer, cat *catalog.Catalog) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE")
	for _, resource := range cat.Resources() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", resource.Identifier, resource.Name, resource.Type)
	}
	return w.Flush()
}

func printModules(out io.Writer, cat *catalog.Catalog) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKIND\tMASS\tCREW\tDETAILS")
	for _, module := range cat.Modules() {
		details := "-"
		switch {
		case module.Propellant != nil:
			details = "holds " + formatMass(module.Propellant.PropellantMass)
		case module.Cargo != nil:
			details = fmt.Sprintf("holds %s of %s", formatMass(module.Cargo.CargoMass), module.Cargo.CargoType)
		case module.Processing != nil:
			details = fmt.Sprintf("%s → %s at %g T/s, %g kW",
				joinOrDash(resourceIDs(module.Processing.Inputs)),
				joinOrDash(resourceIDs(module.Processing.Outputs)),
				module.Processing.ProcessingRate,
				module.Processing.Power)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%+d\t%s\n",
			module.Identifier, module.Name, module.Kind, formatMass(module.Mass), module.CrewEffect, details)
	}
	return w.Flush()
}

func printEquipment(out io.Writer, cat *catalog.Catalog) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKIND\tTYPE\tMASS\tPAIRED")
	for _, equipment := range cat.Equipments() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%v\n",
			equipment.Identifier, equipment.Name, equipment.Kind, equipment.Type,
			formatMass(equipment.Mass), equipment.RequiresPairing)
	}
	return w.Flush()
}

func printCompartments(out io.Writer, cat *catalog.Catalog) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMASS\tMODULE SLOTS\tEQUIPMENT SLOTS")
	for _, compartment := range cat.Compartments() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			compartment.Identifier, compartment.Name, formatMass(compartment.Mass),
			len(compartment.ModuleSlots), len(compartment.EquipmentSlots))
	}
	return w.Flush()
}

func resourceIDs(set catalog.ResourceSet) []string {
	ids := make([]string, 0, len(set))
	for _, resource := range set {
		ids = append(ids, resource.Identifier)
	}
	return ids
}

// newCatalogRecipesCommand creates the catalog recipes subcommand
func newCatalogRecipesCommand(file *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "Show the production graph of the processing modules",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(*file)
			if err != nil {
				return err
			}

			recipes, err := catalogAdapter.NewRecipeGraph(cat)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MODULE\tINPUTS\tOUTPUTS\tRATE")
			for _, recipe := range recipes.Recipes() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%g T/s\n",
					recipe.Module, joinOrDash(recipe.Inputs), joinOrDash(recipe.Outputs), recipe.Rate)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "\nRaw resources:    %s\n", joinOrDash(recipes.Raw()))

			order, err := recipes.ProductionOrder()
			if errors.Is(err, catalogAdapter.ErrRecipeCycle) {
				fmt.Fprintln(out, "Production order: (cyclic)")
				for _, cycle := range recipes.Cycles() {
					fmt.Fprintf(out, "  cycle: %s\n", strings.Join(cycle, " ↔ "))
				}
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Production order: %s\n", strings.Join(order, " → "))
			return nil
		},
	}

	return cmd
}

// newCatalogValidateCommand creates the catalog validate subcommand
func newCatalogValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a catalog file against the schema and the catalog rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read catalog: %w", err)
			}
			cat, err := catalogAdapter.Parse(data)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid: %d resources, %d modules, %d equipment, %d compartments\n",
				args[0], len(cat.Resources()), len(cat.Modules()), len(cat.Equipments()), len(cat.Compartments()))
			return nil
		},
	}

	return cmd
}
