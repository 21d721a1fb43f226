package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
)

// EditOperation names a structural or loading edit
type EditOperation string

const (
	EditRename            EditOperation = "rename"
	EditInsertCompartment EditOperation = "insert-compartment"
	EditRemoveCompartment EditOperation = "remove-compartment"
	EditSwapCompartments  EditOperation = "swap-compartments"
	EditSetModule         EditOperation = "set-module"
	EditClearModule       EditOperation = "clear-module"
	EditSetEquipment      EditOperation = "set-equipment"
	EditClearEquipment    EditOperation = "clear-equipment"
	EditLoadCargo         EditOperation = "load-cargo"
	EditSetPropellant     EditOperation = "set-propellant"
	EditSetCrew           EditOperation = "set-crew"
)

// Edit is one step applied to a spacecraft assembly.
// Compartment and Slot are 0-based; Mass and Count carry quantities.
type Edit struct {
	Operation   EditOperation
	Compartment int
	Other       int
	Slot        int
	Identifier  string
	Name        string
	Mass        float64
	Count       int
}

// String renders the edit in the textual form accepted by ParseEdit
func (e Edit) String() string {
	switch e.Operation {
	case EditRename:
		return fmt.Sprintf("%s %s", e.Operation, e.Name)
	case EditInsertCompartment:
		return fmt.Sprintf("%s %d %s", e.Operation, e.Compartment, e.Identifier)
	case EditRemoveCompartment:
		return fmt.Sprintf("%s %d", e.Operation, e.Compartment)
	case EditSwapCompartments:
		return fmt.Sprintf("%s %d %d", e.Operation, e.Compartment, e.Other)
	case EditSetModule, EditSetEquipment:
		return fmt.Sprintf("%s %d %d %s", e.Operation, e.Compartment, e.Slot, e.Identifier)
	case EditClearModule, EditClearEquipment:
		return fmt.Sprintf("%s %d %d", e.Operation, e.Compartment, e.Slot)
	case EditLoadCargo:
		return fmt.Sprintf("%s %s %g", e.Operation, e.Identifier, e.Mass)
	case EditSetPropellant:
		return fmt.Sprintf("%s %g", e.Operation, e.Mass)
	case EditSetCrew:
		return fmt.Sprintf("%s %d", e.Operation, e.Count)
	default:
		return string(e.Operation)
	}
}

// ParseEdit reads an edit such as "set-module 0 1 refinery" or "load-cargo ore 40"
func ParseEdit(value string) (Edit, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return Edit{}, fmt.Errorf("empty edit")
	}

	edit := Edit{Operation: EditOperation(fields[0])}
	args := fields[1:]

	expect := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("edit %q expects %d arguments, got %d", fields[0], n, len(args))
		}
		return nil
	}
	atoi := func(i int) (int, error) {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return 0, fmt.Errorf("edit %q: argument %d is not an integer: %w", fields[0], i+1, err)
		}
		return v, nil
	}
	atof := func(i int) (float64, error) {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return 0, fmt.Errorf("edit %q: argument %d is not a number: %w", fields[0], i+1, err)
		}
		return v, nil
	}

	var err error
	switch edit.Operation {
	case EditRename:
		if len(args) == 0 {
			return Edit{}, fmt.Errorf("edit %q expects a name", fields[0])
		}
		edit.Name = strings.Join(args, " ")
	case EditInsertCompartment:
		if err = expect(2); err != nil {
			return Edit{}, err
		}
		if edit.Compartment, err = atoi(0); err != nil {
			return Edit{}, err
		}
		edit.Identifier = args[1]
	case EditRemoveCompartment:
		if err = expect(1); err != nil {
			return Edit{}, err
		}
		if edit.Compartment, err = atoi(0); err != nil {
			return Edit{}, err
		}
	case EditSwapCompartments:
		if err = expect(2); err != nil {
			return Edit{}, err
		}
		if edit.Compartment, err = atoi(0); err != nil {
			return Edit{}, err
		}
		if edit.Other, err = atoi(1); err != nil {
			return Edit{}, err
		}
	case EditSetModule, EditSetEquipment:
		if err = expect(3); err != nil {
			return Edit{}, err
		}
		if edit.Compartment, err = atoi(0); err != nil {
			return Edit{}, err
		}
		if edit.Slot, err = atoi(1); err != nil {
			return Edit{}, err
		}
		edit.Identifier = args[2]
	case EditClearModule, EditClearEquipment:
		if err = expect(2); err != nil {
			return Edit{}, err
		}
		if edit.Compartment, err = atoi(0); err != nil {
			return Edit{}, err
		}
		if edit.Slot, err = atoi(1); err != nil {
			return Edit{}, err
		}
	case EditLoadCargo:
		if err = expect(2); err != nil {
			return Edit{}, err
		}
		edit.Identifier = args[0]
		if edit.Mass, err = atof(1); err != nil {
			return Edit{}, err
		}
	case EditSetPropellant:
		if err = expect(1); err != nil {
			return Edit{}, err
		}
		if edit.Mass, err = atof(0); err != nil {
			return Edit{}, err
		}
	case EditSetCrew:
		if err = expect(1); err != nil {
			return Edit{}, err
		}
		if edit.Count, err = atoi(0); err != nil {
			return Edit{}, err
		}
	default:
		return Edit{}, fmt.Errorf("unknown edit operation %q", fields[0])
	}

	return edit, nil
}

// ParseEdits parses every edit, stopping at the first error
func ParseEdits(values []string) ([]Edit, error) {
	edits := make([]Edit, 0, len(values))
	for _, value := range values {
		edit, err := ParseEdit(value)
		if err != nil {
			return nil, err
		}
		edits = append(edits, edit)
	}
	return edits, nil
}

// ApplyEdits plays the edits on the assembly in order, resolving catalog
// identifiers. The first failing edit aborts with its position.
func ApplyEdits(assembly *spacecraft.Assembly, cat *catalog.Catalog, edits []Edit) error {
	for i, edit := range edits {
		if err := applyEdit(assembly, cat, edit); err != nil {
			return fmt.Errorf("edit %d (%s): %w", i+1, edit, err)
		}
	}
	return nil
}

func applyEdit(assembly *spacecraft.Assembly, cat *catalog.Catalog, edit Edit) error {
	switch edit.Operation {
	case EditRename:
		return assembly.Rename(edit.Name)
	case EditInsertCompartment:
		description, err := cat.Compartment(edit.Identifier)
		if err != nil {
			return err
		}
		return assembly.InsertCompartment(edit.Compartment, description)
	case EditRemoveCompartment:
		return assembly.RemoveCompartment(edit.Compartment)
	case EditSwapCompartments:
		return assembly.SwapCompartments(edit.Compartment, edit.Other)
	case EditSetModule:
		module, err := cat.Module(edit.Identifier)
		if err != nil {
			return err
		}
		return assembly.SetModule(edit.Compartment, edit.Slot, module)
	case EditClearModule:
		return assembly.SetModule(edit.Compartment, edit.Slot, nil)
	case EditSetEquipment:
		equipment, err := cat.Equipment(edit.Identifier)
		if err != nil {
			return err
		}
		return assembly.SetEquipment(edit.Compartment, edit.Slot, equipment)
	case EditClearEquipment:
		return assembly.SetEquipment(edit.Compartment, edit.Slot, nil)
	case EditLoadCargo:
		resource, err := cat.Resource(edit.Identifier)
		if err != nil {
			return err
		}
		_, err = assembly.LoadCargo(resource, edit.Mass, spacecraft.AnyCompartment, spacecraft.AnyCompartment)
		return err
	case EditSetPropellant:
		return assembly.SetPropellant(edit.Mass)
	case EditSetCrew:
		return assembly.SetCrew(edit.Count)
	default:
		return fmt.Errorf("unknown edit operation %q", edit.Operation)
	}
}
