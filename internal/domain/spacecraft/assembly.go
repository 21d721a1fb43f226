package spacecraft

import (
	"fmt"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
)

// Assembly edits a detached working copy of a spacecraft. Edits are only
// accepted while the assembly state machine is idle, and reach the
// authoritative spacecraft only through Commit.
type Assembly struct {
	working *Spacecraft
	state   *shared.AssemblyStateMachine
}

// NewAssembly starts editing a copy of the spacecraft
func NewAssembly(base *Spacecraft, clock shared.Clock) *Assembly {
	working := base.Clone()
	working.UpdateDerived()
	return &Assembly{
		working: working,
		state:   shared.NewAssemblyStateMachine(clock),
	}
}

// State exposes the assembly state machine, driven by whoever plays the
// reconfiguration
func (a *Assembly) State() *shared.AssemblyStateMachine {
	return a.state
}

// Spacecraft returns the working copy for read access
func (a *Assembly) Spacecraft() *Spacecraft {
	return a.working
}

// Commit returns a copy of the working spacecraft for the authoritative state
func (a *Assembly) Commit() (*Spacecraft, error) {
	if err := a.state.RequireIdle(); err != nil {
		return nil, err
	}
	committed := a.working.Clone()
	committed.UpdateDerived()
	return committed, nil
}

// Rename changes the spacecraft name
func (a *Assembly) Rename(name string) error {
	return a.edit(func(sc *Spacecraft) error {
		sc.Name = name
		return nil
	})
}

// InsertCompartment inserts an empty compartment at index
func (a *Assembly) InsertCompartment(index int, description *catalog.CompartmentDescription) error {
	return a.edit(func(sc *Spacecraft) error {
		if description == nil {
			return shared.NewValidationError("compartment", "description is required")
		}
		if len(sc.Compartments) >= MaxCompartmentCount {
			return shared.NewSpacecraftError(fmt.Sprintf("a spacecraft holds at most %d compartments", MaxCompartmentCount))
		}
		if index < 0 || index > len(sc.Compartments) {
			return shared.NewValidationError("index", fmt.Sprintf("compartment index %d out of range", index))
		}

		sc.Compartments = append(sc.Compartments, Compartment{})
		copy(sc.Compartments[index+1:], sc.Compartments[index:])
		sc.Compartments[index] = NewCompartment(description)
		return nil
	})
}

// RemoveCompartment removes the compartment at index with its content
func (a *Assembly) RemoveCompartment(index int) error {
	return a.edit(func(sc *Spacecraft) error {
		if index < 0 || index >= len(sc.Compartments) {
			return shared.NewValidationError("index", fmt.Sprintf("compartment index %d out of range", index))
		}
		sc.Compartments = append(sc.Compartments[:index], sc.Compartments[index+1:]...)
		return nil
	})
}

// SwapCompartments exchanges two compartments
func (a *Assembly) SwapCompartments(first, second int) error {
	return a.edit(func(sc *Spacecraft) error {
		if first < 0 || first >= len(sc.Compartments) || second < 0 || second >= len(sc.Compartments) {
			return shared.NewValidationError("index", fmt.Sprintf("cannot swap compartments %d and %d", first, second))
		}
		sc.Compartments[first], sc.Compartments[second] = sc.Compartments[second], sc.Compartments[first]
		return nil
	})
}

// SetModule mounts a module in a slot, nil clears it. The slot cargo is discarded.
func (a *Assembly) SetModule(compartmentIndex, moduleIndex int, module *catalog.ModuleDescription) error {
	return a.edit(func(sc *Spacecraft) error {
		compartment, err := compartmentAt(sc, compartmentIndex)
		if err != nil {
			return err
		}
		if moduleIndex < 0 || moduleIndex >= compartment.ModuleSlotCount() {
			return shared.NewInvalidSlotError(compartmentIndex, moduleIndex, "no such module slot")
		}
		compartment.Modules[moduleIndex] = CompartmentModule{Description: module}
		return nil
	})
}

// SetEquipment mounts equipment in a slot, nil clears it
func (a *Assembly) SetEquipment(compartmentIndex, equipmentIndex int, equipment *catalog.EquipmentDescription) error {
	return a.edit(func(sc *Spacecraft) error {
		compartment, err := compartmentAt(sc, compartmentIndex)
		if err != nil {
			return err
		}
		if equipmentIndex < 0 || equipmentIndex >= compartment.EquipmentSlotCount() {
			return shared.NewInvalidSlotError(compartmentIndex, equipmentIndex, "no such equipment slot")
		}
		slot := compartment.Description.EquipmentSlots[equipmentIndex]
		if !slot.Supports(equipment) {
			return shared.NewInvalidSlotError(compartmentIndex, equipmentIndex,
				fmt.Sprintf("slot %s does not support %s equipment", slot.Name, equipment.Type))
		}
		compartment.Equipment[equipmentIndex] = equipment
		return nil
	})
}

// SetCustomization replaces the cosmetic settings
func (a *Assembly) SetCustomization(customization Customization) error {
	return a.edit(func(sc *Spacecraft) error {
		sc.Customization = customization
		return nil
	})
}

// LoadCargo adds or removes cargo through the spacecraft-level cargo rules and
// returns the applied delta, which may be partial
func (a *Assembly) LoadCargo(resource *catalog.Resource, massDelta float64, compartmentIndex, moduleIndex int) (float64, error) {
	var applied float64
	err := a.edit(func(sc *Spacecraft) error {
		if resource == nil {
			return shared.NewValidationError("resource", "resource is required")
		}
		before := sc.CargoMass(resource, compartmentIndex, moduleIndex)
		sc.ModifyCargo(resource, massDelta, compartmentIndex, moduleIndex)
		applied = sc.CargoMass(resource, compartmentIndex, moduleIndex) - before
		if applied == 0 && massDelta != 0 {
			return shared.NewSpacecraftError(fmt.Sprintf("no cargo slot can take %.2f T of %s", massDelta, resource.Name))
		}
		return nil
	})
	return applied, err
}

// SetPropellant sets the propellant loaded at launch, capped by the tanks
func (a *Assembly) SetPropellant(mass float64) error {
	return a.edit(func(sc *Spacecraft) error {
		if mass < 0 {
			return shared.NewValidationError("propellant", "must not be negative")
		}
		sc.PropellantMassAtLaunch = mass
		return nil
	})
}

// SetCrew sets the crew on board, capped by the crew capacity
func (a *Assembly) SetCrew(count int) error {
	return a.edit(func(sc *Spacecraft) error {
		if count < 0 {
			return shared.NewValidationError("crew", "must not be negative")
		}
		if capacity := sc.CrewCapacity(); count > capacity {
			count = capacity
		}
		sc.CrewCount = count
		return nil
	})
}

func (a *Assembly) edit(fn func(sc *Spacecraft) error) error {
	if err := a.state.RequireIdle(); err != nil {
		return err
	}
	if err := fn(a.working); err != nil {
		return err
	}
	a.working.UpdateDerived()
	return nil
}

func compartmentAt(sc *Spacecraft, index int) (*Compartment, error) {
	if index < 0 || index >= len(sc.Compartments) {
		return nil, shared.NewValidationError("compartment", fmt.Sprintf("compartment index %d out of range", index))
	}
	compartment := &sc.Compartments[index]
	if !compartment.IsValid() {
		return nil, shared.NewValidationError("compartment", fmt.Sprintf("compartment %d has no description", index))
	}
	return compartment, nil
}
