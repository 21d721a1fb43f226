package spacecraft

import (
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/pkg/utils"
)

// Compartment is a hull segment: a description plus fixed module and
// equipment slot tables. Slot positions carry adjacency semantics.
type Compartment struct {
	Description *catalog.CompartmentDescription
	Modules     [MaxModuleCount]CompartmentModule
	Equipment   [MaxEquipmentCount]*catalog.EquipmentDescription
}

// NewCompartment creates an empty compartment of the given description
func NewCompartment(description *catalog.CompartmentDescription) Compartment {
	return Compartment{Description: description}
}

// IsValid reports whether the compartment has a description
func (c *Compartment) IsValid() bool {
	return c.Description != nil
}

// Mass returns the dry mass of the compartment and everything mounted in it
func (c *Compartment) Mass() float64 {
	if !c.IsValid() {
		return 0
	}

	mass := c.Description.Mass
	for _, module := range c.Modules {
		if module.Description != nil {
			mass += module.Description.Mass
		}
	}
	for _, equipment := range c.Equipment {
		if equipment != nil {
			mass += equipment.Mass
		}
	}
	return mass
}

// ModuleSlotCount returns the number of module slots the description defines
func (c *Compartment) ModuleSlotCount() int {
	if !c.IsValid() {
		return 0
	}
	return len(c.Description.ModuleSlots)
}

// EquipmentSlotCount returns the number of equipment slots the description defines
func (c *Compartment) EquipmentSlotCount() int {
	if !c.IsValid() {
		return 0
	}
	return len(c.Description.EquipmentSlots)
}

// ModuleBySocket returns the module mounted at the socket, or nil
func (c *Compartment) ModuleBySocket(socketName string) *catalog.ModuleDescription {
	if !c.IsValid() {
		return nil
	}
	index := c.Description.ModuleSlotIndex(socketName)
	if index < 0 {
		return nil
	}
	return c.Modules[index].Description
}

// EquipmentBySocket returns the equipment mounted at the socket, or nil
func (c *Compartment) EquipmentBySocket(socketName string) *catalog.EquipmentDescription {
	if !c.IsValid() {
		return nil
	}
	index := c.Description.EquipmentSlotIndex(socketName)
	if index < 0 {
		return nil
	}
	return c.Equipment[index]
}

// Cargo returns the cargo of a module slot
func (c *Compartment) Cargo(moduleIndex int) Cargo {
	return c.Modules[moduleIndex].Cargo
}

// CargoCapacity returns the mass a module slot can store, 0 unless it holds a cargo module
func (c *Compartment) CargoCapacity(moduleIndex int) float64 {
	return c.Modules[moduleIndex].Description.CargoMass()
}

// AvailableCargoMass returns the free mass in a slot for the resource
func (c *Compartment) AvailableCargoMass(moduleIndex int, resource *catalog.Resource) float64 {
	module := c.Modules[moduleIndex]
	if module.Description == nil {
		return 0
	}
	if module.Cargo.Resource != nil && module.Cargo.Resource != resource {
		return 0
	}
	if module.Cargo.Resource == nil && resource != nil && !module.Description.Accepts(resource) {
		return 0
	}
	return module.Cargo.Headroom(c.CargoCapacity(moduleIndex))
}

// CanModifyCargo reports whether the slot accepts the mass change
func (c *Compartment) CanModifyCargo(moduleIndex int, resource *catalog.Resource, massDelta float64) bool {
	cargo := c.Modules[moduleIndex].Cargo

	switch {
	case massDelta == 0 || resource == nil:
		return false
	case massDelta < 0 && cargo.Resource == nil:
		return false
	case massDelta < 0 && cargo.Resource != resource:
		return false
	case massDelta > 0 && cargo.Resource != nil && cargo.Resource != resource:
		return false
	case massDelta > 0 && cargo.Resource == nil && !c.Modules[moduleIndex].Description.Accepts(resource):
		return false
	default:
		return true
	}
}

// ModifyCargo applies as much of massDelta as the slot bounds allow and
// returns the applied part. Amounts under ResourceQuantityThreshold empty the slot.
// A slot holding another resource is left untouched.
func (c *Compartment) ModifyCargo(moduleIndex int, resource *catalog.Resource, massDelta float64) float64 {
	cargo := &c.Modules[moduleIndex].Cargo
	if resource == nil || (cargo.Resource != nil && cargo.Resource != resource) {
		return 0
	}
	previous := cargo.Amount

	cargo.Amount = utils.Clamp(cargo.Amount+massDelta, 0, c.CargoCapacity(moduleIndex))
	if utils.NearlyZero(cargo.Amount, ResourceQuantityThreshold) {
		cargo.Resource = nil
		cargo.Amount = 0
	} else {
		cargo.Resource = resource
	}

	return cargo.Amount - previous
}

// ClearCargo empties every module slot
func (c *Compartment) ClearCargo() {
	for i := range c.Modules {
		c.Modules[i].Cargo = Cargo{}
	}
}
