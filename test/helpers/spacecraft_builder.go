package helpers

import (
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
)

// SpacecraftBuilder assembles spacecraft directly, without the idle gate of
// an assembly
type SpacecraftBuilder struct {
	sc *spacecraft.Spacecraft
}

func NewSpacecraftBuilder(name string) *SpacecraftBuilder {
	return &SpacecraftBuilder{sc: spacecraft.New(name)}
}

// Compartment appends a compartment
func (b *SpacecraftBuilder) Compartment(description *catalog.CompartmentDescription) *SpacecraftBuilder {
	b.sc.Compartments = append(b.sc.Compartments, spacecraft.NewCompartment(description))
	return b
}

func (b *SpacecraftBuilder) Module(compartmentIndex, moduleIndex int, module *catalog.ModuleDescription) *SpacecraftBuilder {
	b.sc.Compartments[compartmentIndex].Modules[moduleIndex].Description = module
	return b
}

func (b *SpacecraftBuilder) Equipment(compartmentIndex, equipmentIndex int, equipment *catalog.EquipmentDescription) *SpacecraftBuilder {
	b.sc.Compartments[compartmentIndex].Equipment[equipmentIndex] = equipment
	return b
}

// Cargo preloads a slot, bypassing capacity checks
func (b *SpacecraftBuilder) Cargo(compartmentIndex, moduleIndex int, resource *catalog.Resource, amount float64) *SpacecraftBuilder {
	b.sc.Compartments[compartmentIndex].Modules[moduleIndex].Cargo = spacecraft.Cargo{Resource: resource, Amount: amount}
	return b
}

func (b *SpacecraftBuilder) Crew(count int) *SpacecraftBuilder {
	b.sc.CrewCount = count
	return b
}

func (b *SpacecraftBuilder) Propellant(mass float64) *SpacecraftBuilder {
	b.sc.PropellantMassAtLaunch = mass
	return b
}

// Build computes derived data and returns the spacecraft
func (b *SpacecraftBuilder) Build() *spacecraft.Spacecraft {
	b.sc.UpdateDerived()
	return b.sc
}

// ValidSpacecraft returns a single-compartment design that passes validation:
// tanks on both sides, a habitat in the middle behind a hatch, paired
// thrusters and an engine
func (f *CatalogFixture) ValidSpacecraft(name string) *SpacecraftBuilder {
	return NewSpacecraftBuilder(name).
		Compartment(f.Hull).
		Module(0, SlotLeft, f.Tank).
		Module(0, SlotCenter, f.Habitat).
		Module(0, SlotRight, f.Tank).
		Equipment(0, EquipLeft, f.Thruster).
		Equipment(0, EquipRight, f.Thruster).
		Equipment(0, EquipTop, f.Hatch).
		Equipment(0, EquipAft, f.Engine)
}

// PoweredRefinery is a single-group refinery turning ore from the center
// hold into metal in the right hold, with a generator (30 kW) and an airlock
// housing its two operators
func (f *CatalogFixture) PoweredRefinery(name string, ore float64) *SpacecraftBuilder {
	return NewSpacecraftBuilder(name).
		Compartment(f.HullWide).
		Module(0, SlotLeft, f.Refinery).
		Module(0, SlotCenter, f.CargoBulk).
		Module(0, SlotRight, f.CargoGeneral).
		Equipment(0, EquipTop, f.Hatch).
		Equipment(0, EquipLeft, f.Generator).
		Equipment(0, EquipRight, f.HabitatHatch).
		Cargo(0, SlotCenter, f.Ore, ore).
		Crew(2)
}
