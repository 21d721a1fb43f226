package spacecraft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
	"github.com/strangergwenn/AstralShipwright-sub002/test/helpers"
)

func cargoSpacecraft(f *helpers.CatalogFixture) *spacecraft.Spacecraft {
	return helpers.NewSpacecraftBuilder("Hauler").
		Compartment(f.HullWide).
		Module(0, helpers.SlotLeft, f.CargoBulk).
		Module(0, helpers.SlotCenter, f.CargoLiquid).
		Module(0, helpers.SlotRight, f.CargoBulk).
		Build()
}

func TestModifyCargo_SpreadsOverCompatibleSlots(t *testing.T) {
	// Arrange
	f := helpers.NewCatalogFixture()
	sc := cargoSpacecraft(f)

	// Act
	applied := sc.ModifyCargo(f.Ore, 150, spacecraft.AnyCompartment, spacecraft.AnyCompartment)

	// Assert
	assert.True(t, applied)
	assert.InDelta(t, 150.0, sc.CargoMass(f.Ore, spacecraft.AnyCompartment, spacecraft.AnyCompartment), 1e-9)
	assert.InDelta(t, 100.0, sc.Compartments[0].Cargo(helpers.SlotLeft).Amount, 1e-9)
	assert.True(t, sc.Compartments[0].Cargo(helpers.SlotCenter).IsEmpty())
	assert.InDelta(t, 50.0, sc.Compartments[0].Cargo(helpers.SlotRight).Amount, 1e-9)
	assert.InDelta(t, 50.0, sc.AvailableCargoMass(f.Ore, spacecraft.AnyCompartment, spacecraft.AnyCompartment), 1e-9)
	assert.InDelta(t, 300.0, sc.CargoCapacity(spacecraft.AnyCompartment, spacecraft.AnyCompartment), 1e-9)
}

func TestModifyCargo_RemovalEmptiesSlots(t *testing.T) {
	f := helpers.NewCatalogFixture()
	sc := cargoSpacecraft(f)
	sc.ModifyCargo(f.Ore, 150, spacecraft.AnyCompartment, spacecraft.AnyCompartment)

	applied := sc.ModifyCargo(f.Ore, -120, spacecraft.AnyCompartment, spacecraft.AnyCompartment)

	assert.True(t, applied)
	assert.True(t, sc.Compartments[0].Cargo(helpers.SlotLeft).IsEmpty())
	assert.Zero(t, sc.Compartments[0].Cargo(helpers.SlotLeft).Amount)
	assert.InDelta(t, 30.0, sc.Compartments[0].Cargo(helpers.SlotRight).Amount, 1e-9)
}

func TestModifyCargo_PartialWhenCapacityRunsOut(t *testing.T) {
	f := helpers.NewCatalogFixture()
	sc := cargoSpacecraft(f)

	applied := sc.ModifyCargo(f.Water, 500, 0, helpers.SlotCenter)

	assert.False(t, applied)
	assert.InDelta(t, 100.0, sc.CargoMass(f.Water, 0, helpers.SlotCenter), 1e-9)
}

func TestModifyCargo_RefusesMixingResources(t *testing.T) {
	f := helpers.NewCatalogFixture()
	sc := cargoSpacecraft(f)
	sc.ModifyCargo(f.Ore, 10, 0, helpers.SlotLeft)

	applied := sc.ModifyCargo(f.Ice, 10, 0, helpers.SlotLeft)

	assert.False(t, applied)
	assert.Equal(t, catalog.ResourceSet{f.Ore}, sc.OwnedResources())
}

func TestCompartment_ThresholdClearsNearlyEmptySlot(t *testing.T) {
	f := helpers.NewCatalogFixture()
	sc := cargoSpacecraft(f)
	compartment := &sc.Compartments[0]
	compartment.ModifyCargo(helpers.SlotLeft, f.Ore, 30)

	applied := compartment.ModifyCargo(helpers.SlotLeft, f.Ore, -29.995)

	assert.InDelta(t, -30.0, applied, 1e-9)
	assert.True(t, compartment.Cargo(helpers.SlotLeft).IsEmpty())
	assert.Zero(t, compartment.Cargo(helpers.SlotLeft).Amount)
}

func TestCompartment_ModifyCargoKeepsOtherResource(t *testing.T) {
	// Arrange
	f := helpers.NewCatalogFixture()
	sc := cargoSpacecraft(f)
	compartment := &sc.Compartments[0]
	compartment.ModifyCargo(helpers.SlotLeft, f.Ore, 40)

	// Act
	added := compartment.ModifyCargo(helpers.SlotLeft, f.Ice, 10)
	removed := compartment.ModifyCargo(helpers.SlotLeft, f.Ice, -10)

	// Assert
	assert.Zero(t, added)
	assert.Zero(t, removed)
	assert.Same(t, f.Ore, compartment.Cargo(helpers.SlotLeft).Resource)
	assert.InDelta(t, 40.0, compartment.Cargo(helpers.SlotLeft).Amount, 1e-9)
}

func TestCompartment_CanModifyCargoRules(t *testing.T) {
	f := helpers.NewCatalogFixture()
	sc := cargoSpacecraft(f)
	compartment := &sc.Compartments[0]

	assert.False(t, compartment.CanModifyCargo(helpers.SlotLeft, f.Ore, 0))
	assert.False(t, compartment.CanModifyCargo(helpers.SlotLeft, nil, 5))
	assert.False(t, compartment.CanModifyCargo(helpers.SlotLeft, f.Ore, -5))
	assert.False(t, compartment.CanModifyCargo(helpers.SlotLeft, f.Water, 5))
	assert.True(t, compartment.CanModifyCargo(helpers.SlotLeft, f.Ore, 5))
}

func TestClearCargo(t *testing.T) {
	f := helpers.NewCatalogFixture()
	sc := cargoSpacecraft(f)
	sc.ModifyCargo(f.Ore, 150, spacecraft.AnyCompartment, spacecraft.AnyCompartment)

	sc.ClearCargo()

	assert.Empty(t, sc.OwnedResources())
	assert.Zero(t, sc.CargoMass(f.Ore, spacecraft.AnyCompartment, spacecraft.AnyCompartment))
}
