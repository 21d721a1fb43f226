package spacecraft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
	"github.com/strangergwenn/AstralShipwright-sub002/test/helpers"
)

func TestModuleGroups_ExtendAcrossAdjacentCompartments(t *testing.T) {
	// Arrange
	f := helpers.NewCatalogFixture()
	sc := helpers.NewSpacecraftBuilder("Hauler").
		Compartment(f.Hull).Compartment(f.Hull).Compartment(f.Hull).
		Module(0, helpers.SlotCenter, f.CargoBulk).
		Module(1, helpers.SlotCenter, f.CargoBulk).
		Module(2, helpers.SlotCenter, f.CargoBulk).
		Equipment(1, helpers.EquipTop, f.Hatch).
		Build()

	// Act
	groups := sc.ModuleGroups()

	// Assert
	require.Len(t, groups, 1)
	assert.Equal(t, spacecraft.ModuleGroupTypeHatch, groups[0].Type)
	assert.True(t, groups[0].HasHatch)
	assert.Equal(t, []spacecraft.ModuleIndices{
		{CompartmentIndex: 0, ModuleIndex: helpers.SlotCenter},
		{CompartmentIndex: 1, ModuleIndex: helpers.SlotCenter},
		{CompartmentIndex: 2, ModuleIndex: helpers.SlotCenter},
	}, groups[0].Modules())
}

func TestModuleGroups_DifferentTypesStartNewGroups(t *testing.T) {
	f := helpers.NewCatalogFixture()
	sc := helpers.NewSpacecraftBuilder("Mixed").
		Compartment(f.Hull).Compartment(f.Hull).
		Module(0, helpers.SlotCenter, f.Tank).
		Module(1, helpers.SlotCenter, f.CargoBulk).
		Build()

	groups := sc.ModuleGroups()

	require.Len(t, groups, 2)
	assert.Equal(t, spacecraft.ModuleGroupTypePropellant, groups[0].Type)
	assert.Equal(t, spacecraft.ModuleGroupTypeHatch, groups[1].Type)
	assert.False(t, groups[1].HasHatch)
	assert.Same(t, &sc.ModuleGroups()[1], sc.FindModuleGroup(1, helpers.SlotCenter))
}

func TestModuleGroups_AdjacencyIsKeyedBySocketName(t *testing.T) {
	// Arrange: the second hull lists its slots in reverse order
	f := helpers.NewCatalogFixture()
	reversed := &catalog.CompartmentDescription{
		Identifier: "hull-reversed",
		Mass:       10,
		ModuleSlots: []catalog.ModuleSlot{
			{Name: "Right", SocketName: "ModuleRight"},
			{Name: "Center", SocketName: "ModuleCenter"},
			{Name: "Left", SocketName: "ModuleLeft"},
		},
	}
	sc := helpers.NewSpacecraftBuilder("Reversed").
		Compartment(f.Hull).Compartment(reversed).
		Module(0, helpers.SlotLeft, f.CargoBulk).
		Module(1, 2, f.CargoBulk).
		Module(1, 0, f.CargoBulk).
		Build()

	// Act
	groups := sc.ModuleGroups()

	// Assert
	require.Len(t, groups, 2)
	assert.True(t, groups[0].Contains(0, helpers.SlotLeft))
	assert.True(t, groups[0].Contains(1, 2))
	assert.True(t, groups[1].Contains(1, 0))
}

func TestModuleGroups_MergeSidewaysThroughSharedEquipment(t *testing.T) {
	f := helpers.NewCatalogFixture()
	sc := helpers.NewSpacecraftBuilder("Refinery").
		Compartment(f.HullWide).
		Module(0, helpers.SlotLeft, f.CargoBulk).
		Module(0, helpers.SlotCenter, f.Refinery).
		Module(0, helpers.SlotRight, f.CargoGeneral).
		Equipment(0, helpers.EquipTop, f.Hatch).
		Build()

	groups := sc.ModuleGroups()

	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Modules(), 3)
	assert.True(t, groups[0].HasHatch)
	assert.Equal(t, []spacecraft.EquipmentIndices{{CompartmentIndex: 0, EquipmentIndex: helpers.EquipTop}},
		groups[0].LinkedEquipments(sc))
}

func TestModuleGroups_EmptyCompartmentBreaksAdjacency(t *testing.T) {
	f := helpers.NewCatalogFixture()
	sc := helpers.NewSpacecraftBuilder("Gap").
		Compartment(f.Hull).Compartment(nil).Compartment(f.Hull).
		Module(0, helpers.SlotCenter, f.CargoBulk).
		Module(2, helpers.SlotCenter, f.CargoBulk).
		Build()

	assert.Len(t, sc.ModuleGroups(), 2)
}
