package spacecraft_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
	"github.com/strangergwenn/AstralShipwright-sub002/test/helpers"
)

func newAssembly(base *spacecraft.Spacecraft) *spacecraft.Assembly {
	return spacecraft.NewAssembly(base, shared.NewMockClock(shared.SimulationEpoch))
}

func TestAssembly_EditsStayOnWorkingCopyUntilCommit(t *testing.T) {
	// Arrange
	f := helpers.NewCatalogFixture()
	base := helpers.NewSpacecraftBuilder("Draft").Build()
	assembly := newAssembly(base)

	// Act
	require.NoError(t, assembly.InsertCompartment(0, f.Hull))
	require.NoError(t, assembly.SetModule(0, helpers.SlotLeft, f.Tank))
	require.NoError(t, assembly.SetEquipment(0, helpers.EquipAft, f.Engine))
	require.NoError(t, assembly.Rename("Final"))
	committed, err := assembly.Commit()

	// Assert
	require.NoError(t, err)
	assert.Empty(t, base.Compartments)
	assert.Equal(t, "Draft", base.Name)
	assert.Equal(t, "Final", committed.Name)
	assert.Equal(t, base.Identifier, committed.Identifier)
	require.Len(t, committed.Compartments, 1)
	assert.Same(t, f.Tank, committed.Module(0, helpers.SlotLeft))
	assert.InDelta(t, 400.0, committed.PropulsionMetrics().PropellantMassCapacity, 1e-9)
}

func TestAssembly_RejectsEditsWhileReconfiguring(t *testing.T) {
	// Arrange
	f := helpers.NewCatalogFixture()
	assembly := newAssembly(f.ValidSpacecraft("Busy").Build())
	require.NoError(t, assembly.State().BeginReconfiguration())

	// Act
	err := assembly.SetModule(0, helpers.SlotCenter, f.CargoBulk)

	// Assert
	var busy *shared.AssemblyBusyError
	require.True(t, errors.As(err, &busy))
	assert.Same(t, f.Habitat, assembly.Spacecraft().Module(0, helpers.SlotCenter))

	_, err = assembly.Commit()
	assert.True(t, errors.As(err, &busy))

	require.NoError(t, assembly.State().CompleteReconfiguration())
	assert.NoError(t, assembly.SetModule(0, helpers.SlotCenter, f.CargoBulk))
}

func TestAssembly_SetEquipmentChecksSlotType(t *testing.T) {
	f := helpers.NewCatalogFixture()
	assembly := newAssembly(f.ValidSpacecraft("Tug").Build())

	err := assembly.SetEquipment(0, helpers.EquipTop, f.Engine)

	var slotErr *shared.InvalidSlotError
	require.True(t, errors.As(err, &slotErr))
	assert.Equal(t, helpers.EquipTop, slotErr.Slot)
}

func TestAssembly_SetModuleDiscardsCargo(t *testing.T) {
	f := helpers.NewCatalogFixture()
	base := helpers.NewSpacecraftBuilder("Hauler").
		Compartment(f.Hull).
		Module(0, helpers.SlotCenter, f.CargoBulk).
		Cargo(0, helpers.SlotCenter, f.Ore, 40).
		Build()
	assembly := newAssembly(base)

	require.NoError(t, assembly.SetModule(0, helpers.SlotCenter, f.CargoGeneral))

	assert.True(t, assembly.Spacecraft().Compartments[0].Cargo(helpers.SlotCenter).IsEmpty())
	assert.InDelta(t, 40.0, base.Compartments[0].Cargo(helpers.SlotCenter).Amount, 1e-9)
}

func TestAssembly_CompartmentLimits(t *testing.T) {
	f := helpers.NewCatalogFixture()
	assembly := newAssembly(helpers.NewSpacecraftBuilder("Long").Build())

	for i := 0; i < spacecraft.MaxCompartmentCount; i++ {
		require.NoError(t, assembly.InsertCompartment(i, f.Hull))
	}

	assert.Error(t, assembly.InsertCompartment(0, f.Hull))
	assert.Error(t, assembly.RemoveCompartment(spacecraft.MaxCompartmentCount))
	assert.Error(t, assembly.SetModule(0, 4, f.Tank))
}

func TestAssembly_SwapCompartmentsRegroups(t *testing.T) {
	f := helpers.NewCatalogFixture()
	base := helpers.NewSpacecraftBuilder("Swap").
		Compartment(f.Hull).Compartment(f.Hull).Compartment(f.Hull).
		Module(0, helpers.SlotCenter, f.CargoBulk).
		Module(1, helpers.SlotCenter, f.Tank).
		Module(2, helpers.SlotCenter, f.CargoBulk).
		Build()
	require.Len(t, base.ModuleGroups(), 3)
	assembly := newAssembly(base)

	require.NoError(t, assembly.SwapCompartments(1, 2))

	assert.Len(t, assembly.Spacecraft().ModuleGroups(), 2)
}

func TestAssembly_LoadCargoPropellantAndCrew(t *testing.T) {
	// Arrange
	f := helpers.NewCatalogFixture()
	sc := helpers.NewSpacecraftBuilder("Hauler").
		Compartment(f.Hull).
		Module(0, helpers.SlotLeft, f.CargoBulk).
		Module(0, helpers.SlotCenter, f.Habitat).
		Module(0, helpers.SlotRight, f.Tank).
		Build()
	assembly := newAssembly(sc)

	// Act
	applied, err := assembly.LoadCargo(f.Ore, 150, spacecraft.AnyCompartment, spacecraft.AnyCompartment)
	require.NoError(t, err)
	_, refused := assembly.LoadCargo(f.Water, 10, spacecraft.AnyCompartment, spacecraft.AnyCompartment)
	require.NoError(t, assembly.SetPropellant(1000))
	require.NoError(t, assembly.SetCrew(9))

	// Assert
	working := assembly.Spacecraft()
	assert.InDelta(t, 100, applied, 1e-9)
	assert.Error(t, refused)
	assert.InDelta(t, 400, working.PropellantMassAtLaunch, 1e-9)
	assert.Equal(t, 4, working.CrewCount)
}
