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

func TestValidate_ValidDesign(t *testing.T) {
	f := helpers.NewCatalogFixture()
	sc := f.ValidSpacecraft("Pathfinder").Build()

	valid, message := sc.IsValid()

	assert.True(t, valid)
	assert.Equal(t, spacecraft.ValidDesignMessage, message)
	assert.NoError(t, sc.Validate())
}

func TestValidate_AggregatesEveryIssue(t *testing.T) {
	// Arrange
	sc := helpers.NewSpacecraftBuilder("").Build()

	// Act
	err := sc.Validate()

	// Assert
	var designErr *shared.DesignError
	require.True(t, errors.As(err, &designErr))
	assert.Equal(t, []string{
		"This spacecraft is unnamed",
		"This spacecraft has no engine",
		"This spacecraft has no propellant tank",
		"This spacecraft does not have enough delta-v",
		"This spacecraft has no maneuvering thrusters",
		"This spacecraft doesn't have any habitable space",
	}, designErr.Issues)

	valid, message := sc.IsValid()
	assert.False(t, valid)
	assert.Contains(t, message, "This spacecraft is unnamed\nThis spacecraft has no engine")
}

func TestValidate_UnpairedEquipment(t *testing.T) {
	f := helpers.NewCatalogFixture()
	sc := f.ValidSpacecraft("Lopsided").Equipment(0, helpers.EquipRight, nil).Build()

	err := sc.Validate()

	var designErr *shared.DesignError
	require.True(t, errors.As(err, &designErr))
	assert.Equal(t, []string{
		"Equipment in slot Left of compartment 1 is not correctly paired with symmetrical equipment",
	}, designErr.Issues)
}

func TestValidate_GroupWithoutHatch(t *testing.T) {
	f := helpers.NewCatalogFixture()
	sc := f.ValidSpacecraft("Sealed").Equipment(0, helpers.EquipTop, nil).Build()

	err := sc.Validate()

	var designErr *shared.DesignError
	require.True(t, errors.As(err, &designErr))
	assert.Equal(t, []string{"1 module group (2) doesn't have a hatch attached"}, designErr.Issues)
}

func TestValidate_SeveralGroupsWithoutHatch(t *testing.T) {
	f := helpers.NewCatalogFixture()
	sc := f.ValidSpacecraft("Holds").
		Compartment(f.Hull).
		Module(1, helpers.SlotLeft, f.CargoBulk).
		Module(1, helpers.SlotRight, f.CargoBulk).
		Build()

	err := sc.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 module groups (4, 5) don't have a hatch attached")
}

func TestValidate_MiningRigOutsideCargoGroup(t *testing.T) {
	f := helpers.NewCatalogFixture()
	sc := f.ValidSpacecraft("Prospector").
		Compartment(f.Hull).
		Equipment(1, helpers.EquipTop, f.MiningRig).
		Build()

	err := sc.Validate()

	require.Error(t, err)
	assert.Equal(t, "Mining rigs require attachment to a cargo/crew module group", err.Error())
}

func TestValidate_MiningRigOnExtendedHabitatGroup(t *testing.T) {
	f := helpers.NewCatalogFixture()
	sc := f.ValidSpacecraft("Prospector").
		Compartment(f.HullWide).
		Module(1, helpers.SlotCenter, f.CargoBulk).
		Equipment(1, helpers.EquipTop, f.MiningRig).
		Build()

	err := sc.Validate()

	assert.NoError(t, err)
	require.NotNil(t, sc.FindModuleGroup(1, helpers.SlotCenter))
	assert.Same(t, sc.FindModuleGroup(0, helpers.SlotCenter), sc.FindModuleGroup(1, helpers.SlotCenter))
}

func TestValidate_HabitatHatchCountsAsHabitableSpace(t *testing.T) {
	f := helpers.NewCatalogFixture()
	sc := f.ValidSpacecraft("Capsule").
		Module(0, helpers.SlotCenter, f.CargoBulk).
		Equipment(0, helpers.EquipTop, f.HabitatHatch).
		Build()

	assert.NoError(t, sc.Validate())
	assert.Equal(t, 2, sc.CrewCapacity())
}
