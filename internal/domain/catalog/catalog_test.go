package catalog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
	"github.com/strangergwenn/AstralShipwright-sub002/test/helpers"
)

func TestCatalog_LookupAndSortedLists(t *testing.T) {
	// Arrange
	fixture := helpers.NewCatalogFixture()

	// Act
	ore, err := fixture.Catalog.Resource("ore")

	// Assert
	require.NoError(t, err)
	assert.Same(t, fixture.Ore, ore)

	ids := catalog.ResourceSet(fixture.Catalog.Resources()).Identifiers()
	assert.Equal(t, []string{"ice", "metal", "ore", "oxygen", "water"}, ids)

	var processing []string
	for _, m := range fixture.Catalog.ProcessingModules() {
		processing = append(processing, m.Identifier)
	}
	assert.Equal(t, []string{"drill", "electrolyser", "refinery", "water-extractor"}, processing)
}

func TestCatalog_UnknownEntryReturnsCatalogError(t *testing.T) {
	fixture := helpers.NewCatalogFixture()

	_, err := fixture.Catalog.Module("warp-drive")

	var catalogErr *shared.CatalogError
	require.True(t, errors.As(err, &catalogErr))
	assert.Equal(t, "warp-drive", catalogErr.Identifier)
}

func TestNew_RejectsDuplicateIdentifiersAcrossKinds(t *testing.T) {
	// Arrange
	resource := &catalog.Resource{Identifier: "tank"}
	module := &catalog.ModuleDescription{
		Identifier: "tank",
		Kind:       catalog.ModuleKindPropellant,
		Propellant: &catalog.PropellantModule{PropellantMass: 10},
	}

	// Act
	_, err := catalog.New([]*catalog.Resource{resource}, []*catalog.ModuleDescription{module}, nil, nil)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate identifier")
}

func TestNew_RejectsInvalidProcessingModules(t *testing.T) {
	water := &catalog.Resource{Identifier: "water", Type: catalog.ResourceTypeLiquid}

	tests := []struct {
		name       string
		processing *catalog.ProcessingModule
		message    string
	}{
		{
			name:       "missing payload",
			processing: nil,
			message:    "without processing payload",
		},
		{
			name:       "zero rate",
			processing: &catalog.ProcessingModule{Outputs: catalog.ResourceSet{water}},
			message:    "processing rate must be positive",
		},
		{
			name: "input is also output",
			processing: &catalog.ProcessingModule{
				Inputs:         catalog.ResourceSet{water},
				Outputs:        catalog.ResourceSet{water},
				ProcessingRate: 1,
			},
			message: "both input and output",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			module := &catalog.ModuleDescription{
				Identifier: "broken",
				Kind:       catalog.ModuleKindProcessing,
				Processing: tt.processing,
			}

			_, err := catalog.New([]*catalog.Resource{water}, []*catalog.ModuleDescription{module}, nil, nil)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestNew_RejectsTooManySlots(t *testing.T) {
	slots := make([]catalog.ModuleSlot, catalog.MaxModuleCount+1)
	for i := range slots {
		slots[i] = catalog.ModuleSlot{Name: "slot", SocketName: "socket"}
	}
	compartment := &catalog.CompartmentDescription{Identifier: "huge", ModuleSlots: slots}

	_, err := catalog.New(nil, nil, nil, []*catalog.CompartmentDescription{compartment})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "module slots exceed")
}

func TestNew_RejectsEquipmentWithoutPayload(t *testing.T) {
	engine := &catalog.EquipmentDescription{Identifier: "engine", Kind: catalog.EquipmentKindEngine}

	_, err := catalog.New(nil, nil, []*catalog.EquipmentDescription{engine}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine equipment without engine payload")
}

func TestResourceSet_Operations(t *testing.T) {
	fixture := helpers.NewCatalogFixture()
	a := catalog.ResourceSet{fixture.Ore, fixture.Water}
	b := catalog.ResourceSet{fixture.Water, fixture.Oxygen}

	assert.True(t, a.Intersects(b))
	assert.Equal(t, []string{"ore", "water", "oxygen"}, a.Union(b).Identifiers())
	assert.Equal(t, []string{"ore"}, a.Without(b).Identifiers())
	assert.False(t, a.Contains(fixture.Metal))
}

func TestModuleDescription_NilSafeAccessors(t *testing.T) {
	fixture := helpers.NewCatalogFixture()
	var empty *catalog.ModuleDescription

	assert.Zero(t, empty.CargoMass())
	assert.Zero(t, empty.PropellantMass())
	assert.False(t, empty.IsProcessing())
	assert.False(t, empty.Accepts(fixture.Ore))

	assert.True(t, fixture.CargoBulk.Accepts(fixture.Ore))
	assert.False(t, fixture.CargoBulk.Accepts(fixture.Water))
	assert.Equal(t, 2, fixture.Refinery.AttendanceCrew())
	assert.Equal(t, 0, fixture.Habitat.AttendanceCrew())
}

func TestEquipmentSlot_Supports(t *testing.T) {
	fixture := helpers.NewCatalogFixture()
	aft := fixture.Hull.EquipmentSlots[helpers.EquipAft]
	top := fixture.Hull.EquipmentSlots[helpers.EquipTop]

	assert.True(t, aft.Supports(fixture.Engine))
	assert.False(t, top.Supports(fixture.Engine))
	assert.True(t, top.Supports(fixture.SolarPanel))
	assert.True(t, top.Supports(nil))
}

func TestParseResourceType(t *testing.T) {
	value, err := catalog.ParseResourceType("")
	require.NoError(t, err)
	assert.Equal(t, catalog.ResourceTypeBulk, value)

	value, err = catalog.ParseResourceType("liquid")
	require.NoError(t, err)
	assert.Equal(t, catalog.ResourceTypeLiquid, value)

	_, err = catalog.ParseResourceType("plasma")
	assert.Error(t, err)
}
