package processing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/processing"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
	"github.com/strangergwenn/AstralShipwright-sub002/test/helpers"
)

// refinerySpacecraft has one group: a refinery turning ore from the center
// hold into metal stored in the right hold
func refinerySpacecraft(f *helpers.CatalogFixture, ore float64) *spacecraft.Spacecraft {
	return helpers.NewSpacecraftBuilder("Smelter").
		Compartment(f.HullWide).
		Module(0, helpers.SlotLeft, f.Refinery).
		Module(0, helpers.SlotCenter, f.CargoBulk).
		Module(0, helpers.SlotRight, f.CargoGeneral).
		Equipment(0, helpers.EquipTop, f.Hatch).
		Cargo(0, helpers.SlotCenter, f.Ore, ore).
		Build()
}

type harness struct {
	fixture *helpers.CatalogFixture
	sc      *spacecraft.Spacecraft
	env     *helpers.FakeEnvironment
	energy  *helpers.FakeEnergy
	crew    *helpers.FakeCrew
	system  *processing.System
	now     time.Time
}

func newHarness(t *testing.T, ore float64) *harness {
	t.Helper()
	f := helpers.NewCatalogFixture()
	h := &harness{
		fixture: f,
		sc:      refinerySpacecraft(f, ore),
		env:     &helpers.FakeEnvironment{},
		energy:  &helpers.FakeEnergy{Energy: 100},
		crew:    &helpers.FakeCrew{Crew: 5},
		now:     shared.SimulationEpoch,
	}
	h.system = processing.NewSystem(h.env, h.energy, h.crew, processing.Options{Authority: true, StrictInvariants: true})
	require.NoError(t, h.system.Load(h.sc))
	return h
}

func (h *harness) advance(t *testing.T, d time.Duration) {
	t.Helper()
	next := h.now.Add(d)
	require.NoError(t, h.system.Update(h.now, next))
	h.now = next
}

func (h *harness) activate(t *testing.T) {
	t.Helper()
	require.NoError(t, h.system.SetProcessingGroupActive(context.Background(), 0, true))
}

func TestUpdate_MovesMassAcrossChainBoundary(t *testing.T) {
	// Arrange
	h := newHarness(t, 50)
	h.activate(t)

	// Act
	h.advance(t, 10*time.Second)

	// Assert
	ore := h.system.GetCargo(0, helpers.SlotCenter)
	metal := h.system.GetCargo(0, helpers.SlotRight)
	assert.InDelta(t, 40.0, ore.Amount, 1e-9)
	assert.Same(t, h.fixture.Metal, metal.Resource)
	assert.InDelta(t, 10.0, metal.Amount, 1e-9)
	assert.Equal(t, []processing.Status{processing.StatusProcessing}, h.system.GetProcessingGroupStatus(0))
	assert.InDelta(t, 10.0, h.system.LastTick().ProcessedMass, 1e-9)
	assert.Equal(t, 2, h.system.BusyCrew())
	assert.InDelta(t, 15.0, h.system.ProcessingPower(), 1e-9)
}

func TestUpdate_DeltaCappedByScarceResourceThenBlocked(t *testing.T) {
	// Arrange
	h := newHarness(t, 30)
	h.activate(t)

	// Act
	h.advance(t, 100*time.Second)

	// Assert
	ore := h.system.GetCargo(0, helpers.SlotCenter)
	assert.True(t, ore.IsEmpty())
	assert.Zero(t, ore.Amount)
	assert.InDelta(t, 30.0, h.system.GetCargo(0, helpers.SlotRight).Amount, 1e-9)

	h.advance(t, time.Second)
	assert.Equal(t, []processing.Status{processing.StatusBlocked}, h.system.GetProcessingGroupStatus(0))
}

func TestUpdate_BlockedWhenOutputHasNoRoom(t *testing.T) {
	h := newHarness(t, 80)
	h.activate(t)
	h.advance(t, 60*time.Second)
	require.InDelta(t, 50.0, h.system.GetCargo(0, helpers.SlotRight).Amount, 1e-9)

	h.advance(t, time.Second)

	assert.Equal(t, []processing.Status{processing.StatusBlocked}, h.system.GetProcessingGroupStatus(0))
	assert.InDelta(t, 30.0, h.system.GetCargo(0, helpers.SlotCenter).Amount, 1e-9)
}

func TestUpdate_ConservesMass(t *testing.T) {
	h := newHarness(t, 45)
	h.activate(t)

	for i := 0; i < 20; i++ {
		h.advance(t, 3*time.Second)

		ore := h.system.GetCargo(0, helpers.SlotCenter).Amount
		metal := h.system.GetCargo(0, helpers.SlotRight).Amount
		assert.InDelta(t, 45.0, ore+metal, 1e-9)
	}
}

func TestUpdate_KeepsSlotsWithinBounds(t *testing.T) {
	h := newHarness(t, 100)
	h.activate(t)

	for i := 0; i < 30; i++ {
		h.advance(t, 7*time.Second)

		for mi := 0; mi < spacecraft.MaxModuleCount; mi++ {
			cargo := h.system.GetCargo(0, mi)
			capacity := h.sc.Compartments[0].CargoCapacity(mi)
			assert.GreaterOrEqual(t, cargo.Amount, 0.0)
			assert.LessOrEqual(t, cargo.Amount, capacity)
			assert.Equal(t, cargo.Resource == nil, cargo.Amount == 0)
		}
	}
}

func TestUpdate_EmptyIntervalChangesNothing(t *testing.T) {
	h := newHarness(t, 50)
	h.activate(t)
	h.advance(t, 5*time.Second)
	before := h.system.Snapshot()

	require.NoError(t, h.system.Update(h.now, h.now))
	require.NoError(t, h.system.Update(h.now, h.now.Add(-time.Second)))

	assert.Equal(t, before, h.system.Snapshot())
}

func TestUpdate_IsDeterministic(t *testing.T) {
	first := newHarness(t, 50)
	second := newHarness(t, 50)
	first.activate(t)
	second.activate(t)

	for _, step := range []time.Duration{time.Second, 13 * time.Second, 250 * time.Millisecond, 40 * time.Second} {
		first.advance(t, step)
		second.advance(t, step)
	}

	assert.Equal(t, first.system.Snapshot(), second.system.Snapshot())
}

func TestUpdate_InactiveGroupIsStopped(t *testing.T) {
	h := newHarness(t, 50)

	h.advance(t, 10*time.Second)

	assert.Equal(t, []processing.Status{processing.StatusStopped}, h.system.GetProcessingGroupStatus(0))
	assert.InDelta(t, 50.0, h.system.GetCargo(0, helpers.SlotCenter).Amount, 1e-9)
}

func TestUpdate_PowerLoss(t *testing.T) {
	h := newHarness(t, 50)
	h.activate(t)
	h.energy.Energy = 0

	h.advance(t, 10*time.Second)

	assert.Equal(t, []processing.Status{processing.StatusPowerLoss}, h.system.GetProcessingGroupStatus(0))
	assert.InDelta(t, 50.0, h.system.GetCargo(0, helpers.SlotCenter).Amount, 1e-9)

	h.energy.Energy = 10
	h.advance(t, time.Second)
	assert.Equal(t, []processing.Status{processing.StatusProcessing}, h.system.GetProcessingGroupStatus(0))
}

func TestUpdate_WithoutBatteryChainMustFitInSurplus(t *testing.T) {
	// Arrange
	h := newHarness(t, 50)
	h.activate(t)
	h.energy.NoStorage = true
	h.energy.Surplus = 10

	// Act
	for i := 0; i < 6; i++ {
		h.advance(t, time.Second)

		// Assert
		require.Equal(t, []processing.Status{processing.StatusPowerLoss}, h.system.GetProcessingGroupStatus(0), "tick %d", i)
	}
	assert.True(t, h.system.GetCargo(0, helpers.SlotRight).IsEmpty())
	assert.InDelta(t, 50.0, h.system.GetCargo(0, helpers.SlotCenter).Amount, 1e-9)
	assert.Zero(t, h.system.ProcessingPower())

	h.energy.Surplus = 15
	h.advance(t, time.Second)
	assert.Equal(t, []processing.Status{processing.StatusProcessing}, h.system.GetProcessingGroupStatus(0))
	assert.InDelta(t, 15.0, h.system.ProcessingPower(), 1e-9)
}

func TestUpdate_CrewStaffsWholeGroups(t *testing.T) {
	// Arrange
	f := helpers.NewCatalogFixture()
	sc := helpers.NewSpacecraftBuilder("Plant").
		Compartment(f.HullWide).
		Module(0, helpers.SlotLeft, f.Drill).
		Module(0, helpers.SlotCenter, f.Electrolyser).
		Module(0, helpers.SlotRight, f.CargoBulk).
		Build()
	crew := &helpers.FakeCrew{Crew: 1}
	system := processing.NewSystem(nil, nil, crew, processing.Options{Authority: true, StrictInvariants: true})
	require.NoError(t, system.Load(sc))
	require.NoError(t, system.SetProcessingGroupActive(context.Background(), 0, true))
	require.Equal(t, 2, system.RequiredCrew(0))
	t0 := shared.SimulationEpoch

	// Act
	require.NoError(t, system.Update(t0, t0.Add(time.Second)))

	// Assert
	assert.Equal(t, []processing.Status{processing.StatusBlocked, processing.StatusBlocked}, system.GetProcessingGroupStatus(0))
	assert.Zero(t, system.BusyCrew())
	assert.True(t, system.GetCargo(0, helpers.SlotRight).IsEmpty())

	crew.Crew = 2
	require.NoError(t, system.Update(t0.Add(time.Second), t0.Add(2*time.Second)))
	assert.Equal(t, []processing.Status{processing.StatusProcessing, processing.StatusBlocked}, system.GetProcessingGroupStatus(0))
	assert.Equal(t, 2, system.BusyCrew())
	assert.InDelta(t, 1.0, system.GetCargo(0, helpers.SlotRight).Amount, 1e-9)
}

func TestUpdate_CrewShortageBlocks(t *testing.T) {
	h := newHarness(t, 50)
	h.activate(t)
	h.crew.Crew = 1

	h.advance(t, 10*time.Second)

	assert.Equal(t, []processing.Status{processing.StatusBlocked}, h.system.GetProcessingGroupStatus(0))
	assert.Zero(t, h.system.BusyCrew())
	assert.Equal(t, 2, h.system.RequiredCrew(0))
}

func TestUpdate_DockingOverridesAndSaveHalts(t *testing.T) {
	// Arrange
	h := newHarness(t, 50)
	h.activate(t)
	h.advance(t, 10*time.Second)
	h.crew.Crew = 0
	h.advance(t, time.Second)
	require.Equal(t, []processing.Status{processing.StatusBlocked}, h.system.GetProcessingGroupStatus(0))

	// Act
	h.env.Docked = true
	h.advance(t, 10*time.Second)

	// Assert
	assert.Equal(t, []processing.Status{processing.StatusDocked}, h.system.GetProcessingGroupStatus(0))
	assert.InDelta(t, 40.0, h.system.GetCargo(0, helpers.SlotCenter).Amount, 1e-9)

	require.NoError(t, h.system.Save(h.sc))
	assert.False(t, h.system.IsProcessingGroupActive(0))
	assert.InDelta(t, 40.0, h.sc.Compartments[0].Cargo(helpers.SlotCenter).Amount, 1e-9)
	assert.InDelta(t, 10.0, h.sc.Compartments[0].Cargo(helpers.SlotRight).Amount, 1e-9)
}

func TestUpdate_DegenerateChainIsBlocked(t *testing.T) {
	// Arrange
	f := helpers.NewCatalogFixture()
	sink := &catalog.ModuleDescription{
		Identifier: "water-sink",
		Kind:       catalog.ModuleKindProcessing,
		Processing: &catalog.ProcessingModule{Inputs: catalog.ResourceSet{f.Water}, ProcessingRate: 1},
	}
	sc := helpers.NewSpacecraftBuilder("Loop").
		Compartment(f.HullWide).
		Module(0, helpers.SlotLeft, f.WaterExtractor).
		Module(0, helpers.SlotCenter, sink).
		Module(0, helpers.SlotRight, f.CargoLiquid).
		Cargo(0, helpers.SlotRight, f.Water, 20).
		Build()
	system := processing.NewSystem(nil, nil, nil, processing.Options{Authority: true, StrictInvariants: true})
	require.NoError(t, system.Load(sc))
	require.NoError(t, system.SetProcessingGroupActive(context.Background(), 0, true))

	// Act
	require.NoError(t, system.Update(shared.SimulationEpoch, shared.SimulationEpoch.Add(time.Minute)))

	// Assert
	assert.Equal(t, []processing.Status{processing.StatusBlocked}, system.GetProcessingGroupStatus(0))
	assert.InDelta(t, 20.0, system.GetCargo(0, helpers.SlotRight).Amount, 1e-9)
	_, ok := system.RemainingProductionTime()
	assert.False(t, ok)
}

func TestUpdate_ChainWithoutInputsFillsEmptySlot(t *testing.T) {
	f := helpers.NewCatalogFixture()
	sc := helpers.NewSpacecraftBuilder("Driller").
		Compartment(f.HullWide).
		Module(0, helpers.SlotLeft, f.Drill).
		Module(0, helpers.SlotCenter, f.CargoLiquid).
		Module(0, helpers.SlotRight, f.CargoBulk).
		Build()
	system := processing.NewSystem(nil, nil, nil, processing.Options{Authority: true, StrictInvariants: true})
	require.NoError(t, system.Load(sc))
	require.NoError(t, system.SetProcessingGroupActive(context.Background(), 0, true))

	require.NoError(t, system.Update(shared.SimulationEpoch, shared.SimulationEpoch.Add(30*time.Second)))

	assert.True(t, system.GetCargo(0, helpers.SlotCenter).IsEmpty())
	assert.Same(t, f.Ore, system.GetCargo(0, helpers.SlotRight).Resource)
	assert.InDelta(t, 30.0, system.GetCargo(0, helpers.SlotRight).Amount, 1e-9)

	remaining, ok := system.RemainingProductionTime()
	require.True(t, ok)
	assert.Equal(t, 70*time.Second, remaining)
}

func TestGetModuleStatus(t *testing.T) {
	h := newHarness(t, 50)
	h.activate(t)
	h.advance(t, time.Second)

	status, ok := h.system.GetModuleStatus(0, helpers.SlotLeft)
	assert.True(t, ok)
	assert.Equal(t, processing.StatusProcessing, status)

	_, ok = h.system.GetModuleStatus(0, helpers.SlotCenter)
	assert.False(t, ok)
}

func TestRemainingProductionTime(t *testing.T) {
	h := newHarness(t, 50)
	h.activate(t)
	h.advance(t, 10*time.Second)

	remaining, ok := h.system.RemainingProductionTime()

	require.True(t, ok)
	assert.Equal(t, 40*time.Second, remaining)
}

func TestSetProcessingGroupActive_UnknownGroup(t *testing.T) {
	h := newHarness(t, 50)

	err := h.system.SetProcessingGroupActive(context.Background(), 7, true)

	var unknown *shared.UnknownGroupError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, 7, unknown.GroupIndex)
}

func TestReplica_CannotUpdateAndForwardsToggles(t *testing.T) {
	// Arrange
	f := helpers.NewCatalogFixture()
	sc := refinerySpacecraft(f, 50)
	forwarder := &helpers.RecordingForwarder{}
	replica := processing.NewSystem(nil, nil, nil, processing.Options{Forwarder: forwarder})
	require.NoError(t, replica.Load(sc))

	// Act
	updateErr := replica.Update(shared.SimulationEpoch, shared.SimulationEpoch.Add(time.Second))
	toggleErr := replica.SetProcessingGroupActive(context.Background(), 0, true)

	// Assert
	var notAuthority *shared.NotAuthorityError
	assert.True(t, errors.As(updateErr, &notAuthority))
	require.NoError(t, toggleErr)
	assert.False(t, replica.IsProcessingGroupActive(0))
	assert.Equal(t, []helpers.ForwardedToggle{{GroupIndex: 0, Active: true}}, forwarder.Requests)
}

func TestReplica_WithoutForwarderRejectsToggles(t *testing.T) {
	f := helpers.NewCatalogFixture()
	replica := processing.NewSystem(nil, nil, nil, processing.Options{})
	require.NoError(t, replica.Load(refinerySpacecraft(f, 50)))

	err := replica.SetProcessingGroupActive(context.Background(), 0, true)

	var notAuthority *shared.NotAuthorityError
	assert.True(t, errors.As(err, &notAuthority))
}

func TestReplica_MirrorsAuthoritySnapshot(t *testing.T) {
	// Arrange
	h := newHarness(t, 50)
	h.activate(t)
	h.advance(t, 12*time.Second)

	replica := processing.NewSystem(nil, nil, nil, processing.Options{})
	require.NoError(t, replica.Load(h.sc))

	// Act
	err := replica.ApplySnapshot(h.system.Snapshot())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, h.system.GetCargo(0, helpers.SlotCenter), replica.GetCargo(0, helpers.SlotCenter))
	assert.Equal(t, h.system.GetCargo(0, helpers.SlotRight), replica.GetCargo(0, helpers.SlotRight))
	assert.Equal(t, h.system.GetProcessingGroupStatus(0), replica.GetProcessingGroupStatus(0))
	assert.True(t, replica.IsProcessingGroupActive(0))

	assert.Error(t, h.system.ApplySnapshot(h.system.Snapshot()))
}

func TestLoad_DoesNotMutateSourceUntilSave(t *testing.T) {
	h := newHarness(t, 50)
	h.activate(t)

	h.advance(t, 10*time.Second)

	assert.InDelta(t, 50.0, h.sc.Compartments[0].Cargo(helpers.SlotCenter).Amount, 1e-9)
	require.NoError(t, h.system.Save(h.sc))
	assert.InDelta(t, 40.0, h.sc.Compartments[0].Cargo(helpers.SlotCenter).Amount, 1e-9)
}
