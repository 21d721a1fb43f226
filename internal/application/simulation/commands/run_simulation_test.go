package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/simulation/commands"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/player"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/propellant"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
	"github.com/strangergwenn/AstralShipwright-sub002/test/helpers"
)

type runFixture struct {
	catalog    *helpers.CatalogFixture
	players    *helpers.MockPlayerRepository
	spacecraft *helpers.MockSpacecraftRepository
	handler    *commands.RunSimulationHandler
	owner      *player.Player
}

func newRunFixture(t *testing.T, credits int64) *runFixture {
	f := &runFixture{
		catalog:    helpers.NewCatalogFixture(),
		players:    helpers.NewMockPlayerRepository(),
		spacecraft: helpers.NewMockSpacecraftRepository(),
		owner:      player.NewPlayer(1, "Ada", credits),
	}
	f.players.AddPlayer(f.owner)
	f.handler = commands.NewRunSimulationHandler(f.spacecraft, f.players, f.catalog.Catalog, nil, nil, 0, true)
	return f
}

func TestRunSimulation_ProcessesAndSaves(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newRunFixture(t, 1000)
	smelter := f.catalog.PoweredRefinery("Smelter", 40).Build()
	require.NoError(t, f.spacecraft.Save(ctx, f.owner.ID, smelter))

	// Act
	response, err := f.handler.Handle(ctx, &commands.RunSimulationCommand{
		SpacecraftID:   smelter.Identifier,
		PlayerName:     "Ada",
		Steps:          20,
		Step:           time.Second,
		ActivateGroups: []int{0},
	})

	// Assert
	require.NoError(t, err)
	result := response.(*commands.RunSimulationResponse)
	assert.Equal(t, 20, result.Result.Ticks)
	assert.Equal(t, shared.SimulationEpoch.Add(20*time.Second), result.Result.End)

	stored, err := f.spacecraft.FindByID(ctx, smelter.Identifier, f.owner.ID)
	require.NoError(t, err)
	assert.InDelta(t, 20, stored.Compartments[0].Modules[helpers.SlotCenter].Cargo.Amount, 1e-6)
	assert.InDelta(t, 20, stored.Compartments[0].Modules[helpers.SlotRight].Cargo.Amount, 1e-6)
}

func TestRunSimulation_PaysCrewFromPlayerCredits(t *testing.T) {
	ctx := context.Background()
	f := newRunFixture(t, 100)
	smelter := f.catalog.PoweredRefinery("Smelter", 40).Build()
	require.NoError(t, f.spacecraft.Save(ctx, f.owner.ID, smelter))

	response, err := f.handler.Handle(ctx, &commands.RunSimulationCommand{
		SpacecraftID: smelter.Identifier,
		PlayerID:     &f.owner.ID,
		Steps:        2,
		Step:         24 * time.Hour,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(60), response.(*commands.RunSimulationResponse).Credits)
	stored, err := f.players.FindByID(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(60), stored.Credits)
}

func TestRunSimulation_MinesWhileAnchored(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newRunFixture(t, 1000)
	miner := helpers.NewSpacecraftBuilder("Prospector").
		Compartment(f.catalog.HullWide).
		Module(0, helpers.SlotLeft, f.catalog.CargoBulk).
		Module(0, helpers.SlotRight, f.catalog.CargoBulk).
		Equipment(0, helpers.EquipTop, f.catalog.MiningRig).
		Equipment(0, helpers.EquipLeft, f.catalog.Generator).
		Build()
	require.NoError(t, f.spacecraft.Save(ctx, f.owner.ID, miner))

	// Act
	response, err := f.handler.Handle(ctx, &commands.RunSimulationCommand{
		SpacecraftID:      miner.Identifier,
		PlayerName:        "Ada",
		Steps:             5,
		Step:              time.Second,
		ActivateMiningRig: true,
		Environment:       commands.EnvironmentSpec{AsteroidMineral: "ore", AsteroidDensity: 0.5},
	})

	// Assert
	require.NoError(t, err)
	result := response.(*commands.RunSimulationResponse)
	assert.InDelta(t, 5, result.Result.MinedMass, 1e-6)
	assert.Equal(t, "Processing", result.Result.Last.MiningStatus)
}

func TestRunSimulation_BurnsPropellantDuringManeuvers(t *testing.T) {
	ctx := context.Background()
	f := newRunFixture(t, 1000)
	tug := f.catalog.ValidSpacecraft("Tug").Propellant(800).Build()
	require.NoError(t, f.spacecraft.Save(ctx, f.owner.ID, tug))
	rate := tug.PropulsionMetrics().PropellantRate

	response, err := f.handler.Handle(ctx, &commands.RunSimulationCommand{
		SpacecraftID: tug.Identifier,
		PlayerName:   "Ada",
		Steps:        10,
		Step:         time.Second,
		Maneuvers: []propellant.Maneuver{
			{Start: shared.SimulationEpoch.Add(2 * time.Second), Duration: 3 * time.Second, ThrustFactor: 1},
		},
	})

	require.NoError(t, err)
	saved := response.(*commands.RunSimulationResponse).Spacecraft
	assert.InDelta(t, 800-3*rate, saved.PropellantMassAtLaunch, 1e-6)
}

func TestRunSimulation_DryRunLeavesStorageUntouched(t *testing.T) {
	ctx := context.Background()
	f := newRunFixture(t, 1000)
	smelter := f.catalog.PoweredRefinery("Smelter", 40).Build()
	require.NoError(t, f.spacecraft.Save(ctx, f.owner.ID, smelter))

	_, err := f.handler.Handle(ctx, &commands.RunSimulationCommand{
		SpacecraftID: smelter.Identifier, PlayerName: "Ada",
		Steps: 5, Step: time.Second, ActivateGroups: []int{0}, DryRun: true,
	})

	require.NoError(t, err)
	stored, err := f.spacecraft.FindByID(ctx, smelter.Identifier, f.owner.ID)
	require.NoError(t, err)
	assert.InDelta(t, 40, stored.Compartments[0].Modules[helpers.SlotCenter].Cargo.Amount, 1e-9)
}

func TestRunSimulation_RejectsBadRequests(t *testing.T) {
	ctx := context.Background()
	f := newRunFixture(t, 1000)
	smelter := f.catalog.PoweredRefinery("Smelter", 40).Build()
	require.NoError(t, f.spacecraft.Save(ctx, f.owner.ID, smelter))

	_, errNoID := f.handler.Handle(ctx, &commands.RunSimulationCommand{PlayerName: "Ada", Steps: 1, Step: time.Second})
	_, errGroup := f.handler.Handle(ctx, &commands.RunSimulationCommand{
		SpacecraftID: smelter.Identifier, PlayerName: "Ada", Steps: 1, Step: time.Second, ActivateGroups: []int{7},
	})
	_, errMineral := f.handler.Handle(ctx, &commands.RunSimulationCommand{
		SpacecraftID: smelter.Identifier, PlayerName: "Ada", Steps: 1, Step: time.Second,
		Environment: commands.EnvironmentSpec{AsteroidMineral: "unobtainium", AsteroidDensity: 1},
	})
	_, errSteps := f.handler.Handle(ctx, &commands.RunSimulationCommand{
		SpacecraftID: smelter.Identifier, PlayerName: "Ada", Step: time.Second,
	})

	assert.Error(t, errNoID)
	assert.Error(t, errGroup)
	assert.Error(t, errMineral)
	assert.Error(t, errSteps)
}
