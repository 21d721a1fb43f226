package setup_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/mediator"
	playerCommands "github.com/strangergwenn/AstralShipwright-sub002/internal/application/player/commands"
	playerQueries "github.com/strangergwenn/AstralShipwright-sub002/internal/application/player/queries"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/setup"
	simulationCommands "github.com/strangergwenn/AstralShipwright-sub002/internal/application/simulation/commands"
	spacecraftCommands "github.com/strangergwenn/AstralShipwright-sub002/internal/application/spacecraft/commands"
	spacecraftQueries "github.com/strangergwenn/AstralShipwright-sub002/internal/application/spacecraft/queries"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/spacecraft/types"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/infrastructure/logging"
	"github.com/strangergwenn/AstralShipwright-sub002/test/helpers"
)

func TestCreateConfiguredMediator_DispatchesEveryRequest(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := helpers.NewCatalogFixture()
	registry := setup.NewHandlerRegistry(
		helpers.NewMockPlayerRepository(),
		helpers.NewMockSpacecraftRepository(),
		f.Catalog,
		nil,
		setup.SimulationSettings{DailyCrewCost: 10, StrictInvariants: true},
	)

	var seen []string
	tracing := func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		seen = append(seen, mediator.RequestName(request))
		return next(ctx, request)
	}

	m, err := registry.CreateConfiguredMediator(logging.Discard(), tracing)
	require.NoError(t, err)

	edits, err := types.ParseEdits([]string{
		"insert-compartment 0 hull-wide",
		"set-module 0 0 refinery",
		"set-module 0 1 cargo-bulk",
		"set-module 0 2 cargo-general",
		"set-equipment 0 2 hatch",
		"set-equipment 0 0 generator",
		"set-equipment 0 1 habitat-hatch",
		"load-cargo ore 10",
		"set-crew 2",
	})
	require.NoError(t, err)

	// Act
	_, errRegister := m.Send(ctx, &playerCommands.RegisterPlayerCommand{Name: "Ada", Credits: 500})
	got, errGet := m.Send(ctx, &playerQueries.GetPlayerQuery{PlayerName: "Ada"})
	created, errCreate := m.Send(ctx, &spacecraftCommands.CreateSpacecraftCommand{PlayerName: "Ada", Name: "Smelter", Edits: edits})
	require.NoError(t, errCreate)
	id := created.(*spacecraftCommands.CreateSpacecraftResponse).Spacecraft.Identifier
	listed, errList := m.Send(ctx, &spacecraftQueries.ListSpacecraftQuery{PlayerName: "Ada"})
	ran, errRun := m.Send(ctx, &simulationCommands.RunSimulationCommand{
		SpacecraftID:   id,
		PlayerName:     "Ada",
		Steps:          5,
		Step:           time.Second,
		ActivateGroups: []int{0},
	})

	// Assert
	require.NoError(t, errRegister)
	require.NoError(t, errGet)
	require.NoError(t, errList)
	require.NoError(t, errRun)
	assert.Equal(t, int64(500), got.(*playerQueries.GetPlayerResponse).Player.Credits)
	assert.Len(t, listed.(*spacecraftQueries.ListSpacecraftResponse).Spacecraft, 1)
	assert.InDelta(t, 5, ran.(*simulationCommands.RunSimulationResponse).Result.ProcessedMass, 1e-9)
	assert.Equal(t, []string{
		"RegisterPlayerCommand",
		"GetPlayerQuery",
		"CreateSpacecraftCommand",
		"ListSpacecraftQuery",
		"RunSimulationCommand",
	}, seen)
}

func TestCreateConfiguredMediator_RejectsDoubleRegistration(t *testing.T) {
	registry := setup.NewHandlerRegistry(
		helpers.NewMockPlayerRepository(),
		helpers.NewMockSpacecraftRepository(),
		helpers.NewCatalogFixture().Catalog,
		nil,
		setup.SimulationSettings{DailyCrewCost: 10},
	)
	m := mediator.NewMediator()
	require.NoError(t, registry.RegisterPlayerHandlers(m))

	err := registry.RegisterPlayerHandlers(m)

	assert.ErrorContains(t, err, "handler already registered")
}
