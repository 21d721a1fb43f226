package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/spacecraft/queries"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/player"
	"github.com/strangergwenn/AstralShipwright-sub002/test/helpers"
)

func TestGetAndListSpacecraft(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := helpers.NewCatalogFixture()
	players := helpers.NewMockPlayerRepository()
	owner := player.NewPlayer(1, "Ada", 0)
	players.AddPlayer(owner)
	other := player.NewPlayer(2, "Grace", 0)
	players.AddPlayer(other)

	repo := helpers.NewMockSpacecraftRepository()
	tug := f.ValidSpacecraft("Tug").Build()
	smelter := f.PoweredRefinery("Smelter", 40).Build()
	require.NoError(t, repo.Save(ctx, owner.ID, tug))
	require.NoError(t, repo.Save(ctx, owner.ID, smelter))
	require.NoError(t, repo.Save(ctx, other.ID, f.ValidSpacecraft("Stranger").Build()))

	get := queries.NewGetSpacecraftHandler(repo, players)
	list := queries.NewListSpacecraftHandler(repo, players)

	// Act
	got, errGet := get.Handle(ctx, &queries.GetSpacecraftQuery{SpacecraftID: tug.Identifier, PlayerName: "Ada"})
	_, errForeign := get.Handle(ctx, &queries.GetSpacecraftQuery{SpacecraftID: tug.Identifier, PlayerName: "Grace"})
	listed, errList := list.Handle(ctx, &queries.ListSpacecraftQuery{PlayerID: &owner.ID})

	// Assert
	require.NoError(t, errGet)
	view := got.(*queries.GetSpacecraftResponse).View
	assert.Equal(t, "Tug", view.Name)
	assert.True(t, view.Valid)
	assert.InDelta(t, 61, view.Metrics.DryMass, 1e-9)
	assert.Equal(t, 4, view.Metrics.CrewCapacity)
	require.Len(t, view.Compartments, 1)
	assert.Len(t, view.Compartments[0].Modules, 3)
	assert.Len(t, view.Compartments[0].Equipment, 4)

	assert.Error(t, errForeign)

	require.NoError(t, errList)
	names := []string{}
	for _, sc := range listed.(*queries.ListSpacecraftResponse).Spacecraft {
		names = append(names, sc.Name)
	}
	assert.Equal(t, []string{"Smelter", "Tug"}, names)
}

func TestGetSpacecraft_ReportsCargoAndIssues(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewCatalogFixture()
	players := helpers.NewMockPlayerRepository()
	players.AddPlayer(player.NewPlayer(1, "Ada", 0))
	repo := helpers.NewMockSpacecraftRepository()
	smelter := f.PoweredRefinery("Smelter", 40).Build()
	require.NoError(t, repo.Save(ctx, 1, smelter))

	response, err := queries.NewGetSpacecraftHandler(repo, players).
		Handle(ctx, &queries.GetSpacecraftQuery{SpacecraftID: smelter.Identifier, PlayerName: "Ada"})

	require.NoError(t, err)
	view := response.(*queries.GetSpacecraftResponse).View
	assert.False(t, view.Valid)
	assert.Contains(t, view.Issues, "This spacecraft has no engine")
	var cargo []string
	for _, module := range view.Compartments[0].Modules {
		if module.Cargo != nil && module.Cargo.Resource != "" {
			cargo = append(cargo, module.Cargo.Resource)
		}
	}
	assert.Equal(t, []string{"ore"}, cargo)
}
