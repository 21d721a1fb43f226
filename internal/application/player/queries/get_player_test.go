package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/player/queries"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/player"
	"github.com/strangergwenn/AstralShipwright-sub002/test/helpers"
)

func TestGetPlayer(t *testing.T) {
	// Arrange
	repo := helpers.NewMockPlayerRepository()
	repo.AddPlayer(player.NewPlayer(4, "Ada", 1200))
	handler := queries.NewGetPlayerHandler(repo)
	id := 4

	// Act
	byID, errByID := handler.Handle(context.Background(), &queries.GetPlayerQuery{PlayerID: &id})
	byName, errByName := handler.Handle(context.Background(), &queries.GetPlayerQuery{PlayerName: "Ada"})
	_, errUnknown := handler.Handle(context.Background(), &queries.GetPlayerQuery{PlayerName: "Grace"})

	// Assert
	require.NoError(t, errByID)
	assert.Equal(t, "Ada", byID.(*queries.GetPlayerResponse).Player.Name)
	require.NoError(t, errByName)
	assert.Equal(t, int64(1200), byName.(*queries.GetPlayerResponse).Player.Credits)
	assert.Error(t, errUnknown)
}
