package common_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/common"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/player"
	"github.com/strangergwenn/AstralShipwright-sub002/test/helpers"
)

func TestPlayerResolver(t *testing.T) {
	// Arrange
	repo := helpers.NewMockPlayerRepository()
	repo.AddPlayer(player.NewPlayer(7, "Ada", 100))
	resolver := common.NewPlayerResolver(repo)
	ctx := context.Background()
	id := 3

	// Act
	byID, errByID := resolver.ResolvePlayerID(ctx, &id, "Ada")
	byName, errByName := resolver.ResolvePlayerID(ctx, nil, "Ada")
	_, errNone := resolver.ResolvePlayerID(ctx, nil, "")
	_, errUnknown := resolver.ResolvePlayerID(ctx, nil, "Grace")
	full, errFull := resolver.ResolvePlayer(ctx, nil, "Ada")

	// Assert
	require.NoError(t, errByID)
	assert.Equal(t, 3, byID.Value())
	require.NoError(t, errByName)
	assert.Equal(t, 7, byName.Value())
	assert.Error(t, errNone)
	assert.Error(t, errUnknown)
	require.NoError(t, errFull)
	assert.Equal(t, int64(100), full.Credits)
}
