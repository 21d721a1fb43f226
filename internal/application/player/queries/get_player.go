package queries

import (
	"context"
	"fmt"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/common"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/player"
)

// GetPlayerQuery represents a query to get a player by ID or name
type GetPlayerQuery struct {
	PlayerID   *int   // Optional: get by player ID
	PlayerName string // Optional: get by name
}

// GetPlayerResponse represents the result of getting a player
type GetPlayerResponse struct {
	Player *player.Player
}

// GetPlayerHandler handles the GetPlayer query
type GetPlayerHandler struct {
	playerResolver *common.PlayerResolver
}

// NewGetPlayerHandler creates a new GetPlayerHandler
func NewGetPlayerHandler(playerRepo player.PlayerRepository) *GetPlayerHandler {
	return &GetPlayerHandler{
		playerResolver: common.NewPlayerResolver(playerRepo),
	}
}

// Handle executes the GetPlayer query
func (h *GetPlayerHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetPlayerQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPlayerQuery")
	}

	p, err := h.playerResolver.ResolvePlayer(ctx, query.PlayerID, query.PlayerName)
	if err != nil {
		return nil, err
	}

	return &GetPlayerResponse{
		Player: p,
	}, nil
}
