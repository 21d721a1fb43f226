package queries

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/common"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/spacecraft/dtos"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/player"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
)

// GetSpacecraftQuery represents a query to get one spacecraft of a player
type GetSpacecraftQuery struct {
	SpacecraftID uuid.UUID
	PlayerID     *int   // Optional: query by player ID
	PlayerName   string // Optional: query by player name
}

// GetSpacecraftResponse carries the spacecraft and its read model
type GetSpacecraftResponse struct {
	Spacecraft *spacecraft.Spacecraft
	View       dtos.SpacecraftDTO
}

// GetSpacecraftHandler handles the GetSpacecraft query
type GetSpacecraftHandler struct {
	spacecraftRepo spacecraft.Repository
	playerResolver *common.PlayerResolver
}

// NewGetSpacecraftHandler creates a new GetSpacecraftHandler
func NewGetSpacecraftHandler(spacecraftRepo spacecraft.Repository, playerRepo player.PlayerRepository) *GetSpacecraftHandler {
	return &GetSpacecraftHandler{
		spacecraftRepo: spacecraftRepo,
		playerResolver: common.NewPlayerResolver(playerRepo),
	}
}

// Handle executes the GetSpacecraft query
func (h *GetSpacecraftHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetSpacecraftQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSpacecraftQuery")
	}

	if query.SpacecraftID == uuid.Nil {
		return nil, fmt.Errorf("spacecraft_id is required")
	}

	playerID, err := h.playerResolver.ResolvePlayerID(ctx, query.PlayerID, query.PlayerName)
	if err != nil {
		return nil, err
	}

	sc, err := h.spacecraftRepo.FindByID(ctx, query.SpacecraftID, playerID.Value())
	if err != nil {
		return nil, fmt.Errorf("failed to find spacecraft: %w", err)
	}

	return &GetSpacecraftResponse{
		Spacecraft: sc,
		View:       dtos.NewSpacecraftDTO(sc),
	}, nil
}
