package queries

import (
	"context"
	"fmt"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/common"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/spacecraft/dtos"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/player"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
)

// ListSpacecraftQuery lists the spacecraft of a player
type ListSpacecraftQuery struct {
	PlayerID   *int
	PlayerName string
}

// ListSpacecraftResponse carries one read model per spacecraft
type ListSpacecraftResponse struct {
	Spacecraft []dtos.SpacecraftDTO
}

// ListSpacecraftHandler handles the ListSpacecraft query
type ListSpacecraftHandler struct {
	spacecraftRepo spacecraft.Repository
	playerResolver *common.PlayerResolver
}

// NewListSpacecraftHandler creates a new ListSpacecraftHandler
func NewListSpacecraftHandler(spacecraftRepo spacecraft.Repository, playerRepo player.PlayerRepository) *ListSpacecraftHandler {
	return &ListSpacecraftHandler{
		spacecraftRepo: spacecraftRepo,
		playerResolver: common.NewPlayerResolver(playerRepo),
	}
}

// Handle executes the ListSpacecraft query
func (h *ListSpacecraftHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListSpacecraftQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListSpacecraftQuery")
	}

	playerID, err := h.playerResolver.ResolvePlayerID(ctx, query.PlayerID, query.PlayerName)
	if err != nil {
		return nil, err
	}

	all, err := h.spacecraftRepo.FindByPlayer(ctx, playerID.Value())
	if err != nil {
		return nil, fmt.Errorf("failed to list spacecraft: %w", err)
	}

	views := make([]dtos.SpacecraftDTO, 0, len(all))
	for _, sc := range all {
		views = append(views, dtos.NewSpacecraftDTO(sc))
	}

	return &ListSpacecraftResponse{
		Spacecraft: views,
	}, nil
}
