package commands

import (
	"context"
	"fmt"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/common"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/spacecraft/dtos"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/spacecraft/types"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/player"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
)

// CreateSpacecraftCommand creates a spacecraft for a player from a list of edits
type CreateSpacecraftCommand struct {
	PlayerID   *int   // Optional: owner by ID
	PlayerName string // Optional: owner by name
	Name       string
	Edits      []types.Edit

	// RequireValidDesign refuses to save a design that cannot leave the station
	RequireValidDesign bool
}

// CreateSpacecraftResponse represents the created spacecraft
type CreateSpacecraftResponse struct {
	Spacecraft *spacecraft.Spacecraft
	View       dtos.SpacecraftDTO
}

// CreateSpacecraftHandler handles the CreateSpacecraft command
type CreateSpacecraftHandler struct {
	spacecraftRepo spacecraft.Repository
	playerResolver *common.PlayerResolver
	catalog        *catalog.Catalog
	clock          shared.Clock
}

// NewCreateSpacecraftHandler creates a new CreateSpacecraftHandler
func NewCreateSpacecraftHandler(
	spacecraftRepo spacecraft.Repository,
	playerRepo player.PlayerRepository,
	cat *catalog.Catalog,
	clock shared.Clock,
) *CreateSpacecraftHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CreateSpacecraftHandler{
		spacecraftRepo: spacecraftRepo,
		playerResolver: common.NewPlayerResolver(playerRepo),
		catalog:        cat,
		clock:          clock,
	}
}

// Handle executes the CreateSpacecraft command
func (h *CreateSpacecraftHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*CreateSpacecraftCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateSpacecraftCommand")
	}

	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	playerID, err := h.playerResolver.ResolvePlayerID(ctx, cmd.PlayerID, cmd.PlayerName)
	if err != nil {
		return nil, err
	}

	assembly := spacecraft.NewAssembly(spacecraft.New(cmd.Name), h.clock)
	if err := types.ApplyEdits(assembly, h.catalog, cmd.Edits); err != nil {
		return nil, err
	}

	sc, err := assembly.Commit()
	if err != nil {
		return nil, err
	}

	if cmd.RequireValidDesign {
		if err := sc.Validate(); err != nil {
			return nil, err
		}
	}

	if err := h.spacecraftRepo.Save(ctx, playerID.Value(), sc); err != nil {
		return nil, fmt.Errorf("failed to save spacecraft: %w", err)
	}

	common.LoggerFromContext(ctx).Info("spacecraft created",
		"spacecraft", sc.Identifier.String(),
		"name", sc.Name,
		"player", playerID.Value(),
		"compartments", len(sc.Compartments))

	return &CreateSpacecraftResponse{
		Spacecraft: sc,
		View:       dtos.NewSpacecraftDTO(sc),
	}, nil
}
