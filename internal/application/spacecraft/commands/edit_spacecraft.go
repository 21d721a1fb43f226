package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/common"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/spacecraft/dtos"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/spacecraft/types"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/player"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
)

// EditSpacecraftCommand plays structural edits on a stored spacecraft
type EditSpacecraftCommand struct {
	SpacecraftID uuid.UUID
	PlayerID     *int
	PlayerName   string
	Edits        []types.Edit

	// DryRun applies the edits to the working copy without saving
	DryRun bool
}

// EditSpacecraftResponse represents the spacecraft after the edits
type EditSpacecraftResponse struct {
	Spacecraft *spacecraft.Spacecraft
	View       dtos.SpacecraftDTO
	Saved      bool
}

// EditSpacecraftHandler handles the EditSpacecraft command
type EditSpacecraftHandler struct {
	spacecraftRepo spacecraft.Repository
	playerResolver *common.PlayerResolver
	catalog        *catalog.Catalog
	clock          shared.Clock
}

// NewEditSpacecraftHandler creates a new EditSpacecraftHandler
func NewEditSpacecraftHandler(
	spacecraftRepo spacecraft.Repository,
	playerRepo player.PlayerRepository,
	cat *catalog.Catalog,
	clock shared.Clock,
) *EditSpacecraftHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &EditSpacecraftHandler{
		spacecraftRepo: spacecraftRepo,
		playerResolver: common.NewPlayerResolver(playerRepo),
		catalog:        cat,
		clock:          clock,
	}
}

// Handle executes the EditSpacecraft command
func (h *EditSpacecraftHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*EditSpacecraftCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *EditSpacecraftCommand")
	}

	if cmd.SpacecraftID == uuid.Nil {
		return nil, fmt.Errorf("spacecraft_id is required")
	}
	if len(cmd.Edits) == 0 {
		return nil, fmt.Errorf("at least one edit is required")
	}

	playerID, err := h.playerResolver.ResolvePlayerID(ctx, cmd.PlayerID, cmd.PlayerName)
	if err != nil {
		return nil, err
	}

	current, err := h.spacecraftRepo.FindByID(ctx, cmd.SpacecraftID, playerID.Value())
	if err != nil {
		return nil, fmt.Errorf("failed to find spacecraft: %w", err)
	}

	assembly := spacecraft.NewAssembly(current, h.clock)
	if err := types.ApplyEdits(assembly, h.catalog, cmd.Edits); err != nil {
		return nil, err
	}

	edited, err := assembly.Commit()
	if err != nil {
		return nil, err
	}

	if !cmd.DryRun {
		if err := h.spacecraftRepo.Save(ctx, playerID.Value(), edited); err != nil {
			return nil, fmt.Errorf("failed to save spacecraft: %w", err)
		}
		common.LoggerFromContext(ctx).Info("spacecraft edited",
			"spacecraft", edited.Identifier.String(),
			"edits", len(cmd.Edits))
	}

	return &EditSpacecraftResponse{
		Spacecraft: edited,
		View:       dtos.NewSpacecraftDTO(edited),
		Saved:      !cmd.DryRun,
	}, nil
}
