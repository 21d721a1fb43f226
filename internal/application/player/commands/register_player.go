package commands

import (
	"context"
	"fmt"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/common"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/player"
)

// RegisterPlayerCommand represents a command to register a new player
type RegisterPlayerCommand struct {
	Name     string
	Credits  int64
	Metadata map[string]interface{} // Optional
}

// RegisterPlayerResponse represents the result of registering a player
type RegisterPlayerResponse struct {
	Player *player.Player
}

// RegisterPlayerHandler handles the RegisterPlayer command
type RegisterPlayerHandler struct {
	playerRepo player.PlayerRepository
}

// NewRegisterPlayerHandler creates a new RegisterPlayerHandler
func NewRegisterPlayerHandler(playerRepo player.PlayerRepository) *RegisterPlayerHandler {
	return &RegisterPlayerHandler{
		playerRepo: playerRepo,
	}
}

// Handle executes the RegisterPlayer command
func (h *RegisterPlayerHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RegisterPlayerCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RegisterPlayerCommand")
	}

	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Credits < 0 {
		return nil, fmt.Errorf("credits must not be negative")
	}

	p := &player.Player{
		Name:     cmd.Name,
		Credits:  cmd.Credits,
		Metadata: cmd.Metadata,
	}

	if err := h.playerRepo.Add(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	common.LoggerFromContext(ctx).Info("player registered", "player", p.Name, "id", p.ID)

	return &RegisterPlayerResponse{
		Player: p,
	}, nil
}
