package common

import (
	"context"
	"fmt"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/player"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
)

// PlayerResolver resolves a player from either a numeric ID or a player name.
//
// Business rules:
//   - At least one of playerID or name must be provided
//   - If both are provided, playerID takes precedence
type PlayerResolver struct {
	playerRepo player.PlayerRepository
}

// NewPlayerResolver creates a new player resolver with required dependencies.
func NewPlayerResolver(playerRepo player.PlayerRepository) *PlayerResolver {
	return &PlayerResolver{
		playerRepo: playerRepo,
	}
}

// ResolvePlayerID resolves a player ID from either a numeric ID or a name.
//
//	resolver := NewPlayerResolver(playerRepo)
//	playerID, err := resolver.ResolvePlayerID(ctx, cmd.PlayerID, cmd.PlayerName)
func (r *PlayerResolver) ResolvePlayerID(ctx context.Context, playerID *int, name string) (shared.PlayerID, error) {
	if playerID == nil && name == "" {
		return shared.PlayerID{}, fmt.Errorf("either player_id or player name must be provided")
	}

	if playerID != nil {
		pid, err := shared.NewPlayerID(*playerID)
		if err != nil {
			return shared.PlayerID{}, fmt.Errorf("invalid player ID: %w", err)
		}
		return pid, nil
	}

	found, err := r.playerRepo.FindByName(ctx, name)
	if err != nil {
		return shared.PlayerID{}, fmt.Errorf("failed to find player by name: %w", err)
	}

	return shared.NewPlayerID(found.ID)
}

// ResolvePlayer loads the full player, used when credits are needed
func (r *PlayerResolver) ResolvePlayer(ctx context.Context, playerID *int, name string) (*player.Player, error) {
	pid, err := r.ResolvePlayerID(ctx, playerID, name)
	if err != nil {
		return nil, err
	}
	found, err := r.playerRepo.FindByID(ctx, pid.Value())
	if err != nil {
		return nil, fmt.Errorf("failed to load player %s: %w", pid, err)
	}
	return found, nil
}
