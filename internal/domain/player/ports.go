package player

import "context"

// PlayerRepository defines player persistence operations
type PlayerRepository interface {
	FindByID(ctx context.Context, playerID int) (*Player, error)
	FindByName(ctx context.Context, name string) (*Player, error)
	Add(ctx context.Context, player *Player) error
	UpdateCredits(ctx context.Context, playerID int, credits int64) error
}
