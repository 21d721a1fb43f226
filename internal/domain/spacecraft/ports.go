package spacecraft

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists spacecraft
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID, playerID int) (*Spacecraft, error)
	FindByPlayer(ctx context.Context, playerID int) ([]*Spacecraft, error)
	Save(ctx context.Context, playerID int, sc *Spacecraft) error
	Delete(ctx context.Context, id uuid.UUID) error
}
