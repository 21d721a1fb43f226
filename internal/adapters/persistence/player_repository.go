package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/player"
)

// GormPlayerRepository implements PlayerRepository using GORM
type GormPlayerRepository struct {
	db *gorm.DB
}

// NewGormPlayerRepository creates a new GORM player repository
func NewGormPlayerRepository(db *gorm.DB) *GormPlayerRepository {
	return &GormPlayerRepository{db: db}
}

// FindByID retrieves a player by ID
func (r *GormPlayerRepository) FindByID(ctx context.Context, playerID int) (*player.Player, error) {
	var model PlayerModel
	result := r.db.WithContext(ctx).Where("id = ?", playerID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("player not found: %d", playerID)
		}
		return nil, fmt.Errorf("failed to find player: %w", result.Error)
	}

	return r.modelToPlayer(&model), nil
}

// FindByName retrieves a player by name
func (r *GormPlayerRepository) FindByName(ctx context.Context, name string) (*player.Player, error) {
	var model PlayerModel
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("player not found: %s", name)
		}
		return nil, fmt.Errorf("failed to find player: %w", result.Error)
	}

	return r.modelToPlayer(&model), nil
}

// ListAll retrieves all players from the database
func (r *GormPlayerRepository) ListAll(ctx context.Context) ([]*player.Player, error) {
	var models []PlayerModel
	result := r.db.WithContext(ctx).Order("id").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list players: %w", result.Error)
	}

	players := make([]*player.Player, 0, len(models))
	for i := range models {
		players = append(players, r.modelToPlayer(&models[i]))
	}

	return players, nil
}

// Add persists a player and assigns its ID when new
func (r *GormPlayerRepository) Add(ctx context.Context, p *player.Player) error {
	model, err := r.playerToModel(p)
	if err != nil {
		return fmt.Errorf("failed to convert player to model: %w", err)
	}

	// Upsert: create or update
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to add player: %w", result.Error)
	}

	p.ID = model.ID
	return nil
}

// UpdateCredits stores a new credit balance
func (r *GormPlayerRepository) UpdateCredits(ctx context.Context, playerID int, credits int64) error {
	result := r.db.WithContext(ctx).Model(&PlayerModel{}).Where("id = ?", playerID).Update("credits", credits)
	if result.Error != nil {
		return fmt.Errorf("failed to update credits: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("player not found: %d", playerID)
	}
	return nil
}

// modelToPlayer converts database model to domain entity
func (r *GormPlayerRepository) modelToPlayer(model *PlayerModel) *player.Player {
	var metadata map[string]interface{}
	if model.Metadata != "" {
		if err := json.Unmarshal([]byte(model.Metadata), &metadata); err != nil {
			// If unmarshal fails, leave metadata as nil
			metadata = nil
		}
	}

	return &player.Player{
		ID:       model.ID,
		Name:     model.Name,
		Credits:  model.Credits,
		Metadata: metadata,
	}
}

// playerToModel converts domain entity to database model
func (r *GormPlayerRepository) playerToModel(p *player.Player) (*PlayerModel, error) {
	var metadataJSON string
	if p.Metadata != nil {
		bytes, err := json.Marshal(p.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadataJSON = string(bytes)
	}

	return &PlayerModel{
		ID:        p.ID,
		Name:      p.Name,
		Credits:   p.Credits,
		CreatedAt: time.Now().UTC(),
		Metadata:  metadataJSON,
	}, nil
}
