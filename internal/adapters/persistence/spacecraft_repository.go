package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
)

// GormSpacecraftRepository implements spacecraft.Repository using GORM.
// Catalog identifiers are resolved on load, so the catalog must hold every
// asset a stored spacecraft references.
type GormSpacecraftRepository struct {
	db      *gorm.DB
	catalog *catalog.Catalog
}

// NewGormSpacecraftRepository creates a new GORM spacecraft repository
func NewGormSpacecraftRepository(db *gorm.DB, cat *catalog.Catalog) *GormSpacecraftRepository {
	return &GormSpacecraftRepository{db: db, catalog: cat}
}

func preloadStructure(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Compartments", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Compartments.ModuleSlots", func(db *gorm.DB) *gorm.DB { return db.Order("slot_index") }).
		Preload("Compartments.EquipmentSlots", func(db *gorm.DB) *gorm.DB { return db.Order("slot_index") })
}

// FindByID retrieves a spacecraft owned by the player
func (r *GormSpacecraftRepository) FindByID(ctx context.Context, id uuid.UUID, playerID int) (*spacecraft.Spacecraft, error) {
	var model SpacecraftModel
	result := preloadStructure(r.db.WithContext(ctx)).
		Where("id = ? AND player_id = ?", id.String(), playerID).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("spacecraft %s not found for player %d", id, playerID)
		}
		return nil, fmt.Errorf("failed to find spacecraft: %w", result.Error)
	}

	return r.modelToEntity(&model)
}

// FindByPlayer retrieves every spacecraft of a player, ordered by name
func (r *GormSpacecraftRepository) FindByPlayer(ctx context.Context, playerID int) ([]*spacecraft.Spacecraft, error) {
	var models []SpacecraftModel
	result := preloadStructure(r.db.WithContext(ctx)).
		Where("player_id = ?", playerID).
		Order("name").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list spacecraft: %w", result.Error)
	}

	all := make([]*spacecraft.Spacecraft, 0, len(models))
	for i := range models {
		sc, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		all = append(all, sc)
	}
	return all, nil
}

// Save upserts the spacecraft row and replaces its structure
func (r *GormSpacecraftRepository) Save(ctx context.Context, playerID int, sc *spacecraft.Spacecraft) error {
	model := r.entityToModel(playerID, sc)
	compartments := model.Compartments
	model.Compartments = nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"player_id", "name", "propellant_mass", "crew_count",
				"structural_paint", "hull_paint", "detail_paint", "dirty_intensity", "updated_at",
			}),
		}).Create(model)
		if result.Error != nil {
			return fmt.Errorf("failed to save spacecraft: %w", result.Error)
		}

		if err := deleteStructure(tx, model.ID); err != nil {
			return err
		}

		if len(compartments) > 0 {
			if err := tx.Create(&compartments).Error; err != nil {
				return fmt.Errorf("failed to save compartments: %w", err)
			}
		}
		return nil
	})
}

// Delete removes a spacecraft and its structure
func (r *GormSpacecraftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteStructure(tx, id.String()); err != nil {
			return err
		}
		result := tx.Where("id = ?", id.String()).Delete(&SpacecraftModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete spacecraft: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("spacecraft %s not found", id)
		}
		return nil
	})
}

func deleteStructure(tx *gorm.DB, spacecraftID string) error {
	rows := tx.Model(&CompartmentModel{}).Select("id").Where("spacecraft_id = ?", spacecraftID)
	if err := tx.Where("compartment_row_id IN (?)", rows).Delete(&ModuleSlotModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete module slots: %w", err)
	}
	if err := tx.Where("compartment_row_id IN (?)", rows).Delete(&EquipmentSlotModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete equipment slots: %w", err)
	}
	if err := tx.Where("spacecraft_id = ?", spacecraftID).Delete(&CompartmentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete compartments: %w", err)
	}
	return nil
}

// entityToModel converts the domain entity to database models
func (r *GormSpacecraftRepository) entityToModel(playerID int, sc *spacecraft.Spacecraft) *SpacecraftModel {
	now := time.Now().UTC()
	model := &SpacecraftModel{
		ID:              sc.Identifier.String(),
		PlayerID:        playerID,
		Name:            sc.Name,
		PropellantMass:  sc.PropellantMassAtLaunch,
		CrewCount:       sc.CrewCount,
		StructuralPaint: sc.Customization.StructuralPaint,
		HullPaint:       sc.Customization.HullPaint,
		DetailPaint:     sc.Customization.DetailPaint,
		DirtyIntensity:  sc.Customization.DirtyIntensity,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	for position := range sc.Compartments {
		compartment := &sc.Compartments[position]
		row := CompartmentModel{SpacecraftID: model.ID, Position: position}
		if !compartment.IsValid() {
			// empty rows keep the positions of the compartments behind them
			model.Compartments = append(model.Compartments, row)
			continue
		}
		row.CompartmentID = compartment.Description.Identifier
		for mi, module := range compartment.Modules {
			if module.Description == nil {
				continue
			}
			slot := ModuleSlotModel{SlotIndex: mi, ModuleID: module.Description.Identifier}
			if !module.Cargo.IsEmpty() {
				slot.ResourceID = module.Cargo.Resource.Identifier
				slot.Amount = module.Cargo.Amount
			}
			row.ModuleSlots = append(row.ModuleSlots, slot)
		}
		for ei, equipment := range compartment.Equipment {
			if equipment == nil {
				continue
			}
			row.EquipmentSlots = append(row.EquipmentSlots, EquipmentSlotModel{SlotIndex: ei, EquipmentID: equipment.Identifier})
		}
		model.Compartments = append(model.Compartments, row)
	}

	return model
}

// modelToEntity resolves catalog identifiers and rebuilds derived data
func (r *GormSpacecraftRepository) modelToEntity(model *SpacecraftModel) (*spacecraft.Spacecraft, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid spacecraft id %q in database: %w", model.ID, err)
	}

	sc := &spacecraft.Spacecraft{
		Identifier:             id,
		Name:                   model.Name,
		PropellantMassAtLaunch: model.PropellantMass,
		CrewCount:              model.CrewCount,
		Customization: spacecraft.Customization{
			StructuralPaint: model.StructuralPaint,
			HullPaint:       model.HullPaint,
			DetailPaint:     model.DetailPaint,
			DirtyIntensity:  model.DirtyIntensity,
		},
	}

	for _, row := range model.Compartments {
		if row.Position < 0 {
			return nil, fmt.Errorf("spacecraft %s: compartment position %d out of range", model.ID, row.Position)
		}
		for len(sc.Compartments) <= row.Position {
			sc.Compartments = append(sc.Compartments, spacecraft.Compartment{})
		}
		if row.CompartmentID == "" {
			continue
		}

		description, err := r.catalog.Compartment(row.CompartmentID)
		if err != nil {
			return nil, fmt.Errorf("spacecraft %s: %w", model.ID, err)
		}
		compartment := spacecraft.NewCompartment(description)

		for _, slot := range row.ModuleSlots {
			if slot.SlotIndex < 0 || slot.SlotIndex >= spacecraft.MaxModuleCount {
				return nil, fmt.Errorf("spacecraft %s: module slot %d out of range", model.ID, slot.SlotIndex)
			}
			module, err := r.catalog.Module(slot.ModuleID)
			if err != nil {
				return nil, fmt.Errorf("spacecraft %s: %w", model.ID, err)
			}
			compartment.Modules[slot.SlotIndex].Description = module
			if slot.ResourceID != "" {
				resource, err := r.catalog.Resource(slot.ResourceID)
				if err != nil {
					return nil, fmt.Errorf("spacecraft %s: %w", model.ID, err)
				}
				compartment.Modules[slot.SlotIndex].Cargo = spacecraft.Cargo{Resource: resource, Amount: slot.Amount}
			}
		}

		for _, slot := range row.EquipmentSlots {
			if slot.SlotIndex < 0 || slot.SlotIndex >= spacecraft.MaxEquipmentCount {
				return nil, fmt.Errorf("spacecraft %s: equipment slot %d out of range", model.ID, slot.SlotIndex)
			}
			equipment, err := r.catalog.Equipment(slot.EquipmentID)
			if err != nil {
				return nil, fmt.Errorf("spacecraft %s: %w", model.ID, err)
			}
			compartment.Equipment[slot.SlotIndex] = equipment
		}

		sc.Compartments[row.Position] = compartment
	}

	sc.UpdateDerived()
	return sc, nil
}
