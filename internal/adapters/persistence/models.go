package persistence

import (
	"time"
)

// PlayerModel represents the players table
type PlayerModel struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;unique;not null"`
	Credits   int64     `gorm:"column:credits;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	Metadata  string    `gorm:"column:metadata;type:text"` // JSON stored as string
}

func (PlayerModel) TableName() string {
	return "players"
}

// SpacecraftModel represents the spacecraft table
type SpacecraftModel struct {
	ID              string             `gorm:"column:id;primaryKey;not null"`
	PlayerID        int                `gorm:"column:player_id;not null;index"`
	Player          *PlayerModel       `gorm:"foreignKey:PlayerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name            string             `gorm:"column:name;not null"`
	PropellantMass  float64            `gorm:"column:propellant_mass;not null;default:0"`
	CrewCount       int                `gorm:"column:crew_count;not null;default:0"`
	StructuralPaint string             `gorm:"column:structural_paint"`
	HullPaint       string             `gorm:"column:hull_paint"`
	DetailPaint     string             `gorm:"column:detail_paint"`
	DirtyIntensity  float64            `gorm:"column:dirty_intensity;default:0"`
	Compartments    []CompartmentModel `gorm:"foreignKey:SpacecraftID;references:ID;constraint:OnDelete:CASCADE;"`
	CreatedAt       time.Time          `gorm:"column:created_at;not null"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;not null"`
}

func (SpacecraftModel) TableName() string {
	return "spacecraft"
}

// CompartmentModel represents the compartments table; Position is the index
// along the spacecraft
type CompartmentModel struct {
	ID             int                  `gorm:"column:id;primaryKey;autoIncrement"`
	SpacecraftID   string               `gorm:"column:spacecraft_id;not null;index"`
	Position       int                  `gorm:"column:position;not null"`
	CompartmentID  string               `gorm:"column:compartment_id;not null"` // catalog identifier, empty for an unset compartment
	ModuleSlots    []ModuleSlotModel    `gorm:"foreignKey:CompartmentRowID;references:ID;constraint:OnDelete:CASCADE;"`
	EquipmentSlots []EquipmentSlotModel `gorm:"foreignKey:CompartmentRowID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (CompartmentModel) TableName() string {
	return "compartments"
}

// ModuleSlotModel represents the module_slots table, one row per mounted module
type ModuleSlotModel struct {
	ID               int     `gorm:"column:id;primaryKey;autoIncrement"`
	CompartmentRowID int     `gorm:"column:compartment_row_id;not null;index"`
	SlotIndex        int     `gorm:"column:slot_index;not null"`
	ModuleID         string  `gorm:"column:module_id;not null"`
	ResourceID       string  `gorm:"column:resource_id"` // empty when the slot holds no cargo
	Amount           float64 `gorm:"column:amount;not null;default:0"`
}

func (ModuleSlotModel) TableName() string {
	return "module_slots"
}

// EquipmentSlotModel represents the equipment_slots table
type EquipmentSlotModel struct {
	ID               int    `gorm:"column:id;primaryKey;autoIncrement"`
	CompartmentRowID int    `gorm:"column:compartment_row_id;not null;index"`
	SlotIndex        int    `gorm:"column:slot_index;not null"`
	EquipmentID      string `gorm:"column:equipment_id;not null"`
}

func (EquipmentSlotModel) TableName() string {
	return "equipment_slots"
}

// AllModels lists every model for migrations
func AllModels() []interface{} {
	return []interface{}{
		&PlayerModel{},
		&SpacecraftModel{},
		&CompartmentModel{},
		&ModuleSlotModel{},
		&EquipmentSlotModel{},
	}
}
