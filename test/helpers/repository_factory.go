package helpers

import (
	"gorm.io/gorm"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/adapters/persistence"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
)

// TestRepositories holds all real repository instances for integration tests
type TestRepositories struct {
	DB             *gorm.DB
	PlayerRepo     *persistence.GormPlayerRepository
	SpacecraftRepo *persistence.GormSpacecraftRepository
}

// NewTestRepositories creates all real repository instances using shared test DB.
// Spacecraft are resolved against the given catalog on load.
func NewTestRepositories(cat *catalog.Catalog) *TestRepositories {
	db := SharedTestDB

	return &TestRepositories{
		DB:             db,
		PlayerRepo:     persistence.NewGormPlayerRepository(db),
		SpacecraftRepo: persistence.NewGormSpacecraftRepository(db, cat),
	}
}
