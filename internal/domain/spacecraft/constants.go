package spacecraft

import "github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"

const (
	MaxCompartmentCount = 10
	MaxModuleCount      = catalog.MaxModuleCount
	MaxEquipmentCount   = catalog.MaxEquipmentCount

	// SkirtCapacityMultiplier applies to a module continued by the same module
	// in the next compartment, sharing tankage without a bulkhead
	SkirtCapacityMultiplier = 1.1

	// StandardGravity in m/s²
	StandardGravity = 9.807

	// ResourceQuantityThreshold in T, below which a cargo slot is emptied
	ResourceQuantityThreshold = 0.01

	// MinimumDeltaV in m/s required for departure
	MinimumDeltaV = 100.0

	// LightFreighterCargoLimit in T separates light and heavy freighters
	LightFreighterCargoLimit = 500.0

	// AnyCompartment targets every compartment in aggregate cargo operations
	AnyCompartment = -1
)
