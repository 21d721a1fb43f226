package catalog

const (
	// MaxModuleCount is the number of module slots in a compartment
	MaxModuleCount = 5

	// MaxEquipmentCount is the number of equipment slots in a compartment
	MaxEquipmentCount = 8
)
