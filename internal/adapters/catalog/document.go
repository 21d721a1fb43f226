package catalog

// Document is the YAML layout of a catalog file. Identifiers are resolved
// against each other when the document is converted into a domain catalog.
type Document struct {
	Resources    []ResourceDocument    `yaml:"resources" validate:"dive"`
	Modules      []ModuleDocument      `yaml:"modules" validate:"dive"`
	Equipment    []EquipmentDocument   `yaml:"equipment" validate:"dive"`
	Compartments []CompartmentDocument `yaml:"compartments" validate:"dive"`
}

type ResourceDocument struct {
	ID          string `yaml:"id" validate:"required"`
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description"`
	Type        string `yaml:"type" validate:"omitempty,oneof=general bulk liquid"`
}

type ModuleDocument struct {
	ID          string  `yaml:"id" validate:"required"`
	Name        string  `yaml:"name" validate:"required"`
	Mass        float64 `yaml:"mass" validate:"gte=0"`
	CrewEffect  int     `yaml:"crew_effect"`
	NeedsPiping bool    `yaml:"needs_piping"`
	Kind        string  `yaml:"kind" validate:"omitempty,oneof=structural propellant cargo processing"`

	PropellantMass float64 `yaml:"propellant_mass" validate:"gte=0"`
	CargoMass      float64 `yaml:"cargo_mass" validate:"gte=0"`
	CargoType      string  `yaml:"cargo_type" validate:"omitempty,oneof=general bulk liquid"`

	Inputs         []string `yaml:"inputs"`
	Outputs        []string `yaml:"outputs"`
	ProcessingRate float64  `yaml:"processing_rate" validate:"gte=0"`
	Power          float64  `yaml:"power"`
}

type EquipmentDocument struct {
	ID              string  `yaml:"id" validate:"required"`
	Name            string  `yaml:"name" validate:"required"`
	Mass            float64 `yaml:"mass" validate:"gte=0"`
	Type            string  `yaml:"type" validate:"omitempty,oneof=standard unconnected forward aft"`
	RequiresPairing bool    `yaml:"requires_pairing"`
	CrewEffect      int     `yaml:"crew_effect"`
	Kind            string  `yaml:"kind" validate:"omitempty,oneof=generic engine thruster mining_rig radio_mast power hatch propellant_tank"`

	Thrust          float64 `yaml:"thrust" validate:"gte=0"`
	SpecificImpulse float64 `yaml:"specific_impulse" validate:"gte=0"`
	ExtractionRate  float64 `yaml:"extraction_rate" validate:"gte=0"`
	Power           float64 `yaml:"power" validate:"gte=0"`
	Capacity        float64 `yaml:"capacity" validate:"gte=0"`
	Solar           bool    `yaml:"solar"`
	Habitat         bool    `yaml:"habitat"`
	PropellantMass  float64 `yaml:"propellant_mass" validate:"gte=0"`
}

type CompartmentDocument struct {
	ID                  string                  `yaml:"id" validate:"required"`
	Name                string                  `yaml:"name" validate:"required"`
	Mass                float64                 `yaml:"mass" validate:"gte=0"`
	ModuleSlots         []ModuleSlotDocument    `yaml:"module_slots" validate:"dive"`
	EquipmentSlots      []EquipmentSlotDocument `yaml:"equipment_slots" validate:"dive"`
	EquipmentSlotGroups [][]string              `yaml:"equipment_slot_groups" validate:"dive,min=2"`
}

type ModuleSlotDocument struct {
	Name             string   `yaml:"name" validate:"required"`
	Socket           string   `yaml:"socket" validate:"required"`
	LinkedEquipment  []string `yaml:"linked_equipment"`
	ForceSkirtPiping bool     `yaml:"force_skirt_piping"`
}

type EquipmentSlotDocument struct {
	Name   string   `yaml:"name" validate:"required"`
	Socket string   `yaml:"socket" validate:"required"`
	Types  []string `yaml:"types" validate:"min=1,dive,oneof=standard unconnected forward aft"`
}
