package helpers

import (
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
)

// Module slot indices of the fixture hulls
const (
	SlotLeft   = 0
	SlotCenter = 1
	SlotRight  = 2
)

// Equipment slot indices of the fixture hulls
const (
	EquipLeft  = 0
	EquipRight = 1
	EquipTop   = 2
	EquipAft   = 3
	EquipFwd   = 4
)

// CatalogFixture is a small, fully resolved catalog for tests
type CatalogFixture struct {
	Catalog *catalog.Catalog

	Ore    *catalog.Resource
	Ice    *catalog.Resource
	Water  *catalog.Resource
	Oxygen *catalog.Resource
	Metal  *catalog.Resource

	// Hull keeps its three module columns apart; HullWide links every
	// module slot to the top equipment socket so they group sideways
	Hull     *catalog.CompartmentDescription
	HullWide *catalog.CompartmentDescription

	Tank           *catalog.ModuleDescription
	CargoBulk      *catalog.ModuleDescription
	CargoLiquid    *catalog.ModuleDescription
	CargoGeneral   *catalog.ModuleDescription
	Drill          *catalog.ModuleDescription
	WaterExtractor *catalog.ModuleDescription
	Electrolyser   *catalog.ModuleDescription
	Refinery       *catalog.ModuleDescription
	Habitat        *catalog.ModuleDescription
	Structure      *catalog.ModuleDescription

	Engine       *catalog.EquipmentDescription
	Thruster     *catalog.EquipmentDescription
	MiningRig    *catalog.EquipmentDescription
	Hatch        *catalog.EquipmentDescription
	HabitatHatch *catalog.EquipmentDescription
	SolarPanel   *catalog.EquipmentDescription
	Battery      *catalog.EquipmentDescription
	Generator    *catalog.EquipmentDescription
	RadioMast    *catalog.EquipmentDescription
	ExternalTank *catalog.EquipmentDescription
}

func hullDescription(identifier string, wide bool) *catalog.CompartmentDescription {
	link := func(socket string) []string {
		if wide {
			return []string{"EquipTop"}
		}
		return []string{socket}
	}

	sides := []catalog.EquipmentType{catalog.EquipmentTypeStandard, catalog.EquipmentTypeUnconnected}
	return &catalog.CompartmentDescription{
		Identifier: identifier,
		Name:       identifier,
		Mass:       10,
		ModuleSlots: []catalog.ModuleSlot{
			{Name: "Left", SocketName: "ModuleLeft", LinkedEquipments: link("EquipLeft")},
			{Name: "Center", SocketName: "ModuleCenter", LinkedEquipments: []string{"EquipTop"}},
			{Name: "Right", SocketName: "ModuleRight", LinkedEquipments: link("EquipRight")},
		},
		EquipmentSlots: []catalog.EquipmentSlot{
			{Name: "Left", SocketName: "EquipLeft", SupportedTypes: sides},
			{Name: "Right", SocketName: "EquipRight", SupportedTypes: sides},
			{Name: "Top", SocketName: "EquipTop", SupportedTypes: sides},
			{Name: "Aft", SocketName: "EquipAft", SupportedTypes: []catalog.EquipmentType{catalog.EquipmentTypeAft}},
			{Name: "Forward", SocketName: "EquipFwd", SupportedTypes: []catalog.EquipmentType{catalog.EquipmentTypeForward}},
		},
		EquipmentSlotGroups: []catalog.EquipmentSlotGroup{
			{SocketNames: []string{"EquipLeft", "EquipRight"}},
		},
	}
}

func processingModule(identifier string, inputs, outputs catalog.ResourceSet, rate, power float64, crew int) *catalog.ModuleDescription {
	return &catalog.ModuleDescription{
		Identifier: identifier,
		Name:       identifier,
		Mass:       6,
		CrewEffect: -crew,
		Kind:       catalog.ModuleKindProcessing,
		Processing: &catalog.ProcessingModule{
			Inputs:         inputs,
			Outputs:        outputs,
			ProcessingRate: rate,
			Power:          power,
		},
	}
}

func cargoModule(identifier string, capacity float64, resourceType catalog.ResourceType) *catalog.ModuleDescription {
	return &catalog.ModuleDescription{
		Identifier: identifier,
		Name:       identifier,
		Mass:       5,
		Kind:       catalog.ModuleKindCargo,
		Cargo:      &catalog.CargoModule{CargoMass: capacity, CargoType: resourceType},
	}
}

// NewCatalogFixture builds the fixture catalog, panicking on inconsistencies
func NewCatalogFixture() *CatalogFixture {
	f := &CatalogFixture{
		Ore:    &catalog.Resource{Identifier: "ore", Name: "Iron ore", Type: catalog.ResourceTypeBulk},
		Ice:    &catalog.Resource{Identifier: "ice", Name: "Water ice", Type: catalog.ResourceTypeBulk},
		Water:  &catalog.Resource{Identifier: "water", Name: "Water", Type: catalog.ResourceTypeLiquid},
		Oxygen: &catalog.Resource{Identifier: "oxygen", Name: "Oxygen", Type: catalog.ResourceTypeLiquid},
		Metal:  &catalog.Resource{Identifier: "metal", Name: "Metal", Type: catalog.ResourceTypeGeneral},
	}

	f.Hull = hullDescription("hull", false)
	f.HullWide = hullDescription("hull-wide", true)

	f.Tank = &catalog.ModuleDescription{
		Identifier: "tank", Name: "Propellant tank", Mass: 10,
		Kind:       catalog.ModuleKindPropellant,
		Propellant: &catalog.PropellantModule{PropellantMass: 400},
	}
	f.CargoBulk = cargoModule("cargo-bulk", 100, catalog.ResourceTypeBulk)
	f.CargoLiquid = cargoModule("cargo-liquid", 100, catalog.ResourceTypeLiquid)
	f.CargoGeneral = cargoModule("cargo-general", 50, catalog.ResourceTypeGeneral)
	f.Drill = processingModule("drill", nil, catalog.ResourceSet{f.Ore}, 1, 10, 1)
	f.WaterExtractor = processingModule("water-extractor", nil, catalog.ResourceSet{f.Water}, 2, 5, 0)
	f.Electrolyser = processingModule("electrolyser", catalog.ResourceSet{f.Water}, catalog.ResourceSet{f.Oxygen}, 0.5, 20, 1)
	f.Refinery = processingModule("refinery", catalog.ResourceSet{f.Ore}, catalog.ResourceSet{f.Metal}, 1, 15, 2)
	f.Habitat = &catalog.ModuleDescription{
		Identifier: "habitat", Name: "Habitat", Mass: 8, CrewEffect: 4,
		Kind: catalog.ModuleKindStructural,
	}
	f.Structure = &catalog.ModuleDescription{
		Identifier: "structure", Name: "Truss", Mass: 2,
		Kind: catalog.ModuleKindStructural,
	}

	f.Engine = &catalog.EquipmentDescription{
		Identifier: "engine", Name: "Main engine", Mass: 20, Type: catalog.EquipmentTypeAft,
		Kind:   catalog.EquipmentKindEngine,
		Engine: &catalog.EngineEquipment{Thrust: 1000, SpecificImpulse: 400},
	}
	f.Thruster = &catalog.EquipmentDescription{
		Identifier: "thruster", Name: "RCS thruster", Mass: 1, RequiresPairing: true,
		Kind:     catalog.EquipmentKindThruster,
		Thruster: &catalog.ThrusterEquipment{Thrust: 10},
	}
	f.MiningRig = &catalog.EquipmentDescription{
		Identifier: "mining-rig", Name: "Mining rig", Mass: 10,
		Kind:      catalog.EquipmentKindMiningRig,
		MiningRig: &catalog.MiningRigEquipment{ExtractionRate: 2, Power: 25},
	}
	f.Hatch = &catalog.EquipmentDescription{
		Identifier: "hatch", Name: "Cargo hatch", Mass: 1,
		Kind:  catalog.EquipmentKindHatch,
		Hatch: &catalog.HatchEquipment{},
	}
	f.HabitatHatch = &catalog.EquipmentDescription{
		Identifier: "habitat-hatch", Name: "Crew airlock", Mass: 2, CrewEffect: 2,
		Kind:  catalog.EquipmentKindHatch,
		Hatch: &catalog.HatchEquipment{IsHabitat: true},
	}
	f.SolarPanel = &catalog.EquipmentDescription{
		Identifier: "solar-panel", Name: "Solar panel", Mass: 2, Type: catalog.EquipmentTypeUnconnected,
		Kind:  catalog.EquipmentKindPower,
		Power: &catalog.PowerEquipment{Power: 50, Solar: true},
	}
	f.Battery = &catalog.EquipmentDescription{
		Identifier: "battery", Name: "Battery", Mass: 3,
		Kind:  catalog.EquipmentKindPower,
		Power: &catalog.PowerEquipment{Capacity: 100},
	}
	f.Generator = &catalog.EquipmentDescription{
		Identifier: "generator", Name: "Fission generator", Mass: 8,
		Kind:  catalog.EquipmentKindPower,
		Power: &catalog.PowerEquipment{Power: 30},
	}
	f.RadioMast = &catalog.EquipmentDescription{
		Identifier: "radio-mast", Name: "Radio mast", Mass: 1, Type: catalog.EquipmentTypeUnconnected,
		Kind:      catalog.EquipmentKindRadioMast,
		RadioMast: &catalog.RadioMastEquipment{Power: 5},
	}
	f.ExternalTank = &catalog.EquipmentDescription{
		Identifier: "external-tank", Name: "External tank", Mass: 4, Type: catalog.EquipmentTypeForward,
		Kind:           catalog.EquipmentKindPropellantTank,
		PropellantTank: &catalog.PropellantTankEquipment{PropellantMass: 200},
	}

	c, err := catalog.New(
		[]*catalog.Resource{f.Ore, f.Ice, f.Water, f.Oxygen, f.Metal},
		[]*catalog.ModuleDescription{
			f.Tank, f.CargoBulk, f.CargoLiquid, f.CargoGeneral, f.Drill,
			f.WaterExtractor, f.Electrolyser, f.Refinery, f.Habitat, f.Structure,
		},
		[]*catalog.EquipmentDescription{
			f.Engine, f.Thruster, f.MiningRig, f.Hatch, f.HabitatHatch,
			f.SolarPanel, f.Battery, f.Generator, f.RadioMast, f.ExternalTank,
		},
		[]*catalog.CompartmentDescription{f.Hull, f.HullWide},
	)
	if err != nil {
		panic(err)
	}
	f.Catalog = c
	return f
}
