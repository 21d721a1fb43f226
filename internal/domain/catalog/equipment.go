package catalog

import "fmt"

// EquipmentType restricts where equipment can be mounted
type EquipmentType int

const (
	EquipmentTypeStandard EquipmentType = iota
	EquipmentTypeUnconnected
	EquipmentTypeForward
	EquipmentTypeAft
)

func (t EquipmentType) String() string {
	switch t {
	case EquipmentTypeStandard:
		return "standard"
	case EquipmentTypeUnconnected:
		return "unconnected"
	case EquipmentTypeForward:
		return "forward"
	case EquipmentTypeAft:
		return "aft"
	default:
		return fmt.Sprintf("EquipmentType(%d)", int(t))
	}
}

// ParseEquipmentType converts a catalog string into an EquipmentType
func ParseEquipmentType(value string) (EquipmentType, error) {
	switch value {
	case "standard", "":
		return EquipmentTypeStandard, nil
	case "unconnected":
		return EquipmentTypeUnconnected, nil
	case "forward":
		return EquipmentTypeForward, nil
	case "aft":
		return EquipmentTypeAft, nil
	default:
		return EquipmentTypeStandard, fmt.Errorf("unknown equipment type %q", value)
	}
}

// EquipmentKind discriminates the payload of an EquipmentDescription
type EquipmentKind int

const (
	EquipmentKindGeneric EquipmentKind = iota
	EquipmentKindEngine
	EquipmentKindThruster
	EquipmentKindMiningRig
	EquipmentKindRadioMast
	EquipmentKindPower
	EquipmentKindHatch
	EquipmentKindPropellantTank
)

func (k EquipmentKind) String() string {
	switch k {
	case EquipmentKindEngine:
		return "engine"
	case EquipmentKindThruster:
		return "thruster"
	case EquipmentKindMiningRig:
		return "mining_rig"
	case EquipmentKindRadioMast:
		return "radio_mast"
	case EquipmentKindPower:
		return "power"
	case EquipmentKindHatch:
		return "hatch"
	case EquipmentKindPropellantTank:
		return "propellant_tank"
	default:
		return "generic"
	}
}

type EngineEquipment struct {
	Thrust          float64
	SpecificImpulse float64
}

type ThrusterEquipment struct {
	Thrust float64
}

type MiningRigEquipment struct {
	ExtractionRate float64
	Power          float64
}

type RadioMastEquipment struct {
	Power float64
}

// PowerEquipment produces Power kW (solar output scales with sun exposure)
// and stores up to Capacity kWh
type PowerEquipment struct {
	Power    float64
	Capacity float64
	Solar    bool
}

type HatchEquipment struct {
	IsHabitat bool
}

type PropellantTankEquipment struct {
	PropellantMass float64
}

// EquipmentDescription is an immutable catalog entry for equipment.
// Exactly one payload matching Kind is set, none for generic equipment.
type EquipmentDescription struct {
	Identifier      string
	Name            string
	Mass            float64
	Type            EquipmentType
	RequiresPairing bool
	CrewEffect      int
	Kind            EquipmentKind

	Engine         *EngineEquipment
	Thruster       *ThrusterEquipment
	MiningRig      *MiningRigEquipment
	RadioMast      *RadioMastEquipment
	Power          *PowerEquipment
	Hatch          *HatchEquipment
	PropellantTank *PropellantTankEquipment
}

func (e *EquipmentDescription) Is(kind EquipmentKind) bool {
	return e != nil && e.Kind == kind
}

// IsHabitatHatch reports whether the equipment is a hatch that houses crew
func (e *EquipmentDescription) IsHabitatHatch() bool {
	return e.Is(EquipmentKindHatch) && e.Hatch.IsHabitat
}
