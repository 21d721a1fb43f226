package catalog

// ModuleKind discriminates the payload of a ModuleDescription
type ModuleKind int

const (
	ModuleKindStructural ModuleKind = iota
	ModuleKindPropellant
	ModuleKindCargo
	ModuleKindProcessing
)

func (k ModuleKind) String() string {
	switch k {
	case ModuleKindPropellant:
		return "propellant"
	case ModuleKindCargo:
		return "cargo"
	case ModuleKindProcessing:
		return "processing"
	default:
		return "structural"
	}
}

// PropellantModule stores propellant inside the hull
type PropellantModule struct {
	PropellantMass float64
}

// CargoModule stores one resource at a time
type CargoModule struct {
	CargoMass float64
	CargoType ResourceType
}

// ProcessingModule converts input resources into output resources
type ProcessingModule struct {
	Inputs         ResourceSet
	Outputs        ResourceSet
	ProcessingRate float64

	// Power in kW, positive values drain energy and negative values produce it
	Power float64
}

// ModuleDescription is an immutable catalog entry for a module.
// Exactly one payload matching Kind is set.
type ModuleDescription struct {
	Identifier  string
	Name        string
	Mass        float64
	CrewEffect  int
	NeedsPiping bool
	Kind        ModuleKind

	Propellant *PropellantModule
	Cargo      *CargoModule
	Processing *ProcessingModule
}

// PropellantMass returns the propellant capacity, 0 for other kinds
func (m *ModuleDescription) PropellantMass() float64 {
	if m == nil || m.Kind != ModuleKindPropellant {
		return 0
	}
	return m.Propellant.PropellantMass
}

// CargoMass returns the cargo capacity, 0 for other kinds
func (m *ModuleDescription) CargoMass() float64 {
	if m == nil || m.Kind != ModuleKindCargo {
		return 0
	}
	return m.Cargo.CargoMass
}

func (m *ModuleDescription) IsCargo() bool {
	return m != nil && m.Kind == ModuleKindCargo
}

func (m *ModuleDescription) IsProcessing() bool {
	return m != nil && m.Kind == ModuleKindProcessing
}

func (m *ModuleDescription) IsPropellant() bool {
	return m != nil && m.Kind == ModuleKindPropellant
}

// Accepts reports whether a cargo module can store the resource
func (m *ModuleDescription) Accepts(resource *Resource) bool {
	return m.IsCargo() && resource != nil && m.Cargo.CargoType == resource.Type
}

// AttendanceCrew is the crew required to operate the module
func (m *ModuleDescription) AttendanceCrew() int {
	if m == nil || m.CrewEffect >= 0 {
		return 0
	}
	return -m.CrewEffect
}
