package spacecraft

import (
	"github.com/google/uuid"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
)

// Customization holds cosmetic choices persisted with the spacecraft
type Customization struct {
	StructuralPaint string
	HullPaint       string
	DetailPaint     string
	DirtyIntensity  float64
}

// Spacecraft is an ordered list of compartments plus data derived from it.
// Derived data is rebuilt as a whole by UpdateDerived, never partially.
type Spacecraft struct {
	Identifier             uuid.UUID
	Name                   string
	Customization          Customization
	Compartments           []Compartment
	PropellantMassAtLaunch float64
	CrewCount              int

	propulsion   PropulsionMetrics
	power        PowerMetrics
	moduleGroups []ModuleGroup
}

// New creates an empty spacecraft with a fresh identifier
func New(name string) *Spacecraft {
	return &Spacecraft{
		Identifier: uuid.New(),
		Name:       name,
	}
}

// Clone returns a deep copy. Catalog descriptions are shared, they are immutable.
func (s *Spacecraft) Clone() *Spacecraft {
	clone := *s
	clone.Compartments = make([]Compartment, len(s.Compartments))
	copy(clone.Compartments, s.Compartments)
	clone.moduleGroups = cloneGroups(s.moduleGroups)
	return &clone
}

func cloneGroups(groups []ModuleGroup) []ModuleGroup {
	if groups == nil {
		return nil
	}
	result := make([]ModuleGroup, len(groups))
	for i, group := range groups {
		result[i] = group
		result[i].Compartments = make([]ModuleGroupCompartment, len(group.Compartments))
		for j, gc := range group.Compartments {
			result[i].Compartments[j] = ModuleGroupCompartment{
				CompartmentIndex: gc.CompartmentIndex,
				ModuleIndices:    append([]int(nil), gc.ModuleIndices...),
				LinkedEquipments: append([]string(nil), gc.LinkedEquipments...),
			}
		}
	}
	return result
}

// UpdateDerived recomputes module groups, propulsion and power metrics
func (s *Spacecraft) UpdateDerived() {
	s.moduleGroups = buildModuleGroups(s)
	s.propulsion = computePropulsionMetrics(s)
	s.power = computePowerMetrics(s)
	if s.PropellantMassAtLaunch > s.propulsion.PropellantMassCapacity {
		s.PropellantMassAtLaunch = s.propulsion.PropellantMassCapacity
	}
}

// PropulsionMetrics returns the metrics computed by the last UpdateDerived
func (s *Spacecraft) PropulsionMetrics() PropulsionMetrics {
	return s.propulsion
}

// PowerMetrics returns the metrics computed by the last UpdateDerived
func (s *Spacecraft) PowerMetrics() PowerMetrics {
	return s.power
}

// ModuleGroups returns the groups computed by the last UpdateDerived
func (s *Spacecraft) ModuleGroups() []ModuleGroup {
	return s.moduleGroups
}

// ModuleGroup returns the group with the index, or nil
func (s *Spacecraft) ModuleGroup(index int) *ModuleGroup {
	if index < 0 || index >= len(s.moduleGroups) {
		return nil
	}
	return &s.moduleGroups[index]
}

// FindModuleGroup returns the group holding the module slot, or nil
func (s *Spacecraft) FindModuleGroup(compartmentIndex, moduleIndex int) *ModuleGroup {
	for i := range s.moduleGroups {
		if s.moduleGroups[i].Contains(compartmentIndex, moduleIndex) {
			return &s.moduleGroups[i]
		}
	}
	return nil
}

// Module returns the module description at a slot, or nil
func (s *Spacecraft) Module(compartmentIndex, moduleIndex int) *catalog.ModuleDescription {
	if compartmentIndex < 0 || compartmentIndex >= len(s.Compartments) || moduleIndex < 0 || moduleIndex >= MaxModuleCount {
		return nil
	}
	return s.Compartments[compartmentIndex].Modules[moduleIndex].Description
}

// Equipment returns the equipment description at a slot, or nil
func (s *Spacecraft) Equipment(compartmentIndex, equipmentIndex int) *catalog.EquipmentDescription {
	if compartmentIndex < 0 || compartmentIndex >= len(s.Compartments) || equipmentIndex < 0 || equipmentIndex >= MaxEquipmentCount {
		return nil
	}
	return s.Compartments[compartmentIndex].Equipment[equipmentIndex]
}

func (s *Spacecraft) socketName(compartmentIndex, moduleIndex int) (string, bool) {
	compartment := &s.Compartments[compartmentIndex]
	if !compartment.IsValid() || moduleIndex >= compartment.ModuleSlotCount() {
		return "", false
	}
	return compartment.Description.ModuleSlots[moduleIndex].SocketName, true
}

// moduleAtSameSocket returns the module at the same socket in another compartment
func (s *Spacecraft) moduleAtSameSocket(compartmentIndex, moduleIndex, otherIndex int, requireSame bool) *catalog.ModuleDescription {
	socket, ok := s.socketName(compartmentIndex, moduleIndex)
	if !ok || otherIndex < 0 || otherIndex >= len(s.Compartments) {
		return nil
	}

	other := s.Compartments[otherIndex].ModuleBySocket(socket)
	if other == nil {
		return nil
	}
	if requireSame && other != s.Compartments[compartmentIndex].Modules[moduleIndex].Description {
		return nil
	}
	return other
}

// IsSameModuleInPreviousCompartment reports whether the module continues the same module in front of it
func (s *Spacecraft) IsSameModuleInPreviousCompartment(compartmentIndex, moduleIndex int) bool {
	return s.moduleAtSameSocket(compartmentIndex, moduleIndex, compartmentIndex-1, true) != nil
}

// IsSameModuleInNextCompartment reports whether the same module continues behind this one
func (s *Spacecraft) IsSameModuleInNextCompartment(compartmentIndex, moduleIndex int) bool {
	return s.moduleAtSameSocket(compartmentIndex, moduleIndex, compartmentIndex+1, true) != nil
}

func (s *Spacecraft) sameKindModuleInPreviousCompartment(compartmentIndex, moduleIndex int, groupType ModuleGroupType) (int, int, bool) {
	socket, ok := s.socketName(compartmentIndex, moduleIndex)
	if !ok || compartmentIndex == 0 {
		return 0, 0, false
	}

	previous := &s.Compartments[compartmentIndex-1]
	if !previous.IsValid() {
		return 0, 0, false
	}
	index := previous.Description.ModuleSlotIndex(socket)
	if index < 0 || previous.Modules[index].Description == nil {
		return 0, 0, false
	}
	if ModuleGroupTypeOf(previous.Modules[index].Description) != groupType {
		return 0, 0, false
	}
	return compartmentIndex - 1, index, true
}

// Classification returns a short label describing the role of the spacecraft
func (s *Spacecraft) Classification() string {
	metrics := s.propulsion
	switch {
	case metrics.EngineThrust <= 0 || len(s.Compartments) == 0:
		return "N/A"
	case metrics.CargoMassCapacity == 0:
		return "Tug"
	case metrics.CargoMassCapacity < LightFreighterCargoLimit:
		return "Light freighter"
	default:
		return "Heavy freighter"
	}
}

// CrewCapacity sums the positive crew effect of modules and equipment
func (s *Spacecraft) CrewCapacity() int {
	capacity := 0
	for ci := range s.Compartments {
		compartment := &s.Compartments[ci]
		for _, module := range compartment.Modules {
			if module.Description != nil && module.Description.CrewEffect > 0 {
				capacity += module.Description.CrewEffect
			}
		}
		for _, equipment := range compartment.Equipment {
			if equipment != nil && equipment.CrewEffect > 0 {
				capacity += equipment.CrewEffect
			}
		}
	}
	return capacity
}
