package spacecraft

import (
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
)

// ModuleGroupType classifies a module group
type ModuleGroupType int

const (
	// ModuleGroupTypeHatch groups cargo, processing and crew modules, which need a hatch
	ModuleGroupTypeHatch ModuleGroupType = iota

	// ModuleGroupTypePropellant groups propellant and structural modules
	ModuleGroupTypePropellant
)

func (t ModuleGroupType) String() string {
	if t == ModuleGroupTypeHatch {
		return "Cargo / crew"
	}
	return "Propellant"
}

// ModuleGroupTypeOf classifies a module description
func ModuleGroupTypeOf(module *catalog.ModuleDescription) ModuleGroupType {
	if module.IsCargo() || module.IsProcessing() || module.CrewEffect != 0 {
		return ModuleGroupTypeHatch
	}
	return ModuleGroupTypePropellant
}

// ModuleIndices locates a module slot
type ModuleIndices struct {
	CompartmentIndex int
	ModuleIndex      int
}

// EquipmentIndices locates an equipment slot
type EquipmentIndices struct {
	CompartmentIndex int
	EquipmentIndex   int
}

// ModuleGroupCompartment is the part of a group living in one compartment
type ModuleGroupCompartment struct {
	CompartmentIndex int
	ModuleIndices    []int
	LinkedEquipments []string
}

// ModuleGroup is a set of modules linked by socket name across adjacent
// compartments, or sideways through shared linked equipment
type ModuleGroup struct {
	Index        int
	Type         ModuleGroupType
	HasHatch     bool
	Compartments []ModuleGroupCompartment
}

// Modules returns the member slots in compartment then insertion order
func (g *ModuleGroup) Modules() []ModuleIndices {
	var result []ModuleIndices
	for _, gc := range g.Compartments {
		for _, mi := range gc.ModuleIndices {
			result = append(result, ModuleIndices{CompartmentIndex: gc.CompartmentIndex, ModuleIndex: mi})
		}
	}
	return result
}

// Contains reports whether the group holds the module slot
func (g *ModuleGroup) Contains(compartmentIndex, moduleIndex int) bool {
	for _, gc := range g.Compartments {
		if gc.CompartmentIndex != compartmentIndex {
			continue
		}
		for _, mi := range gc.ModuleIndices {
			if mi == moduleIndex {
				return true
			}
		}
	}
	return false
}

// LinkedEquipments resolves the equipment slots linked to the group
func (g *ModuleGroup) LinkedEquipments(sc *Spacecraft) []EquipmentIndices {
	var result []EquipmentIndices
	for _, gc := range g.Compartments {
		compartment := &sc.Compartments[gc.CompartmentIndex]
		if !compartment.IsValid() {
			continue
		}
		for _, socket := range gc.LinkedEquipments {
			index := compartment.Description.EquipmentSlotIndex(socket)
			if index >= 0 {
				result = append(result, EquipmentIndices{CompartmentIndex: gc.CompartmentIndex, EquipmentIndex: index})
			}
		}
	}
	return result
}

func (g *ModuleGroup) last() *ModuleGroupCompartment {
	return &g.Compartments[len(g.Compartments)-1]
}

func appendUnique(values []string, value string) []string {
	for _, existing := range values {
		if existing == value {
			return values
		}
	}
	return append(values, value)
}

func sharesAny(values []string, candidates []string) bool {
	for _, candidate := range candidates {
		for _, value := range values {
			if value == candidate {
				return true
			}
		}
	}
	return false
}

// buildModuleGroups links modules into groups. Compartments are scanned in
// order, then slots in order; adjacency is keyed by socket name.
func buildModuleGroups(sc *Spacecraft) []ModuleGroup {
	var groups []ModuleGroup

	for ci := range sc.Compartments {
		compartment := &sc.Compartments[ci]
		if !compartment.IsValid() {
			continue
		}

		for mi := 0; mi < compartment.ModuleSlotCount(); mi++ {
			module := compartment.Modules[mi].Description
			if module == nil {
				continue
			}

			slot := compartment.Description.ModuleSlots[mi]
			groupType := ModuleGroupTypeOf(module)
			current := -1

			if pci, pmi, ok := sc.sameKindModuleInPreviousCompartment(ci, mi, groupType); ok {
				for gi := range groups {
					if groups[gi].Contains(pci, pmi) {
						groups[gi].Compartments = append(groups[gi].Compartments, ModuleGroupCompartment{
							CompartmentIndex: ci,
							ModuleIndices:    []int{mi},
						})
						current = gi
						break
					}
				}
			} else {
				for gi := range groups {
					last := groups[gi].last()
					if groups[gi].Type == groupType && last.CompartmentIndex == ci &&
						sharesAny(last.LinkedEquipments, slot.LinkedEquipments) {
						last.ModuleIndices = append(last.ModuleIndices, mi)
						current = gi
						break
					}
				}
			}

			if current < 0 {
				groups = append(groups, ModuleGroup{
					Index: len(groups),
					Type:  groupType,
					Compartments: []ModuleGroupCompartment{{
						CompartmentIndex: ci,
						ModuleIndices:    []int{mi},
					}},
				})
				current = len(groups) - 1
			}

			group := &groups[current]
			last := group.last()
			for _, socket := range slot.LinkedEquipments {
				last.LinkedEquipments = appendUnique(last.LinkedEquipments, socket)
			}
			for _, socket := range slot.LinkedEquipments {
				if compartment.EquipmentBySocket(socket).Is(catalog.EquipmentKindHatch) {
					group.HasHatch = true
					break
				}
			}
		}
	}

	return groups
}
