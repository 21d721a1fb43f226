package spacecraft

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
)

// ValidDesignMessage is reported by IsValid when no rule is violated
const ValidDesignMessage = "This spacecraft has a valid design"

// Validate checks every departure rule and returns a DesignError listing all
// violations, or nil
func (s *Spacecraft) Validate() error {
	var issues []string

	if s.Name == "" {
		issues = append(issues, "This spacecraft is unnamed")
	}
	if s.propulsion.EngineThrust <= 0 {
		issues = append(issues, "This spacecraft has no engine")
	}
	if s.propulsion.PropellantMassCapacity <= 0 {
		issues = append(issues, "This spacecraft has no propellant tank")
	}
	if s.propulsion.MaximumDeltaV < MinimumDeltaV {
		issues = append(issues, "This spacecraft does not have enough delta-v")
	}

	hasThruster := false
	hasHabitat := false

	for ci := range s.Compartments {
		compartment := &s.Compartments[ci]
		if !compartment.IsValid() {
			continue
		}

		for _, module := range compartment.Modules {
			if module.Description != nil && module.Description.CrewEffect > 0 {
				hasHabitat = true
			}
		}

		for ei, equipment := range compartment.Equipment {
			if equipment == nil {
				continue
			}

			if equipment.RequiresPairing && !s.isPaired(ci, ei) {
				issues = append(issues, fmt.Sprintf(
					"Equipment in slot %s of compartment %d is not correctly paired with symmetrical equipment",
					compartment.Description.EquipmentSlots[ei].Name, ci+1))
			}

			switch {
			case equipment.Is(catalog.EquipmentKindThruster):
				hasThruster = true
			case equipment.IsHabitatHatch():
				hasHabitat = true
			case equipment.Is(catalog.EquipmentKindMiningRig):
				if !s.isLinkedToHatchGroup(ci, ei) {
					issues = append(issues, "Mining rigs require attachment to a cargo/crew module group")
				}
			}
		}
	}

	var withoutHatch []string
	for i, group := range s.moduleGroups {
		if group.Type == ModuleGroupTypeHatch && !group.HasHatch {
			withoutHatch = append(withoutHatch, strconv.Itoa(i+1))
		}
	}
	if len(withoutHatch) == 1 {
		issues = append(issues, fmt.Sprintf("1 module group (%s) doesn't have a hatch attached", withoutHatch[0]))
	} else if len(withoutHatch) > 1 {
		issues = append(issues, fmt.Sprintf("%d module groups (%s) don't have a hatch attached",
			len(withoutHatch), strings.Join(withoutHatch, ", ")))
	}

	if !hasThruster {
		issues = append(issues, "This spacecraft has no maneuvering thrusters")
	}
	if !hasHabitat {
		issues = append(issues, "This spacecraft doesn't have any habitable space")
	}

	if len(issues) > 0 {
		return shared.NewDesignError(issues)
	}
	return nil
}

// IsValid reports whether the design can depart, with a readable explanation
func (s *Spacecraft) IsValid() (bool, string) {
	if err := s.Validate(); err != nil {
		return false, err.Error()
	}
	return true, ValidDesignMessage
}

// isPaired checks that every slot grouped with the equipment slot holds the same equipment
func (s *Spacecraft) isPaired(compartmentIndex, equipmentIndex int) bool {
	compartment := &s.Compartments[compartmentIndex]
	socket := compartment.Description.EquipmentSlots[equipmentIndex].SocketName
	equipment := compartment.Equipment[equipmentIndex]

	for _, group := range compartment.Description.EquipmentSlotGroups {
		if !sharesAny(group.SocketNames, []string{socket}) {
			continue
		}
		for _, other := range group.SocketNames {
			if compartment.EquipmentBySocket(other) != equipment {
				return false
			}
		}
	}
	return true
}

func (s *Spacecraft) isLinkedToHatchGroup(compartmentIndex, equipmentIndex int) bool {
	for i := range s.moduleGroups {
		group := &s.moduleGroups[i]
		if group.Type != ModuleGroupTypeHatch {
			continue
		}
		for _, linked := range group.LinkedEquipments(s) {
			if linked.CompartmentIndex == compartmentIndex && linked.EquipmentIndex == equipmentIndex {
				return true
			}
		}
	}
	return false
}
