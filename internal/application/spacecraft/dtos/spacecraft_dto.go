package dtos

import (
	"errors"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
)

// CargoDTO is the content of one module slot
type CargoDTO struct {
	Resource string  `json:"resource"`
	Amount   float64 `json:"amount"`
	Capacity float64 `json:"capacity"`
}

// ModuleSlotDTO describes a mounted module
type ModuleSlotDTO struct {
	Slot   int       `json:"slot"`
	Name   string    `json:"name"`
	Module string    `json:"module"`
	Cargo  *CargoDTO `json:"cargo,omitempty"`
}

// EquipmentSlotDTO describes mounted equipment
type EquipmentSlotDTO struct {
	Slot      int    `json:"slot"`
	Name      string `json:"name"`
	Equipment string `json:"equipment"`
}

// CompartmentDTO describes one compartment and what is mounted in it
type CompartmentDTO struct {
	Index       int                `json:"index"`
	Compartment string             `json:"compartment"`
	DryMass     float64            `json:"dry_mass"`
	Modules     []ModuleSlotDTO    `json:"modules"`
	Equipment   []EquipmentSlotDTO `json:"equipment"`
}

// ModuleGroupDTO describes a derived module group
type ModuleGroupDTO struct {
	Index    int    `json:"index"`
	Type     string `json:"type"`
	HasHatch bool   `json:"has_hatch"`
	Modules  int    `json:"modules"`
}

// MetricsDTO carries propulsion and power metrics
type MetricsDTO struct {
	DryMass                float64 `json:"dry_mass"`
	MaximumMass            float64 `json:"maximum_mass"`
	PropellantMassCapacity float64 `json:"propellant_mass_capacity"`
	CargoMassCapacity      float64 `json:"cargo_mass_capacity"`
	EngineThrust           float64 `json:"engine_thrust"`
	ThrusterThrust         float64 `json:"thruster_thrust"`
	SpecificImpulse        float64 `json:"specific_impulse"`
	MaximumDeltaV          float64 `json:"maximum_delta_v"`
	MaximumBurnTime        float64 `json:"maximum_burn_time"`
	EnergyCapacity         float64 `json:"energy_capacity"`
	PowerUsage             float64 `json:"power_usage"`
	PowerProduction        float64 `json:"power_production"`
	CrewCapacity           int     `json:"crew_capacity"`
}

// SpacecraftDTO is the read model of a spacecraft
type SpacecraftDTO struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Classification string           `json:"classification"`
	Propellant     float64          `json:"propellant"`
	Crew           int              `json:"crew"`
	Valid          bool             `json:"valid"`
	Issues         []string         `json:"issues,omitempty"`
	Metrics        MetricsDTO       `json:"metrics"`
	Compartments   []CompartmentDTO `json:"compartments"`
	Groups         []ModuleGroupDTO `json:"groups"`
}

// ValidationIssues returns the design issues of a spacecraft, nil when valid
func ValidationIssues(sc *spacecraft.Spacecraft) []string {
	err := sc.Validate()
	if err == nil {
		return nil
	}
	var designErr *shared.DesignError
	if errors.As(err, &designErr) {
		return designErr.Issues
	}
	return []string{err.Error()}
}

// NewSpacecraftDTO builds the read model; derived data must be up to date
func NewSpacecraftDTO(sc *spacecraft.Spacecraft) SpacecraftDTO {
	propulsion := sc.PropulsionMetrics()
	power := sc.PowerMetrics()
	issues := ValidationIssues(sc)

	dto := SpacecraftDTO{
		ID:             sc.Identifier.String(),
		Name:           sc.Name,
		Classification: sc.Classification(),
		Propellant:     sc.PropellantMassAtLaunch,
		Crew:           sc.CrewCount,
		Valid:          len(issues) == 0,
		Issues:         issues,
		Metrics: MetricsDTO{
			DryMass:                propulsion.DryMass,
			MaximumMass:            propulsion.MaximumMass,
			PropellantMassCapacity: propulsion.PropellantMassCapacity,
			CargoMassCapacity:      propulsion.CargoMassCapacity,
			EngineThrust:           propulsion.EngineThrust,
			ThrusterThrust:         propulsion.ThrusterThrust,
			SpecificImpulse:        propulsion.SpecificImpulse,
			MaximumDeltaV:          propulsion.MaximumDeltaV,
			MaximumBurnTime:        propulsion.MaximumBurnTime,
			EnergyCapacity:         power.EnergyCapacity,
			PowerUsage:             power.TotalPowerUsage,
			PowerProduction:        power.TotalPowerProduction,
			CrewCapacity:           sc.CrewCapacity(),
		},
	}

	for ci := range sc.Compartments {
		compartment := &sc.Compartments[ci]
		if !compartment.IsValid() {
			continue
		}
		compartmentDTO := CompartmentDTO{
			Index:       ci,
			Compartment: compartment.Description.Identifier,
			DryMass:     compartment.Mass(),
		}
		for mi, slot := range compartment.Description.ModuleSlots {
			module := compartment.Modules[mi]
			if module.Description == nil {
				continue
			}
			slotDTO := ModuleSlotDTO{Slot: mi, Name: slot.Name, Module: module.Description.Identifier}
			if module.Description.IsCargo() {
				cargo := &CargoDTO{Capacity: sc.CargoCapacity(ci, mi), Amount: module.Cargo.Amount}
				if module.Cargo.Resource != nil {
					cargo.Resource = module.Cargo.Resource.Identifier
				}
				slotDTO.Cargo = cargo
			}
			compartmentDTO.Modules = append(compartmentDTO.Modules, slotDTO)
		}
		for ei, slot := range compartment.Description.EquipmentSlots {
			equipment := compartment.Equipment[ei]
			if equipment == nil {
				continue
			}
			compartmentDTO.Equipment = append(compartmentDTO.Equipment, EquipmentSlotDTO{
				Slot: ei, Name: slot.Name, Equipment: equipment.Identifier,
			})
		}
		dto.Compartments = append(dto.Compartments, compartmentDTO)
	}

	for _, group := range sc.ModuleGroups() {
		dto.Groups = append(dto.Groups, ModuleGroupDTO{
			Index:    group.Index,
			Type:     group.Type.String(),
			HasHatch: group.HasHatch,
			Modules:  len(group.Modules()),
		})
	}

	return dto
}
