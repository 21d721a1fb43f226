package spacecraft

import (
	"math"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
)

// CompartmentMetrics aggregates the physical properties of one compartment
type CompartmentMetrics struct {
	ModuleCount               int
	EquipmentCount            int
	DryMass                   float64
	PropellantMassCapacity    float64
	CargoMassCapacity         float64
	Thrust                    float64
	TotalEngineISPTimesThrust float64
}

// NewCompartmentMetrics computes the metrics of the compartment at index
func NewCompartmentMetrics(sc *Spacecraft, compartmentIndex int) CompartmentMetrics {
	var metrics CompartmentMetrics
	if compartmentIndex < 0 || compartmentIndex >= len(sc.Compartments) {
		return metrics
	}

	compartment := &sc.Compartments[compartmentIndex]
	if !compartment.IsValid() {
		return metrics
	}

	metrics.DryMass = compartment.Description.Mass

	for mi, module := range compartment.Modules {
		if module.Description == nil {
			continue
		}
		metrics.ModuleCount++
		metrics.DryMass += module.Description.Mass

		skirt := 1.0
		if sc.IsSameModuleInNextCompartment(compartmentIndex, mi) {
			skirt = SkirtCapacityMultiplier
		}
		metrics.PropellantMassCapacity += module.Description.PropellantMass() * skirt
		metrics.CargoMassCapacity += module.Description.CargoMass() * skirt
	}

	for _, equipment := range compartment.Equipment {
		if equipment == nil {
			continue
		}
		metrics.EquipmentCount++
		metrics.DryMass += equipment.Mass

		switch equipment.Kind {
		case catalog.EquipmentKindEngine:
			metrics.Thrust += equipment.Engine.Thrust
			metrics.TotalEngineISPTimesThrust += equipment.Engine.SpecificImpulse * equipment.Engine.Thrust
		case catalog.EquipmentKindPropellantTank:
			metrics.PropellantMassCapacity += equipment.PropellantTank.PropellantMass
		}
	}

	return metrics
}

// PropulsionMetrics aggregates mass and rocket-equation results.
// Masses in T, thrust in kN, velocities in m/s, rates in T/s, times in s.
type PropulsionMetrics struct {
	DryMass                float64
	PropellantMassCapacity float64
	CargoMassCapacity      float64
	MaximumMass            float64
	EngineThrust           float64
	ThrusterThrust         float64
	SpecificImpulse        float64
	ExhaustVelocity        float64
	PropellantRate         float64
	MaximumDeltaV          float64
	MaximumBurnTime        float64
}

func computePropulsionMetrics(sc *Spacecraft) PropulsionMetrics {
	var metrics PropulsionMetrics
	totalISPTimesThrust := 0.0

	for ci := range sc.Compartments {
		compartment := NewCompartmentMetrics(sc, ci)
		metrics.DryMass += compartment.DryMass
		metrics.PropellantMassCapacity += compartment.PropellantMassCapacity
		metrics.CargoMassCapacity += compartment.CargoMassCapacity
		metrics.EngineThrust += compartment.Thrust
		totalISPTimesThrust += compartment.TotalEngineISPTimesThrust

		for _, equipment := range sc.Compartments[ci].Equipment {
			if equipment.Is(catalog.EquipmentKindThruster) {
				metrics.ThrusterThrust += equipment.Thruster.Thrust
			}
		}
	}

	metrics.MaximumMass = metrics.DryMass + metrics.PropellantMassCapacity + metrics.CargoMassCapacity

	if metrics.EngineThrust > 0 {
		metrics.SpecificImpulse = totalISPTimesThrust / metrics.EngineThrust
		metrics.ExhaustVelocity = StandardGravity * metrics.SpecificImpulse
		metrics.PropellantRate = metrics.EngineThrust / metrics.ExhaustVelocity
		if metrics.DryMass > 0 {
			metrics.MaximumDeltaV = metrics.ExhaustVelocity * math.Log(metrics.MaximumMass/metrics.DryMass)
		}
		metrics.MaximumBurnTime = metrics.PropellantMassCapacity / metrics.PropellantRate
	}

	return metrics
}

// DeltaV returns the delta-v gained by burning propellantMass out of currentMass
func (m PropulsionMetrics) DeltaV(currentMass, propellantMass float64) float64 {
	if m.ExhaustVelocity <= 0 || currentMass <= propellantMass {
		return 0
	}
	return m.ExhaustVelocity * math.Log(currentMass/(currentMass-propellantMass))
}

// BurnDuration returns the seconds needed to spend the given propellant mass
func (m PropulsionMetrics) BurnDuration(propellantMass float64) float64 {
	if m.PropellantRate <= 0 {
		return 0
	}
	return propellantMass / m.PropellantRate
}
