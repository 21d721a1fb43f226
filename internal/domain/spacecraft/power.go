package spacecraft

import "github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"

// PowerMetrics is the static power budget of the structure.
// Power in kW, energy in kWh. Usage and production are upper bounds: every
// consumer running and every producer at full output.
type PowerMetrics struct {
	EnergyCapacity       float64
	TotalPowerUsage      float64
	TotalPowerProduction float64
	SolarPowerProduction float64
}

func computePowerMetrics(sc *Spacecraft) PowerMetrics {
	var metrics PowerMetrics

	for ci := range sc.Compartments {
		compartment := &sc.Compartments[ci]
		if !compartment.IsValid() {
			continue
		}

		for _, module := range compartment.Modules {
			if !module.Description.IsProcessing() {
				continue
			}
			power := module.Description.Processing.Power
			if power > 0 {
				metrics.TotalPowerUsage += power
			} else {
				metrics.TotalPowerProduction += -power
			}
		}

		for _, equipment := range compartment.Equipment {
			if equipment == nil {
				continue
			}
			switch equipment.Kind {
			case catalog.EquipmentKindMiningRig:
				metrics.TotalPowerUsage += equipment.MiningRig.Power
			case catalog.EquipmentKindRadioMast:
				metrics.TotalPowerUsage += equipment.RadioMast.Power
			case catalog.EquipmentKindPower:
				metrics.EnergyCapacity += equipment.Power.Capacity
				metrics.TotalPowerProduction += equipment.Power.Power
				if equipment.Power.Solar {
					metrics.SolarPowerProduction += equipment.Power.Power
				}
			}
		}
	}

	return metrics
}
