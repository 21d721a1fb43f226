package power

import (
	"io"
	"log/slog"
	"time"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
	"github.com/strangergwenn/AstralShipwright-sub002/pkg/utils"
)

// Environment describes the light and location conditions of the spacecraft
type Environment interface {
	// SunDistance in astronomical units
	SunDistance() float64
	IsOccluded() bool
	IsInDeepSpace() bool
}

// LoadSource reports the power drawn by the processing engine
type LoadSource interface {
	// ProcessingPower is the net power of running chains in kW, negative when producing
	ProcessingPower() float64
	MiningPower() float64
}

// SunExposureRatio scales solar output: 0 in shadow, else inverse-square of
// the distance, capped at 1
func SunExposureRatio(env Environment) float64 {
	if env == nil {
		return 1
	}
	if env.IsOccluded() {
		return 0
	}
	distance := env.SunDistance()
	if distance <= 0 {
		return 1
	}
	return utils.MinFloat(1, 1/(distance*distance))
}

// System integrates the energy store of a spacecraft over time
type System struct {
	env  Environment
	load LoadSource
	log  *slog.Logger

	equipment   []*catalog.EquipmentDescription
	capacity    float64
	energy      float64
	production  float64
	consumption float64
}

// NewSystem creates a power system. A nil environment means full sunlight
// near stations, a nil load source means no processing load.
func NewSystem(env Environment, load LoadSource, logger *slog.Logger) *System {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &System{env: env, load: load, log: logger}
}

// SetLoadSource wires the processing engine once both systems exist
func (s *System) SetLoadSource(load LoadSource) {
	s.load = load
}

// Load sizes the store from the spacecraft and starts it full
func (s *System) Load(sc *spacecraft.Spacecraft) error {
	s.equipment = nil
	for ci := range sc.Compartments {
		for _, equipment := range sc.Compartments[ci].Equipment {
			if equipment.Is(catalog.EquipmentKindPower) || equipment.Is(catalog.EquipmentKindRadioMast) {
				s.equipment = append(s.equipment, equipment)
			}
		}
	}
	s.capacity = sc.PowerMetrics().EnergyCapacity
	s.energy = s.capacity
	s.evaluate()
	return nil
}

// equipmentBalance returns the production and consumption of power
// equipment and radio masts in kW
func (s *System) equipmentBalance() (production, consumption float64) {
	exposure := SunExposureRatio(s.env)
	deepSpace := s.env != nil && s.env.IsInDeepSpace()

	for _, equipment := range s.equipment {
		switch equipment.Kind {
		case catalog.EquipmentKindPower:
			if equipment.Power.Solar {
				production += equipment.Power.Power * exposure
			} else {
				production += equipment.Power.Power
			}
		case catalog.EquipmentKindRadioMast:
			if deepSpace {
				consumption += equipment.RadioMast.Power
			}
		}
	}
	return production, consumption
}

// evaluate computes the instantaneous production and consumption
func (s *System) evaluate() {
	s.production, s.consumption = s.equipmentBalance()

	if s.load != nil {
		net := s.load.ProcessingPower()
		if net > 0 {
			s.consumption += net
		} else {
			s.production += -net
		}
		s.consumption += s.load.MiningPower()
	}
}

// Update integrates production minus consumption over the interval
func (s *System) Update(t0, t1 time.Time) error {
	dt := shared.SecondsBetween(t0, t1)
	if dt <= 0 {
		return nil
	}

	s.evaluate()
	hours := dt / 3600
	previous := s.energy
	s.energy = utils.Clamp(s.energy+(s.production-s.consumption)*hours, 0, s.capacity)

	if previous > 0 && s.energy == 0 && s.capacity > 0 {
		s.log.Info("energy store depleted", "production_kw", s.production, "consumption_kw", s.consumption)
	}
	return nil
}

// Refresh recomputes the instantaneous balance once the processing load of
// the tick is known
func (s *System) Refresh() {
	s.evaluate()
}

// RemainingEnergy returns the stored energy in kWh. Without storage, it is
// the instantaneous surplus in kW.
func (s *System) RemainingEnergy() float64 {
	if s.capacity <= 0 {
		return s.production - s.consumption
	}
	return s.energy
}

func (s *System) EnergyCapacity() float64 {
	return s.capacity
}

// HasStorage reports whether the spacecraft carries a battery
func (s *System) HasStorage() bool {
	return s.capacity > 0
}

// BaseSurplus returns the power left for processing and mining in kW
func (s *System) BaseSurplus() float64 {
	production, consumption := s.equipmentBalance()
	return production - consumption
}

func (s *System) Production() float64 {
	return s.production
}

func (s *System) Consumption() float64 {
	return s.consumption
}
